package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/seedstage/mentorship-api/internal/config"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/semantic"
	"google.golang.org/genai"
)

// GeminiClient implements the semantic.Client interface using Google's
// Gemini API for embeddings and match summaries.
type GeminiClient struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains AI-specific configuration
	config config.AIConfig

	// client is the Gemini API client for making requests
	client *genai.Client
}

// NewGeminiClient creates a new instance of GeminiClient with the provided
// dependencies. The context is used for client initialization and can be
// used for cancellation.
func NewGeminiClient(ctx context.Context, logger *slog.Logger, cfg config.AIConfig) (*GeminiClient, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", semantic.ErrInvalidConfig)
	}

	if cfg.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: embedding model cannot be empty", semantic.ErrInvalidConfig)
	}

	if cfg.SummaryModel == "" {
		return nil, fmt.Errorf("%w: summary model cannot be empty", semantic.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			semantic.ErrInvalidConfig, err)
	}

	return &GeminiClient{
		logger: logger.With(slog.String("component", "gemini_client")),
		config: cfg,
		client: client,
	}, nil
}

// Ensure GeminiClient implements semantic.Client
var _ semantic.Client = (*GeminiClient)(nil)

// EmbedTexts implements semantic.Client.EmbedTexts. It returns one
// embedding vector per input text, in input order.
func (g *GeminiClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, semantic.ErrInvalidInput
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, semantic.ErrInvalidInput
		}
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.Text(text)...)
	}

	var embeddings [][]float32
	err := g.callWithRetry(ctx, "embed_content", func(attemptCtx context.Context) (permanentErr error, transientErr error) {
		resp, err := g.client.Models.EmbedContent(attemptCtx, g.config.EmbeddingModel, contents, nil)
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("%w: expected %d embeddings, got %d",
				semantic.ErrInvalidResponse, len(texts), embeddingCount(resp)), nil
		}

		embeddings = make([][]float32, len(resp.Embeddings))
		for i, embedding := range resp.Embeddings {
			if embedding == nil || len(embedding.Values) == 0 {
				return fmt.Errorf("%w: empty embedding at index %d",
					semantic.ErrInvalidResponse, i), nil
			}
			embeddings[i] = embedding.Values
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return embeddings, nil
}

// SummarizeMatches implements semantic.Client.SummarizeMatches. It asks the
// summary model for a short rationale covering the top matched mentors.
func (g *GeminiClient) SummarizeMatches(
	ctx context.Context,
	topic string,
	mentors []domain.MentorSummary,
) (string, error) {
	if strings.TrimSpace(topic) == "" || len(mentors) == 0 {
		return "", semantic.ErrInvalidInput
	}

	prompt := buildSummaryPrompt(topic, mentors)

	var summary string
	err := g.callWithRetry(ctx, "generate_content", func(attemptCtx context.Context) (permanentErr error, transientErr error) {
		resp, err := g.client.Models.GenerateContent(
			attemptCtx,
			g.config.SummaryModel,
			genai.Text(prompt),
			nil,
		)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return fmt.Errorf("%w: nil response", semantic.ErrInvalidResponse), nil
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return fmt.Errorf("%w: empty summary", semantic.ErrInvalidResponse), nil
		}

		summary = text
		return nil, nil
	})
	if err != nil {
		return "", err
	}

	return summary, nil
}

// buildSummaryPrompt assembles the match rationale prompt from the request
// topic and the public mentor profiles.
func buildSummaryPrompt(topic string, mentors []domain.MentorSummary) string {
	var b strings.Builder
	b.WriteString("You are helping a startup founder pick a mentor. ")
	b.WriteString("In two or three sentences, explain why the following mentors suit the topic ")
	fmt.Fprintf(&b, "%q. Mention each mentor by name at most once.\n\n", topic)

	for i, mentor := range mentors {
		fmt.Fprintf(&b, "%d. %s", i+1, mentor.Name)
		if mentor.Company != "" {
			fmt.Fprintf(&b, " (%s)", mentor.Company)
		}
		if len(mentor.Expertise) > 0 {
			fmt.Fprintf(&b, " - expertise: %s", strings.Join(mentor.Expertise, ", "))
		}
		if mentor.Rating > 0 {
			fmt.Fprintf(&b, " - rating %.1f/5 over %d sessions", mentor.Rating, mentor.SessionsCompleted)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// attemptFn runs one API attempt. It reports a permanent error (returned to
// the caller immediately) or a transient one (retried with backoff).
type attemptFn func(ctx context.Context) (permanentErr error, transientErr error)

// callWithRetry runs fn with a per-attempt timeout and exponential backoff
// with jitter between transient failures. API transport errors are assumed
// transient; malformed responses are permanent.
func (g *GeminiClient) callWithRetry(ctx context.Context, operation string, fn attemptFn) error {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default",
			"configured", g.config.MaxRetries, "default", 2)
		maxRetries = 2
	}

	timeout := time.Duration(g.config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		permanentErr, transientErr := fn(attemptCtx)
		cancel()

		if permanentErr == nil && transientErr == nil {
			return nil
		}

		if permanentErr != nil {
			g.logger.WarnContext(ctx, "permanent error from Gemini API, not retrying",
				"operation", operation,
				"error", permanentErr)
			return permanentErr
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"operation", operation,
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"error", transientErr)

		if attempt >= maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				semantic.ErrTransientFailure, maxRetries, transientErr)
		}

		// delay = 2^attempt seconds * (0.5 + rand(0, 0.5))
		backoffSeconds := math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"operation", operation,
				"attempt", attempt+1,
				"ctx_err", ctx.Err())
			return fmt.Errorf("%w: %v", semantic.ErrTransientFailure, ctx.Err())
		}
	}
}

// embeddingCount reports the number of embeddings in a response, tolerating nil.
func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}
