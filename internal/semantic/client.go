package semantic

import (
	"context"
	"errors"
	"math"

	"github.com/seedstage/mentorship-api/internal/domain"
)

// ErrZeroVector is returned when cosine similarity is asked about a
// vector with no magnitude.
var ErrZeroVector = errors.New("cannot compute similarity of a zero vector")

// Client defines the interface for the optional AI collaborators used
// during matching. Absence of the capability is represented by the
// Disabled implementation rather than by ambient configuration checks,
// which keeps the scoring engine pure and testable.
type Client interface {
	// EmbedTexts returns one embedding vector per input text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// SummarizeMatches returns a short natural-language rationale for the
	// top matches of a request.
	SummarizeMatches(
		ctx context.Context,
		topic string,
		mentors []domain.MentorSummary,
	) (string, error)
}

// Disabled is the nil-capability Client. Every method reports
// ErrUnavailable so callers fall back to the degraded path.
type Disabled struct{}

// Ensure Disabled implements the Client interface
var _ Client = (*Disabled)(nil)

// EmbedTexts implements Client.EmbedTexts for the absent capability.
func (Disabled) EmbedTexts(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ErrUnavailable
}

// SummarizeMatches implements Client.SummarizeMatches for the absent capability.
func (Disabled) SummarizeMatches(
	_ context.Context,
	_ string,
	_ []domain.MentorSummary,
) (string, error) {
	return "", ErrUnavailable
}

// CosineSimilarity computes the cosine similarity of two equal-length
// embedding vectors. Returns ErrInvalidInput on mismatched lengths and
// ErrZeroVector when either vector has no magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, ErrInvalidInput
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// SimilarityScore converts a cosine similarity into the 0-100 integer
// scale used by the scoring engine, clamping negative similarities to 0.
func SimilarityScore(similarity float64) int {
	score := int(math.Round(similarity * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
