package service

import (
	"context"
	"strings"
	"time"

	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/domain/matching"
	"github.com/seedstage/mentorship-api/internal/semantic"
)

// semanticTimeout bounds each semantic call made during a matching pass.
// Matching must stay responsive even when the embedding provider is slow.
const semanticTimeout = 5 * time.Second

// rationaleMentorCount is how many top matches feed the rationale summary.
const rationaleMentorCount = 3

// computeSemanticScores embeds the request text alongside every mentor's
// profile text and converts pairwise cosine similarity into the 0-100
// semantic sub-score. Any failure degrades to nil scores: the matching
// pass then proceeds on the remaining factors with the semantic weight
// redistributed.
func (s *mentorshipServiceImpl) computeSemanticScores(
	ctx context.Context,
	request *domain.MentorshipRequest,
	mentors []*domain.Mentor,
) matching.SemanticScores {
	if len(mentors) == 0 {
		return nil
	}

	// The factor compares the request description against mentor bios;
	// without a description there is nothing to embed and every semantic
	// sub-score stays nil. Mentors without a bio are likewise left out of
	// the batch so their entries keep a nil sub-score.
	if request.Description == "" {
		return nil
	}
	eligible := make([]*domain.Mentor, 0, len(mentors))
	for _, mentor := range mentors {
		if mentor.Bio != "" {
			eligible = append(eligible, mentor)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	texts := make([]string, 0, len(eligible)+1)
	texts = append(texts, requestText(request))
	for _, mentor := range eligible {
		texts = append(texts, mentorText(mentor))
	}

	embedCtx, cancel := context.WithTimeout(ctx, semanticTimeout)
	defer cancel()

	embeddings, err := s.semantic.EmbedTexts(embedCtx, texts)
	if err != nil {
		s.logger.Warn("semantic scoring unavailable, matching without semantic factor",
			"error", err,
			"request_id", request.ID)
		return nil
	}
	if len(embeddings) != len(texts) {
		s.logger.Warn("semantic scoring returned unexpected embedding count, matching without semantic factor",
			"expected", len(texts),
			"got", len(embeddings),
			"request_id", request.ID)
		return nil
	}

	requestEmbedding := embeddings[0]
	scores := make(matching.SemanticScores, len(eligible))
	for i, mentor := range eligible {
		similarity, err := semantic.CosineSimilarity(requestEmbedding, embeddings[i+1])
		if err != nil {
			// Skip just this mentor; its semantic weight is redistributed.
			s.logger.Warn("failed to compute similarity for mentor",
				"error", err,
				"mentor_id", mentor.ID,
				"request_id", request.ID)
			continue
		}
		scores[mentor.ID] = semantic.SimilarityScore(similarity)
	}

	return scores
}

// summarizeMatches asks the summarizer for a short rationale covering the
// request's top matches. The rationale is cosmetic: any failure returns
// the empty string and matching proceeds without it.
func (s *mentorshipServiceImpl) summarizeMatches(
	ctx context.Context,
	request *domain.MentorshipRequest,
) string {
	if len(request.MatchedMentors) == 0 {
		return ""
	}

	count := len(request.MatchedMentors)
	if count > rationaleMentorCount {
		count = rationaleMentorCount
	}
	summaries := make([]domain.MentorSummary, 0, count)
	for _, entry := range request.MatchedMentors[:count] {
		summaries = append(summaries, entry.Mentor)
	}

	summaryCtx, cancel := context.WithTimeout(ctx, semanticTimeout)
	defer cancel()

	rationale, err := s.semantic.SummarizeMatches(summaryCtx, request.Topic, summaries)
	if err != nil {
		s.logger.Warn("match rationale unavailable",
			"error", err,
			"request_id", request.ID)
		return ""
	}

	return rationale
}

// requestText flattens a request into the text embedded for similarity.
func requestText(request *domain.MentorshipRequest) string {
	var b strings.Builder
	b.WriteString(request.Topic)
	if request.Description != "" {
		b.WriteString(". ")
		b.WriteString(request.Description)
	}
	if len(request.Skills) > 0 {
		b.WriteString(" Skills: ")
		b.WriteString(strings.Join(request.Skills, ", "))
	}
	if len(request.Domains) > 0 {
		b.WriteString(" Domains: ")
		b.WriteString(strings.Join(request.Domains, ", "))
	}
	return b.String()
}

// mentorText flattens a mentor profile into the text embedded for similarity.
func mentorText(mentor *domain.Mentor) string {
	var b strings.Builder
	b.WriteString(mentor.Name)
	if len(mentor.Expertise) > 0 {
		b.WriteString(". Expertise: ")
		b.WriteString(strings.Join(mentor.Expertise, ", "))
	}
	if len(mentor.Domains) > 0 {
		b.WriteString(" Domains: ")
		b.WriteString(strings.Join(mentor.Domains, ", "))
	}
	if mentor.Bio != "" {
		b.WriteString(" ")
		b.WriteString(mentor.Bio)
	}
	return b.String()
}
