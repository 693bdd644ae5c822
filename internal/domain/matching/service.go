package matching

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
)

// Common errors
var (
	ErrNilRequest = errors.New("mentorship request cannot be nil")
)

// SemanticScores carries the optional semantic sub-score per mentor.
// A missing key means the semantic factor was unavailable for that
// mentor and its weight is redistributed over the remaining factors.
type SemanticScores map[uuid.UUID]int

// Service defines the interface for the scoring and ranking engine.
// Implementations are pure: they never mutate the mentors or the request
// and perform no I/O, which is what keeps matching testable without any
// external collaborator.
type Service interface {
	// ScoreMentor computes the sub-scores and composite for one mentor.
	ScoreMentor(
		request *domain.MentorshipRequest,
		mentor *domain.Mentor,
		semantic *int,
	) (domain.SubScores, float64)

	// Eligible reports whether the mentor may appear in match results at all.
	Eligible(mentor *domain.Mentor) bool

	// Rank filters, scores, sorts, and truncates the mentor collection
	// into a capped match list for the request.
	Rank(
		request *domain.MentorshipRequest,
		mentors []*domain.Mentor,
		semantic SemanticScores,
	) ([]domain.MatchEntry, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new matching service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new matching service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ScoreMentor implements the Service interface.
func (s *defaultService) ScoreMentor(
	request *domain.MentorshipRequest,
	mentor *domain.Mentor,
	semantic *int,
) (domain.SubScores, float64) {
	sub := domain.SubScores{
		Skill:        scoreSkills(request.Skills, mentor.Expertise),
		Domain:       scoreDomains(request.Domains, mentor.Domains),
		Availability: scoreAvailability(mentor.Availability),
		Rating:       scoreRating(mentor.Rating, mentor.SessionsCompleted),
		Capacity:     scoreCapacity(mentor.MaxMentees, len(mentor.CurrentMentees)),
		Semantic:     semantic,
	}

	return sub, compositeScore(sub, s.params.Weights)
}

// Eligible implements the Service interface. Inactive mentors, mentors
// at or over capacity, and mentors marked Unavailable never rank.
func (s *defaultService) Eligible(mentor *domain.Mentor) bool {
	if mentor == nil || !mentor.Active {
		return false
	}

	if mentor.Availability == domain.AvailabilityUnavailable {
		return false
	}

	return mentor.HasCapacity()
}

// Rank implements the Service interface. Ties keep the mentors' original
// iteration order (stable sort); no further tie-break is defined.
func (s *defaultService) Rank(
	request *domain.MentorshipRequest,
	mentors []*domain.Mentor,
	semantic SemanticScores,
) ([]domain.MatchEntry, error) {
	if request == nil {
		return nil, ErrNilRequest
	}

	entries := make([]domain.MatchEntry, 0, len(mentors))
	for _, mentor := range mentors {
		if !s.Eligible(mentor) {
			continue
		}

		var semanticScore *int
		if score, ok := semantic[mentor.ID]; ok {
			semanticScore = &score
		}

		sub, composite := s.ScoreMentor(request, mentor, semanticScore)
		if composite < s.params.MinScore {
			continue
		}

		entries = append(entries, domain.MatchEntry{
			MentorID:  mentor.ID,
			Score:     composite,
			SubScores: sub,
			Status:    domain.MatchStatusSuggested,
			Mentor:    mentor.Summary(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > s.params.MaxResults {
		entries = entries[:s.params.MaxResults]
	}

	return entries, nil
}
