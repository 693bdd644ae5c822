package matching

import (
	"math"
	"strings"

	"github.com/seedstage/mentorship-api/internal/domain"
)

// Sub-score bounds. Every factor scores an integer in [0,100]; requests
// that leave a factor unspecified receive the neutral midpoint so the
// factor neither rewards nor punishes any candidate.
const (
	neutralScore = 50
	maxScore     = 100
)

// scoreSkills rates how well the mentor's expertise covers the requested
// skills. Each requested skill is worth 100 points for an exact match
// against the normalized mentor set, 50 points for the first substring
// hit against any mentor skill, and 0 otherwise; the total is averaged
// over the requested skills.
//
// A request without skills scores the neutral 50; a mentor without any
// expertise scores 0.
func scoreSkills(requested, mentorSkills []string) int {
	if len(requested) == 0 {
		return neutralScore
	}
	if len(mentorSkills) == 0 {
		return 0
	}

	normalized := make([]string, 0, len(mentorSkills))
	exact := make(map[string]struct{}, len(mentorSkills))
	for _, s := range mentorSkills {
		n := normalizeTerm(s)
		if n == "" {
			continue
		}
		normalized = append(normalized, n)
		exact[n] = struct{}{}
	}

	total := 0
	for _, s := range requested {
		want := normalizeTerm(s)
		if want == "" {
			continue
		}

		if _, ok := exact[want]; ok {
			total += maxScore
			continue
		}

		// Substring credit, first hit only.
		for _, have := range normalized {
			if strings.Contains(have, want) || strings.Contains(want, have) {
				total += neutralScore
				break
			}
		}
	}

	return int(math.Round(float64(total) / float64(len(requested))))
}

// scoreDomains rates the overlap between requested and mentor domains:
// overlapCount / requestedCount * 100. Neutral 50 when the request names
// no domains, 0 when the mentor has none.
func scoreDomains(requested, mentorDomains []string) int {
	if len(requested) == 0 {
		return neutralScore
	}
	if len(mentorDomains) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(mentorDomains))
	for _, d := range mentorDomains {
		have[normalizeTerm(d)] = struct{}{}
	}

	overlap := 0
	for _, d := range requested {
		if _, ok := have[normalizeTerm(d)]; ok {
			overlap++
		}
	}

	return int(math.Round(float64(overlap) / float64(len(requested)) * 100))
}

// scoreAvailability maps the mentor's availability onto a score. Unknown
// values get a permissive 75 rather than disqualifying the mentor.
func scoreAvailability(availability domain.Availability) int {
	switch availability {
	case domain.AvailabilityAvailable:
		return 100
	case domain.AvailabilityBusy:
		return 50
	case domain.AvailabilityUnavailable:
		return 0
	default:
		return 75
	}
}

// scoreRating blends the mentor's rolling rating with their experience:
// (rating/5)*80 plus one point per completed session up to 20, capped
// at 100.
func scoreRating(rating float64, sessionsCompleted int) int {
	experience := sessionsCompleted
	if experience > 20 {
		experience = 20
	}

	score := int(math.Round(rating/5*80)) + experience
	if score > maxScore {
		return maxScore
	}
	return score
}

// scoreCapacity rates the mentor's remaining mentee headroom:
// (maxMentees - current) / maxMentees * 100. Mentors without capacity at
// all, or at or over capacity, score 0.
func scoreCapacity(maxMentees, currentMentees int) int {
	if maxMentees <= 0 || currentMentees >= maxMentees {
		return 0
	}

	return int(math.Round(float64(maxMentees-currentMentees) / float64(maxMentees) * 100))
}

// compositeScore folds the sub-scores into the weighted composite,
// rounded to two decimals. When the semantic factor is absent the sum of
// the five present terms is scaled by 1/(1-semanticWeight) so they fill
// 100% of the composite. The scale-up is kept explicit rather than
// renormalizing over present weights: the two only coincide while a
// single factor is optional.
func compositeScore(sub domain.SubScores, w Weights) float64 {
	base := w.Skill*float64(sub.Skill) +
		w.Domain*float64(sub.Domain) +
		w.Availability*float64(sub.Availability) +
		w.Rating*float64(sub.Rating) +
		w.Capacity*float64(sub.Capacity)

	if sub.Semantic != nil {
		return round2(base + w.Semantic*float64(*sub.Semantic))
	}

	return round2(base / (1 - w.Semantic))
}

// normalizeTerm lower-cases and trims a skill or domain for comparison.
func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
