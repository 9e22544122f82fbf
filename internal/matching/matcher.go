package matching

import (
	"slices"
	"sort"
	"strings"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

// Weighting between skill coverage and pay-rate fit. Skill coverage
// dominates: a jobseeker who cannot do the work is not made attractive by a
// low desired rate.
const (
	skillWeight = 0.7
	rateWeight  = 0.3
)

type Candidate struct {
	Jobseeker *domain.Jobseeker `json:"jobseeker"`
	Score     float64           `json:"score"`
}

// skillScore is the fraction of the position's required skills the jobseeker
// covers. Comparison is case-insensitive. A position without required skills
// scores every candidate full.
func skillScore(position *domain.Position, jobseeker *domain.Jobseeker) float64 {
	if len(position.Skills) == 0 {
		return 1
	}

	covered := 0
	for _, required := range position.Skills {
		for _, skill := range jobseeker.Skills {
			if strings.EqualFold(required, skill) {
				covered++
				break
			}
		}
	}

	return float64(covered) / float64(len(position.Skills))
}

// rateScore is 1 when the jobseeker's desired pay rate fits within the
// position's pay rate, and falls off linearly to 0 as the desired rate
// approaches double the position's rate.
func rateScore(position *domain.Position, jobseeker *domain.Jobseeker) float64 {
	if jobseeker.DesiredPayRate <= position.PayRate || position.PayRate <= 0 {
		return 1
	}

	overshoot := (jobseeker.DesiredPayRate - position.PayRate) / position.PayRate
	if overshoot >= 1 {
		return 0
	}
	return 1 - overshoot
}

// Rank scores every eligible jobseeker against the position and returns the
// top candidates in descending score order, ties broken by name. Inactive
// jobseekers and jobseekers already assigned to the position are skipped.
func Rank(position *domain.Position, jobseekers []*domain.Jobseeker, limit int) []Candidate {
	candidates := make([]Candidate, 0, len(jobseekers))

	for _, jobseeker := range jobseekers {
		if !jobseeker.IsActive {
			continue
		}
		if slices.Contains(position.AssignedJobseekerIDs, jobseeker.ID) {
			continue
		}

		score := skillWeight*skillScore(position, jobseeker) + rateWeight*rateScore(position, jobseeker)
		candidates = append(candidates, Candidate{
			Jobseeker: jobseeker,
			Score:     score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Jobseeker.FullName < candidates[j].Jobseeker.FullName
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}
