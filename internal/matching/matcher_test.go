package matching

import (
	"testing"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warehousePosition() *domain.Position {
	return &domain.Position{
		ID:      1,
		Title:   "Warehouse Associate",
		Skills:  []string{"forklift", "inventory"},
		PayRate: 20,
	}
}

func TestRankOrdersBySkillCoverage(t *testing.T) {
	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Alice Moore", Skills: []string{"forklift"}, DesiredPayRate: 18, IsActive: true},
		{ID: 2, FullName: "Bob Reyes", Skills: []string{"forklift", "inventory"}, DesiredPayRate: 18, IsActive: true},
		{ID: 3, FullName: "Carol Nguyen", Skills: []string{"cashier"}, DesiredPayRate: 18, IsActive: true},
	}

	ranked := Rank(warehousePosition(), jobseekers, 0)
	require.Len(t, ranked, 3)

	assert.Equal(t, int64(2), ranked[0].Jobseeker.ID)
	assert.Equal(t, int64(1), ranked[1].Jobseeker.ID)
	assert.Equal(t, int64(3), ranked[2].Jobseeker.ID)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestRankSkillMatchIsCaseInsensitive(t *testing.T) {
	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Alice Moore", Skills: []string{"Forklift", "INVENTORY"}, DesiredPayRate: 18, IsActive: true},
	}

	ranked := Rank(warehousePosition(), jobseekers, 0)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestRankPenalizesDesiredRateAbovePosition(t *testing.T) {
	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Alice Moore", Skills: []string{"forklift", "inventory"}, DesiredPayRate: 30, IsActive: true},
		{ID: 2, FullName: "Bob Reyes", Skills: []string{"forklift", "inventory"}, DesiredPayRate: 20, IsActive: true},
	}

	ranked := Rank(warehousePosition(), jobseekers, 0)
	require.Len(t, ranked, 2)

	assert.Equal(t, int64(2), ranked[0].Jobseeker.ID)
	// skill 1.0 * 0.7 + rate 0.5 * 0.3
	assert.InDelta(t, 0.85, ranked[1].Score, 1e-9)
}

func TestRankSkipsInactiveAndAssigned(t *testing.T) {
	position := warehousePosition()
	position.AssignedJobseekerIDs = []int64{2}

	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Alice Moore", Skills: []string{"forklift"}, IsActive: false},
		{ID: 2, FullName: "Bob Reyes", Skills: []string{"forklift", "inventory"}, IsActive: true},
		{ID: 3, FullName: "Carol Nguyen", Skills: []string{"forklift"}, DesiredPayRate: 18, IsActive: true},
	}

	ranked := Rank(position, jobseekers, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, int64(3), ranked[0].Jobseeker.ID)
}

func TestRankTiesBrokenByName(t *testing.T) {
	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Zoe Park", Skills: []string{"forklift", "inventory"}, DesiredPayRate: 18, IsActive: true},
		{ID: 2, FullName: "Adam Cole", Skills: []string{"forklift", "inventory"}, DesiredPayRate: 18, IsActive: true},
	}

	ranked := Rank(warehousePosition(), jobseekers, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Adam Cole", ranked[0].Jobseeker.FullName)
}

func TestRankHonorsLimit(t *testing.T) {
	jobseekers := make([]*domain.Jobseeker, 0, 15)
	for i := int64(1); i <= 15; i++ {
		jobseekers = append(jobseekers, &domain.Jobseeker{
			ID:       i,
			FullName: "Jobseeker",
			Skills:   []string{"forklift"},
			IsActive: true,
		})
	}

	ranked := Rank(warehousePosition(), jobseekers, 10)
	assert.Len(t, ranked, 10)
}

func TestRankNoRequiredSkills(t *testing.T) {
	position := warehousePosition()
	position.Skills = nil

	jobseekers := []*domain.Jobseeker{
		{ID: 1, FullName: "Alice Moore", Skills: []string{"cashier"}, DesiredPayRate: 18, IsActive: true},
	}

	ranked := Rank(position, jobseekers, 0)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}
