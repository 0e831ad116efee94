package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironlog/workout-app/internal/domain"
)

func planFixture() (PlanService, *fakeSettingsRepo) {
	planRepo := &fakePlanRepo{
		plans: []domain.WorkoutPlan{
			{
				Name: "PPL",
				Phases: []domain.WorkoutPhase{
					{Name: "Push Day", Exercises: []string{"Bench Press", "Overhead Press"}},
					{Name: "Pull Day", Exercises: []string{"Barbell Row", "Lat Pulldown"}},
					{Name: "Legs Day", Exercises: []string{"Squat", "Romanian Deadlift"}},
				},
			},
			{Name: "Empty Plan"},
		},
	}
	settings := newFakeSettingsRepo()
	return NewPlanService(planRepo, settings), settings
}

func TestPlansIncludeRotation(t *testing.T) {
	svc, settings := planFixture()
	settings.rotations["PPL"] = 2

	plans := svc.Plans(context.Background())

	require.Len(t, plans, 2)
	assert.Equal(t, "PPL", plans[0].Name)
	assert.Equal(t, 2, plans[0].CurrentPhase)
	assert.Equal(t, 0, plans[1].CurrentPhase)
}

func TestPlanByName(t *testing.T) {
	svc, _ := planFixture()

	plan, err := svc.Plan(context.Background(), "PPL")
	require.NoError(t, err)
	assert.Equal(t, "PPL", plan.Name)
	require.Len(t, plan.Phases, 3)
	assert.Equal(t, "Push Day", plan.Phases[0].Name)
}

func TestPlanByNameMissing(t *testing.T) {
	svc, _ := planFixture()

	_, err := svc.Plan(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestAdvanceRotationWrapsAround(t *testing.T) {
	svc, settings := planFixture()

	idx, err := svc.AdvanceRotation(context.Background(), "PPL")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = svc.AdvanceRotation(context.Background(), "PPL")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = svc.AdvanceRotation(context.Background(), "PPL")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	assert.Equal(t, 0, settings.rotations["PPL"])
}

func TestAdvanceRotationEmptyPlan(t *testing.T) {
	svc, _ := planFixture()

	idx, err := svc.AdvanceRotation(context.Background(), "Empty Plan")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestAdvanceRotationMissingPlan(t *testing.T) {
	svc, _ := planFixture()

	_, err := svc.AdvanceRotation(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRotationOutOfRangeClampsToZero(t *testing.T) {
	svc, settings := planFixture()
	// A persisted index from before the plan shrank.
	settings.rotations["PPL"] = 7

	plan, err := svc.Plan(context.Background(), "PPL")
	require.NoError(t, err)
	assert.Equal(t, 0, plan.CurrentPhase)
}

func TestLastWorkout(t *testing.T) {
	svc, settings := planFixture()

	assert.Equal(t, "", svc.LastWorkout(context.Background()))

	settings.lastWorkout = "Push Day"
	assert.Equal(t, "Push Day", svc.LastWorkout(context.Background()))
}
