package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironlog/workout-app/internal/domain"
)

func recommendationFixture(now time.Time, workouts []domain.WorkoutRecord, prefCounts map[string]int) RecommendationService {
	exerciseRepo := &fakeExerciseRepo{
		exercises: []domain.Exercise{
			{ID: 1, Name: "Bench Press", PrimaryMuscle: "Chest", SecondaryMuscle: "Triceps"},
			{ID: 2, Name: "Incline Dumbbell Press", PrimaryMuscle: "Chest", SecondaryMuscle: "Shoulders"},
			{ID: 3, Name: "Overhead Press", PrimaryMuscle: "Shoulders", SecondaryMuscle: "Triceps"},
			{ID: 4, Name: "Triceps Pushdown", PrimaryMuscle: "Triceps"},
			{ID: 5, Name: "Barbell Row", PrimaryMuscle: "Upper Back", SecondaryMuscle: "Biceps"},
			{ID: 6, Name: "Lat Pulldown", PrimaryMuscle: "Lats", SecondaryMuscle: "Biceps"},
			{ID: 7, Name: "Barbell Curl", PrimaryMuscle: "Biceps"},
			{ID: 8, Name: "Squat", PrimaryMuscle: "Quadriceps", SecondaryMuscle: "Glutes"},
			{ID: 9, Name: "Romanian Deadlift", PrimaryMuscle: "Hamstrings", SecondaryMuscle: "Glutes"},
			{ID: 10, Name: "Calf Raise", PrimaryMuscle: "Calves"},
		},
	}
	workoutRepo := &fakeWorkoutRepo{workouts: workouts}
	prefRepo := newFakePreferenceRepo()
	for name, count := range prefCounts {
		prefRepo.counts[name] = count
	}
	clock := func() time.Time { return now }
	stats := NewStatsService(workoutRepo, exerciseRepo, clock)
	return NewRecommendationService(exerciseRepo, prefRepo, stats, clock)
}

func TestRecommendExcludesPerformedExercises(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	performed := map[string]struct{}{"Bench Press": {}}
	recommendations := svc.Recommend(context.Background(), "Push Day", performed)

	for _, e := range recommendations {
		assert.NotEqual(t, "Bench Press", e.Name)
	}
}

func TestRecommendCapsAtFive(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	recommendations := svc.Recommend(context.Background(), "Monday Session", nil)

	assert.LessOrEqual(t, len(recommendations), 5)
	assert.NotEmpty(t, recommendations)
}

func TestRecommendDistinctPrimaryMuscles(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	recommendations := svc.Recommend(context.Background(), "Push Day", nil)

	seen := make(map[string]struct{})
	for _, e := range recommendations {
		_, dup := seen[e.PrimaryMuscle]
		assert.False(t, dup, "duplicate primary muscle %q", e.PrimaryMuscle)
		seen[e.PrimaryMuscle] = struct{}{}
	}
}

func TestRecommendPrefersWorkoutTypeMuscles(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	recommendations := svc.Recommend(context.Background(), "Push Day", nil)

	require.NotEmpty(t, recommendations)
	pushMuscles := map[string]struct{}{"Chest": {}, "Shoulders": {}, "Triceps": {}}
	// With no history every signal ties except type fit, so push
	// muscles fill the top of the list.
	for i := 0; i < 3 && i < len(recommendations); i++ {
		_, ok := pushMuscles[recommendations[i].PrimaryMuscle]
		assert.True(t, ok, "expected a push muscle at rank %d, got %q", i, recommendations[i].PrimaryMuscle)
	}
}

func TestRecommendUnknownWorkoutTypeFallsBackToFullBody(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	recommendations := svc.Recommend(context.Background(), "Random Tuesday", nil)

	// Full body targets everything, so the shortlist is still full.
	assert.Len(t, recommendations, 5)
}

func TestRecommendIsDeterministic(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	workouts := []domain.WorkoutRecord{
		{
			StartTime: now.AddDate(0, 0, -3),
			EndTime:   now.AddDate(0, 0, -3).Add(time.Hour),
			Exercises: []domain.ExerciseRecord{{Name: "Bench Press"}, {Name: "Squat"}},
		},
	}
	svc := recommendationFixture(now, workouts, map[string]int{"Overhead Press": 3})

	first := svc.Recommend(context.Background(), "Push Day", nil)
	for i := 0; i < 5; i++ {
		again := svc.Recommend(context.Background(), "Push Day", nil)
		assert.Equal(t, first, again)
	}
}

func TestRecommendFavorsRestedMuscles(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	// Shoulders worked an hour ago, chest fully rested.
	workouts := []domain.WorkoutRecord{
		{
			StartTime: now.Add(-2 * time.Hour),
			EndTime:   now.Add(-time.Hour),
			Exercises: []domain.ExerciseRecord{{Name: "Overhead Press"}},
		},
	}
	svc := recommendationFixture(now, workouts, nil)

	recommendations := svc.Recommend(context.Background(), "Push Day", nil)

	require.NotEmpty(t, recommendations)
	assert.Equal(t, "Chest", recommendations[0].PrimaryMuscle)
}

func TestRecommendStoreFailureDegradesToEmpty(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	exerciseRepo := &fakeExerciseRepo{err: assert.AnError}
	workoutRepo := &fakeWorkoutRepo{}
	clock := func() time.Time { return now }
	stats := NewStatsService(workoutRepo, exerciseRepo, clock)
	svc := NewRecommendationService(exerciseRepo, newFakePreferenceRepo(), stats, clock)

	assert.Empty(t, svc.Recommend(context.Background(), "Push Day", nil))
}

func TestRecommendAsyncDeliversResult(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := recommendationFixture(now, nil, nil)

	results := svc.RecommendAsync(context.Background(), "Push Day", nil)

	select {
	case recommendations := <-results:
		assert.NotEmpty(t, recommendations)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for recommendations")
	}
}

func TestWorkoutTypeFromName(t *testing.T) {
	assert.Equal(t, "Push", workoutTypeFromName("Push Day"))
	assert.Equal(t, "Legs", workoutTypeFromName("Legs"))
	assert.Equal(t, "FBW", workoutTypeFromName("Random Tuesday"))
	assert.Equal(t, "FBW", workoutTypeFromName(""))
	assert.Equal(t, "FBW", workoutTypeFromName("  "))
}

func TestMuscleBalanceFavorsUnworkedMuscles(t *testing.T) {
	worked := map[string]int{"Chest": 2, "Shoulders": 1}

	chest := muscleBalanceScore(domain.Exercise{PrimaryMuscle: "Chest"}, worked)
	shoulders := muscleBalanceScore(domain.Exercise{PrimaryMuscle: "Shoulders"}, worked)
	triceps := muscleBalanceScore(domain.Exercise{PrimaryMuscle: "Triceps"}, worked)

	assert.Equal(t, 0.0, chest)
	assert.Equal(t, 0.5, shoulders)
	assert.Equal(t, 1.0, triceps)
}

func TestNormalizeTimeDeltaSaturates(t *testing.T) {
	assert.Equal(t, 0.0, normalizeTimeDelta(0))
	assert.InDelta(t, 0.5, normalizeTimeDelta(recencyCap/2), 1e-9)
	assert.Equal(t, 1.0, normalizeTimeDelta(recencyCap))
	assert.Equal(t, 1.0, normalizeTimeDelta(30*24*time.Hour))
}
