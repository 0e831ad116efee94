package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

// maxRecommendations caps how many candidates a recommendation run
// returns.
const maxRecommendations = 5

// fullBodyType is the fallback workout type; it targets every muscle,
// so nothing gets filtered out by type fit.
const fullBodyType = "FBW"

// workoutTypeMuscles maps a workout type, inferred from the first word
// of the workout name, to the primary muscles that type targets.
var workoutTypeMuscles = map[string][]string{
	"Push":  {"Chest", "Shoulders", "Triceps"},
	"Pull":  {"Lats", "Upper Back", "Biceps"},
	"Legs":  {"Quadriceps", "Hamstrings", "Calves", "Glutes"},
	"Upper": {"Chest", "Shoulders", "Upper Back", "Lats", "Biceps", "Triceps"},
	"Lower": {"Quadriceps", "Hamstrings", "Calves", "Glutes"},
	fullBodyType: {
		"Chest", "Shoulders", "Upper Back", "Lats",
		"Biceps", "Triceps", "Quadriceps", "Hamstrings",
		"Calves", "Glutes",
	},
}

// Scoring weights. Workout-type fit and in-session muscle balance
// dominate; the history signals nudge the ordering within a type.
const (
	weightRecency     = 12
	weightFrequency   = 8
	weightNeglect     = 8
	weightWorkoutType = 32
	weightPreference  = 8
	weightBalance     = 32
)

// recencyCap is where the time-since-last-worked signals saturate.
const recencyCap = 7 * 24 * time.Hour

// RecommendationService scores the exercise catalog against workout
// history and preference signals and returns a ranked,
// muscle-diversified shortlist of what to do next.
type RecommendationService interface {
	// Recommend returns at most maxRecommendations candidates for the
	// session, excluding the already performed names and keeping at
	// most one exercise per primary muscle. Store failures degrade to
	// an empty result. Deterministic for fixed inputs.
	Recommend(ctx context.Context, workoutName string, performed map[string]struct{}) []domain.Exercise
	// RecommendAsync runs Recommend off the calling goroutine and
	// delivers the result on the returned channel. The channel is
	// buffered: a caller that goes away simply never receives, and
	// nothing blocks.
	RecommendAsync(ctx context.Context, workoutName string, performed map[string]struct{}) <-chan []domain.Exercise
}

type recommendationService struct {
	exerciseRepo repository.ExerciseRepository
	prefRepo     repository.PreferenceRepository
	stats        StatsService
	now          func() time.Time
}

// NewRecommendationService creates the recommendation engine. A nil
// now falls back to time.Now.
func NewRecommendationService(
	exerciseRepo repository.ExerciseRepository,
	prefRepo repository.PreferenceRepository,
	stats StatsService,
	now func() time.Time,
) RecommendationService {
	if now == nil {
		now = time.Now
	}
	return &recommendationService{
		exerciseRepo: exerciseRepo,
		prefRepo:     prefRepo,
		stats:        stats,
		now:          now,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, workoutName string, performed map[string]struct{}) []domain.Exercise {
	workoutType := workoutTypeFromName(workoutName)

	catalog, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		log.Warnf("recommendation: failed to load exercise catalog: %s", err)
		return nil
	}

	// Split the catalog into what was already done this session (used
	// for the muscle balance counts) and the actual candidates.
	musclesWorked := make(map[string]int)
	candidates := make([]domain.Exercise, 0, len(catalog))
	for _, exercise := range catalog {
		if _, done := performed[exercise.Name]; done {
			musclesWorked[exercise.PrimaryMuscle]++
		} else {
			candidates = append(candidates, exercise)
		}
	}

	lastWorked := s.stats.MuscleLastWorked(ctx)
	frequency := s.stats.ExerciseFrequency(ctx)

	selectionCounts, err := s.prefRepo.GetAll(ctx)
	if err != nil {
		log.Warnf("recommendation: failed to load preferences: %s", err)
		selectionCounts = map[string]int{}
	}

	now := s.now()
	scores := make(map[string]float64, len(candidates))
	for _, exercise := range candidates {
		scores[exercise.Name] = s.score(exercise, lastWorked, frequency, selectionCounts, musclesWorked, workoutType, now)
	}
	// Stable sort keeps catalog order for ties, so repeated runs over
	// the same inputs rank identically.
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].Name] > scores[candidates[j].Name]
	})

	return diversifyByMuscle(candidates, maxRecommendations)
}

func (s *recommendationService) RecommendAsync(ctx context.Context, workoutName string, performed map[string]struct{}) <-chan []domain.Exercise {
	out := make(chan []domain.Exercise, 1)
	go func() {
		defer close(out)
		out <- s.Recommend(ctx, workoutName, performed)
	}()
	return out
}

// workoutTypeFromName takes the first whitespace-delimited token of the
// workout name as the type; anything unrecognized means full body.
func workoutTypeFromName(workoutName string) string {
	fields := strings.Fields(workoutName)
	if len(fields) == 0 {
		return fullBodyType
	}
	if _, ok := workoutTypeMuscles[fields[0]]; !ok {
		return fullBodyType
	}
	return fields[0]
}

// diversifyByMuscle walks the ranked candidates keeping at most one
// exercise per distinct primary muscle, up to limit.
func diversifyByMuscle(ranked []domain.Exercise, limit int) []domain.Exercise {
	included := make(map[string]struct{})
	var out []domain.Exercise
	for _, exercise := range ranked {
		if _, seen := included[exercise.PrimaryMuscle]; seen {
			continue
		}
		included[exercise.PrimaryMuscle] = struct{}{}
		out = append(out, exercise)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (s *recommendationService) score(
	exercise domain.Exercise,
	lastWorked map[string]time.Time,
	frequency map[string]int,
	selectionCounts map[string]int,
	musclesWorked map[string]int,
	workoutType string,
	now time.Time,
) float64 {
	return recencyScore(exercise, lastWorked, now)*weightRecency +
		frequencyScore(exercise, frequency)*weightFrequency +
		neglectScore(exercise, lastWorked, now)*weightNeglect +
		workoutTypeScore(exercise, workoutType)*weightWorkoutType +
		preferenceScore(exercise, selectionCounts)*weightPreference +
		muscleBalanceScore(exercise, musclesWorked)*weightBalance
}

// recencyScore rewards exercises whose muscles have rested, weighting
// the primary muscle over the secondary one. A muscle with no history
// scores as fully rested.
func recencyScore(exercise domain.Exercise, lastWorked map[string]time.Time, now time.Time) float64 {
	primary := normalizeTimeDelta(now.Sub(lastWorked[exercise.PrimaryMuscle]))
	secondary := normalizeTimeDelta(now.Sub(lastWorked[exercise.SecondaryMuscle]))
	return primary*0.7 + secondary*0.3
}

// neglectScore is the primary-muscle staleness on its own. It overlaps
// with recencyScore on purpose: primary-muscle rest is counted twice.
func neglectScore(exercise domain.Exercise, lastWorked map[string]time.Time, now time.Time) float64 {
	return normalizeTimeDelta(now.Sub(lastWorked[exercise.PrimaryMuscle]))
}

// normalizeTimeDelta maps a time-since-worked onto [0,1], saturating
// at seven days.
func normalizeTimeDelta(delta time.Duration) float64 {
	return math.Min(1.0, float64(delta)/float64(recencyCap))
}

func frequencyScore(exercise domain.Exercise, frequency map[string]int) float64 {
	maxFrequency := 1
	for _, count := range frequency {
		if count > maxFrequency {
			maxFrequency = count
		}
	}
	return float64(frequency[exercise.Name]) / float64(maxFrequency)
}

func workoutTypeScore(exercise domain.Exercise, workoutType string) float64 {
	for _, muscle := range workoutTypeMuscles[workoutType] {
		if muscle == exercise.PrimaryMuscle {
			return 1.0
		}
	}
	return 0.0
}

func preferenceScore(exercise domain.Exercise, selectionCounts map[string]int) float64 {
	maxCount := 1
	for _, count := range selectionCounts {
		if count > maxCount {
			maxCount = count
		}
	}
	return float64(selectionCounts[exercise.Name]) / float64(maxCount)
}

// muscleBalanceScore favors muscles worked least within the current
// session; with nothing worked yet every candidate scores 1.0.
func muscleBalanceScore(exercise domain.Exercise, musclesWorked map[string]int) float64 {
	maxCount := 0
	for _, count := range musclesWorked {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		return 1.0
	}
	return float64(maxCount-musclesWorked[exercise.PrimaryMuscle]) / float64(maxCount)
}
