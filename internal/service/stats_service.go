package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

const isoDateLayout = "2006-01-02"

// Metric selects which per-day value the aggregator sums.
type Metric string

const (
	MetricDuration Metric = "duration" // seconds per session
	MetricVolume   Metric = "volume"
	MetricSets     Metric = "sets"
)

// ParseMetric maps a query string onto a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricDuration, MetricVolume, MetricSets:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Period selects the chart range and its bucket granularity.
type Period string

const (
	PeriodWeek    Period = "week"    // last 7 days, daily buckets
	PeriodMonth   Period = "month"   // last 30 days, daily buckets
	PeriodQuarter Period = "quarter" // last 3 months, weekly buckets
	PeriodYear    Period = "year"    // last 12 months, monthly buckets
)

// ParsePeriod maps a query string onto a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// StatsService derives summaries from the raw workout history: per-day
// metric totals for the charts, plus the frequency and recency signals
// the recommendation engine feeds on.
//
// Store failures surface as empty results, never as errors: the UI
// renders "no data", it has no failure state at this layer.
type StatsService interface {
	// Daily returns one data point per calendar day with recorded
	// workouts since the given lower bound, labeled with the ISO date
	// and sorted ascending by label.
	Daily(ctx context.Context, since time.Time, metric Metric) []domain.DataPoint
	// Chart returns the daily totals of the period mapped onto its
	// fixed contiguous bucket sequence, gaps filled with zero.
	Chart(ctx context.Context, metric Metric, period Period) []domain.DataPoint
	// ExerciseFrequency counts, per exercise name, the sessions of the
	// full history it appears in.
	ExerciseFrequency(ctx context.Context) map[string]int
	// MuscleLastWorked returns, per primary muscle, the latest end time
	// of a session that included an exercise working that muscle.
	MuscleLastWorked(ctx context.Context) map[string]time.Time
}

type statsService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewStatsService creates the statistics aggregator. A nil now falls
// back to time.Now.
func NewStatsService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	now func() time.Time,
) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		now:          now,
	}
}

func (s *statsService) Daily(ctx context.Context, since time.Time, metric Metric) []domain.DataPoint {
	records, err := s.workoutRepo.GetSince(ctx, since)
	if err != nil {
		log.Warnf("stats: failed to load workouts since %s: %s", since.Format(isoDateLayout), err)
		return nil
	}

	totals := make(map[string]float64)
	for _, record := range records {
		label := record.StartTime.Local().Format(isoDateLayout)
		totals[label] += metricValue(record, metric)
	}

	points := make([]domain.DataPoint, 0, len(totals))
	for label, value := range totals {
		points = append(points, domain.DataPoint{Label: label, Value: value})
	}
	// ISO date labels sort chronologically as strings.
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

func (s *statsService) Chart(ctx context.Context, metric Metric, period Period) []domain.DataPoint {
	now := s.now()
	daily := s.Daily(ctx, periodStart(period, now), metric)
	return Bucketize(daily, period, now)
}

// Bucketize maps sparse per-day points onto the period's fixed label
// sequence, summing points per bucket and filling gaps with zero.
// Buckets are half-open [start, next) at calendar-day granularity.
// Points must be sorted ascending by ISO date label, as Daily returns
// them.
func Bucketize(points []domain.DataPoint, period Period, now time.Time) []domain.DataPoint {
	start := periodStart(period, now)
	today := startOfDay(now)
	layout := bucketLabelLayout(period)

	var out []domain.DataPoint
	i := 0
	for bucket := start; !bucket.After(today); bucket = nextBucket(bucket, period) {
		next := nextBucket(bucket, period)
		var total float64
		for i < len(points) {
			day, err := time.ParseInLocation(isoDateLayout, points[i].Label, now.Location())
			if err != nil || day.Before(bucket) {
				i++
				continue
			}
			if !day.Before(next) {
				break
			}
			total += points[i].Value
			i++
		}
		out = append(out, domain.DataPoint{Label: bucket.Format(layout), Value: total})
	}
	return out
}

func (s *statsService) ExerciseFrequency(ctx context.Context) map[string]int {
	records, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		log.Warnf("stats: failed to load workout history: %s", err)
		return map[string]int{}
	}

	frequency := make(map[string]int)
	for _, record := range records {
		for _, exercise := range record.Exercises {
			frequency[exercise.Name]++
		}
	}
	return frequency
}

func (s *statsService) MuscleLastWorked(ctx context.Context) map[string]time.Time {
	records, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		log.Warnf("stats: failed to load workout history: %s", err)
		return map[string]time.Time{}
	}

	nameSet := make(map[string]struct{})
	for _, record := range records {
		for _, exercise := range record.Exercises {
			nameSet[exercise.Name] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}

	exercises, err := s.exerciseRepo.GetByNames(ctx, names)
	if err != nil {
		log.Warnf("stats: failed to resolve exercise muscles: %s", err)
		return map[string]time.Time{}
	}
	nameToMuscle := make(map[string]string, len(exercises))
	for _, exercise := range exercises {
		nameToMuscle[exercise.Name] = strings.TrimSpace(exercise.PrimaryMuscle)
	}

	lastWorked := make(map[string]time.Time)
	for _, record := range records {
		for _, exercise := range record.Exercises {
			muscle := nameToMuscle[exercise.Name]
			if muscle == "" {
				continue
			}
			if record.EndTime.After(lastWorked[muscle]) {
				lastWorked[muscle] = record.EndTime
			}
		}
	}
	return lastWorked
}

func metricValue(record domain.WorkoutRecord, metric Metric) float64 {
	switch metric {
	case MetricDuration:
		return record.Duration().Seconds()
	case MetricVolume:
		return record.Volume
	case MetricSets:
		return float64(record.Sets)
	}
	return 0
}

func periodStart(period Period, now time.Time) time.Time {
	day := startOfDay(now)
	switch period {
	case PeriodWeek:
		return day.AddDate(0, 0, -6)
	case PeriodMonth:
		return day.AddDate(0, 0, -29)
	case PeriodQuarter:
		return day.AddDate(0, -3, 0).AddDate(0, 0, 1)
	case PeriodYear:
		firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return firstOfMonth.AddDate(0, -11, 0)
	}
	return day.AddDate(0, 0, -6)
}

func nextBucket(bucket time.Time, period Period) time.Time {
	switch period {
	case PeriodQuarter:
		return bucket.AddDate(0, 0, 7)
	case PeriodYear:
		return bucket.AddDate(0, 1, 0)
	}
	return bucket.AddDate(0, 0, 1)
}

func bucketLabelLayout(period Period) string {
	if period == PeriodYear {
		return "Jan 2006"
	}
	return "Jan 02"
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
