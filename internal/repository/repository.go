package repository

import (
	"context"
	"time"

	"ironlog/workout-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository reads the exercise catalog. The catalog is
// read-only for this application.
type ExerciseRepository interface {
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	GetByPrimaryMuscle(ctx context.Context, muscle string) ([]domain.Exercise, error)
	// GetByNames is a batch lookup by exercise name (membership filter).
	GetByNames(ctx context.Context, names []string) ([]domain.Exercise, error)
}

// PlanRepository reads workout plan templates.
type PlanRepository interface {
	GetAll(ctx context.Context) ([]domain.WorkoutPlan, error)
	GetByName(ctx context.Context, name string) (*domain.WorkoutPlan, error)
}

// WorkoutRepository stores completed workout sessions.
type WorkoutRepository interface {
	// GetAll returns the full history, sorted ascending by start time.
	GetAll(ctx context.Context) ([]domain.WorkoutRecord, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error)
	// GetSince returns records whose start time is >= start.
	GetSince(ctx context.Context, start time.Time) ([]domain.WorkoutRecord, error)
	Save(ctx context.Context, record *domain.WorkoutRecord) error
}

// PreferenceRepository stores per-exercise selection counters.
type PreferenceRepository interface {
	// GetAll returns exercise name -> selection count for every record.
	GetAll(ctx context.Context) (map[string]int, error)
	// IncrementSelection bumps the counter for the exercise by one and
	// stamps the selection time, creating the record with count 1 when
	// absent. The increment-or-create is a single atomic operation.
	IncrementSelection(ctx context.Context, exerciseName string) error
}

// SettingsRepository is the session-recovery store: a narrow key/value
// contract for the small pieces of state that must survive a restart.
// All writes are last-writer-wins.
type SettingsRepository interface {
	InProgress(ctx context.Context) (bool, error)
	SetInProgress(ctx context.Context, inProgress bool) error

	// RestDuration returns ErrNotFound when the user never set one;
	// callers fall back to their configured default.
	RestDuration(ctx context.Context) (time.Duration, error)
	SetRestDuration(ctx context.Context, d time.Duration) error

	PlanRotation(ctx context.Context, planName string) (int, error)
	SetPlanRotation(ctx context.Context, planName string, index int) error

	LastWorkout(ctx context.Context) (string, error)
	SetLastWorkout(ctx context.Context, name string) error

	ActiveSnapshot(ctx context.Context) (*domain.SessionSnapshot, error)
	SaveActiveSnapshot(ctx context.Context, snapshot domain.SessionSnapshot) error
	ClearActiveSnapshot(ctx context.Context) error
}
