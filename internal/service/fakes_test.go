package service

// In-memory repository fakes shared by the service tests.

import (
	"context"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
)

type fakeExerciseRepo struct {
	exercises []domain.Exercise
	err       error
}

func (f *fakeExerciseRepo) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.exercises, nil
}

func (f *fakeExerciseRepo) GetByPrimaryMuscle(ctx context.Context, muscle string) ([]domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Exercise
	for _, e := range f.exercises {
		if e.PrimaryMuscle == muscle {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByNames(ctx context.Context, names []string) ([]domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	var out []domain.Exercise
	for _, e := range f.exercises {
		if _, ok := wanted[e.Name]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	plans []domain.WorkoutPlan
	err   error
}

func (f *fakePlanRepo) GetAll(ctx context.Context) ([]domain.WorkoutPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans, nil
}

func (f *fakePlanRepo) GetByName(ctx context.Context, name string) (*domain.WorkoutPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.plans {
		if p.Name == name {
			plan := p
			return &plan, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeWorkoutRepo struct {
	workouts []domain.WorkoutRecord
	saveErr  error
	err      error
}

func (f *fakeWorkoutRepo) GetAll(ctx context.Context) ([]domain.WorkoutRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.workouts, nil
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, w := range f.workouts {
		if w.ID == id {
			record := w
			return &record, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkoutRepo) GetSince(ctx context.Context, start time.Time) ([]domain.WorkoutRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.WorkoutRecord
	for _, w := range f.workouts {
		if !w.StartTime.Before(start) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) Save(ctx context.Context, record *domain.WorkoutRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.workouts = append(f.workouts, *record)
	return nil
}

type fakePreferenceRepo struct {
	counts map[string]int
	err    error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{counts: make(map[string]int)}
}

func (f *fakePreferenceRepo) GetAll(ctx context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]int, len(f.counts))
	for name, count := range f.counts {
		out[name] = count
	}
	return out, nil
}

func (f *fakePreferenceRepo) IncrementSelection(ctx context.Context, exerciseName string) error {
	if f.err != nil {
		return f.err
	}
	f.counts[exerciseName]++
	return nil
}

type fakeSettingsRepo struct {
	inProgress   bool
	restDuration time.Duration
	restSet      bool
	rotations    map[string]int
	lastWorkout  string
	snapshot     *domain.SessionSnapshot
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rotations: make(map[string]int)}
}

func (f *fakeSettingsRepo) InProgress(ctx context.Context) (bool, error) {
	return f.inProgress, nil
}

func (f *fakeSettingsRepo) SetInProgress(ctx context.Context, inProgress bool) error {
	f.inProgress = inProgress
	return nil
}

func (f *fakeSettingsRepo) RestDuration(ctx context.Context) (time.Duration, error) {
	if !f.restSet {
		return 0, repository.ErrNotFound
	}
	return f.restDuration, nil
}

func (f *fakeSettingsRepo) SetRestDuration(ctx context.Context, d time.Duration) error {
	f.restDuration = d
	f.restSet = true
	return nil
}

func (f *fakeSettingsRepo) PlanRotation(ctx context.Context, planName string) (int, error) {
	return f.rotations[planName], nil
}

func (f *fakeSettingsRepo) SetPlanRotation(ctx context.Context, planName string, index int) error {
	f.rotations[planName] = index
	return nil
}

func (f *fakeSettingsRepo) LastWorkout(ctx context.Context) (string, error) {
	return f.lastWorkout, nil
}

func (f *fakeSettingsRepo) SetLastWorkout(ctx context.Context, name string) error {
	f.lastWorkout = name
	return nil
}

func (f *fakeSettingsRepo) ActiveSnapshot(ctx context.Context) (*domain.SessionSnapshot, error) {
	if f.snapshot == nil {
		return nil, repository.ErrNotFound
	}
	snapshot := *f.snapshot
	return &snapshot, nil
}

func (f *fakeSettingsRepo) SaveActiveSnapshot(ctx context.Context, snapshot domain.SessionSnapshot) error {
	f.snapshot = &snapshot
	return nil
}

func (f *fakeSettingsRepo) ClearActiveSnapshot(ctx context.Context) error {
	f.snapshot = nil
	return nil
}
