package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/session"
	"ironlog/workout-app/internal/timer"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionInProgress = errors.New("a workout session is already in progress")
	ErrNoActiveSession   = errors.New("no active workout session")
)

// SessionStatus is a point-in-time view of the active session for
// polling clients.
type SessionStatus struct {
	Name          string                  `json:"name"`
	Elapsed       time.Duration           `json:"elapsedMs"`
	Volume        float64                 `json:"volume"`
	Sets          int                     `json:"sets"`
	RestRunning   bool                    `json:"restRunning"`
	RestRemaining time.Duration           `json:"restRemainingMs"`
	RestDuration  time.Duration           `json:"restDurationMs"`
	Exercises     []domain.ExerciseRecord `json:"exercises"`
}

// SessionService owns the single active workout session. All mutation
// goes through it and is serialized behind one lock: handlers on
// different goroutines never touch the session state directly.
type SessionService interface {
	// Start begins a new session, optionally seeded with a plan
	// phase's exercise list. Rejected while another session is live.
	Start(ctx context.Context, workoutName string, exercises []string) (*SessionStatus, error)
	Status(ctx context.Context) (*SessionStatus, error)

	AddExercise(ctx context.Context, name string) error
	RemoveExercise(ctx context.Context, name string) error
	AddSet(ctx context.Context, exercise string) (domain.SetRecord, error)
	UpdateSet(ctx context.Context, exercise string, number int, weight float64, reps int) error
	RemoveSet(ctx context.Context, exercise string, number int) error

	RestDuration(ctx context.Context) time.Duration
	SetRestDuration(ctx context.Context, d time.Duration) error
	StartRest(ctx context.Context) error
	StopRest(ctx context.Context) error

	// Recommendations scores the catalog against the session's
	// performed exercises. Safe to call repeatedly; read-only with
	// respect to session state.
	Recommendations(ctx context.Context) ([]domain.Exercise, error)

	// RecoverySnapshot returns the persisted remnants of an abandoned
	// session, if any. Display only.
	RecoverySnapshot(ctx context.Context) *domain.SessionSnapshot

	// Finish finalizes and persists the session. The returned record is
	// nil when nothing survived finalization (nothing was persisted);
	// the in-progress state is cleared either way.
	Finish(ctx context.Context) (*domain.WorkoutRecord, error)

	// Close tears down any timers still running. For shutdown.
	Close()
}

type sessionService struct {
	mu      sync.Mutex
	current *session.Session
	clock   *timer.Service

	workoutRepo repository.WorkoutRepository
	prefRepo    repository.PreferenceRepository
	settings    repository.SettingsRepository
	recommender RecommendationService

	newClock    func() *timer.Service
	now         func() time.Time
	defaultRest time.Duration
}

// NewSessionService creates the session owner. defaultRest is the rest
// duration used until the user persists their own. newClock and now
// may be nil, which means real timers and time.Now.
func NewSessionService(
	workoutRepo repository.WorkoutRepository,
	prefRepo repository.PreferenceRepository,
	settings repository.SettingsRepository,
	recommender RecommendationService,
	defaultRest time.Duration,
	newClock func() *timer.Service,
	now func() time.Time,
) SessionService {
	if newClock == nil {
		newClock = timer.New
	}
	if now == nil {
		now = time.Now
	}
	if defaultRest <= 0 {
		defaultRest = time.Minute
	}
	return &sessionService{
		workoutRepo: workoutRepo,
		prefRepo:    prefRepo,
		settings:    settings,
		recommender: recommender,
		newClock:    newClock,
		now:         now,
		defaultRest: defaultRest,
	}
}

func (s *sessionService) Start(ctx context.Context, workoutName string, exercises []string) (*SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, ErrSessionInProgress
	}

	// A persisted flag without a live session means an earlier run
	// died mid-workout. Its snapshot has been available for recovery
	// display; starting fresh supersedes it.
	if inProgress, err := s.settings.InProgress(ctx); err == nil && inProgress {
		log.Warn("session: abandoning stale in-progress workout")
	}

	s.current = session.New(workoutName, s.now())
	s.clock = s.newClock()
	s.clock.StartWorkout()

	for _, name := range exercises {
		if err := s.current.AddExercise(name); err != nil {
			log.Warnf("session: skipping seed exercise %q: %s", name, err)
		}
	}

	if err := s.settings.SetInProgress(ctx, true); err != nil {
		log.Warnf("session: failed to persist in-progress flag: %s", err)
	}
	if err := s.settings.SetLastWorkout(ctx, workoutName); err != nil {
		log.Warnf("session: failed to persist last workout name: %s", err)
	}
	s.persistSnapshot(ctx)

	return s.statusLocked(ctx), nil
}

func (s *sessionService) Status(ctx context.Context) (*SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoActiveSession
	}
	return s.statusLocked(ctx), nil
}

func (s *sessionService) AddExercise(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	if err := s.current.AddExercise(name); err != nil {
		return err
	}
	// Selection feeds the preference signal; a failed increment only
	// costs the signal, not the session.
	if err := s.prefRepo.IncrementSelection(ctx, name); err != nil {
		log.Warnf("session: failed to increment preference for %q: %s", name, err)
	}
	s.persistSnapshot(ctx)
	return nil
}

func (s *sessionService) RemoveExercise(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	if err := s.current.RemoveExercise(name); err != nil {
		return err
	}
	s.persistSnapshot(ctx)
	return nil
}

func (s *sessionService) AddSet(ctx context.Context, exercise string) (domain.SetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.SetRecord{}, ErrNoActiveSession
	}
	set, err := s.current.AddSet(exercise)
	if err != nil {
		return domain.SetRecord{}, err
	}
	s.persistSnapshot(ctx)
	return set, nil
}

func (s *sessionService) UpdateSet(ctx context.Context, exercise string, number int, weight float64, reps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	if err := s.current.UpdateSet(exercise, number, weight, reps); err != nil {
		return err
	}
	s.persistSnapshot(ctx)
	return nil
}

func (s *sessionService) RemoveSet(ctx context.Context, exercise string, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	if err := s.current.RemoveSet(exercise, number); err != nil {
		return err
	}
	s.persistSnapshot(ctx)
	return nil
}

func (s *sessionService) RestDuration(ctx context.Context) time.Duration {
	d, err := s.settings.RestDuration(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warnf("session: failed to read rest duration: %s", err)
		}
		return s.defaultRest
	}
	return d
}

func (s *sessionService) SetRestDuration(ctx context.Context, d time.Duration) error {
	return s.settings.SetRestDuration(ctx, d)
}

func (s *sessionService) StartRest(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	if s.clock.RestRunning() {
		// Already resting, keep the running countdown.
		return nil
	}
	s.clock.StartRest(s.RestDuration(ctx))
	return nil
}

func (s *sessionService) StopRest(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoActiveSession
	}
	s.clock.StopRest()
	return nil
}

func (s *sessionService) Recommendations(ctx context.Context) ([]domain.Exercise, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	workoutName := s.current.Record.Name
	performed := s.current.Performed()
	s.mu.Unlock()

	// Scoring reads the store and never touches session state, so it
	// runs off the lock; an abandoned context just never receives.
	results := s.recommender.RecommendAsync(ctx, workoutName, performed)
	select {
	case recommendations := <-results:
		return recommendations, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *sessionService) RecoverySnapshot(ctx context.Context) *domain.SessionSnapshot {
	snapshot, err := s.settings.ActiveSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warnf("session: failed to read recovery snapshot: %s", err)
		}
		return nil
	}
	return snapshot
}

func (s *sessionService) Finish(ctx context.Context) (*domain.WorkoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoActiveSession
	}

	s.clock.PauseWorkout()

	var persisted *domain.WorkoutRecord
	if s.current.Finalize(s.now()) {
		record := s.current.Record
		record.ID = uuid.NewString()
		if err := s.workoutRepo.Save(ctx, &record); err != nil {
			// Best effort: the session still ends, the record is lost.
			log.Errorf("session: failed to persist workout record: %s", err)
		} else {
			persisted = &record
		}
	}

	if err := s.settings.SetInProgress(ctx, false); err != nil {
		log.Warnf("session: failed to clear in-progress flag: %s", err)
	}
	if err := s.settings.ClearActiveSnapshot(ctx); err != nil {
		log.Warnf("session: failed to clear recovery snapshot: %s", err)
	}

	s.clock.Stop()
	s.clock = nil
	s.current = nil

	return persisted, nil
}

func (s *sessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock != nil {
		s.clock.Stop()
	}
}

// statusLocked builds the polling view. Callers hold s.mu and have
// checked s.current.
func (s *sessionService) statusLocked(ctx context.Context) *SessionStatus {
	record := s.current.Record
	// Deep copy down to the sets: the caller serializes this view after
	// the lock is released, while set records keep mutating in place.
	exercises := make([]domain.ExerciseRecord, len(record.Exercises))
	for i, exercise := range record.Exercises {
		sets := make([]domain.SetRecord, len(exercise.Sets))
		copy(sets, exercise.Sets)
		exercise.Sets = sets
		exercises[i] = exercise
	}

	return &SessionStatus{
		Name:          record.Name,
		Elapsed:       s.clock.WorkoutElapsed(),
		Volume:        record.Volume,
		Sets:          record.Sets,
		RestRunning:   s.clock.RestRunning(),
		RestRemaining: s.clock.RestRemaining(),
		RestDuration:  s.RestDuration(ctx),
		Exercises:     exercises,
	}
}

// persistSnapshot refreshes the crash-recovery snapshot after a
// mutation. Callers hold s.mu.
func (s *sessionService) persistSnapshot(ctx context.Context) {
	snapshot := domain.SessionSnapshot{
		Name:   s.current.Record.Name,
		Volume: s.current.Record.Volume,
		Sets:   s.current.Record.Sets,
	}
	if err := s.settings.SaveActiveSnapshot(ctx, snapshot); err != nil {
		log.Warnf("session: failed to persist recovery snapshot: %s", err)
	}
}
