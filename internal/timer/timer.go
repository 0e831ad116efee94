// Package timer runs the workout and rest clocks for an active
// session. Both clocks are driven by a monotonic time source, so wall
// clock adjustments never corrupt elapsed values, and they live for as
// long as their owner keeps them: they are queried by polling and are
// independent of any request lifecycle.
package timer

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const tickInterval = time.Second

// Service holds the two clocks. The owner must call Stop when the
// session ends, otherwise the tick goroutine keeps running.
type Service struct {
	mu  sync.Mutex
	now func() time.Time

	// Workout clock. While running, elapsed = now - workoutMark; while
	// paused, workoutElapsed holds the frozen accumulated value.
	workoutRunning bool
	workoutMark    time.Time
	workoutElapsed time.Duration

	// Rest clock. Counts down from restDuration, auto-stopped by the
	// tick loop once elapsed catches up with the duration.
	restRunning  bool
	restMark     time.Time
	restDuration time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a timer service on the real clock and starts its tick
// loop.
func New() *Service {
	return newService(time.Now, true)
}

// NewWithClock creates a timer service on the given time source,
// without the background tick loop. Intended for tests, which drive
// expiry by calling Tick themselves.
func NewWithClock(now func() time.Time) *Service {
	return newService(now, false)
}

func newService(now func() time.Time, runLoop bool) *Service {
	s := &Service{
		now:  now,
		done: make(chan struct{}),
	}
	if runLoop {
		go s.run()
	}
	return s
}

func (s *Service) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-s.done:
			return
		}
	}
}

// Tick expires the rest clock once its duration has elapsed. The
// workout clock needs no tick work; its elapsed value is derived on
// every query.
func (s *Service) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restRunning && s.now().Sub(s.restMark) >= s.restDuration {
		s.restRunning = false
		s.restDuration = 0
		log.Debug("rest period completed")
	}
}

// StartWorkout starts or resumes the workout clock. Resuming re-derives
// the start mark so that elapsed time continues where the pause froze
// it.
func (s *Service) StartWorkout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.workoutRunning {
		s.workoutMark = s.now().Add(-s.workoutElapsed)
		s.workoutRunning = true
	}
}

// PauseWorkout freezes the workout clock at its current elapsed value.
func (s *Service) PauseWorkout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workoutRunning {
		s.workoutElapsed = s.now().Sub(s.workoutMark)
		s.workoutRunning = false
	}
}

// ResetWorkout zeroes the workout clock without changing its running
// state.
func (s *Service) ResetWorkout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workoutMark = s.now()
	s.workoutElapsed = 0
}

// WorkoutElapsed returns the time the workout clock has accumulated.
func (s *Service) WorkoutElapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workoutRunning {
		return s.now().Sub(s.workoutMark)
	}
	return s.workoutElapsed
}

// StartRest starts the rest countdown for the given duration,
// replacing any countdown already running.
func (s *Service) StartRest(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restDuration = d
	s.restMark = s.now()
	s.restRunning = true
}

// StopRest cancels the rest countdown.
func (s *Service) StopRest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restRunning = false
	s.restDuration = 0
}

// RestRunning reports whether the rest countdown is active.
func (s *Service) RestRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restRunning
}

// RestRemaining returns the time left on the rest countdown, clamped
// at zero. Between ticks an expired countdown may still report as
// running with zero remaining.
func (s *Service) RestRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.restRunning {
		return 0
	}
	remaining := s.restDuration - s.now().Sub(s.restMark)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stop tears down the tick goroutine. Safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
