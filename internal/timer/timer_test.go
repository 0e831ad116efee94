package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestWorkoutClockAccumulates(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartWorkout()
	clock.Advance(5 * time.Second)
	assert.Equal(t, 5*time.Second, s.WorkoutElapsed())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 7*time.Second, s.WorkoutElapsed())
}

func TestWorkoutClockPauseFreezesElapsed(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartWorkout()
	clock.Advance(5 * time.Second)
	s.PauseWorkout()

	// Time that passes while paused must not count.
	clock.Advance(30 * time.Second)
	assert.Equal(t, 5*time.Second, s.WorkoutElapsed())

	s.StartWorkout()
	clock.Advance(2 * time.Second)
	assert.Equal(t, 7*time.Second, s.WorkoutElapsed())
}

func TestWorkoutClockStartWhileRunningIsNoOp(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartWorkout()
	clock.Advance(3 * time.Second)
	s.StartWorkout()
	clock.Advance(1 * time.Second)

	assert.Equal(t, 4*time.Second, s.WorkoutElapsed())
}

func TestWorkoutClockReset(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartWorkout()
	clock.Advance(10 * time.Second)
	s.ResetWorkout()

	assert.Equal(t, time.Duration(0), s.WorkoutElapsed())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, s.WorkoutElapsed())
}

func TestRestClockCountsDown(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartRest(3 * time.Second)
	assert.True(t, s.RestRunning())
	assert.Equal(t, 3*time.Second, s.RestRemaining())

	clock.Advance(1 * time.Second)
	assert.Equal(t, 2*time.Second, s.RestRemaining())
}

func TestRestClockExpiresOnTick(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartRest(3 * time.Second)

	clock.Advance(2 * time.Second)
	s.Tick()
	assert.True(t, s.RestRunning())

	clock.Advance(1 * time.Second)
	s.Tick()
	assert.False(t, s.RestRunning())
	assert.Equal(t, time.Duration(0), s.RestRemaining())
}

func TestRestClockRemainingClampedAtZero(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartRest(2 * time.Second)
	clock.Advance(5 * time.Second)

	// Expired but not yet ticked: still running, zero remaining.
	assert.True(t, s.RestRunning())
	assert.Equal(t, time.Duration(0), s.RestRemaining())
}

func TestRestClockStop(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartRest(time.Minute)
	s.StopRest()

	assert.False(t, s.RestRunning())
	assert.Equal(t, time.Duration(0), s.RestRemaining())
}

func TestRestClockRestartReplacesCountdown(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(clock.Now)

	s.StartRest(time.Minute)
	clock.Advance(30 * time.Second)
	s.StartRest(10 * time.Second)

	assert.Equal(t, 10*time.Second, s.RestRemaining())
}

func TestStopIsIdempotent(t *testing.T) {
	s := New()
	s.Stop()
	s.Stop()
}
