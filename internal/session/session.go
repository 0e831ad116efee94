// Package session holds the in-memory state of one active workout.
// All mutations keep the running set count and volume in step by
// applying deltas, so each operation is O(1) apart from set removal,
// which renumbers the trailing sets of one exercise.
//
// A Session is not safe for concurrent use; the owning service
// serializes access to it.
package session

import (
	"errors"
	"time"

	"ironlog/workout-app/internal/domain"
)

var (
	ErrExerciseExists   = errors.New("exercise already in session")
	ErrExerciseNotFound = errors.New("exercise not in session")
	ErrSetNotFound      = errors.New("set not in exercise")
)

// Session is the state of a workout in progress.
type Session struct {
	Record    domain.WorkoutRecord
	performed map[string]struct{}
}

// New starts an empty session.
func New(name string, start time.Time) *Session {
	return &Session{
		Record: domain.WorkoutRecord{
			Name:      name,
			StartTime: start,
		},
		performed: make(map[string]struct{}),
	}
}

// Performed returns a copy of the set of exercise names currently in
// the session.
func (s *Session) Performed() map[string]struct{} {
	out := make(map[string]struct{}, len(s.performed))
	for name := range s.performed {
		out[name] = struct{}{}
	}
	return out
}

// AddExercise appends an empty exercise record. Exercises are
// addressed by name, so the same name cannot appear twice.
func (s *Session) AddExercise(name string) error {
	if _, ok := s.performed[name]; ok {
		return ErrExerciseExists
	}
	s.Record.Exercises = append(s.Record.Exercises, domain.ExerciseRecord{Name: name})
	s.performed[name] = struct{}{}
	return nil
}

// RemoveExercise removes an exercise and all its sets, unwinding every
// set's contribution to the running totals first.
func (s *Session) RemoveExercise(name string) error {
	idx := s.exerciseIndex(name)
	if idx < 0 {
		return ErrExerciseNotFound
	}
	for _, set := range s.Record.Exercises[idx].Sets {
		s.Record.Volume -= set.Weight * float64(set.Reps)
		s.Record.Sets--
	}
	s.Record.Exercises = append(s.Record.Exercises[:idx], s.Record.Exercises[idx+1:]...)
	delete(s.performed, name)
	return nil
}

// AddSet appends an empty set to the exercise and returns it. New sets
// count toward the running set total immediately; they contribute
// volume once weight and reps are filled in.
func (s *Session) AddSet(exercise string) (domain.SetRecord, error) {
	idx := s.exerciseIndex(exercise)
	if idx < 0 {
		return domain.SetRecord{}, ErrExerciseNotFound
	}
	set := domain.SetRecord{Number: len(s.Record.Exercises[idx].Sets) + 1}
	s.Record.Exercises[idx].Sets = append(s.Record.Exercises[idx].Sets, set)
	s.Record.Sets++
	return set, nil
}

// UpdateSet sets the weight and reps of a set, adjusting the running
// volume by the difference.
func (s *Session) UpdateSet(exercise string, number int, weight float64, reps int) error {
	idx := s.exerciseIndex(exercise)
	if idx < 0 {
		return ErrExerciseNotFound
	}
	sets := s.Record.Exercises[idx].Sets
	if number < 1 || number > len(sets) {
		return ErrSetNotFound
	}
	set := &sets[number-1]
	s.Record.Volume += weight*float64(reps) - set.Weight*float64(set.Reps)
	set.Weight = weight
	set.Reps = reps
	return nil
}

// RemoveSet deletes a set and renumbers the sets after it so numbers
// stay a dense 1..N sequence.
func (s *Session) RemoveSet(exercise string, number int) error {
	idx := s.exerciseIndex(exercise)
	if idx < 0 {
		return ErrExerciseNotFound
	}
	sets := s.Record.Exercises[idx].Sets
	if number < 1 || number > len(sets) {
		return ErrSetNotFound
	}
	removed := sets[number-1]
	s.Record.Volume -= removed.Weight * float64(removed.Reps)
	s.Record.Sets--

	sets = append(sets[:number-1], sets[number:]...)
	for i := number - 1; i < len(sets); i++ {
		sets[i].Number = i + 1
	}
	s.Record.Exercises[idx].Sets = sets
	return nil
}

// Finalize stamps the end time and discards sets that were never
// completed (zero reps), along with exercises left with no sets. The
// return value reports whether anything worth persisting survived.
func (s *Session) Finalize(end time.Time) bool {
	s.Record.EndTime = end

	kept := s.Record.Exercises[:0]
	for _, exercise := range s.Record.Exercises {
		sets := exercise.Sets[:0]
		for _, set := range exercise.Sets {
			if set.Reps == 0 {
				// A zero-rep set carries no volume, only the set count
				// needs unwinding.
				s.Record.Sets--
				continue
			}
			set.Number = len(sets) + 1
			sets = append(sets, set)
		}
		if len(sets) == 0 {
			continue
		}
		exercise.Sets = sets
		kept = append(kept, exercise)
	}
	s.Record.Exercises = kept

	return len(s.Record.Exercises) > 0
}

func (s *Session) exerciseIndex(name string) int {
	for i, exercise := range s.Record.Exercises {
		if exercise.Name == name {
			return i
		}
	}
	return -1
}
