package domain

import "time"

// WorkoutRecord is one workout session. It is built up in memory while
// the session runs and written to the store as a single document on
// completion.
type WorkoutRecord struct {
	ID        string           `bson:"id" json:"id"`
	Name      string           `bson:"name" json:"name"`
	StartTime time.Time        `bson:"startTime" json:"startTime"`
	EndTime   time.Time        `bson:"endTime" json:"endTime"`
	Sets      int              `bson:"sets" json:"sets"`
	Volume    float64          `bson:"volume" json:"volume"` // sum of weight*reps over all sets
	Exercises []ExerciseRecord `bson:"exerciseList" json:"exercises"`
}

// Duration returns the wall time spanned by the session.
func (w WorkoutRecord) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}

// ExerciseRecord is one performed exercise within a workout, owned
// exclusively by its WorkoutRecord.
type ExerciseRecord struct {
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Sets        []SetRecord `bson:"setList" json:"sets"`
}

// SetRecord is a single set. Number is a 1-based position that stays
// dense within the owning exercise: removing a set renumbers the ones
// after it.
type SetRecord struct {
	Number int     `bson:"number" json:"number"`
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
}

// SessionSnapshot is the minimal state of an in-progress session kept
// in the settings store for crash recovery. Display only; the full set
// list is never persisted mid-session.
type SessionSnapshot struct {
	Name   string  `bson:"name" json:"name"`
	Volume float64 `bson:"volume" json:"volume"`
	Sets   int     `bson:"sets" json:"sets"`
}
