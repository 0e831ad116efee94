package domain

import "time"

// ExercisePreference tracks how often the user has picked an exercise
// into a session. One document per exercise name; SelectionCount only
// ever grows.
type ExercisePreference struct {
	ExerciseName   string    `bson:"exerciseName" json:"exerciseName"`
	SelectionCount int       `bson:"selectionCount" json:"selectionCount"`
	LastSelected   time.Time `bson:"lastSelected" json:"lastSelected"`
}
