package domain

// WorkoutPlan is a named template of phases the user cycles through,
// e.g. Push day / Pull day / Legs day. The per-plan rotation index is
// not part of the document; it lives in the settings store.
type WorkoutPlan struct {
	Name   string         `bson:"name" json:"name"`
	Phases []WorkoutPhase `bson:"plan" json:"phases"`
}

// WorkoutPhase is one segment of a plan: a display name plus the
// ordered exercise names it prescribes.
type WorkoutPhase struct {
	Name      string   `bson:"name" json:"name"`
	Exercises []string `bson:"exercises" json:"exercises"`
}
