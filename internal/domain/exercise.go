package domain

// Exercise is a single entry of the exercise catalog. Catalog documents
// are loaded from the remote store and never written back; every field
// defaults to its zero value when the source document omits it.
type Exercise struct {
	ID              int    `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"` // unique business key
	PrimaryMuscle   string `bson:"primaryMuscle" json:"primaryMuscle"`
	SecondaryMuscle string `bson:"secondaryMuscle,omitempty" json:"secondaryMuscle,omitempty"`
	Equipment       string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Type            string `bson:"type" json:"type"` // movement category, e.g. "Compound"
}
