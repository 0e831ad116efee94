package domain

// DataPoint is one aggregation bucket of a derived metric, e.g. the
// total volume lifted on a given day. Produced transiently by the
// statistics aggregator, never persisted.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
