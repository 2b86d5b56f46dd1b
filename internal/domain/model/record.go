// Package model contains domain models passed between pipeline stages.
package model

// RawRecord is a single row of the input table: who, and when they were active.
type RawRecord struct {
	UserID string // free-form user identifier
	Clock  string // time of day, "HH:MM:SS"
}

// TimeEmbedding is a time of day mapped onto the unit circle. Encoding the
// fractional-day angle keeps 23:59:59 and 00:00:01 adjacent instead of a full
// day apart.
type TimeEmbedding struct {
	Sin float64
	Cos float64
}

// UserProfile is one user's aggregated embedding: the arithmetic mean of the
// sin and cos components over all of that user's records.
type UserProfile struct {
	UserID    string
	Embedding TimeEmbedding
}

// Match is the extremal pair reported by an analysis run.
type Match struct {
	UserA string  `json:"user_a"`
	UserB string  `json:"user_b"`
	Score float64 `json:"score"`
}
