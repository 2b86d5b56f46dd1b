package pair

import "errors"

// Sentinel kinds for pair selection errors.
var (
	// ErrInsufficientUsers means fewer than two distinct users were present,
	// so no pair exists to report.
	ErrInsufficientUsers = errors.New("fewer than two distinct users")

	// ErrDegenerateVector means every candidate pair involved a zero
	// aggregated embedding, leaving similarity undefined for all of them.
	ErrDegenerateVector = errors.New("no comparable pair: degenerate embeddings")
)
