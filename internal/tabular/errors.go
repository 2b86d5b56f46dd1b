package tabular

import "errors"

// Sentinel kinds for table reading errors.
var (
	// ErrBadFormat covers absent, unreadable, or structurally invalid input
	// files. The pipeline never proceeds past it.
	ErrBadFormat = errors.New("input is not a two-column table")
)
