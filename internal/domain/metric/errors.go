package metric

import "errors"

// Sentinel kinds for metric errors.
var (
	ErrUnknownMetric = errors.New("unknown metric")
)
