package encode

import "errors"

// Sentinel kinds for encoding errors.
var (
	ErrParse = errors.New("time of day parse failed")
)
