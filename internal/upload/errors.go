package upload

import "errors"

// Sentinel kinds for upload errors.
var (
	ErrTooLarge = errors.New("upload too large")
)
