package qr

import "errors"

// Sentinel kinds for QR generation errors.
var (
	ErrEmptyURL = errors.New("url must not be empty")
	ErrEncode   = errors.New("qr encoding failed")
)
