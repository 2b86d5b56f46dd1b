package mail

import "errors"

// Sentinel kinds for mail relay errors.
var (
	ErrInvalidMessage = errors.New("invalid contact message")
	ErrNotConfigured  = errors.New("mailer not configured")
	ErrTokenRefresh   = errors.New("access token refresh failed")
	ErrSend           = errors.New("mail delivery failed")
)
