package app

import "errors"

// ErrDuplicateSubmission marks a contact message whose content was already
// accepted recently.
var ErrDuplicateSubmission = errors.New("duplicate submission")
