package forms

import "errors"

var (
	// ErrPasswordMismatch is returned when password and confirmation differ.
	// No request is sent.
	ErrPasswordMismatch = errors.New("forms: passwords do not match")

	// ErrSubmitInProgress is returned when a form is submitted again while its previous
	// submission is still pending.
	ErrSubmitInProgress = errors.New("forms: submission already in progress")
)
