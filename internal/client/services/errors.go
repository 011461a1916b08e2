// Package services holds the application services the terminal client
// drives: the cached data facade, settings, and the device PIN.
package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrQuoteNotAccepted  = errors.New("only accepted quotes can be converted")
	ErrAttachmentLimit   = errors.New("attachment limit reached")

	ErrPINNotSet = errors.New("pin is not set")
	ErrWrongPIN  = errors.New("wrong pin")
)
