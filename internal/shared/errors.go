package shared

import "errors"

var (
	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorNoUserID                = errors.New("no user id")
	ErrorLoginAlreadyExists      = errors.New("login already exists")
	ErrorInvalidLoginFormat      = errors.New("invalid login format")
	ErrorInvalidPasswordFormat   = errors.New("invalid password format")
	ErrorInvalidLoginPassword    = errors.New("invalid login/password")

	// job-note errors
	ErrorEmptyNoteText   = errors.New("noteText is required")
	ErrorNoteTooLong     = errors.New("noteText is too long")
	ErrorJobIDRequired   = errors.New("jobId is required")
	ErrorFileNameMissing = errors.New("fileName is required")
)
