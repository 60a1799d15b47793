package session

import (
	"errors"

	"github.com/Nixie-Tech-LLC/darshan/internal/auth"
)

var (
	ErrTempleNotFound     = errors.New("temple not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = auth.ErrInvalidCredentials
	ErrWrongView          = errors.New("action not available on this screen")
	ErrBusy               = errors.New("another action is still in progress")
	ErrStale              = errors.New("screen changed before the action completed")
	ErrSessionNotFound    = errors.New("session not found")
	ErrClosed             = errors.New("session manager closed")
)
