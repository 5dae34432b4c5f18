package errors

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// SessionNotFoundError reports a connection whose debug session has already ended or never started.
type SessionNotFoundError struct {
	ID uuid.UUID
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("debug session %s not found", e.ID)
}

// NoSessionFoundError indicates that the request context carries no session id.
type NoSessionFoundError struct{}

func (e *NoSessionFoundError) Error() string {
	return "no debug session in request context"
}
