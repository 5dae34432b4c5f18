package errors

import (
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionErrors(t *testing.T) {
	id := uuid.Must(uuid.FromString("4d8c6b36-4e9b-4469-8a05-2c60b9671590"))

	wrapped := fmt.Errorf("stack trace: %w", &SessionNotFoundError{ID: id})
	assert.Equal(t, "stack trace: debug session 4d8c6b36-4e9b-4469-8a05-2c60b9671590 not found", wrapped.Error())

	var nf *SessionNotFoundError
	require.True(t, As(wrapped, &nf))
	assert.Equal(t, id, nf.ID)
	assert.False(t, IsBadRequest(wrapped))

	assert.Equal(t, "no debug session in request context", (&NoSessionFoundError{}).Error())
}
