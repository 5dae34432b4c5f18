package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "invalid expression",
			err:  &InvalidExpressionError{Expression: "x"},
			want: true,
		},
		{
			name: "wrapped unknown handle",
			err:  fmt.Errorf("variables: %w", &UnknownHandleError{Handle: 7}),
			want: true,
		},
		{
			name: "transport closed",
			err:  ErrTransportClosed,
			want: false,
		},
		{
			name: "not bad request",
			err:  New("not bad request"),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}

func TestIsTransportClosed(t *testing.T) {
	assert.True(t, IsTransportClosed(fmt.Errorf("sending %q: %w", "c", ErrTransportClosed)))
	assert.False(t, IsTransportClosed(ErrSessionNotLaunched))
}
