package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormat(t *testing.T) {
	err := NewError(ErrTurnFailed, "turn generation failed").
		WithPersona("Leo").
		WithTurn(4)

	assert.Equal(t, "[TURN_FAILED] turn generation failed", err.Error())
	assert.Equal(t, "Leo", err.Persona)
	assert.Equal(t, 4, err.Turn)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(ErrStoreUnavailable, "identity store query failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrSessionNotInitialized, GetErrorCode(NewError(ErrSessionNotInitialized, "no session")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}
