package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "validation", err: NewValidationError("directory", "not found"), sentinel: ErrValidation},
		{name: "authentication", err: NewAuthenticationError(403, "https://nexus"), sentinel: ErrAuthentication},
		{name: "transport", err: NewTransportError("curl", errors.New("exec: not found")), sentinel: ErrTransport},
		{name: "status", err: NewStatusError("upload", "", 500, time.Second, nil), sentinel: ErrTransport},
		{name: "config", err: NewConfigError("NEXUS_PASSWD", "not set", nil), sentinel: ErrConfig},
		{name: "checksum", err: NewChecksumError("a.txt", "aa", "bb"), sentinel: ErrChecksum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run: %w", tt.err)
			assert.True(t, Is(wrapped, tt.sentinel))
		})
	}
}

func TestAuthenticationIsNotTransport(t *testing.T) {
	err := NewAuthenticationError(401, "https://nexus")
	assert.False(t, Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "check login and password")
}

func TestTransportErrorMessage(t *testing.T) {
	err := NewStatusError("upload", "unexpected status", 500, 1500*time.Millisecond, []string{"boom"})
	msg := err.Error()
	assert.Contains(t, msg, "upload failed")
	assert.Contains(t, msg, "status=500")
	assert.Contains(t, msg, "1.5s")
	assert.Contains(t, msg, "boom")

	cause := errors.New("context deadline exceeded")
	err = NewTransportError("curl", cause)
	assert.True(t, Is(err, cause))

	var te *TransportError
	assert.True(t, As(err, &te))
	assert.Equal(t, "curl", te.Op)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	err := Wrap(NewValidationError("version", "empty"), "upload")
	assert.EqualError(t, err, "upload: invalid version: empty")
	assert.True(t, Is(err, ErrValidation))
}
