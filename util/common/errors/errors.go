package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinels used to classify errors with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrTransport      = errors.New("transport error")
	ErrConfig         = errors.New("configuration error")
	ErrChecksum       = errors.New("checksum mismatch")
)

// ValidationError represents bad local input detected before any transfer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// AuthenticationError is returned when the repository answers 401 or 403.
type AuthenticationError struct {
	Status int
	URL    string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): check login and password", e.Status)
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(status int, url string) error {
	return &AuthenticationError{
		Status: status,
		URL:    url,
	}
}

// TransportError represents a failed transfer: the transfer could not be
// started, timed out, exited non-zero or returned an unexpected status.
type TransportError struct {
	Op       string
	Message  string
	Status   int
	ExitCode int
	Elapsed  time.Duration
	Output   []string
	Wrapped  error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" failed")
	} else {
		b.WriteString("transfer failed")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
	}
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " exit=%d", e.ExitCode)
	}
	if e.Elapsed > 0 {
		fmt.Fprintf(&b, " (%s)", e.Elapsed.Round(time.Millisecond))
	}
	if len(e.Output) > 0 {
		fmt.Fprintf(&b, " output=%q", strings.Join(e.Output, "\n"))
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, ": %v", e.Wrapped)
	}
	return b.String()
}

// Unwrap exposes both the ErrTransport sentinel and the wrapped cause.
func (e *TransportError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Wrapped}
}

// NewTransportError creates a TransportError for a failure that has no
// HTTP status, such as a process that could not be started.
func NewTransportError(op string, wrapped error) error {
	return &TransportError{
		Op:      op,
		Wrapped: wrapped,
	}
}

// NewStatusError creates a TransportError for an unexpected HTTP status.
func NewStatusError(op, message string, status int, elapsed time.Duration, output []string) error {
	return &TransportError{
		Op:      op,
		Message: message,
		Status:  status,
		Elapsed: elapsed,
		Output:  output,
	}
}

// ConfigError represents invalid configuration or environment.
type ConfigError struct {
	Key     string
	Message string
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("configuration error for %s: %s: %v", e.Key, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Wrapped}
}

// NewConfigError creates a new ConfigError
func NewConfigError(key, message string, wrapped error) error {
	return &ConfigError{
		Key:     key,
		Message: message,
		Wrapped: wrapped,
	}
}

// ChecksumError is returned when a downloaded file does not match its
// companion .md5 file.
type ChecksumError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected md5 %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}

// NewChecksumError creates a new ChecksumError
func NewChecksumError(path, expected, actual string) error {
	return &ChecksumError{
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

// Is reports whether target matches err.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
