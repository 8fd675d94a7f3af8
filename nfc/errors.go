package nfc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies which step of an availability check failed.
type ErrorCode int

const (
	// ErrCodeSession means the smart-card service could not be reached or
	// initialized (service absent, permission denied).
	ErrCodeSession ErrorCode = iota + 100
	// ErrCodeEnumeration means a session was established but listing the
	// attached readers failed.
	ErrCodeEnumeration
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeSession:
		return "SessionError"
	case ErrCodeEnumeration:
		return "EnumerationError"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ProbeError provides structured error information for a failed check.
type ProbeError struct {
	Code    ErrorCode
	Op      string // Service call that failed (e.g., "Establish", "ListReaders")
	Message string // Human-readable message
	Cause   error  // Underlying error
}

func (e *ProbeError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

func (e *ProbeError) Is(target error) bool {
	if t, ok := target.(*ProbeError); ok {
		return e.Code == t.Code
	}
	return false
}

// Detail returns the text describing the underlying failure.
func (e *ProbeError) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// NewSessionError creates an error for a failed context establishment.
func NewSessionError(cause error) *ProbeError {
	return &ProbeError{
		Code:    ErrCodeSession,
		Op:      "Establish",
		Message: "failed to establish NFC context",
		Cause:   cause,
	}
}

// NewEnumerationError creates an error for a failed reader listing.
func NewEnumerationError(cause error) *ProbeError {
	return &ProbeError{
		Code:    ErrCodeEnumeration,
		Op:      "ListReaders",
		Message: "failed to list readers",
		Cause:   cause,
	}
}

// IsSessionError checks if an error indicates the service context could not be established.
func IsSessionError(err error) bool {
	return GetErrorCode(err) == ErrCodeSession
}

// IsEnumerationError checks if an error indicates reader enumeration failed.
func IsEnumerationError(err error) bool {
	return GetErrorCode(err) == ErrCodeEnumeration
}

// GetErrorCode extracts the ErrorCode from an error if it's a ProbeError.
// Returns 0 if the error is not a ProbeError.
func GetErrorCode(err error) ErrorCode {
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Code
	}
	return 0
}
