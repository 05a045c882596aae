package errors

import "fmt"

// Machine-readable reason codes for remote catalog failures. Display text is
// the presentation layer's problem, not ours.
const (
	ReasonRemoteUnavailable = "REMOTE_UNAVAILABLE"
	ReasonRemoteRejected    = "REMOTE_REJECTED"
	ReasonRemoteMalformed   = "REMOTE_MALFORMED"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// StorageError wraps an I/O failure from the persistent store. Callers treat
// it as fatal; nothing in this layer retries it.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		Message: message,
		Cause:   cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	if se, ok := err.(*StorageError); ok {
		return se, true
	}
	return nil, false
}

// RemoteError is a failed catalog fetch. Reason is one of the Reason*
// constants above.
type RemoteError struct {
	Reason  string
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

func NewRemoteError(reason, message string, cause error) *RemoteError {
	return &RemoteError{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func IsRemoteError(err error) (*RemoteError, bool) {
	if re, ok := err.(*RemoteError); ok {
		return re, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
