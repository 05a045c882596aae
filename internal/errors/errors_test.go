package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "tableNumber", Message: "must be positive"},
		{Field: "quantity", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestStorageError_WrapsCause(t *testing.T) {
	cause := errors.New("disk i/o error")
	err := NewStorageError("inserting order", cause)

	assert.Equal(t, "inserting order: disk i/o error", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	se, ok := IsStorageError(err)
	assert.True(t, ok)
	assert.Equal(t, cause, se.Cause)
}

func TestRemoteError_ReasonCodes(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRemoteError(ReasonRemoteUnavailable, "catalog endpoint unreachable", cause)

	re, ok := IsRemoteError(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonRemoteUnavailable, re.Reason)
	assert.Contains(t, err.Error(), "REMOTE_UNAVAILABLE")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestRemoteError_WithoutCause(t *testing.T) {
	err := NewRemoteError(ReasonRemoteRejected, "status 500", nil)

	assert.Equal(t, "REMOTE_REJECTED: status 500", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database: database error", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}
