package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Loading(t *testing.T) {
	r := Loading[int]()

	assert.True(t, r.IsLoading())
	assert.False(t, r.IsSuccess())
	assert.False(t, r.IsError())
	assert.Nil(t, r.Err())

	_, ok := r.Value()
	assert.False(t, ok)
}

func TestResult_Success(t *testing.T) {
	r := Success([]string{"p1", "p2"})

	assert.True(t, r.IsSuccess())
	assert.Nil(t, r.Err())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, []string{"p1", "p2"}, v)
}

func TestResult_SuccessWithNilPayload(t *testing.T) {
	// Absent is a success, not an error.
	r := Success[*string](nil)

	assert.True(t, r.IsSuccess())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestResult_Failure(t *testing.T) {
	cause := errors.New("boom")
	r := Failure[int](cause)

	assert.True(t, r.IsError())
	assert.Equal(t, cause, r.Err())

	_, ok := r.Value()
	assert.False(t, ok)
	assert.Zero(t, r.MustValue())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
}
