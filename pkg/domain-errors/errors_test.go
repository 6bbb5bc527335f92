package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeValidation, "name is required")
	assert.True(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(nil, CodeValidation))
	assert.False(t, HasCode(errors.New("plain"), CodeValidation))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "history store unreachable")

	assert.True(t, HasCode(err, CodeUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "history store unreachable")
}

func TestWrap_CodeSurvivesFurtherWrapping(t *testing.T) {
	err := New(CodeNotFound, "no records")
	outer := fmt.Errorf("loading history: %w", err)
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(outer))
}

func TestCodeOf_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad input", MessageOf(New(CodeBadRequest, "bad input")))
	assert.Equal(t, "", MessageOf(errors.New("plain")))
}
