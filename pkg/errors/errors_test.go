package errors

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorPassesThroughAppError(t *testing.T) {
	err := Clone(ErrNotFound, "order not found")
	got := FromError(err)
	assert.Equal(t, ErrNotFound.Code, got.Code)
	assert.Equal(t, "order not found", got.Message)
	assert.Equal(t, 404, got.Status)
}

func TestFromErrorWrapsUnknownError(t *testing.T) {
	got := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, 500, got.Status)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrInternal.Code, ErrInternal.Status, "failed to load order")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to load order", FromError(err).Message)
}

func TestValidationCollectsFieldErrors(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		Quantity int    `json:"quantity" validate:"required,gt=0"`
	}

	v := validator.New()
	verr := v.Struct(payload{Email: "nope"})
	require.Error(t, verr)

	err := Validation(verr, "invalid payload")
	appErr := FromError(err)
	assert.Equal(t, ErrValidation.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	require.Len(t, appErr.Fields, 2)
	for _, f := range appErr.Fields {
		assert.NotEmpty(t, f.Path)
		assert.NotEmpty(t, f.Message)
	}
}
