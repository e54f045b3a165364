package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.NoError(t, validation.Validate(email, Email), email)
	}

	invalid := []string{
		"not-an-email",
		"@example.com",
		"user@",
		"user@localhost",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.Error(t, validation.Validate(email, Email), email)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("hello", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
	assert.Error(t, validation.Validate("\t\n", NotBlank))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("validation_test", "boom"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
