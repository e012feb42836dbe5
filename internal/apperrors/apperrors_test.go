package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("should collect field errors", func(t *testing.T) {
		// given
		validationErr := &ValidationError{}

		// when
		validationErr.Add("amount", "must be greater than zero")
		validationErr.Add("type", "must be income or expense")

		// then
		assert.True(t, validationErr.HasErrors())
		assert.Len(t, validationErr.Fields, 2)
		assert.Equal(t, "validation failed: amount: must be greater than zero; type: must be income or expense", validationErr.Error())
	})

	t.Run("should return nil when no field error was added", func(t *testing.T) {
		validationErr := &ValidationError{}

		assert.NoError(t, validationErr.OrNil())
	})

	t.Run("should be detected through wrapping", func(t *testing.T) {
		err := fmt.Errorf("failed to create transaction: %w", NewValidationError("amount", "required"))

		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(errors.New("boom")))
	})
}

func TestNotOwned(t *testing.T) {
	err := NotOwned("account", 12)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "account 12")
}
