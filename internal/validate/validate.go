package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"pricewatch/internal/model"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the tagged fields of an input struct and converts failures
// into the shared validation error, so callers only ever branch on
// model.ErrValidation.
func Struct(input any) error {
	if err := instance.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	return nil
}
