package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/doutly/doutly-service/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into the
// shared DomainError shape so the error middleware renders them.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
