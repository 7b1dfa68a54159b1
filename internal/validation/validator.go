package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error
// formatting
type Validator struct {
	validate *validator.Validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules registered
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_kind", validateAccountKind)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)

	return &Validator{validate: v}
}

// Struct validates a request struct and flattens field errors into one
// readable message
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, formatFieldError(fieldErr))
	}
	return fmt.Errorf("%s", strings.Join(details, "; "))
}

func formatFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "account_kind":
		return fmt.Sprintf("%s must be SAVINGS or CREDIT", fieldErr.Field())
	case "money_amount":
		return fmt.Sprintf("%s must be a positive amount with at most two decimal places", fieldErr.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
	case "min", "max":
		return fmt.Sprintf("%s length is out of range", fieldErr.Field())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

// Custom validation functions

// validateAccountKind validates that the account kind is a known variant
func validateAccountKind(fl validator.FieldLevel) bool {
	return models.IsValidAccountKind(fl.Field().String())
}

// validateMoneyAmount validates that an amount string parses as a positive
// decimal with at most two fractional digits
func validateMoneyAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return amount.Exponent() >= -2
}
