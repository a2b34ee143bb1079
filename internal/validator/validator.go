package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
)

// Validator wraps the struct validator with the platform's business rules.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates a struct against business rules. Returns nil when valid.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerBusinessRules() {
	// workspace: one of the closed workspace enumeration
	_ = v.validate.RegisterValidation("workspace", func(fl validator.FieldLevel) bool {
		return models.Workspace(fl.Field().String()).Valid()
	})

	// notification_type: one of the notification type tags
	_ = v.validate.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		switch models.NotificationType(fl.Field().String()) {
		case models.NotificationMessage, models.NotificationAnnouncement,
			models.NotificationGrade, models.NotificationAssignment:
			return true
		}
		return false
	})
}

// ToValidationErrors converts validator library errors to our error type.
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}
	for _, fieldErr := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: errorMessage(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}
	return errors
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "workspace":
		return "must be 'educational' or 'professional'"
	case "notification_type":
		return "must be one of: message, announcement, grade, assignment"
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	default:
		return fmt.Sprintf("failed validation rule '%s'", err.Tag())
	}
}
