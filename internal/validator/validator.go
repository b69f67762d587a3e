package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pixalara/placement-service/internal/models"
)

// ValidationError represents a single field-level validation failure.
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

// Validator wraps go-playground/validator with the portal's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates struct tags and returns field-level errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// registerRules registers domain-specific validators.
func (v *Validator) registerRules() {
	// pipeline_stage: one of registered, interview, placed, rejected
	v.validate.RegisterValidation("pipeline_stage", func(fl validator.FieldLevel) bool {
		stage := models.PipelineStage(fl.Field().String())
		for _, s := range models.PipelineStages {
			if s == stage {
				return true
			}
		}
		return false
	})

	// fee_status: Pending or Paid
	v.validate.RegisterValidation("fee_status", func(fl validator.FieldLevel) bool {
		fee := models.FeeStatus(fl.Field().String())
		return fee == models.FeePending || fee == models.FeePaid
	})

	// student_status: Enrolled, Active or Completed
	v.validate.RegisterValidation("student_status", func(fl validator.FieldLevel) bool {
		switch models.StudentStatus(fl.Field().String()) {
		case models.StudentEnrolled, models.StudentActive, models.StudentCompleted:
			return true
		}
		return false
	})

	// mentor_status: Active or Inactive
	v.validate.RegisterValidation("mentor_status", func(fl validator.FieldLevel) bool {
		switch models.MentorStatus(fl.Field().String()) {
		case models.MentorActive, models.MentorInactive:
			return true
		}
		return false
	})
}

func toValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	for _, fieldErr := range validationErrs {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fieldErr.Field()),
			Message: messageForTag(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}

	return errors
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "pipeline_stage":
		return "must be one of: registered, interview, placed, rejected"
	case "fee_status":
		return "must be Pending or Paid"
	case "student_status":
		return "must be Enrolled, Active or Completed"
	case "mentor_status":
		return "must be Active or Inactive"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
