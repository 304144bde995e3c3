package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"roombook/pkg/logger"
	"roombook/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RoomValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRoomValidator(log *logger.Logger) *RoomValidator {
	return &RoomValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks a room aggregate, including the invariants of its embedded
// bookings: each window well-formed and no two windows overlapping.
func (v *RoomValidator) Validate(room *model.Room) error {
	if err := v.validate.Struct(room); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	for i, b := range room.Bookings {
		if !b.EndTime.After(b.StartTime) {
			return ValidationErrors{
				ValidationError{
					Field:   "Bookings",
					Message: fmt.Sprintf("booking %s: end_time must be after start_time", b.ID),
				},
			}
		}
		for _, other := range room.Bookings[i+1:] {
			if b.StartTime.Before(other.EndTime) && b.EndTime.After(other.StartTime) {
				return ValidationErrors{
					ValidationError{
						Field:   "Bookings",
						Message: fmt.Sprintf("bookings %s and %s overlap", b.ID, other.ID),
					},
				}
			}
		}
	}

	return nil
}

func (v *RoomValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
