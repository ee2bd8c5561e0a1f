package validator

import (
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"
	"tutorbook/pkg/validation"
)

type BookingValidator struct {
	validate *validation.Validator
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

// Validate checks presence of teacher, date and time and that date is a real
// YYYY-MM-DD calendar date. Slot membership is checked against the teacher
// by the service.
func (v *BookingValidator) Validate(req *model.CreateBookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		v.logger.Debug("Booking request rejected", "error", err)
		return err
	}
	return nil
}
