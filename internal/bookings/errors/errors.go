package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken is returned when the (teacher, date, time) unique index
	// rejects an insert.
	ErrSlotTaken = errors.New("slot already booked")
)
