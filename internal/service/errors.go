package service

import "errors"

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidInterval = errors.New("interval start must be before end")
	ErrInvalidDay      = errors.New("day of week must be between 0 and 6")
	ErrSlotTaken       = errors.New("slot is already taken")
	ErrMissingRequired = errors.New("required field is missing")
)
