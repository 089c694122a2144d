package scheduling

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when an appointment lookup misses.
var ErrNotFound = errors.New("appointment not found")

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError is returned when a write would double-book a staff member.
// Conflicting holds the appointments already occupying the requested slot.
type ConflictError struct {
	Conflicting []*Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot conflicts with %d existing appointment(s)", len(e.Conflicting))
}

// IsConflict reports whether err is a double-booking rejection.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is a rejected request field.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err means the appointment does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
