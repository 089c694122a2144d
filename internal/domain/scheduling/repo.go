package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SearchFilter narrows appointment listings. All fields are optional and
// combine with AND.
type SearchFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  *uuid.UUID
	StaffID   *uuid.UUID
	Status    string
}

// Repository is the appointment store. Rows are never deleted; a
// cancellation is a status write, keeping history for reporting.
// FindOverlapping drives conflict detection: it returns active
// appointments for the given staff member whose booked range overlaps
// [start, end), excluding excludeID when the caller is re-checking its
// own slot.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Appointment, int, error)
	FindOverlapping(ctx context.Context, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*Appointment, error)
}
