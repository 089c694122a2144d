package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FindConflicts returns the active appointments that would double-book
// staffID over [start, end). Ranges touching only at an endpoint do not
// conflict. excludeID skips a specific appointment, used when an
// existing booking re-checks its own (possibly moved) slot.
//
// A nil staffID never conflicts: unassigned appointments hold no
// staff time.
func (s *Service) FindConflicts(ctx context.Context, staffID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	if staffID == nil {
		return nil, nil
	}
	return s.repo.FindOverlapping(ctx, *staffID, start, end, excludeID)
}

// CheckAvailability reports whether [start, end) is free for staffID and
// lists the appointments occupying it when it is not.
func (s *Service) CheckAvailability(ctx context.Context, staffID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, []ConflictRef, error) {
	if !end.After(start) {
		return false, nil, validationErr("end_time", "must be after start_time")
	}
	conflicts, err := s.FindConflicts(ctx, staffID, start, end, excludeID)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, toConflictRefs(conflicts), nil
}

// guardSlot rejects with a ConflictError when [start, end) is already
// booked for staffID. Callers must hold the staff lock.
func (s *Service) guardSlot(ctx context.Context, staffID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	conflicts, err := s.FindConflicts(ctx, staffID, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicting: conflicts}
	}
	return nil
}
