package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/domain/directory"
	"github.com/glowdesk/glowdesk/internal/platform/cache"
)

// calendarCachePrefix is shared with the calendar package: every
// appointment write drops any cached calendar projections.
const calendarCachePrefix = "calendar:"

// Service is the appointment booking engine. All writes that could
// double-book a staff member run under that staff member's lock so the
// conflict check and the insert are atomic with respect to each other.
type Service struct {
	repo     Repository
	staff    directory.StaffRepository
	services directory.ServiceRepository
	cache    cache.Cache
	locks    *staffLocks
}

func NewService(repo Repository, staff directory.StaffRepository, services directory.ServiceRepository, c cache.Cache) *Service {
	return &Service{
		repo:     repo,
		staff:    staff,
		services: services,
		cache:    c,
		locks:    newStaffLocks(),
	}
}

func (s *Service) invalidateCalendar(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, calendarCachePrefix)
	}
}

func (s *Service) validate(appt *Appointment) error {
	if appt.ClientID == uuid.Nil {
		return validationErr("client_id", "is required")
	}
	if appt.StartTime.IsZero() {
		return validationErr("start_time", "is required")
	}
	if !appt.EndTime.After(appt.StartTime) {
		return validationErr("end_time", "must be after start_time")
	}
	if !validStatuses[appt.Status] {
		return validationErr("status", "unknown status "+appt.Status)
	}
	return nil
}

// checkStaff rejects an assignment to a staff member the directory does
// not know. A nil staffID (unassigned) always passes.
func (s *Service) checkStaff(ctx context.Context, staffID *uuid.UUID) error {
	if staffID == nil || s.staff == nil {
		return nil
	}
	if _, err := s.staff.GetByID(ctx, *staffID); err != nil {
		if IsNotFound(err) {
			return validationErr("staff_id", "unknown staff member")
		}
		return err
	}
	return nil
}

// applyServiceDefaults fills end time and total price from the service
// menu when the caller left them blank.
func (s *Service) applyServiceDefaults(ctx context.Context, appt *Appointment) error {
	if s.services == nil || len(appt.ServiceIDs) == 0 {
		return nil
	}
	needEnd := appt.EndTime.IsZero() && !appt.StartTime.IsZero()
	needPrice := appt.TotalPrice == nil
	if !needEnd && !needPrice {
		return nil
	}

	var totalMinutes int
	var totalPrice float64
	for _, id := range appt.ServiceIDs {
		svc, err := s.services.GetByID(ctx, id)
		if err != nil {
			return validationErr("service_ids", "unknown service "+id.String())
		}
		totalMinutes += svc.DurationMinutes
		totalPrice += svc.Price
	}
	if needEnd {
		appt.EndTime = appt.StartTime.Add(time.Duration(totalMinutes) * time.Minute)
	}
	if needPrice {
		appt.TotalPrice = &totalPrice
	}
	return nil
}

// Create books a new appointment. The slot must be free for the assigned
// staff member unless the appointment is created already canceled or
// no-show; unassigned appointments always book.
func (s *Service) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	if appt.Status == "" {
		appt.Status = StatusPending
	}
	if err := s.applyServiceDefaults(ctx, appt); err != nil {
		return nil, err
	}
	if err := s.validate(appt); err != nil {
		return nil, err
	}
	if err := s.checkStaff(ctx, appt.StaffID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(appt.StaffID)
	defer unlock()

	if !appt.IsInert() {
		if err := s.guardSlot(ctx, appt.StaffID, appt.StartTime, appt.EndTime, nil); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return appt, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return appt, nil
}

// Update overlays the supplied patch fields on the stored appointment.
// Fields the patch leaves nil keep their current values. The conflict
// check re-runs only when the time range or staff assignment changed,
// with the appointment itself excluded.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch *Patch) (*Appointment, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appt := *existing
	if patch.ClientID != nil {
		appt.ClientID = *patch.ClientID
	}
	if patch.AssignStaff {
		appt.StaffID = patch.StaffID
	}
	if patch.StartTime != nil {
		appt.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		appt.EndTime = *patch.EndTime
	}
	if patch.ServiceIDs != nil {
		appt.ServiceIDs = patch.ServiceIDs
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	if patch.Notes != nil {
		appt.Notes = patch.Notes
	}
	if patch.TotalPrice != nil {
		appt.TotalPrice = patch.TotalPrice
	}
	if patch.DepositPaid != nil {
		appt.DepositPaid = *patch.DepositPaid
	}
	if patch.IsRecurring != nil {
		appt.IsRecurring = *patch.IsRecurring
	}

	if err := checkTransition(existing.Status, appt.Status); err != nil {
		return nil, err
	}
	if err := s.validate(&appt); err != nil {
		return nil, err
	}
	if patch.AssignStaff {
		if err := s.checkStaff(ctx, appt.StaffID); err != nil {
			return nil, err
		}
	}

	unlock := s.locks.lock(appt.StaffID)
	defer unlock()

	slotChanged := !appt.StartTime.Equal(existing.StartTime) ||
		!appt.EndTime.Equal(existing.EndTime) ||
		!sameStaff(appt.StaffID, existing.StaffID) ||
		existing.IsInert()
	if !appt.IsInert() && slotChanged {
		excludeID := appt.ID
		if err := s.guardSlot(ctx, appt.StaffID, appt.StartTime, appt.EndTime, &excludeID); err != nil {
			return nil, err
		}
	}
	if appt.Status == StatusCanceled && existing.Status != StatusCanceled {
		now := time.Now()
		appt.CanceledAt = &now
	}
	if err := s.repo.Update(ctx, &appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &appt, nil
}

func sameStaff(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Move drags an appointment to a new start time, preserving its
// duration. Conflict detection excludes the appointment itself, so
// shifting a booking within its own slot is always allowed.
func (s *Service) Move(ctx context.Context, id uuid.UUID, newStart time.Time, newStaffID *uuid.UUID) (*Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	duration := appt.Duration()
	appt.StartTime = newStart
	appt.EndTime = newStart.Add(duration)
	if newStaffID != nil {
		if err := s.checkStaff(ctx, newStaffID); err != nil {
			return nil, err
		}
		appt.StaffID = newStaffID
	}

	unlock := s.locks.lock(appt.StaffID)
	defer unlock()

	if !appt.IsInert() {
		excludeID := appt.ID
		if err := s.guardSlot(ctx, appt.StaffID, appt.StartTime, appt.EndTime, &excludeID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return appt, nil
}

// Transition moves an appointment through its status lifecycle.
// Completed, canceled and no-show accept no further transitions here;
// a completed appointment is corrected with Reopen.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, newStatus string) (*Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == newStatus {
		return appt, nil
	}
	if err := checkTransition(appt.Status, newStatus); err != nil {
		return nil, err
	}
	appt.Status = newStatus
	if newStatus == StatusCanceled {
		now := time.Now()
		appt.CanceledAt = &now
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return appt, nil
}

// Cancel marks an appointment canceled and records why. The slot frees
// immediately for other bookings.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCanceled {
		return appt, nil
	}
	if err := checkTransition(appt.Status, StatusCanceled); err != nil {
		return nil, err
	}
	now := time.Now()
	appt.Status = StatusCanceled
	appt.CanceledAt = &now
	if reason != "" {
		appt.CancellationReason = &reason
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return appt, nil
}

// Reopen corrects an appointment that was marked completed too early,
// sending it back to confirmed. Canceled and no-show stay on record; a
// canceled visit is rebooked as a new appointment instead.
func (s *Service) Reopen(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != StatusCompleted {
		return nil, validationErr("status", "only completed appointments can be reopened")
	}

	unlock := s.locks.lock(appt.StaffID)
	defer unlock()

	excludeID := appt.ID
	if err := s.guardSlot(ctx, appt.StaffID, appt.StartTime, appt.EndTime, &excludeID); err != nil {
		return nil, err
	}
	appt.Status = reopenTarget
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return appt, nil
}

// Search lists appointments matching the filter, ascending by start
// time, with the total match count for pagination.
func (s *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.Search(ctx, filter, limit, offset)
}

// ListInRange returns every appointment overlapping [start, end),
// ordered by start time. The calendar projections build on this.
func (s *Service) ListInRange(ctx context.Context, start, end time.Time) ([]*Appointment, error) {
	return s.repo.ListInRange(ctx, start, end)
}
