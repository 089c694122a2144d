package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/pkg/timeutil"
)

// Appointment statuses. Canceled, no-show and completed are terminal;
// completed can be reopened, the other two stay inert on record.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
	StatusNoShow     = "no-show"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusCheckedIn:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCanceled:   true,
	StatusNoShow:     true,
}

// Appointment is a booked block of time for a client, optionally assigned
// to a staff member. Unassigned appointments sit on the waitlist column
// and never participate in conflict detection.
type Appointment struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	ClientID           uuid.UUID   `db:"client_id" json:"client_id"`
	StaffID            *uuid.UUID  `db:"staff_id" json:"staff_id,omitempty"`
	ServiceIDs         []uuid.UUID `db:"service_ids" json:"service_ids"`
	StartTime          time.Time   `db:"start_time" json:"start_time"`
	EndTime            time.Time   `db:"end_time" json:"end_time"`
	Status             string      `db:"status" json:"status"`
	Notes              *string     `db:"notes" json:"notes,omitempty"`
	TotalPrice         *float64    `db:"total_price" json:"total_price,omitempty"`
	DepositPaid        bool        `db:"deposit_paid" json:"deposit_paid"`
	IsRecurring        bool        `db:"is_recurring" json:"is_recurring"`
	HasUnreadMessages  bool        `db:"has_unread_messages" json:"has_unread_messages"`
	CancellationReason *string     `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CanceledAt         *time.Time  `db:"canceled_at" json:"canceled_at,omitempty"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// Patch carries the fields of an update request. Nil fields keep the
// stored value. The staff assignment is itself nullable, so AssignStaff
// marks that StaffID (possibly nil, meaning unassign) replaces the
// current one.
type Patch struct {
	ClientID    *uuid.UUID
	AssignStaff bool
	StaffID     *uuid.UUID
	StartTime   *time.Time
	EndTime     *time.Time
	ServiceIDs  []uuid.UUID
	Status      *string
	Notes       *string
	TotalPrice  *float64
	DepositPaid *bool
	IsRecurring *bool
}

// Interval returns the appointment's booked time range.
func (a *Appointment) Interval() timeutil.Interval {
	return timeutil.Interval{Start: a.StartTime, End: a.EndTime}
}

// Duration returns the booked length of the appointment.
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// IsInert reports whether the appointment no longer holds its time slot.
// Canceled and no-show appointments stay on record but never conflict.
func (a *Appointment) IsInert() bool {
	return a.Status == StatusCanceled || a.Status == StatusNoShow
}

// IsTerminal reports whether the appointment accepts no further normal
// transitions. Completed can still be corrected via Reopen.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCanceled || a.Status == StatusNoShow
}

// ConflictRef is the compact appointment reference returned in conflict
// responses and availability checks.
type ConflictRef struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func toConflictRefs(appts []*Appointment) []ConflictRef {
	refs := make([]ConflictRef, 0, len(appts))
	for _, a := range appts {
		refs = append(refs, ConflictRef{ID: a.ID, StartTime: a.StartTime, EndTime: a.EndTime})
	}
	return refs
}
