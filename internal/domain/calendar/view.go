package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/domain/scheduling"
)

// Entry is an appointment positioned on a calendar grid. SlotOffset is
// how many slots past the day window's start the booking begins, and
// SlotSpan how many slots it covers, rounded up.
type Entry struct {
	ID         uuid.UUID   `json:"id"`
	ClientID   uuid.UUID   `json:"client_id"`
	StaffID    *uuid.UUID  `json:"staff_id,omitempty"`
	ServiceIDs []uuid.UUID `json:"service_ids,omitempty"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Status     string      `json:"status"`
	SlotOffset int         `json:"slot_offset"`
	SlotSpan   int         `json:"slot_span"`
}

// StaffColumn is one stylist's lane in the day view.
type StaffColumn struct {
	StaffID      uuid.UUID `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
	Color        *string   `json:"color,omitempty"`
	Appointments []Entry   `json:"appointments"`
}

// DayView lays a single day out as staff columns over a slotted time
// window. Appointments without a staff assignment land in Unassigned.
type DayView struct {
	Date        string        `json:"date"`
	WindowStart string        `json:"window_start"`
	WindowEnd   string        `json:"window_end"`
	SlotMinutes int           `json:"slot_minutes"`
	Columns     []StaffColumn `json:"columns"`
	Unassigned  []Entry       `json:"unassigned"`
}

// WeekDay is one day inside a week view.
type WeekDay struct {
	Date         string  `json:"date"`
	Appointments []Entry `json:"appointments"`
}

// WeekView shows one staff member's Monday-to-Sunday week.
type WeekView struct {
	WeekStart   string    `json:"week_start"`
	StaffID     uuid.UUID `json:"staff_id"`
	StaffName   string    `json:"staff_name"`
	SlotMinutes int       `json:"slot_minutes"`
	Days        []WeekDay `json:"days"`
}

// MonthDay is one cell of the month grid. Preview holds at most three
// appointments; OverflowCount says how many more the cell hides.
type MonthDay struct {
	Date          string  `json:"date"`
	InMonth       bool    `json:"in_month"`
	Preview       []Entry `json:"preview"`
	OverflowCount int     `json:"overflow_count"`
	Total         int     `json:"total"`
}

// MonthView is a whole-week-padded grid: it always starts on a Monday on
// or before the 1st and ends on a Sunday on or after the last day.
type MonthView struct {
	Month string       `json:"month"`
	Weeks [][]MonthDay `json:"weeks"`
}

const previewLimit = 3

// toEntry positions an appointment against a day window starting at
// windowStart with slotMinutes-wide slots. Bookings before the window
// clamp to offset 0.
func toEntry(a *scheduling.Appointment, windowStart time.Time, slotMinutes int) Entry {
	offset := int(a.StartTime.Sub(windowStart).Minutes()) / slotMinutes
	if offset < 0 {
		offset = 0
	}
	span := (int(a.EndTime.Sub(a.StartTime).Minutes()) + slotMinutes - 1) / slotMinutes
	if span < 1 {
		span = 1
	}
	return Entry{
		ID:         a.ID,
		ClientID:   a.ClientID,
		StaffID:    a.StaffID,
		ServiceIDs: a.ServiceIDs,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Status:     a.Status,
		SlotOffset: offset,
		SlotSpan:   span,
	}
}
