package scheduling

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCheckedIn, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCheckedIn, StatusInProgress, true},
		{StatusCheckedIn, StatusCompleted, true},
		{StatusCheckedIn, StatusNoShow, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCanceled, true},
		{StatusInProgress, StatusNoShow, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusNoShow, StatusCompleted, false},
		{StatusPending, StatusPending, true},
		{StatusCanceled, StatusCanceled, true},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCheckTransition_UnknownStatus(t *testing.T) {
	if err := checkTransition(StatusPending, "archived"); !IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestIsInert(t *testing.T) {
	for status, inert := range map[string]bool{
		StatusPending:    false,
		StatusConfirmed:  false,
		StatusCheckedIn:  false,
		StatusInProgress: false,
		StatusCompleted:  false,
		StatusCanceled:   true,
		StatusNoShow:     true,
	} {
		a := &Appointment{Status: status}
		if a.IsInert() != inert {
			t.Errorf("IsInert() for %s = %v, want %v", status, a.IsInert(), inert)
		}
	}
}
