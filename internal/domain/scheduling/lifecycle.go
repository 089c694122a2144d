package scheduling

import "fmt"

// allowedTransitions maps each status to the statuses it may move to via
// a normal transition. Completed, canceled and no-show have no outgoing
// edges; completed is only left through Reopen.
var allowedTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCheckedIn: true,
		StatusCanceled:  true,
		StatusNoShow:    true,
	},
	StatusConfirmed: {
		StatusCheckedIn:  true,
		StatusInProgress: true,
		StatusCompleted:  true,
		StatusCanceled:   true,
		StatusNoShow:     true,
	},
	StatusCheckedIn: {
		StatusInProgress: true,
		StatusCompleted:  true,
		StatusCanceled:   true,
		StatusNoShow:     true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusCanceled:  true,
	},
	StatusCompleted: {},
	StatusCanceled:  {},
	StatusNoShow:    {},
}

// CanTransition reports whether an appointment may move from one status
// to another. A same-status transition is always allowed as a no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return allowedTransitions[from][to]
}

func checkTransition(from, to string) error {
	if !validStatuses[to] {
		return validationErr("status", fmt.Sprintf("unknown status %q", to))
	}
	if !CanTransition(from, to) {
		return validationErr("status", fmt.Sprintf("cannot transition from %s to %s", from, to))
	}
	return nil
}

// reopenTarget is where a completed appointment lands when reopened: the
// slot becomes active again as a confirmed booking.
const reopenTarget = StatusConfirmed
