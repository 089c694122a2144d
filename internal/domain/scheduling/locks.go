package scheduling

import (
	"sync"

	"github.com/google/uuid"
)

// staffLocks serializes conflict-check-then-write sequences per staff
// member, so two concurrent bookings for the same stylist cannot both
// pass the overlap check before either commits.
type staffLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newStaffLocks() *staffLocks {
	return &staffLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (s *staffLocks) get(staffID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[staffID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[staffID] = l
	}
	return l
}

// lock acquires the mutex for staffID and returns its unlock func.
// A nil staffID means the appointment is unassigned and needs no lock.
func (s *staffLocks) lock(staffID *uuid.UUID) func() {
	if staffID == nil {
		return func() {}
	}
	l := s.get(*staffID)
	l.Lock()
	return l.Unlock
}
