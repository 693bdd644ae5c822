package service

import (
	"sync"

	"github.com/google/uuid"
)

// mentorLocks serializes capacity and rating mutations per mentor. The
// read-modify-write on a mentor row (load, AddMentee/RecordSessionFeedback,
// save) must not interleave for the same mentor, or concurrent selections
// could push the mentor past capacity.
type mentorLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// newMentorLocks creates an empty lock table.
func newMentorLocks() *mentorLocks {
	return &mentorLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given mentor, creating it on first use.
// Locks are never evicted; the table grows with the number of distinct
// mentors touched, which is bounded by the mentor pool size.
func (l *mentorLocks) Lock(mentorID uuid.UUID) {
	l.mu.Lock()
	lock, ok := l.locks[mentorID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[mentorID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
}

// Unlock releases the mutex for the given mentor.
func (l *mentorLocks) Unlock(mentorID uuid.UUID) {
	l.mu.Lock()
	lock, ok := l.locks[mentorID]
	l.mu.Unlock()

	if ok {
		lock.Unlock()
	}
}
