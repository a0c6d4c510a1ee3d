package service

import "sync"

// TicketLocks serializes mutations per ticket identifier so concurrent
// update calls against the same ticket cannot interleave. Reads stay
// lock-free.
type TicketLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTicketLocks creates an empty lock table.
func NewTicketLocks() *TicketLocks {
	return &TicketLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given ticket and returns its unlock
// function. Lock entries are never removed; the ticket ID space is small
// and bounded by the store.
func (l *TicketLocks) Lock(ticketID string) func() {
	l.mu.Lock()
	lock, exists := l.locks[ticketID]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[ticketID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
