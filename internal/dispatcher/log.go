package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntryState tracks an optimistic change until the server answers.
type EntryState string

const (
	EntryPending    EntryState = "pending"
	EntryConfirmed  EntryState = "confirmed"
	EntryRolledBack EntryState = "rolled_back"
)

const (
	defaultLogCapacity = 512
	defaultLogTTL      = 30 * time.Minute
)

// Entry is one optimistic change.
type Entry struct {
	ID        string     `json:"id"`
	Action    string     `json:"action"`
	State     EntryState `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`

	undo func()
}

// Log records optimistic changes keyed by operation id. Settled entries are
// dropped; pending ones stay until confirmed, rolled back, evicted or older
// than the TTL.
type Log struct {
	mu       sync.Mutex
	entries  map[string]*Entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewLog returns a Log holding at most capacity pending entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &Log{entries: make(map[string]*Entry), capacity: capacity, ttl: defaultLogTTL, now: time.Now}
}

// Record stores an unconfirmed change and returns its operation id.
func (l *Log) Record(action string, undo func()) string {
	id := uuid.NewString()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked()
	if len(l.entries) >= l.capacity {
		l.evictOldestLocked()
	}
	l.entries[id] = &Entry{ID: id, Action: action, State: EntryPending, CreatedAt: l.now(), undo: undo}
	return id
}

// Confirm settles the change as accepted by the server.
func (l *Log) Confirm(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[id]; !ok {
		return false
	}
	delete(l.entries, id)
	return true
}

// Rollback undoes the change and forgets it.
func (l *Log) Rollback(id string) bool {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if ok {
		delete(l.entries, id)
	}
	l.mu.Unlock()
	if !ok {
		return false
	}
	if entry.undo != nil {
		entry.undo()
	}
	return true
}

// Release drops the undo of a pending change whose state has gone out of
// scope. The entry stays listed until it is settled or expires.
func (l *Log) Release(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return false
	}
	entry.undo = nil
	return true
}

// Pending lists the unconfirmed changes, oldest first.
func (l *Log) Pending() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, Entry{ID: e.ID, Action: e.Action, State: e.State, CreatedAt: e.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (l *Log) evictOldestLocked() {
	var oldest *Entry
	for _, e := range l.entries {
		if oldest == nil || e.CreatedAt.Before(oldest.CreatedAt) {
			oldest = e
		}
	}
	if oldest != nil {
		delete(l.entries, oldest.ID)
	}
}

func (l *Log) pruneLocked() {
	cutoff := l.now().Add(-l.ttl)
	for id, e := range l.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(l.entries, id)
		}
	}
}
