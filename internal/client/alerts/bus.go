// Package alerts raises and expires the dashboard's transient notifications.
package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

// DefaultTimeout is how long an alert stays visible unless dismissed.
const DefaultTimeout = 4 * time.Second

// UnknownError is shown when an error alert is raised without text.
const UnknownError = "Unknown error occurred"

// Store is the part of store.Store the bus needs.
type Store interface {
	Dispatch(store.Action)
	State() store.State
}

type timer interface {
	Stop() bool
}

// test seams
var (
	afterFunc = func(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }
	newID     = uuid.NewString
)

// Bus adds alerts to the store and removes each one after a timeout.
type Bus struct {
	st      Store
	timeout time.Duration
	log     logging.Logger

	mu      sync.Mutex
	timers  map[string]timer
	stopped bool
}

// NewBus returns a bus writing to st. A zero or negative timeout expires
// alerts right after they are raised.
//
// The bus never holds its lock while dispatching, so store listeners may call
// back into it.
func NewBus(st Store, timeout time.Duration, log logging.Logger) *Bus {
	return &Bus{
		st:      st,
		timeout: timeout,
		log:     log.With("module", "alerts"),
		timers:  make(map[string]timer),
	}
}

// Raise shows message with the given severity and returns the alert id.
// Unknown severities are shown as info.
func (b *Bus) Raise(message string, severity models.Severity) string {
	if !severity.Valid() {
		severity = models.SeverityInfo
	}
	id := newID()

	b.st.Dispatch(store.AlertAdded{Alert: models.Alert{ID: id, Message: message, Severity: severity}})
	b.log.Debug(context.Background(), "alert raised", "id", id, "severity", string(severity))

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.stopped {
		b.timers[id] = afterFunc(max(b.timeout, 0), func() { b.expire(id) })
	}
	// the alert may already be gone if concurrent raises evicted it
	b.dropEvictedLocked()
	return id
}

// Dismiss removes the alert now. Unknown or already expired ids are ignored.
func (b *Bus) Dismiss(id string) {
	b.mu.Lock()
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
	b.mu.Unlock()

	b.st.Dispatch(store.AlertRemoved{ID: id})
}

// Error raises an error alert, falling back to UnknownError on empty text.
func (b *Bus) Error(message string) string {
	if message == "" {
		message = UnknownError
	}
	return b.Raise(message, models.SeverityError)
}

func (b *Bus) Success(message string) string {
	return b.Raise(message, models.SeveritySuccess)
}

func (b *Bus) Info(message string) string {
	return b.Raise(message, models.SeverityInfo)
}

func (b *Bus) Warning(message string) string {
	return b.Raise(message, models.SeverityWarning)
}

// Stop cancels every pending expiry. Alerts raised afterwards never expire.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	b.stopped = true
}

// Pending returns the number of scheduled expiries.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers)
}

func (b *Bus) expire(id string) {
	b.mu.Lock()
	_, ok := b.timers[id]
	delete(b.timers, id)
	b.mu.Unlock()

	if !ok {
		// dismissed or evicted already
		return
	}
	b.st.Dispatch(store.AlertRemoved{ID: id})
}

// dropEvictedLocked stops timers of alerts the reducer pushed out.
func (b *Bus) dropEvictedLocked() {
	if len(b.timers) == 0 {
		return
	}
	live := make(map[string]struct{}, store.MaxAlerts)
	for _, a := range b.st.State().Alerts {
		live[a.ID] = struct{}{}
	}
	for id, t := range b.timers {
		if _, ok := live[id]; !ok {
			t.Stop()
			delete(b.timers, id)
		}
	}
}
