package store

import (
	"sync"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// Listener receives a snapshot after every dispatch.
type Listener func(State)

// Store owns the current State and serializes transitions.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New returns a store seeded with initial.
func New(initial State) *Store {
	return &Store{
		state:     initial.clone(),
		listeners: make(map[int]Listener),
	}
}

// Dispatch applies a and notifies subscribers.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snap, ls := s.snapshotLocked()
	s.mu.Unlock()

	notify(ls, snap)
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
// Listeners run on the dispatching goroutine, outside the store lock, so they
// may dispatch themselves.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// RemoveDeposit optimistically removes the record with the given id and
// returns a Removal to resolve once the backend answers. It reports false and
// changes nothing when no such record exists.
func (s *Store) RemoveDeposit(id int64) (*Removal, bool) {
	s.mu.Lock()
	d, ok := s.state.Deposits.Find(id)
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	s.state = Reduce(s.state, DepositDeleteStarted{ID: id})
	snap, ls := s.snapshotLocked()
	s.mu.Unlock()

	notify(ls, snap)
	return &Removal{store: s, deposit: d}, true
}

func (s *Store) snapshotLocked() (State, []Listener) {
	if len(s.listeners) == 0 {
		return State{}, nil
	}
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return s.state.clone(), ls
}

func notify(ls []Listener, snap State) {
	for _, l := range ls {
		// each listener gets its own copy
		l(snap.clone())
	}
}

// Removal is a pending optimistic delete.
type Removal struct {
	store   *Store
	deposit models.Deposit
	once    sync.Once
}

// Deposit returns the record that was removed.
func (r *Removal) Deposit() models.Deposit {
	return r.deposit
}

// Commit finalizes the removal. Only the first of Commit and Rollback has
// any effect.
func (r *Removal) Commit() {
	r.once.Do(func() {
		r.store.Dispatch(DepositDeleteSucceeded{ID: r.deposit.ID})
	})
}

// Rollback reinserts the removed record at the front of the list.
func (r *Removal) Rollback() {
	r.once.Do(func() {
		r.store.Dispatch(DepositDeleteFailed{Deposit: r.deposit})
	})
}
