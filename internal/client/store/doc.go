// Package store holds the dashboard's application state and the pure
// reducers that transition it.
//
// # Model
//
// State has three slices: Auth (current user and auth in-flight flags),
// Alerts (at most MaxAlerts transient notifications, oldest first) and
// Deposits (the record list, pagination cursor and per-operation flags).
// Every change is expressed as an Action value and applied by Reduce, which
// never mutates its input.
//
// # Store
//
// Store serializes Dispatch calls with a mutex, so transitions are totally
// ordered even when several service calls overlap in time. State returns a
// deep copy; subscribers receive a copy after each dispatch.
//
// # Optimistic removal
//
// RemoveDeposit drops a record immediately and returns a Removal. The caller
// resolves it exactly once: Commit after the backend confirms, Rollback to
// put the original record back at the front of the list.
package store
