// Package store defines the contract of the external bookmark store.
//
// The store owns a mutable hierarchy of folder and link nodes anchored by
// exactly two permanent root containers. Everything else in the application
// only ever holds copies of its nodes.
//
// # Node Types
//
// A Node is a folder if its Children slice is non-nil (even when empty) and a
// link if its URL is set. GetTree returns the two root containers as the
// top-level nodes with all descendants nested below them.
//
// # Change Notifications
//
// Implementations embed a Dispatcher and emit one Event per mutation:
//
//	sub := s.Subscribe(store.EventCreated, func(ev store.Event) {
//	    fmt.Println("created", ev.ID)
//	})
//	defer sub.Unsubscribe()
//
// Events are delivered synchronously after the mutation has completed and
// after the store has released its own locks, so handlers may read the store.
//
// # Implementations
//
//   - memstore: in-memory, used for tests and ephemeral runs.
//   - gormstore: persistent, backed by a GORM database (sqlite or mysql).
package store
