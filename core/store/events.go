package store

import (
	"sync"
)

// EventKind is one of the four change notification kinds.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventRemoved EventKind = "removed"
	EventChanged EventKind = "changed"
	EventMoved   EventKind = "moved"
)

// EventKinds lists every notification kind.
var EventKinds = []EventKind{EventCreated, EventRemoved, EventChanged, EventMoved}

// Event is a change notification. Payload is opaque to consumers and is
// forwarded untouched.
type Event struct {
	Kind    EventKind
	ID      string
	Payload any
}

// RemoveInfo is the payload of EventRemoved.
type RemoveInfo struct {
	ParentID string `json:"parentId"`
	Index    int    `json:"index"`
	Node     Node   `json:"node"`
}

// ChangeInfo is the payload of EventChanged.
type ChangeInfo struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// MoveInfo is the payload of EventMoved.
type MoveInfo struct {
	ParentID    string `json:"parentId"`
	Index       int    `json:"index"`
	OldParentID string `json:"oldParentId"`
	OldIndex    int    `json:"oldIndex"`
}

// Handler receives change notifications.
type Handler func(Event)

// Subscription is a handle returned by Subscribe.
type Subscription interface {
	Unsubscribe()
}

// Notifier registers change notification handlers.
type Notifier interface {
	Subscribe(kind EventKind, h Handler) Subscription
}

// Dispatcher is an embeddable Notifier implementation.
type Dispatcher struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventKind][]handlerEntry
}

type handlerEntry struct {
	id int
	h  Handler
}

type subscription struct {
	d    *Dispatcher
	kind EventKind
	id   int
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.d.remove(s.kind, s.id)
	})
}

// Subscribe registers h for events of the given kind.
func (d *Dispatcher) Subscribe(kind EventKind, h Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handlers == nil {
		d.handlers = make(map[EventKind][]handlerEntry)
	}
	d.nextID++
	d.handlers[kind] = append(d.handlers[kind], handlerEntry{id: d.nextID, h: h})
	return &subscription{d: d, kind: kind, id: d.nextID}
}

// Emit delivers ev to every handler of its kind, in subscription order.
// It must not be called while holding a store lock.
func (d *Dispatcher) Emit(ev Event) {
	d.mu.RLock()
	entries := make([]handlerEntry, len(d.handlers[ev.Kind]))
	copy(entries, d.handlers[ev.Kind])
	d.mu.RUnlock()

	for _, e := range entries {
		e.h(ev)
	}
}

// Subscribers returns the number of handlers registered for kind.
func (d *Dispatcher) Subscribers(kind EventKind) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[kind])
}

func (d *Dispatcher) remove(kind EventKind, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := d.handlers[kind]
	for i, e := range entries {
		if e.id == id {
			d.handlers[kind] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}
