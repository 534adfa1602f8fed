package bookmarks

import (
	"sync"
	"time"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/store"
)

// hubBuffer is the per-subscriber queue length. Slow subscribers drop events.
const hubBuffer = 16

// Notice is the client-facing form of a cache refresh.
type Notice struct {
	Action         store.EventKind `json:"action"`
	ID             string          `json:"id"`
	Payload        any             `json:"payload,omitempty"`
	TotalBookmarks int             `json:"totalBookmarks"`
	TotalFolders   int             `json:"totalFolders"`
	LastSync       time.Time       `json:"lastSync"`
}

// Hub fans cache refresh notifications out to connected clients.
// It implements cache.Publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Notice
	next   int
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Notice)}
}

// Publish delivers r to every subscriber without blocking.
func (h *Hub) Publish(r cache.Refreshed) {
	notice := Notice{Action: r.Action, ID: r.ID, Payload: r.Payload}
	if r.Cache != nil && r.Cache.Snapshot != nil {
		notice.TotalBookmarks = r.Cache.Snapshot.TotalBookmarks
		notice.TotalFolders = r.Cache.Snapshot.TotalFolders
		notice.LastSync = r.Cache.LastSync
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- notice:
		default:
		}
	}
}

// Subscribe registers a subscriber. The returned cancel func is idempotent.
func (h *Hub) Subscribe() (<-chan Notice, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Notice, hubBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, exists := h.subs[id]; exists {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.closed = true
}
