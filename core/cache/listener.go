package cache

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"bookmark-manager/core/store"
)

// ErrListenerStarted is returned by Start when the listener is already running.
var ErrListenerStarted = errors.New("cache listener already started")

// Refresher rebuilds the snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (*Cached, error)
}

// Refreshed is published after a change-triggered rebuild.
type Refreshed struct {
	Action  store.EventKind `json:"action"`
	ID      string          `json:"id"`
	Payload any             `json:"payload,omitempty"`
	Cache   *Cached         `json:"cache"`
}

// Publisher receives refreshed notifications.
type Publisher interface {
	Publish(Refreshed)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Refreshed)

// Publish calls f(r).
func (f PublisherFunc) Publish(r Refreshed) { f(r) }

// Listener rebuilds the snapshot on every store change.
type Listener struct {
	notifier  store.Notifier
	refresher Refresher
	publisher Publisher
	logger    *zap.Logger

	mu   sync.Mutex
	subs []store.Subscription
}

// NewListener creates a listener. publisher may be nil.
func NewListener(notifier store.Notifier, refresher Refresher, publisher Publisher, logger *zap.Logger) *Listener {
	return &Listener{
		notifier:  notifier,
		refresher: refresher,
		publisher: publisher,
		logger:    logger,
	}
}

// Start subscribes to all change kinds.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.subs != nil {
		return ErrListenerStarted
	}

	for _, kind := range store.EventKinds {
		l.subs = append(l.subs, l.notifier.Subscribe(kind, l.handle))
	}

	l.logger.Info("Cache listener started", zap.Int("subscriptions", len(l.subs)))
	return nil
}

// Stop removes all subscriptions. It is safe to call more than once.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, sub := range l.subs {
		sub.Unsubscribe()
	}
	if l.subs != nil {
		l.logger.Info("Cache listener stopped")
	}
	l.subs = nil
}

// Running reports whether the listener holds subscriptions.
func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subs != nil
}

func (l *Listener) handle(ev store.Event) {
	cached, err := l.refresher.Refresh(context.Background())
	if err != nil {
		l.logger.Error("Snapshot rebuild failed",
			zap.String("action", string(ev.Kind)),
			zap.String("id", ev.ID),
			zap.Error(err))
		return
	}

	if l.publisher != nil {
		l.publisher.Publish(Refreshed{
			Action:  ev.Kind,
			ID:      ev.ID,
			Payload: ev.Payload,
			Cache:   cached,
		})
	}
}
