package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"bookmark-manager/core/store"
)

// TreeReader reads the full bookmark tree.
type TreeReader interface {
	GetTree(ctx context.Context) ([]store.Node, error)
}

// Service holds the current snapshot.
type Service struct {
	reader    TreeReader
	persister Persister
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.RWMutex
	current *Cached

	group singleflight.Group
}

// NewService creates a snapshot service. persister may be nil.
func NewService(reader TreeReader, persister Persister, logger *zap.Logger) *Service {
	return &Service{
		reader:    reader,
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reads the full tree, rebuilds the snapshot and replaces the current one.
// On read failure the previous snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context) (*Cached, error) {
	tree, err := s.reader.GetTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("read bookmark tree: %w", err)
	}

	cached := &Cached{Snapshot: Build(tree), LastSync: s.now().UTC()}

	s.mu.Lock()
	s.current = cached
	s.mu.Unlock()

	s.logger.Debug("Snapshot rebuilt",
		zap.Int("bookmarks", cached.Snapshot.TotalBookmarks),
		zap.Int("folders", cached.Snapshot.TotalFolders))

	if s.persister != nil {
		if err := s.persister.Save(ctx, cached); err != nil {
			s.logger.Warn("Failed to persist snapshot", zap.Error(err))
		}
	}

	return cached, nil
}

// Current returns the current snapshot. When nothing is held yet it loads the
// persisted snapshot, or rebuilds from the store when none exists.
// Concurrent cold-start callers share one load.
func (s *Service) Current(ctx context.Context) (*Cached, error) {
	if cached := s.Peek(); cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("current", func() (any, error) {
		if cached := s.Peek(); cached != nil {
			return cached, nil
		}
		if cached := s.restore(ctx); cached != nil {
			return cached, nil
		}
		return s.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cached), nil
}

// Peek returns the held snapshot without loading, or nil.
func (s *Service) Peek() *Cached {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) restore(ctx context.Context) *Cached {
	if s.persister == nil {
		return nil
	}

	cached, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load persisted snapshot", zap.Error(err))
		return nil
	}
	if cached == nil || cached.Snapshot == nil {
		return nil
	}

	s.mu.Lock()
	if s.current == nil {
		s.current = cached
	}
	cached = s.current
	s.mu.Unlock()

	s.logger.Debug("Snapshot restored", zap.Time("last_sync", cached.LastSync))
	return cached
}
