package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu    sync.Mutex
	tree  []store.Node
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (f *fakeReader) GetTree(ctx context.Context) ([]store.Node, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree, f.err
}

type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) Save(ctx context.Context, cached *cache.Cached) error {
	return m.Called(ctx, cached).Error(0)
}

func (m *mockPersister) Load(ctx context.Context) (*cache.Cached, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).(*cache.Cached); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPersister) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{tree: sampleTree()}
	persister := new(mockPersister)
	persister.On("Save", ctx, mock.AnythingOfType("*cache.Cached")).Return(nil)

	svc := cache.NewService(reader, persister, zap.NewNop())
	assert.Nil(t, svc.Peek())

	cached, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Snapshot.TotalBookmarks)
	assert.False(t, cached.LastSync.IsZero())
	assert.Same(t, cached, svc.Peek())
	persister.AssertExpectations(t)
}

func TestService_RefreshReadFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{tree: sampleTree()}
	svc := cache.NewService(reader, nil, zap.NewNop())

	first, err := svc.Refresh(ctx)
	require.NoError(t, err)

	reader.mu.Lock()
	reader.err = errors.New("store offline")
	reader.mu.Unlock()

	_, err = svc.Refresh(ctx)
	assert.ErrorContains(t, err, "store offline")
	assert.Same(t, first, svc.Peek())
}

func TestService_PersistFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	persister := new(mockPersister)
	persister.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := cache.NewService(&fakeReader{tree: sampleTree()}, persister, zap.NewNop())
	cached, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestService_CurrentRestoresPersisted(t *testing.T) {
	ctx := context.Background()
	stored := &cache.Cached{Snapshot: cache.Build(sampleTree()), LastSync: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	persister := new(mockPersister)
	persister.On("Load", ctx).Return(stored, nil).Once()

	reader := &fakeReader{tree: sampleTree()}
	svc := cache.NewService(reader, persister, zap.NewNop())

	cached, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, stored, cached)
	assert.Zero(t, reader.calls.Load())

	// Held snapshot is returned without touching the persister again.
	again, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, stored, again)
	persister.AssertExpectations(t)
}

func TestService_CurrentBuildsWhenNothingPersisted(t *testing.T) {
	ctx := context.Background()
	persister := new(mockPersister)
	persister.On("Load", ctx).Return(nil, nil)
	persister.On("Save", ctx, mock.Anything).Return(nil)

	reader := &fakeReader{tree: sampleTree()}
	svc := cache.NewService(reader, persister, zap.NewNop())

	cached, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, cached.Snapshot.TotalFolders)
	assert.EqualValues(t, 1, reader.calls.Load())
}

func TestService_CurrentLoadErrorFallsBackToBuild(t *testing.T) {
	ctx := context.Background()
	persister := new(mockPersister)
	persister.On("Load", ctx).Return(nil, errors.New("corrupt"))
	persister.On("Save", ctx, mock.Anything).Return(nil)

	svc := cache.NewService(&fakeReader{tree: sampleTree()}, persister, zap.NewNop())
	cached, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Snapshot.TotalBookmarks)
}

func TestService_CurrentColdStartCollapses(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{tree: sampleTree(), delay: 50 * time.Millisecond}
	svc := cache.NewService(reader, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Current(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, reader.calls.Load())
}
