package memstore_test

import (
	"context"
	"testing"

	"bookmark-manager/core/store"
	"bookmark-manager/core/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *memstore.Store {
	return memstore.New("Bookmarks Bar", "Other Bookmarks")
}

func TestStore_RootsAndEmptyTree(t *testing.T) {
	s := newStore()
	primary, secondary := s.Roots()
	assert.Equal(t, "1", primary)
	assert.Equal(t, "2", secondary)

	tree, err := s.GetTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Bookmarks Bar", tree[0].Title)
	assert.True(t, tree[0].IsFolder())
	assert.Empty(t, tree[0].Children)
	assert.Equal(t, "Other Bookmarks", tree[1].Title)
}

func TestStore_CreateAndTree(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	work, err := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Work"})
	require.NoError(t, err)
	assert.True(t, work.IsFolder())

	link, err := s.Create(ctx, store.CreateRequest{ParentID: work.ID, Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)
	assert.True(t, link.IsLink())
	assert.Equal(t, work.ID, link.ParentID)

	tree, err := s.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "https://go.dev", tree[0].Children[0].Children[0].URL)

	children, err := s.GetChildren(ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, link.ID, children[0].ID)
}

func TestStore_CreateAtIndex(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	a, _ := s.Create(ctx, store.CreateRequest{ParentID: "2", Title: "a", URL: "https://a.example"})
	b, _ := s.Create(ctx, store.CreateRequest{ParentID: "2", Title: "b", URL: "https://b.example"})
	zero := 0
	c, err := s.Create(ctx, store.CreateRequest{ParentID: "2", Title: "c", URL: "https://c.example", Index: &zero})
	require.NoError(t, err)

	children, err := s.GetChildren(ctx, "2")
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{children[0].ID, children[1].ID, children[2].ID})
	assert.Equal(t, 2, children[2].Index)
}

func TestStore_CreateErrors(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	link, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Go", URL: "https://go.dev"})

	_, err := s.Create(ctx, store.CreateRequest{ParentID: "99", Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Create(ctx, store.CreateRequest{ParentID: link.ID, Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFolder)

	_, err = s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "bad", URL: "not a url"})
	assert.ErrorIs(t, err, store.ErrInvalidURL)
}

func TestStore_RemoveAndRemoveTree(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	folder, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Work"})
	_, _ = s.Create(ctx, store.CreateRequest{ParentID: folder.ID, Title: "Go", URL: "https://go.dev"})

	err := s.Remove(ctx, folder.ID)
	assert.ErrorIs(t, err, store.ErrNotEmpty)

	require.NoError(t, s.RemoveTree(ctx, folder.ID))
	_, err = s.Get(ctx, folder.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.RemoveTree(ctx, "1"), store.ErrProtected)
	assert.ErrorIs(t, s.Remove(ctx, "2"), store.ErrProtected)
	assert.ErrorIs(t, s.Remove(ctx, "404"), store.ErrNotFound)
}

func TestStore_Move(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	parent, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Parent"})
	child, _ := s.Create(ctx, store.CreateRequest{ParentID: parent.ID, Title: "Child"})

	moved, err := s.Move(ctx, child.ID, store.MoveRequest{ParentID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", moved.ParentID)

	_, err = s.Move(ctx, parent.ID, store.MoveRequest{ParentID: parent.ID})
	assert.ErrorIs(t, err, store.ErrCycle)

	_, err = s.Move(ctx, "1", store.MoveRequest{ParentID: "2"})
	assert.ErrorIs(t, err, store.ErrProtected)
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	folder, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Old"})

	title := "New"
	updated, err := s.Update(ctx, folder.ID, store.UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	url := "https://example.com"
	_, err = s.Update(ctx, folder.ID, store.UpdateRequest{URL: &url})
	assert.ErrorIs(t, err, store.ErrInvalidURL)
}

func TestStore_Notifications(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	var kinds []store.EventKind

	for _, kind := range store.EventKinds {
		s.Subscribe(kind, func(ev store.Event) {
			kinds = append(kinds, ev.Kind)
			// Handlers run after the store lock is released.
			_, err := s.GetTree(ctx)
			assert.NoError(t, err)
		})
	}

	folder, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Work"})
	title := "Renamed"
	_, _ = s.Update(ctx, folder.ID, store.UpdateRequest{Title: &title})
	_, _ = s.Move(ctx, folder.ID, store.MoveRequest{ParentID: "2"})
	_ = s.RemoveTree(ctx, folder.ID)

	assert.Equal(t, []store.EventKind{store.EventCreated, store.EventChanged, store.EventMoved, store.EventRemoved}, kinds)
}
