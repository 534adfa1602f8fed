package gormstore_test

import (
	"context"
	"testing"

	"bookmark-manager/core/database"
	"bookmark-manager/core/store"
	"bookmark-manager/core/store/gormstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testConfig = store.Config{PrimaryTitle: "Bookmarks Bar", SecondaryTitle: "Other Bookmarks"}

func setupStore(t *testing.T) *gormstore.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	s := gormstore.New(db, zap.NewNop(), testConfig)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestMigrate_SeedsRoots(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	// Migrating twice must not duplicate the roots.
	require.NoError(t, s.Migrate(ctx))

	tree, err := s.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "1", tree[0].ID)
	assert.Equal(t, "Bookmarks Bar", tree[0].Title)
	assert.Equal(t, "2", tree[1].ID)
	assert.True(t, tree[1].IsFolder())
}

func TestStore_CreateGetChildren(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	work, err := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Work"})
	require.NoError(t, err)
	first, err := s.Create(ctx, store.CreateRequest{ParentID: work.ID, Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)
	zero := 0
	second, err := s.Create(ctx, store.CreateRequest{ParentID: work.ID, Title: "Docs", URL: "https://pkg.go.dev", Index: &zero})
	require.NoError(t, err)

	children, err := s.GetChildren(ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, second.ID, children[0].ID)
	assert.Equal(t, first.ID, children[1].ID)
	assert.Equal(t, 1, children[1].Index)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.URL)
	assert.Equal(t, work.ID, got.ParentID)

	tree, err := s.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree[0].Children, 1)
	assert.Len(t, tree[0].Children[0].Children, 2)
}

func TestStore_Errors(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	link, err := s.Create(ctx, store.CreateRequest{ParentID: "2", Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "999")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Get(ctx, "not-a-number")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Create(ctx, store.CreateRequest{ParentID: link.ID, Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFolder)

	_, err = s.Create(ctx, store.CreateRequest{ParentID: "2", Title: "bad", URL: "nope"})
	assert.ErrorIs(t, err, store.ErrInvalidURL)

	assert.ErrorIs(t, s.RemoveTree(ctx, "1"), store.ErrProtected)
	_, err = s.Move(ctx, "2", store.MoveRequest{ParentID: "1"})
	assert.ErrorIs(t, err, store.ErrProtected)
}

func TestStore_RemoveTree(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	folder, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Work"})
	sub, _ := s.Create(ctx, store.CreateRequest{ParentID: folder.ID, Title: "Sub"})
	_, _ = s.Create(ctx, store.CreateRequest{ParentID: sub.ID, Title: "Go", URL: "https://go.dev"})
	sibling, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Sibling", URL: "https://example.com"})

	assert.ErrorIs(t, s.Remove(ctx, folder.ID), store.ErrNotEmpty)

	var removed store.RemoveInfo
	s.Subscribe(store.EventRemoved, func(ev store.Event) {
		removed = ev.Payload.(store.RemoveInfo)
	})

	require.NoError(t, s.RemoveTree(ctx, folder.ID))
	assert.Equal(t, "1", removed.ParentID)
	assert.Len(t, removed.Node.Children, 1)

	tree, err := s.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, sibling.ID, tree[0].Children[0].ID)
	assert.Equal(t, 0, tree[0].Children[0].Index)

	_, err = s.Get(ctx, sub.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_MoveAndUpdate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	parent, _ := s.Create(ctx, store.CreateRequest{ParentID: "1", Title: "Parent"})
	child, _ := s.Create(ctx, store.CreateRequest{ParentID: parent.ID, Title: "Child"})

	_, err := s.Move(ctx, parent.ID, store.MoveRequest{ParentID: child.ID})
	assert.ErrorIs(t, err, store.ErrCycle)

	var info store.MoveInfo
	s.Subscribe(store.EventMoved, func(ev store.Event) { info = ev.Payload.(store.MoveInfo) })

	moved, err := s.Move(ctx, child.ID, store.MoveRequest{ParentID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", moved.ParentID)
	assert.Equal(t, parent.ID, info.OldParentID)
	assert.Equal(t, "2", info.ParentID)

	title := "Renamed"
	updated, err := s.Update(ctx, child.ID, store.UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	got, err := s.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestStore_QueryFailure(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	sqlMock.ExpectQuery(".*").WillReturnError(assert.AnError)

	s := gormstore.New(db, zap.NewNop(), testConfig)
	_, err = s.GetTree(context.Background())
	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
