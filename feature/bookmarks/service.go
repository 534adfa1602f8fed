package bookmarks

import (
	"context"
	"strings"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/cache"
	"bookmark-manager/core/chromium"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/safari"
	"bookmark-manager/core/store"

	"go.uber.org/zap"
)

// Browser bookmark file formats accepted by ImportRaw.
const (
	FormatChromium = chromium.Format
	FormatSafari   = safari.Format
)

// Service implements the bookmark actions on top of the store, the cache and
// the reconciler. Single-item actions validate before touching the store and
// fail on the first error.
type Service struct {
	store      store.Store
	snapshots  *cache.Service
	reconciler *reconcile.Reconciler
	roots      reconcile.RootMap
	sentinels  reconcile.Config
	logger     *zap.Logger
}

// NewService creates a new bookmarks service.
func NewService(s store.Store, snapshots *cache.Service, reconciler *reconcile.Reconciler, sentinels reconcile.Config, logger *zap.Logger) *Service {
	primary, secondary := s.Roots()
	return &Service{
		store:      s,
		snapshots:  snapshots,
		reconciler: reconciler,
		roots:      reconcile.NewRootMap(sentinels.PrimarySentinel, primary, sentinels.SecondarySentinel, secondary),
		sentinels:  sentinels,
		logger:     logger,
	}
}

// GetCache returns the current snapshot, loading it on first use.
func (s *Service) GetCache(ctx context.Context) (*cache.Cached, error) {
	cached, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, apperr.Store("bookmarks.cache", err)
	}
	return cached, nil
}

// RefreshCache forces a rebuild.
func (s *Service) RefreshCache(ctx context.Context) (*cache.Cached, error) {
	cached, err := s.snapshots.Refresh(ctx)
	if err != nil {
		return nil, apperr.Store("bookmarks.refresh", err)
	}
	return cached, nil
}

// Import replaces both roots with the bundle.
func (s *Service) Import(ctx context.Context, bundle *reconcile.Bundle) (*reconcile.Result, error) {
	return s.reconciler.Import(ctx, bundle)
}

// ImportRaw decodes data as a json or yaml bundle, or a browser bookmarks
// file, and imports it.
func (s *Service) ImportRaw(ctx context.Context, data []byte, format string) (*reconcile.Result, error) {
	var (
		bundle *reconcile.Bundle
		err    error
	)
	switch format {
	case FormatChromium:
		bundle, err = chromium.Parse(data, s.sentinels)
	case FormatSafari:
		bundle, err = safari.Parse(data, s.sentinels)
	default:
		bundle, err = reconcile.DecodeBundle(data, format)
	}
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, bundle)
}

// Export renders the store as a bundle.
func (s *Service) Export(ctx context.Context) (*reconcile.Bundle, error) {
	tree, err := s.store.GetTree(ctx)
	if err != nil {
		return nil, apperr.Store("bookmarks.export", err)
	}
	return reconcile.Export(tree, s.roots), nil
}

// DeleteBookmark removes a single link.
func (s *Service) DeleteBookmark(ctx context.Context, id string) error {
	const op = "bookmarks.deleteBookmark"

	node, err := s.lookup(ctx, op, id)
	if err != nil {
		return err
	}
	if !node.IsLink() {
		return apperr.TypeMismatch(op, id, "bookmark")
	}
	return classify(op, id, s.store.Remove(ctx, id))
}

// MoveBookmark moves a link or folder under parentID. A nil index appends.
func (s *Service) MoveBookmark(ctx context.Context, id, parentID string, index *int) (store.Node, error) {
	const op = "bookmarks.moveBookmark"

	if _, err := s.lookup(ctx, op, id); err != nil {
		return store.Node{}, err
	}
	if _, err := s.lookupFolder(ctx, op, "parentId", parentID); err != nil {
		return store.Node{}, err
	}
	if index != nil && *index < 0 {
		return store.Node{}, apperr.Validation(op, "index must not be negative")
	}

	node, err := s.store.Move(ctx, id, store.MoveRequest{ParentID: parentID, Index: index})
	return node, classify(op, id, err)
}

// CreateFolder creates a folder. An empty parentID targets the secondary root.
func (s *Service) CreateFolder(ctx context.Context, parentID, title string, index *int) (store.Node, error) {
	const op = "bookmarks.createFolder"

	title = strings.TrimSpace(title)
	if title == "" {
		return store.Node{}, apperr.Validation(op, "title is required")
	}
	if parentID == "" {
		_, parentID = s.store.Roots()
	}
	if _, err := s.lookupFolder(ctx, op, "parentId", parentID); err != nil {
		return store.Node{}, err
	}

	node, err := s.store.Create(ctx, store.CreateRequest{ParentID: parentID, Title: title, Index: index})
	return node, classify(op, parentID, err)
}

// RenameFolder changes a folder's title.
func (s *Service) RenameFolder(ctx context.Context, id, title string) (store.Node, error) {
	const op = "bookmarks.renameFolder"

	title = strings.TrimSpace(title)
	if title == "" {
		return store.Node{}, apperr.Validation(op, "title is required")
	}
	node, err := s.lookup(ctx, op, id)
	if err != nil {
		return store.Node{}, err
	}
	if !node.IsFolder() {
		return store.Node{}, apperr.TypeMismatch(op, id, "folder")
	}

	updated, err := s.store.Update(ctx, id, store.UpdateRequest{Title: &title})
	return updated, classify(op, id, err)
}

// DeleteFolder removes a folder, with its contents unless recursive is false.
func (s *Service) DeleteFolder(ctx context.Context, id string, recursive bool) error {
	const op = "bookmarks.deleteFolder"

	node, err := s.lookup(ctx, op, id)
	if err != nil {
		return err
	}
	if !node.IsFolder() {
		return apperr.TypeMismatch(op, id, "folder")
	}

	if recursive {
		err = s.store.RemoveTree(ctx, id)
	} else {
		err = s.store.Remove(ctx, id)
	}
	return classify(op, id, err)
}

// lookup resolves a node that is not a root container.
func (s *Service) lookup(ctx context.Context, op, id string) (store.Node, error) {
	if strings.TrimSpace(id) == "" {
		return store.Node{}, apperr.Validation(op, "id is required")
	}
	if store.IsRoot(s.store, id) {
		return store.Node{}, apperr.Protected(op, id)
	}
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return store.Node{}, classify(op, id, err)
	}
	return node, nil
}

func (s *Service) lookupFolder(ctx context.Context, op, field, id string) (store.Node, error) {
	if strings.TrimSpace(id) == "" {
		return store.Node{}, apperr.Validation(op, "%s is required", field)
	}
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return store.Node{}, classify(op, id, err)
	}
	if !node.IsFolder() {
		return store.Node{}, apperr.TypeMismatch(op, id, "folder")
	}
	return node, nil
}
