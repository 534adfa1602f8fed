package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/cache"
	"bookmark-manager/core/store"
)

// DefaultLinkTitle is used for links imported without a title.
const DefaultLinkTitle = "untitled"

// Refresher rebuilds the cache snapshot once an import finishes.
type Refresher interface {
	Refresh(ctx context.Context) (*cache.Cached, error)
}

// Reconciler replaces the contents of both root containers with a bundle.
type Reconciler struct {
	store     store.Store
	roots     RootMap
	refresher Refresher
	logger    *zap.Logger
}

// New creates a reconciler. refresher may be nil.
func New(s store.Store, roots RootMap, refresher Refresher, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		store:     s,
		roots:     roots,
		refresher: refresher,
		logger:    logger,
	}
}

// Import wipes both root containers and rebuilds them from bundle.
//
// Reading the store before the wipe is the only fatal step; folder and link
// failures are recorded in Result.Errors and the run continues.
func (r *Reconciler) Import(ctx context.Context, bundle *Bundle) (*Result, error) {
	const op = "reconcile.import"

	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	log := r.logger.With(
		zap.Int("folders", len(bundle.FolderTree)),
		zap.Int("links", len(bundle.AllLinks)))
	log.Info("Import started")

	// Phase 1: pre-count.
	tree, err := r.store.GetTree(ctx)
	if err != nil {
		return nil, apperr.Store(op, fmt.Errorf("read tree: %w", err))
	}

	result := &Result{DeletedCount: countLinks(tree), Errors: []string{}}

	// Both roots are read before anything is deleted.
	primary, secondary := r.store.Roots()
	var doomed []store.Node
	for _, root := range []string{primary, secondary} {
		children, err := r.store.GetChildren(ctx, root)
		if err != nil {
			return nil, apperr.Store(op, fmt.Errorf("read root %s: %w", root, err))
		}
		doomed = append(doomed, children...)
	}

	// Phase 2: wipe.
	for _, child := range doomed {
		if err := r.store.RemoveTree(ctx, child.ID); err != nil {
			log.Warn("Failed to remove node", zap.String("id", child.ID), zap.Error(err))
			result.addError("remove %q (%s): %v", child.Title, child.ID, err)
		}
	}
	log.Debug("Roots wiped", zap.Int("removed", len(doomed)), zap.Int("links", result.DeletedCount))

	run := &run{
		Reconciler: r,
		result:     result,
		log:        log,
		keys:       make(map[string]string),
	}

	// Phase 3: folders, parents before children.
	for _, folder := range bundle.FolderTree {
		run.folder(ctx, folder)
	}
	log.Debug("Folders reconciled", zap.Int("created", result.FoldersCreated), zap.Int("resolved", len(run.keys)))

	// Phase 4: links.
	for _, link := range bundle.AllLinks {
		run.link(ctx, link)
	}

	// Phase 5: finalize.
	if r.refresher != nil {
		if _, err := r.refresher.Refresh(ctx); err != nil {
			log.Warn("Failed to refresh cache after import", zap.Error(err))
			result.addError("refresh cache: %v", err)
		}
	}

	log.Info("Import finished",
		zap.Int("created", result.CreatedCount),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("duplicates", result.DuplicateCount),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// run holds the state of one import.
type run struct {
	*Reconciler
	result *Result
	log    *zap.Logger
	// keys maps a path key to the live folder id resolved for it.
	keys map[string]string
}

func (r *run) folder(ctx context.Context, f ImportFolder) {
	path := ParsePath(f.Path)
	if path.IsZero() {
		r.result.addError("folder %q: empty path", f.Title)
		r.skip(f)
		return
	}

	if _, err := r.resolve(ctx, path, f.Title); err != nil {
		skipped := countFolders(f.Children)
		r.log.Warn("Failed to create folder",
			zap.String("path", path.Key()),
			zap.Int("skipped", skipped),
			zap.Error(err))
		r.result.addError("folder %q (%s): %v; skipped %d descendant folders", f.Title, path.Key(), err, skipped)
		return
	}

	for _, child := range f.Children {
		r.folder(ctx, child)
	}
}

// skip records an aggregated error for the children of an unusable folder.
func (r *run) skip(f ImportFolder) {
	if n := countFolders(f.Children); n > 0 {
		r.result.addError("folder %q: skipped %d descendant folders", f.Title, n)
	}
}

// resolve walks path from its root, reusing, adopting or creating one folder
// per segment, and returns the id of the last one.
func (r *run) resolve(ctx context.Context, path Path, title string) (string, error) {
	parent := r.roots.Resolve(path.Root)

	for i, segment := range path.Segments {
		key := path.Prefix(i + 1).Key()
		if id, ok := r.keys[key]; ok {
			parent = id
			continue
		}

		name := segment
		if i == len(path.Segments)-1 && title != "" {
			name = title
		}

		id, err := r.adopt(ctx, parent, name)
		if err != nil {
			return "", err
		}
		if id == "" {
			node, err := r.store.Create(ctx, store.CreateRequest{ParentID: parent, Title: name})
			if err != nil {
				return "", err
			}
			id = node.ID
			r.result.FoldersCreated++
		}

		r.keys[key] = id
		parent = id
	}

	return parent, nil
}

// adopt returns the id of an existing child folder of parent titled name, or "".
func (r *run) adopt(ctx context.Context, parent, name string) (string, error) {
	children, err := r.store.GetChildren(ctx, parent)
	if err != nil {
		return "", err
	}
	for _, child := range children {
		if child.IsFolder() && child.Title == name {
			return child.ID, nil
		}
	}
	return "", nil
}

// target returns the folder a link belongs in.
func (r *run) target(raw string) string {
	path := ParsePath(raw)
	if path.IsRoot() && r.roots.Known(path.Root) {
		return r.roots.Resolve(path.Root)
	}
	if id, ok := r.keys[path.Key()]; ok {
		return id
	}
	return r.roots.Fallback()
}

func (r *run) link(ctx context.Context, l ImportLink) {
	title := l.Title
	if title == "" {
		title = DefaultLinkTitle
	}
	if l.URL == "" {
		r.result.addError("link %q: missing url", title)
		return
	}

	parent := r.target(l.Path)
	siblings, err := r.store.GetChildren(ctx, parent)
	if err != nil {
		r.result.addError("link %q (%s): list folder %s: %v", title, l.URL, parent, err)
		return
	}
	for _, sibling := range siblings {
		if sibling.IsLink() && sibling.URL == l.URL {
			r.result.DuplicateCount++
			return
		}
	}

	if _, err := r.store.Create(ctx, store.CreateRequest{ParentID: parent, Title: title, URL: l.URL}); err != nil {
		r.log.Debug("Failed to create link", zap.String("url", l.URL), zap.Error(err))
		r.result.addError("link %q (%s): %v", title, l.URL, err)
		return
	}
	r.result.CreatedCount++
}

func countLinks(nodes []store.Node) int {
	count := 0
	for _, n := range nodes {
		if n.IsLink() {
			count++
		}
		count += countLinks(n.Children)
	}
	return count
}

func countFolders(folders []ImportFolder) int {
	count := len(folders)
	for _, f := range folders {
		count += countFolders(f.Children)
	}
	return count
}
