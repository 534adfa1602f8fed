// Package gormstore provides a persistent store.Store backed by GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmark-manager/core/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	primaryID   uint = 1
	secondaryID uint = 2
)

// Store persists bookmark nodes in the bookmark_nodes table.
type Store struct {
	store.Dispatcher

	db             *gorm.DB
	logger         *zap.Logger
	primaryTitle   string
	secondaryTitle string
	now            func() time.Time
}

// New creates a store. Call Migrate before first use.
func New(db *gorm.DB, logger *zap.Logger, cfg store.Config) *Store {
	return &Store{
		db:             db,
		logger:         logger,
		primaryTitle:   cfg.PrimaryTitle,
		secondaryTitle: cfg.SecondaryTitle,
		now:            time.Now,
	}
}

// Migrate creates the schema and seeds the two root containers.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&NodeRecord{}); err != nil {
		return fmt.Errorf("failed to migrate bookmark_nodes: %w", err)
	}

	roots := []NodeRecord{
		{ID: primaryID, Title: s.primaryTitle, Folder: true, Position: 0},
		{ID: secondaryID, Title: s.secondaryTitle, Folder: true, Position: 1},
	}
	for _, root := range roots {
		root.DateAdded = s.now()
		var existing NodeRecord
		err := s.db.WithContext(ctx).Where("id = ?", root.ID).Attrs(root).FirstOrCreate(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to seed root %d: %w", root.ID, err)
		}
	}

	s.logger.Debug("Bookmark store migrated")
	return nil
}

// Roots returns the ids of the two root containers.
func (s *Store) Roots() (string, string) {
	return formatID(primaryID), formatID(secondaryID)
}

// GetTree loads every node and nests them under the two roots.
func (s *Store) GetTree(ctx context.Context) ([]store.Node, error) {
	var records []NodeRecord
	if err := s.db.WithContext(ctx).Order("position ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookmark tree: %w", err)
	}

	children := make(map[uint][]NodeRecord)
	byID := make(map[uint]NodeRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
		if r.ParentID != nil {
			children[*r.ParentID] = append(children[*r.ParentID], r)
		}
	}

	var build func(r NodeRecord) store.Node
	build = func(r NodeRecord) store.Node {
		n := r.toNode()
		for _, c := range children[r.ID] {
			n.Children = append(n.Children, build(c))
		}
		return n
	}

	tree := make([]store.Node, 0, 2)
	for _, id := range []uint{primaryID, secondaryID} {
		root, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("root container %d missing: %w", id, store.ErrNotFound)
		}
		tree = append(tree, build(root))
	}
	return tree, nil
}

// Get returns a single node without descendants.
func (s *Store) Get(ctx context.Context, id string) (store.Node, error) {
	r, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return store.Node{}, err
	}
	return r.toNode(), nil
}

// GetChildren returns the direct children of a folder.
func (s *Store) GetChildren(ctx context.Context, id string) ([]store.Node, error) {
	parent, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !parent.Folder {
		return nil, fmt.Errorf("get children of %s: %w", id, store.ErrNotFolder)
	}

	var records []NodeRecord
	if err := s.db.WithContext(ctx).Where("parent_id = ?", parent.ID).Order("position ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load children of %s: %w", id, err)
	}

	nodes := make([]store.Node, 0, len(records))
	for _, r := range records {
		nodes = append(nodes, r.toNode())
	}
	return nodes, nil
}

// Create inserts a folder (empty URL) or link.
func (s *Store) Create(ctx context.Context, req store.CreateRequest) (store.Node, error) {
	if req.URL != "" {
		if err := store.ValidateURL(req.URL); err != nil {
			return store.Node{}, err
		}
	}

	var created NodeRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent, err := s.find(tx, req.ParentID)
		if err != nil {
			return err
		}
		if !parent.Folder {
			return fmt.Errorf("create under %s: %w", req.ParentID, store.ErrNotFolder)
		}

		pos, err := s.openSlot(tx, parent.ID, 0, req.Index)
		if err != nil {
			return err
		}

		created = NodeRecord{
			ParentID:  &parent.ID,
			Position:  pos,
			Title:     req.Title,
			URL:       req.URL,
			Folder:    req.URL == "",
			DateAdded: s.now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to insert node: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.Node{}, err
	}

	node := created.toNode()
	s.Emit(store.Event{Kind: store.EventCreated, ID: node.ID, Payload: node})
	return node, nil
}

// Remove deletes a link or an empty folder.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.remove(ctx, id, false)
}

// RemoveTree deletes a node and its whole subtree in one transaction.
func (s *Store) RemoveTree(ctx context.Context, id string) error {
	return s.remove(ctx, id, true)
}

func (s *Store) remove(ctx context.Context, id string, recursive bool) error {
	if s.isRoot(id) {
		return fmt.Errorf("remove %s: %w", id, store.ErrProtected)
	}

	var info store.RemoveInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.find(tx, id)
		if err != nil {
			return err
		}

		ids, subtree, err := s.collect(tx, r)
		if err != nil {
			return err
		}
		if !recursive && len(ids) > 1 {
			return fmt.Errorf("remove %s: %w", id, store.ErrNotEmpty)
		}

		if err := tx.Where("id IN ?", ids).Delete(&NodeRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", id, err)
		}
		if err := s.closeSlot(tx, *r.ParentID, r.Position); err != nil {
			return err
		}

		info = store.RemoveInfo{ParentID: formatID(*r.ParentID), Index: r.Position, Node: subtree}
		return nil
	})
	if err != nil {
		return err
	}

	s.Emit(store.Event{Kind: store.EventRemoved, ID: id, Payload: info})
	return nil
}

// Move re-parents a node.
func (s *Store) Move(ctx context.Context, id string, req store.MoveRequest) (store.Node, error) {
	if s.isRoot(id) {
		return store.Node{}, fmt.Errorf("move %s: %w", id, store.ErrProtected)
	}

	var (
		moved NodeRecord
		info  store.MoveInfo
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.find(tx, id)
		if err != nil {
			return err
		}
		target, err := s.find(tx, req.ParentID)
		if err != nil {
			return err
		}
		if !target.Folder {
			return fmt.Errorf("move %s to %s: %w", id, req.ParentID, store.ErrNotFolder)
		}

		// Walk up from the target; reaching the node means a cycle.
		for cur := target; ; {
			if cur.ID == r.ID {
				return fmt.Errorf("move %s to %s: %w", id, req.ParentID, store.ErrCycle)
			}
			if cur.ParentID == nil {
				break
			}
			var next NodeRecord
			if err := tx.First(&next, *cur.ParentID).Error; err != nil {
				return fmt.Errorf("failed to walk ancestors of %s: %w", req.ParentID, err)
			}
			cur = next
		}

		info.OldParentID = formatID(*r.ParentID)
		info.OldIndex = r.Position
		if err := s.closeSlot(tx, *r.ParentID, r.Position); err != nil {
			return err
		}
		pos, err := s.openSlot(tx, target.ID, r.ID, req.Index)
		if err != nil {
			return err
		}

		r.ParentID = &target.ID
		r.Position = pos
		if err := tx.Model(&NodeRecord{}).Where("id = ?", r.ID).
			Updates(map[string]any{"parent_id": target.ID, "position": pos}).Error; err != nil {
			return fmt.Errorf("failed to move %s: %w", id, err)
		}

		info.ParentID = formatID(target.ID)
		info.Index = pos
		moved = r
		return nil
	})
	if err != nil {
		return store.Node{}, err
	}

	s.Emit(store.Event{Kind: store.EventMoved, ID: id, Payload: info})
	return moved.toNode(), nil
}

// Update changes a node's title and/or URL.
func (s *Store) Update(ctx context.Context, id string, req store.UpdateRequest) (store.Node, error) {
	if req.URL != nil {
		if err := store.ValidateURL(*req.URL); err != nil {
			return store.Node{}, err
		}
	}

	r, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return store.Node{}, err
	}
	if req.URL != nil && r.Folder {
		return store.Node{}, fmt.Errorf("update url of folder %s: %w", id, store.ErrInvalidURL)
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
		r.Title = *req.Title
	}
	if req.URL != nil {
		updates["url"] = *req.URL
		r.URL = *req.URL
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&NodeRecord{}).Where("id = ?", r.ID).Updates(updates).Error; err != nil {
			return store.Node{}, fmt.Errorf("failed to update %s: %w", id, err)
		}
	}

	node := r.toNode()
	s.Emit(store.Event{Kind: store.EventChanged, ID: id, Payload: store.ChangeInfo{Title: node.Title, URL: node.URL}})
	return node, nil
}

func (s *Store) isRoot(id string) bool {
	v, ok := parseID(id)
	return ok && (v == primaryID || v == secondaryID)
}

func (s *Store) find(tx *gorm.DB, id string) (NodeRecord, error) {
	v, ok := parseID(id)
	if !ok {
		return NodeRecord{}, fmt.Errorf("get %s: %w", id, store.ErrNotFound)
	}
	var r NodeRecord
	if err := tx.First(&r, v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NodeRecord{}, fmt.Errorf("get %s: %w", id, store.ErrNotFound)
		}
		return NodeRecord{}, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return r, nil
}

// collect returns the ids of r's subtree (r included) and the nested node.
func (s *Store) collect(tx *gorm.DB, r NodeRecord) ([]uint, store.Node, error) {
	ids := []uint{r.ID}
	node := r.toNode()
	if !r.Folder {
		return ids, node, nil
	}

	var children []NodeRecord
	if err := tx.Where("parent_id = ?", r.ID).Order("position ASC, id ASC").Find(&children).Error; err != nil {
		return nil, store.Node{}, fmt.Errorf("failed to load children of %d: %w", r.ID, err)
	}
	for _, c := range children {
		childIDs, childNode, err := s.collect(tx, c)
		if err != nil {
			return nil, store.Node{}, err
		}
		ids = append(ids, childIDs...)
		node.Children = append(node.Children, childNode)
	}
	return ids, node, nil
}

// openSlot shifts siblings to make room at index and returns the position to use.
// The node being moved, if any, is excluded from the siblings.
func (s *Store) openSlot(tx *gorm.DB, parentID, exclude uint, index *int) (int, error) {
	var count int64
	if err := tx.Model(&NodeRecord{}).Where("parent_id = ? AND id <> ?", parentID, exclude).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count children of %d: %w", parentID, err)
	}
	if index == nil || *index < 0 || *index >= int(count) {
		return int(count), nil
	}
	if err := tx.Model(&NodeRecord{}).Where("parent_id = ? AND id <> ? AND position >= ?", parentID, exclude, *index).
		Update("position", gorm.Expr("position + 1")).Error; err != nil {
		return 0, fmt.Errorf("failed to shift children of %d: %w", parentID, err)
	}
	return *index, nil
}

// closeSlot compacts sibling positions after a removal.
func (s *Store) closeSlot(tx *gorm.DB, parentID uint, position int) error {
	if err := tx.Model(&NodeRecord{}).Where("parent_id = ? AND position > ?", parentID, position).
		Update("position", gorm.Expr("position - 1")).Error; err != nil {
		return fmt.Errorf("failed to compact children of %d: %w", parentID, err)
	}
	return nil
}
