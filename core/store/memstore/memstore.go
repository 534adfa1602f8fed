// Package memstore provides an in-memory implementation of store.Store.
package memstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"bookmark-manager/core/store"
)

const (
	PrimaryID   = "1"
	SecondaryID = "2"
)

type entry struct {
	id        string
	title     string
	url       string
	parentID  string
	dateAdded time.Time
	folder    bool
	children  []string
}

// Store is a mutex-guarded in-memory bookmark store.
type Store struct {
	store.Dispatcher

	mu     sync.RWMutex
	nodes  map[string]*entry
	nextID int
	now    func() time.Time
}

// New creates a store holding two empty root containers.
func New(primaryTitle, secondaryTitle string) *Store {
	s := &Store{
		nodes:  make(map[string]*entry),
		nextID: 3,
		now:    time.Now,
	}
	created := s.now()
	s.nodes[PrimaryID] = &entry{id: PrimaryID, title: primaryTitle, folder: true, dateAdded: created}
	s.nodes[SecondaryID] = &entry{id: SecondaryID, title: secondaryTitle, folder: true, dateAdded: created}
	return s
}

// Roots returns the ids of the two root containers.
func (s *Store) Roots() (string, string) {
	return PrimaryID, SecondaryID
}

// GetTree returns both root containers with all descendants.
func (s *Store) GetTree(ctx context.Context) ([]store.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []store.Node{s.deep(PrimaryID), s.deep(SecondaryID)}, nil
}

// Get returns a node without descendants.
func (s *Store) Get(ctx context.Context, id string) (store.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.nodes[id]; !ok {
		return store.Node{}, fmt.Errorf("get %s: %w", id, store.ErrNotFound)
	}
	return s.shallow(id), nil
}

// GetChildren returns the direct children of a folder.
func (s *Store) GetChildren(ctx context.Context, id string) ([]store.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("get children of %s: %w", id, store.ErrNotFound)
	}
	if !e.folder {
		return nil, fmt.Errorf("get children of %s: %w", id, store.ErrNotFolder)
	}
	children := make([]store.Node, 0, len(e.children))
	for _, cid := range e.children {
		children = append(children, s.shallow(cid))
	}
	return children, nil
}

// Create adds a folder (empty URL) or link under an existing folder.
func (s *Store) Create(ctx context.Context, req store.CreateRequest) (store.Node, error) {
	if req.URL != "" {
		if err := store.ValidateURL(req.URL); err != nil {
			return store.Node{}, err
		}
	}

	s.mu.Lock()
	parent, ok := s.nodes[req.ParentID]
	if !ok {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("create under %s: %w", req.ParentID, store.ErrNotFound)
	}
	if !parent.folder {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("create under %s: %w", req.ParentID, store.ErrNotFolder)
	}

	id := strconv.Itoa(s.nextID)
	s.nextID++
	s.nodes[id] = &entry{
		id:        id,
		title:     req.Title,
		url:       req.URL,
		parentID:  req.ParentID,
		dateAdded: s.now(),
		folder:    req.URL == "",
	}
	parent.children = insertAt(parent.children, id, req.Index)
	node := s.shallow(id)
	s.mu.Unlock()

	s.Emit(store.Event{Kind: store.EventCreated, ID: id, Payload: node})
	return node, nil
}

// Remove deletes a link or an empty folder.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.remove(id, false)
}

// RemoveTree deletes a node and everything below it.
func (s *Store) RemoveTree(ctx context.Context, id string) error {
	return s.remove(id, true)
}

func (s *Store) remove(id string, recursive bool) error {
	if id == PrimaryID || id == SecondaryID {
		return fmt.Errorf("remove %s: %w", id, store.ErrProtected)
	}

	s.mu.Lock()
	e, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("remove %s: %w", id, store.ErrNotFound)
	}
	if !recursive && len(e.children) > 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove %s: %w", id, store.ErrNotEmpty)
	}

	info := store.RemoveInfo{ParentID: e.parentID, Index: s.indexOf(id), Node: s.deep(id)}
	parent := s.nodes[e.parentID]
	parent.children = removeID(parent.children, id)
	s.drop(id)
	s.mu.Unlock()

	s.Emit(store.Event{Kind: store.EventRemoved, ID: id, Payload: info})
	return nil
}

// Move re-parents a node.
func (s *Store) Move(ctx context.Context, id string, req store.MoveRequest) (store.Node, error) {
	if id == PrimaryID || id == SecondaryID {
		return store.Node{}, fmt.Errorf("move %s: %w", id, store.ErrProtected)
	}

	s.mu.Lock()
	e, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("move %s: %w", id, store.ErrNotFound)
	}
	target, ok := s.nodes[req.ParentID]
	if !ok {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("move %s to %s: %w", id, req.ParentID, store.ErrNotFound)
	}
	if !target.folder {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("move %s to %s: %w", id, req.ParentID, store.ErrNotFolder)
	}
	for p := target; p != nil; p = s.nodes[p.parentID] {
		if p.id == id {
			s.mu.Unlock()
			return store.Node{}, fmt.Errorf("move %s to %s: %w", id, req.ParentID, store.ErrCycle)
		}
	}

	info := store.MoveInfo{OldParentID: e.parentID, OldIndex: s.indexOf(id)}
	old := s.nodes[e.parentID]
	old.children = removeID(old.children, id)
	target.children = insertAt(target.children, id, req.Index)
	e.parentID = req.ParentID
	info.ParentID = req.ParentID
	info.Index = s.indexOf(id)
	node := s.shallow(id)
	s.mu.Unlock()

	s.Emit(store.Event{Kind: store.EventMoved, ID: id, Payload: info})
	return node, nil
}

// Update changes the title and/or URL of a node.
func (s *Store) Update(ctx context.Context, id string, req store.UpdateRequest) (store.Node, error) {
	if req.URL != nil {
		if err := store.ValidateURL(*req.URL); err != nil {
			return store.Node{}, err
		}
	}

	s.mu.Lock()
	e, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("update %s: %w", id, store.ErrNotFound)
	}
	if req.URL != nil && e.folder {
		s.mu.Unlock()
		return store.Node{}, fmt.Errorf("update url of folder %s: %w", id, store.ErrInvalidURL)
	}
	if req.Title != nil {
		e.title = *req.Title
	}
	if req.URL != nil {
		e.url = *req.URL
	}
	node := s.shallow(id)
	s.mu.Unlock()

	s.Emit(store.Event{Kind: store.EventChanged, ID: id, Payload: store.ChangeInfo{Title: node.Title, URL: node.URL}})
	return node, nil
}

// shallow must be called with s.mu held.
func (s *Store) shallow(id string) store.Node {
	e := s.nodes[id]
	n := store.Node{
		ID:        e.id,
		Title:     e.title,
		URL:       e.url,
		ParentID:  e.parentID,
		Index:     s.indexOf(id),
		DateAdded: e.dateAdded,
	}
	if e.folder {
		n.Children = []store.Node{}
	}
	return n
}

// deep must be called with s.mu held.
func (s *Store) deep(id string) store.Node {
	n := s.shallow(id)
	for _, cid := range s.nodes[id].children {
		n.Children = append(n.Children, s.deep(cid))
	}
	return n
}

func (s *Store) indexOf(id string) int {
	e := s.nodes[id]
	parent, ok := s.nodes[e.parentID]
	if !ok {
		if id == SecondaryID {
			return 1
		}
		return 0
	}
	for i, cid := range parent.children {
		if cid == id {
			return i
		}
	}
	return -1
}

func (s *Store) drop(id string) {
	for _, cid := range s.nodes[id].children {
		s.drop(cid)
	}
	delete(s.nodes, id)
}

func insertAt(ids []string, id string, index *int) []string {
	if index == nil || *index < 0 || *index >= len(ids) {
		return append(ids, id)
	}
	i := *index
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func removeID(ids []string, id string) []string {
	for i, cid := range ids {
		if cid == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
