package store

import (
	"context"
	"time"
)

// Node is a single folder or link owned by the store.
type Node struct {
	// ID is the store-assigned identifier.
	ID string `json:"id" yaml:"id"`
	// Title is the display name.
	Title string `json:"title" yaml:"title"`
	// URL is set for links only.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// ParentID is empty for root containers.
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	// Index is the position among the parent's children.
	Index int `json:"index" yaml:"index"`
	// DateAdded is when the node was created.
	DateAdded time.Time `json:"dateAdded" yaml:"dateAdded"`
	// Children is non-nil for folders and encodes as null for links.
	Children []Node `json:"children" yaml:"children,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool {
	return n.Children != nil
}

// IsLink reports whether the node is a link.
func (n Node) IsLink() bool {
	return n.URL != ""
}

// Shallow returns a copy of the node without descendants.
// Folders keep a non-nil, empty Children slice so IsFolder still holds.
func (n Node) Shallow() Node {
	if n.Children != nil {
		n.Children = []Node{}
	}
	return n
}

// CreateRequest describes a node to create.
// An empty URL creates a folder.
type CreateRequest struct {
	ParentID string
	Title    string
	URL      string
	// Index is the target position; nil appends.
	Index *int
}

// MoveRequest describes a move target.
type MoveRequest struct {
	ParentID string
	// Index is the target position; nil appends.
	Index *int
}

// UpdateRequest describes the fields to change. Nil fields are left alone.
type UpdateRequest struct {
	Title *string
	URL   *string
}

// Store is the external bookmark store consumed by the cache and the reconciler.
type Store interface {
	Notifier

	// GetTree returns the root containers with all descendants nested.
	GetTree(ctx context.Context) ([]Node, error)

	// Get returns a single node without its descendants.
	Get(ctx context.Context, id string) (Node, error)

	// GetChildren returns the direct children of a folder without their descendants.
	GetChildren(ctx context.Context, id string) ([]Node, error)

	// Create adds a folder or link under an existing folder.
	Create(ctx context.Context, req CreateRequest) (Node, error)

	// Remove deletes a link or an empty folder.
	Remove(ctx context.Context, id string) error

	// RemoveTree deletes a node and all of its descendants.
	RemoveTree(ctx context.Context, id string) error

	// Move re-parents a node.
	Move(ctx context.Context, id string, req MoveRequest) (Node, error)

	// Update changes a node's title or URL.
	Update(ctx context.Context, id string, req UpdateRequest) (Node, error)

	// Roots returns the ids of the primary and secondary root containers.
	Roots() (primary, secondary string)
}

// IsRoot reports whether id is one of the store's root containers.
func IsRoot(s Store, id string) bool {
	primary, secondary := s.Roots()
	return id == primary || id == secondary
}
