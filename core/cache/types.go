package cache

import (
	"time"

	"bookmark-manager/core/store"
)

// UnknownDomain is the domain recorded for links whose URL cannot be parsed.
const UnknownDomain = "unknown"

// Snapshot is the derived view of the whole store.
// Invariants: TotalBookmarks == len(FlatBookmarks) and
// TotalFolders == len(FolderIndex).
type Snapshot struct {
	Tree           []store.Node          `json:"tree"`
	TotalBookmarks int                   `json:"totalBookmarks"`
	TotalFolders   int                   `json:"totalFolders"`
	FlatBookmarks  []FlatLink            `json:"flatBookmarks"`
	FolderIndex    map[string]FolderInfo `json:"folderIndex"`
}

// FolderInfo describes one folder of the snapshot.
type FolderInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	ParentID  string    `json:"parentId"`
	DateAdded time.Time `json:"dateAdded"`
	// BookmarkCount is the number of links anywhere in the folder's subtree.
	BookmarkCount int `json:"bookmarkCount"`
}

// FlatLink is a link with its computed path and domain.
type FlatLink struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ParentID  string    `json:"parentId"`
	DateAdded time.Time `json:"dateAdded"`
	Domain    string    `json:"domain"`
	Path      string    `json:"path"`
}

// Cached pairs a snapshot with the time it was built.
type Cached struct {
	Snapshot *Snapshot `json:"cache"`
	LastSync time.Time `json:"lastSync"`
}
