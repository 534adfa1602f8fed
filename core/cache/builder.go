package cache

import (
	"net/url"
	"strings"

	"bookmark-manager/core/store"
)

// Build derives a snapshot from a raw tree. It never fails.
//
// Each top-level container's direct children are walked with an empty
// starting path; containers without children contribute nothing.
func Build(tree []store.Node) *Snapshot {
	snap := &Snapshot{
		Tree:          tree,
		FlatBookmarks: []FlatLink{},
		FolderIndex:   make(map[string]FolderInfo),
	}
	if snap.Tree == nil {
		snap.Tree = []store.Node{}
	}

	for _, root := range tree {
		if len(root.Children) == 0 {
			continue
		}
		for _, child := range root.Children {
			snap.walk(child, "")
		}
	}

	return snap
}

func (s *Snapshot) walk(n store.Node, parentPath string) {
	currentPath := n.Title
	if parentPath != "" {
		currentPath = parentPath + "/" + n.Title
	}

	switch {
	case n.IsFolder():
		s.TotalFolders++
		info := FolderInfo{
			ID:        n.ID,
			Title:     n.Title,
			Path:      currentPath,
			ParentID:  n.ParentID,
			DateAdded: n.DateAdded,
		}
		s.FolderIndex[n.ID] = info

		for _, child := range n.Children {
			s.walk(child, currentPath)
		}

		// Second, independent pass over the subtree.
		info.BookmarkCount = countLinks(n)
		s.FolderIndex[n.ID] = info

	case n.IsLink():
		s.TotalBookmarks++
		s.FlatBookmarks = append(s.FlatBookmarks, FlatLink{
			ID:        n.ID,
			Title:     n.Title,
			URL:       n.URL,
			ParentID:  n.ParentID,
			DateAdded: n.DateAdded,
			Domain:    ExtractDomain(n.URL),
			Path:      currentPath,
		})
	}
}

// countLinks returns the number of link descendants of n.
func countLinks(n store.Node) int {
	count := 0
	for _, child := range n.Children {
		if child.IsLink() {
			count++
		}
		if child.IsFolder() {
			count += countLinks(child)
		}
	}
	return count
}

// ExtractDomain returns the URL's hostname without a leading "www.".
// Unparsable URLs and URLs without a host yield UnknownDomain.
func ExtractDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return UnknownDomain
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return UnknownDomain
	}
	return strings.TrimPrefix(host, "www.")
}
