// Package safari converts a Safari "Bookmarks.plist" file into an import bundle.
//
// The Favorites bar maps to the primary root sentinel. Every other top-level
// list, and loose leaves at the top level, map to the secondary root
// sentinel. The Reading List and history proxies are skipped.
package safari

import (
	"fmt"
	"os"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/reconcile"

	"howett.net/plist"
)

// Format names the Safari bookmarks file format.
const Format = "safari"

const (
	typeLeaf = "WebBookmarkTypeLeaf"
	typeList = "WebBookmarkTypeList"

	barTitle         = "BookmarksBar"
	menuTitle        = "BookmarksMenu"
	readingListTitle = "com.apple.ReadingList"
)

type node struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []node            `plist:"Children"`
}

// url returns the leaf's address, falling back to the URI dictionary.
func (n node) url() string {
	if n.URLString != "" {
		return n.URLString
	}
	return n.URIDictionary[""]
}

func (n node) title() string {
	if n.Title != "" {
		return n.Title
	}
	return n.URIDictionary["title"]
}

// ReadFile reads and converts the plist at path.
func ReadFile(path string, cfg reconcile.Config) (*reconcile.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read safari bookmarks: %w", err)
	}
	return Parse(data, cfg)
}

// Parse converts a binary or XML Safari bookmarks plist.
func Parse(data []byte, cfg reconcile.Config) (*reconcile.Bundle, error) {
	const op = "safari.parse"

	var root node
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, apperr.Validation(op, "malformed bookmarks plist: %v", err)
	}
	if root.WebBookmarkType != typeList {
		return nil, apperr.Validation(op, "bookmarks plist root is %q, want a list", root.WebBookmarkType)
	}

	bundle := &reconcile.Bundle{FolderTree: []reconcile.ImportFolder{}, AllLinks: []reconcile.ImportLink{}}
	primary := reconcile.Path{Root: cfg.PrimarySentinel}
	secondary := reconcile.Path{Root: cfg.SecondarySentinel}

	for _, top := range root.Children {
		if top.WebBookmarkType == typeList {
			switch top.Title {
			case barTitle:
				collect(bundle, top.Children, primary, &bundle.FolderTree)
				continue
			case menuTitle:
				collect(bundle, top.Children, secondary, &bundle.FolderTree)
				continue
			case readingListTitle:
				continue
			}
		}
		collect(bundle, []node{top}, secondary, &bundle.FolderTree)
	}

	return bundle, nil
}

func collect(bundle *reconcile.Bundle, children []node, parent reconcile.Path, into *[]reconcile.ImportFolder) {
	for _, child := range children {
		switch child.WebBookmarkType {
		case typeLeaf:
			url := child.url()
			if url == "" {
				continue
			}
			bundle.AllLinks = append(bundle.AllLinks, reconcile.ImportLink{
				Title: child.title(),
				URL:   url,
				Path:  parent.Key(),
			})
		case typeList:
			if child.Title == "" {
				collect(bundle, child.Children, parent, into)
				continue
			}
			path := parent.Child(child.Title)
			folder := reconcile.ImportFolder{Title: child.Title, Path: path.Key(), Children: []reconcile.ImportFolder{}}
			collect(bundle, child.Children, path, &folder.Children)
			*into = append(*into, folder)
		}
	}
}
