// Package chromium converts a Chromium-family "Bookmarks" file into an import bundle.
//
// The bookmark bar maps to the primary root sentinel. The "other" and
// "synced" (mobile) roots both map to the secondary root sentinel.
package chromium

import (
	"encoding/json"
	"fmt"
	"os"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/reconcile"
)

// Format names the Chromium bookmarks file format.
const Format = "chromium"

const (
	typeFolder = "folder"
	typeURL    = "url"
)

// rootOrder fixes the iteration order of the roots object.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

type node struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Children []node `json:"children"`
}

// ReadFile reads and converts the bookmarks file at path.
func ReadFile(path string, cfg reconcile.Config) (*reconcile.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chromium bookmarks: %w", err)
	}
	return Parse(data, cfg)
}

// Parse converts raw Chromium bookmarks JSON.
func Parse(data []byte, cfg reconcile.Config) (*reconcile.Bundle, error) {
	const op = "chromium.parse"

	var file struct {
		Roots map[string]json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperr.Validation(op, "malformed bookmarks file: %v", err)
	}
	if file.Roots == nil {
		return nil, apperr.Validation(op, "bookmarks file has no roots")
	}

	sentinels := map[string]string{
		"bookmark_bar": cfg.PrimarySentinel,
		"other":        cfg.SecondarySentinel,
		"synced":       cfg.SecondarySentinel,
	}

	bundle := &reconcile.Bundle{FolderTree: []reconcile.ImportFolder{}, AllLinks: []reconcile.ImportLink{}}
	for _, name := range rootOrder {
		raw, ok := file.Roots[name]
		if !ok {
			continue
		}

		var root node
		if err := json.Unmarshal(raw, &root); err != nil {
			return nil, apperr.Validation(op, "malformed root %q: %v", name, err)
		}
		if root.Type != typeFolder {
			continue
		}

		collect(bundle, root.Children, reconcile.Path{Root: sentinels[name]}, &bundle.FolderTree)
	}

	return bundle, nil
}

func collect(bundle *reconcile.Bundle, children []node, parent reconcile.Path, into *[]reconcile.ImportFolder) {
	for _, child := range children {
		switch child.Type {
		case typeURL:
			bundle.AllLinks = append(bundle.AllLinks, reconcile.ImportLink{
				Title: child.Name,
				URL:   child.URL,
				Path:  parent.Key(),
			})
		case typeFolder:
			path := parent.Child(child.Name)
			folder := reconcile.ImportFolder{Title: child.Name, Path: path.Key(), Children: []reconcile.ImportFolder{}}
			collect(bundle, child.Children, path, &folder.Children)
			*into = append(*into, folder)
		}
	}
}
