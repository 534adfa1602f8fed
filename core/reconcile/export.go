package reconcile

import "bookmark-manager/core/store"

// Export converts a store tree into a bundle that Import can replay.
// Containers without a sentinel in roots are left out.
func Export(tree []store.Node, roots RootMap) *Bundle {
	bundle := &Bundle{FolderTree: []ImportFolder{}, AllLinks: []ImportLink{}}

	for _, root := range tree {
		sentinel := roots.Sentinel(root.ID)
		if sentinel == "" {
			continue
		}
		base := Path{Root: sentinel}
		for _, child := range root.Children {
			switch {
			case child.IsFolder():
				bundle.FolderTree = append(bundle.FolderTree, bundle.exportFolder(child, base.Child(child.Title)))
			case child.IsLink():
				bundle.AllLinks = append(bundle.AllLinks, ImportLink{Title: child.Title, URL: child.URL, Path: base.Key()})
			}
		}
	}

	return bundle
}

func (b *Bundle) exportFolder(n store.Node, path Path) ImportFolder {
	folder := ImportFolder{Title: n.Title, Path: path.Key(), Children: []ImportFolder{}}
	for _, child := range n.Children {
		switch {
		case child.IsFolder():
			folder.Children = append(folder.Children, b.exportFolder(child, path.Child(child.Title)))
		case child.IsLink():
			b.AllLinks = append(b.AllLinks, ImportLink{Title: child.Title, URL: child.URL, Path: path.Key()})
		}
	}
	return folder
}
