// Package reconcile makes the live bookmark store match an imported bundle.
//
// An import is a wipe-and-rebuild of both root containers' contents. The
// root containers themselves are permanent and keep their ids.
//
// # Phases
//
// Phases run strictly in sequence, one store call at a time:
//
//  1. Pre-count: read the full tree and count its links (Result.DeletedCount).
//  2. Wipe: read the children of both roots, then remove each subtree.
//  3. Folders: resolve every ImportFolder depth-first, parents before children.
//  4. Links: place every ImportLink in its folder, skipping URLs the folder
//     already holds.
//  5. Finalize: rebuild the cache snapshot and return the Result.
//
// Only the reads in phases 1 and 2 are fatal, and they happen before anything
// is deleted. Every later failure is appended to Result.Errors.
//
// # Path resolution
//
// Paths are parsed into a Path: a root sentinel followed by folder titles.
// The sentinel is mapped to a live root through a RootMap; unknown sentinels
// map to the secondary root. For every segment the reconciler, in order:
//
//   - reuses the folder already resolved for that cumulative key in this run,
//   - adopts an existing child folder of the same title,
//   - or creates a new folder. The last segment uses ImportFolder.Title.
//
// A folder that cannot be created is skipped together with its descendants,
// and one error names the folder and how many descendants were skipped.
//
// Links resolve by exact path key. A root-only path places the link in that
// root; any other unmatched path falls back to the secondary root.
//
// # Consistency
//
// The import is not transactional. A store failure between the wipe and the
// rebuild leaves the roots partially filled; re-running the same bundle
// converges, since existing folders are adopted and duplicate URLs skipped.
//
// # Usage
//
//	roots := reconcile.NewRootMap("1", primaryID, "2", secondaryID)
//	r := reconcile.New(bookmarkStore, roots, cacheService, logger)
//	bundle, err := reconcile.DecodeBundle(data, reconcile.FormatJSON)
//	result, err := r.Import(ctx, bundle)
package reconcile
