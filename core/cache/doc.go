// Package cache derives a queryable snapshot from the bookmark store.
//
// The snapshot is never patched in place: every refresh reads the full tree
// and rebuilds it wholesale, then swaps the shared reference.
//
// # Components
//
//  1. Builder: Build turns a raw tree into a Snapshot holding the tree copy,
//     the flat link list, the folder index with per-folder link counts and the
//     per-item path and domain.
//
//  2. Service: holds the current snapshot and its last-sync timestamp, persists
//     every rebuild through a Persister for fast cold starts, and collapses
//     concurrent cold-start builds.
//
//  3. Listener: subscribes to the store's four change notification kinds and
//     triggers a full rebuild for each one, then publishes a Refreshed event
//     carrying the triggering action and payload.
//
//  4. Persisters: DBPersister (gorm key/value table) and ObjectPersister
//     (JSON object in S3/MinIO storage).
//
// # Performance
//
// Folder link counts are computed by a second walk over each folder's
// subtree after its children have been visited. This is O(depth × n) for deep
// trees; accumulating counts bottom-up during the first walk would make it
// linear if trees grow large. The listener does not debounce: N rapid
// mutations cause N full rebuilds, each independently consistent.
//
// # Usage
//
//	svc := cache.NewService(bookmarkStore, persister, logger)
//	listener := cache.NewListener(bookmarkStore, svc, publisher, logger)
//	if err := listener.Start(); err != nil {
//	    return err
//	}
//	defer listener.Stop()
//
//	current, err := svc.Current(ctx)
package cache
