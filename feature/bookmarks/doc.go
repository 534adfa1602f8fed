// Package bookmarks exposes the bookmark manager over HTTP.
//
// A single dispatch endpoint accepts {action, ...payload} and returns
// {success: true, ...data} or {success: false, error, kind}. Convenience
// routes cover the cache, import, export and a server-sent event stream of
// cache refreshes.
//
// # Routes
//
//   - POST /bookmarks: dispatch any action
//   - GET /bookmarks/cache: current snapshot and last-sync timestamp
//   - POST /bookmarks/cache/refresh: force a rebuild
//   - POST /bookmarks/import?format=json|yaml|chromium: replace both roots
//   - GET /bookmarks/export?format=json|yaml: bundle of both roots
//   - GET /bookmarks/events: "refreshed" events published by the cache listener
//
// # Errors
//
// Failures carry an apperr kind that maps to a status code:
// validation 400, not_found 404, protected 403, type_mismatch 409, store 502.
// Single-item actions are validated before the store is called, and a failed
// action never touches the cache.
package bookmarks
