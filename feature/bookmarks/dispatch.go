package bookmarks

import (
	"context"
	"encoding/json"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/utils"

	"go.uber.org/zap"
)

// Dispatch actions.
const (
	ActionGetCache       = "getBookmarksCache"
	ActionRefreshCache   = "refreshCache"
	ActionImport         = "importBookmarks"
	ActionExport         = "exportBookmarks"
	ActionDeleteBookmark = "deleteBookmark"
	ActionMoveBookmark   = "moveBookmark"
	ActionCreateFolder   = "createFolder"
	ActionRenameFolder   = "renameFolder"
	ActionDeleteFolder   = "deleteFolder"
)

// Response is the dispatch result: {success: true, ...data} or
// {success: false, error, kind}.
type Response map[string]any

// Success reports the success flag.
func (r Response) Success() bool {
	ok, _ := r["success"].(bool)
	return ok
}

func ok(data map[string]any) Response {
	resp := Response{"success": true}
	for k, v := range data {
		resp[k] = v
	}
	return resp
}

func fail(err error) Response {
	return Response{
		"success": false,
		"error":   err.Error(),
		"kind":    string(apperr.KindOf(err)),
	}
}

// Dispatch routes a request of the form {action, ...payload} to the matching
// action and returns the response with the error that produced a failure.
func (s *Service) Dispatch(ctx context.Context, req map[string]any) (Response, error) {
	action := utils.ToString(req["action"])

	resp, err := s.dispatch(ctx, action, req)
	if err != nil {
		s.logger.Debug("Action failed", zap.String("action", action), zap.Error(err))
		return fail(err), err
	}
	return resp, nil
}

func (s *Service) dispatch(ctx context.Context, action string, req map[string]any) (Response, error) {
	switch action {
	case ActionGetCache:
		cached, err := s.GetCache(ctx)
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"cache": cached.Snapshot, "lastSync": cached.LastSync}), nil

	case ActionRefreshCache:
		cached, err := s.RefreshCache(ctx)
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"cache": cached.Snapshot, "lastSync": cached.LastSync}), nil

	case ActionImport:
		bundle, err := bundleFromPayload(req)
		if err != nil {
			return nil, err
		}
		result, err := s.Import(ctx, bundle)
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{
			"createdCount":   result.CreatedCount,
			"deletedCount":   result.DeletedCount,
			"foldersCreated": result.FoldersCreated,
			"duplicateCount": result.DuplicateCount,
			"errors":         result.Errors,
		}), nil

	case ActionExport:
		bundle, err := s.Export(ctx)
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"folderTree": bundle.FolderTree, "allLinks": bundle.AllLinks}), nil

	case ActionDeleteBookmark:
		if err := s.DeleteBookmark(ctx, utils.ToString(req["id"])); err != nil {
			return nil, err
		}
		return ok(nil), nil

	case ActionMoveBookmark:
		node, err := s.MoveBookmark(ctx,
			utils.ToString(req["id"]),
			utils.ToString(req["parentId"]),
			utils.ToIntPtr(req["index"]))
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"bookmark": node}), nil

	case ActionCreateFolder:
		node, err := s.CreateFolder(ctx,
			utils.ToString(req["parentId"]),
			utils.ToString(req["title"]),
			utils.ToIntPtr(req["index"]))
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"folder": node}), nil

	case ActionRenameFolder:
		node, err := s.RenameFolder(ctx, utils.ToString(req["id"]), utils.ToString(req["title"]))
		if err != nil {
			return nil, err
		}
		return ok(map[string]any{"folder": node}), nil

	case ActionDeleteFolder:
		recursive := true
		if v, set := req["recursive"]; set {
			recursive = utils.ToBool(v)
		}
		if err := s.DeleteFolder(ctx, utils.ToString(req["id"]), recursive); err != nil {
			return nil, err
		}
		return ok(nil), nil

	case "":
		return nil, apperr.Validation("bookmarks.dispatch", "action is required")
	}

	return nil, apperr.Validation("bookmarks.dispatch", "unknown action %q", action)
}

// bundleFromPayload re-encodes the untyped payload so the bundle goes through
// the same array checks as a raw upload.
func bundleFromPayload(req map[string]any) (*reconcile.Bundle, error) {
	data, err := json.Marshal(map[string]any{
		"folderTree": req["folderTree"],
		"allLinks":   req["allLinks"],
	})
	if err != nil {
		return nil, apperr.Validation("bookmarks.import", "malformed bundle: %v", err)
	}
	return reconcile.DecodeBundle(data, reconcile.FormatJSON)
}
