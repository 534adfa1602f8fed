package bookmarks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/logger"
	"bookmark-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// keepAlive is the interval of SSE comment pings.
const keepAlive = 15 * time.Second

// Handler handles HTTP requests for bookmarks.
type Handler struct {
	service *Service
	hub     *Hub
}

// NewHandler creates a new HTTP handler. hub may be nil, which disables /events.
func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes registers the bookmark routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bookmarks")
	group.Post("/", h.HandleDispatch)
	group.Get("/cache", h.HandleGetCache)
	group.Post("/cache/refresh", h.HandleRefreshCache)
	group.Post("/import", h.HandleImport)
	group.Get("/export", h.HandleExport)
	if h.hub != nil {
		group.Get("/events", h.HandleEvents)
	}
}

func (h *Handler) respond(c *fiber.Ctx, resp Response, err error) error {
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		if apperr.KindOf(err) == apperr.KindStore {
			l.Error("Bookmark request failed", zap.Error(err))
		} else {
			l.Info("Bookmark request rejected", zap.Error(err))
		}
		return c.Status(statusFor(err)).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleDispatch runs a single action.
// @Summary Dispatch Action
// @Description Runs one action: getBookmarksCache, refreshCache, importBookmarks, exportBookmarks, deleteBookmark, moveBookmark, createFolder, renameFolder or deleteFolder. The remaining body fields are the action payload.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Action and payload"
// @Success 200 {object} map[string]interface{} "success: true plus action data"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 403 {object} map[string]interface{} "Protected root container"
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Failure 409 {object} map[string]interface{} "Type mismatch"
// @Failure 502 {object} map[string]interface{} "Store error"
// @Router /bookmarks [post]
func (h *Handler) HandleDispatch(c *fiber.Ctx) error {
	var req map[string]any
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		err = apperr.Validation("bookmarks.dispatch", "request body must be a JSON object")
		return h.respond(c, fail(err), err)
	}

	resp, err := h.service.Dispatch(c.UserContext(), req)
	return h.respond(c, resp, err)
}

// HandleGetCache returns the current snapshot.
// @Summary Get Cache
// @Description Returns the current bookmark snapshot and its last-sync timestamp.
// @Tags bookmarks
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshot"
// @Failure 502 {object} map[string]interface{} "Store error"
// @Router /bookmarks/cache [get]
func (h *Handler) HandleGetCache(c *fiber.Ctx) error {
	resp, err := h.service.Dispatch(c.UserContext(), map[string]any{"action": ActionGetCache})
	return h.respond(c, resp, err)
}

// HandleRefreshCache forces a rebuild.
// @Summary Refresh Cache
// @Description Rebuilds the snapshot from a full read of the store.
// @Tags bookmarks
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshot"
// @Failure 502 {object} map[string]interface{} "Store error"
// @Router /bookmarks/cache/refresh [post]
func (h *Handler) HandleRefreshCache(c *fiber.Ctx) error {
	resp, err := h.service.Dispatch(c.UserContext(), map[string]any{"action": ActionRefreshCache})
	return h.respond(c, resp, err)
}

// HandleImport replaces both root containers with the uploaded bundle.
// @Summary Import Bookmarks
// @Description Wipes both root containers and rebuilds them from the request body. The body is a bundle ({folderTree, allLinks}) in JSON or YAML, or a Chromium Bookmarks file.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param format query string false "json (default), yaml, chromium or safari"
// @Success 200 {object} reconcile.Result "Import result"
// @Failure 400 {object} map[string]interface{} "Invalid bundle"
// @Failure 502 {object} map[string]interface{} "Store error"
// @Router /bookmarks/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	format := c.Query("format", reconcile.FormatJSON)

	result, err := h.service.ImportRaw(c.UserContext(), c.Body(), format)
	if err != nil {
		return h.respond(c, fail(err), err)
	}

	l.Info("Import completed",
		zap.Int("created", result.CreatedCount),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("errors", len(result.Errors)))

	return c.JSON(ok(map[string]any{
		"createdCount":   result.CreatedCount,
		"deletedCount":   result.DeletedCount,
		"foldersCreated": result.FoldersCreated,
		"duplicateCount": result.DuplicateCount,
		"errors":         result.Errors,
	}))
}

// HandleExport renders the store as a bundle.
// @Summary Export Bookmarks
// @Description Returns both root containers as a bundle that can be imported again.
// @Tags bookmarks
// @Produce json
// @Param format query string false "json (default) or yaml"
// @Success 200 {object} reconcile.Bundle "Bundle"
// @Failure 400 {object} map[string]interface{} "Unsupported format"
// @Failure 502 {object} map[string]interface{} "Store error"
// @Router /bookmarks/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	format := c.Query("format", reconcile.FormatJSON)
	if format != reconcile.FormatJSON && format != reconcile.FormatYAML {
		err := apperr.Validation("bookmarks.export", "unsupported format %q", format)
		return h.respond(c, fail(err), err)
	}

	bundle, err := h.service.Export(c.UserContext())
	if err != nil {
		return h.respond(c, fail(err), err)
	}

	data, err := reconcile.EncodeBundle(bundle, format)
	if err != nil {
		err = apperr.Store("bookmarks.export", err)
		return h.respond(c, fail(err), err)
	}

	if format == reconcile.FormatYAML {
		c.Set(fiber.HeaderContentType, "application/yaml")
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return c.Send(data)
}

// HandleEvents streams cache refresh notices.
// @Summary Stream Cache Refreshes
// @Description Server-sent events, one "refreshed" event per rebuild triggered by a store change.
// @Tags bookmarks
// @Produce text/event-stream
// @Success 200 {object} Notice "Refresh notice"
// @Router /bookmarks/events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	notices, cancel := h.hub.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case notice, open := <-notices:
				if !open {
					return
				}
				data, err := json.Marshal(notice)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: refreshed\ndata: %s\n\n", data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
