package bookmarks

import (
	"bookmark-manager/core/cache"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new bookmarks feature.
func NewFeature(s store.Store, snapshots *cache.Service, reconciler *reconcile.Reconciler, sentinels reconcile.Config, hub *Hub, logger *zap.Logger) *Feature {
	svc := NewService(s, snapshots, reconciler, sentinels, logger)
	h := NewHandler(svc, hub)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "bookmarks"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
