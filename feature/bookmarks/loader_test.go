package bookmarks

import (
	"testing"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/store/memstore"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	logger := zap.NewNop()
	s := memstore.New("Bar", "Other")
	snapshots := cache.NewService(s, nil, logger)
	rec := reconcile.New(s, reconcile.NewRootMap("1", "1", "2", "2"), snapshots, logger)

	feature := NewFeature(s, snapshots, rec, sentinels, NewHub(), logger)

	assert.Equal(t, "bookmarks", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
