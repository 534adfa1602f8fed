package bookmarks

import (
	"errors"

	"bookmark-manager/core/apperr"
	"bookmark-manager/core/store"

	"github.com/gofiber/fiber/v2"
)

// classify converts a store error into the application taxonomy.
func classify(op, id string, err error) error {
	var appErr *apperr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(op, id)
	case errors.Is(err, store.ErrProtected):
		return apperr.Protected(op, id)
	case errors.Is(err, store.ErrNotFolder):
		return apperr.TypeMismatch(op, id, "folder")
	case errors.Is(err, store.ErrInvalidURL), errors.Is(err, store.ErrCycle), errors.Is(err, store.ErrNotEmpty):
		return apperr.Validation(op, "%v", err)
	}
	return apperr.Store(op, err)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindProtected:
		return fiber.StatusForbidden
	case apperr.KindTypeMismatch:
		return fiber.StatusConflict
	}
	return fiber.StatusBadGateway
}
