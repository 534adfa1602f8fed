package store

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrNotFound is returned when a node id does not exist.
	ErrNotFound = errors.New("node not found")

	// ErrProtected is returned when removing or moving a root container.
	ErrProtected = errors.New("root containers cannot be removed or moved")

	// ErrNotFolder is returned when a folder was required.
	ErrNotFolder = errors.New("node is not a folder")

	// ErrNotEmpty is returned by Remove for folders that still have children.
	ErrNotEmpty = errors.New("folder is not empty")

	// ErrInvalidURL is returned when a link URL cannot be stored.
	ErrInvalidURL = errors.New("invalid url")

	// ErrCycle is returned when moving a folder into its own subtree.
	ErrCycle = errors.New("cannot move a folder into its own subtree")
)

// ValidateURL checks that a link URL is absolute.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w %q: missing scheme", ErrInvalidURL, raw)
	}
	return nil
}
