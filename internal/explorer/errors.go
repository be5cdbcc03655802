package explorer

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel error kinds. Every failure an operation reports matches exactly
// one of these under errors.Is; the underlying OS error stays wrapped and
// matchable as well.
var (
	ErrNotFound                = errors.New("path not found")
	ErrSourceNotFound          = errors.New("source not found")
	ErrDestinationExists       = errors.New("destination already exists")
	ErrDestinationIsFile       = errors.New("destination is an existing file")
	ErrDestinationInsideSource = errors.New("destination is inside the source")
	ErrConfirmationRequired    = errors.New("recursive deletion requires confirmation")
	ErrDirectoryUnreadable     = errors.New("directory unreadable")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrPartialDelete           = errors.New("directory only partially deleted")
	ErrCopiedButSourceRetained = errors.New("copied, but source could not be removed")
	ErrInvalidMode             = errors.New("invalid permission mode")
	ErrInvalidName             = errors.New("invalid name")
	ErrUnknownPrincipal        = errors.New("unknown user or group")
)

// classify maps OS-level errors onto the engine's sentinels while keeping
// the original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// unreadable wraps a directory open/enumeration error, preserving the
// permission/not-found classification underneath.
func unreadable(err error) error {
	return fmt.Errorf("%w: %w", ErrDirectoryUnreadable, classify(err))
}
