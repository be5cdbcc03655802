// Package archive packs and unpacks zip and tar archives in-process, with
// gzip and zstd compression for tar and path-traversal protection on
// extraction.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xplorefs/xplore/internal/logging"
)

// Compression selects the tar payload encoding.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	ErrUnknownFormat   = errors.New("unrecognized archive format")
	ErrInsecureEntry   = errors.New("archive entry escapes the destination")
	ErrBadCompression  = errors.New("unknown compression")
	ErrSourceNotFound  = errors.New("archive source not found")
	ErrArchiveNotFound = errors.New("archive not found")
)

// Entry describes one archive member.
type Entry struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Compressed int64     `json:"compressed,omitempty"`
	ModifiedAt time.Time `json:"modified_at"`
	IsDir      bool      `json:"is_dir"`
}

// Summary reports what a pack or unpack processed.
type Summary struct {
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
}

// Archiver packs and unpacks archives. It is stateless; methods are safe for
// concurrent use.
type Archiver struct {
	log *logging.Logger
}

// New creates an archiver. A nil logger is replaced with a no-op logger.
func New(log *logging.Logger) *Archiver {
	if log == nil {
		log = logging.NewNop()
	}
	return &Archiver{log: log}
}

// Extract unpacks an archive, picking the format from the file name.
func (a *Archiver) Extract(ctx context.Context, archivePath, destination string) (Summary, error) {
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		return a.ExtractZip(ctx, archivePath, destination)
	case strings.HasSuffix(archivePath, ".tar"),
		strings.HasSuffix(archivePath, ".tar.gz"),
		strings.HasSuffix(archivePath, ".tgz"),
		strings.HasSuffix(archivePath, ".tar.zst"):
		return a.ExtractTar(ctx, archivePath, destination)
	default:
		return Summary{}, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(archivePath))
	}
}

// securePath joins an archive member name onto the destination and rejects
// names that would land outside it.
func securePath(destination, name string) (string, error) {
	dest := filepath.Join(destination, name)
	if !strings.HasPrefix(dest, filepath.Clean(destination)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrInsecureEntry, name)
	}
	return dest, nil
}

// statSource classifies the pack source as a directory or a single file.
func statSource(source string) (os.FileInfo, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	return info, nil
}
