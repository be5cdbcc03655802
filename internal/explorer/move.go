package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Move relocates src to dst. When dst is an existing directory the effective
// destination becomes dst/basename(src); an occupied resolved path fails
// with ErrDestinationExists and an existing file destination with
// ErrDestinationIsFile, both before any mutation. An atomic rename is tried
// first; on failure (typically cross-device) the engine copies the tree and
// removes the source only after the copy fully succeeds. A source left
// behind by a failed post-copy delete is reported via
// ErrCopiedButSourceRetained, never silently lost.
func (e *Engine) Move(src, dst string) Outcome {
	if _, err := os.Lstat(src); err != nil {
		return rejected(src, fmt.Errorf("%w: %w", ErrSourceNotFound, err))
	}

	resolved := dst
	if info, err := os.Stat(dst); err == nil {
		if info.IsDir() {
			resolved = filepath.Join(dst, filepath.Base(src))
			if _, err := os.Lstat(resolved); err == nil {
				return rejected(resolved, fmt.Errorf("%w: %s", ErrDestinationExists, resolved))
			}
		} else {
			return rejected(dst, fmt.Errorf("%w: %s", ErrDestinationIsFile, dst))
		}
	}

	if inside(src, resolved) {
		return rejected(resolved, fmt.Errorf("%w: %s", ErrDestinationInsideSource, resolved))
	}

	if err := os.Rename(src, resolved); err == nil {
		e.log.Debug("moved by rename", zap.String("src", src), zap.String("dst", resolved))
		return Outcome{Succeeded: true, ItemsAffected: 1}
	} else {
		e.log.Debug("rename failed, falling back to copy",
			zap.String("src", src), zap.String("dst", resolved), zap.Error(err))
	}

	return e.moveByCopy(src, resolved)
}

// moveByCopy is the cross-device fallback: replicate the tree, then delete
// the source. A failed copy leaves the partial destination visible in the
// returned failures and keeps the source untouched.
func (e *Engine) moveByCopy(src, resolved string) Outcome {
	copied := e.Copy(src, resolved)
	if !copied.Succeeded {
		return copied
	}

	removed := e.Remove(src, true, true)
	if !removed.Succeeded {
		out := Outcome{ItemsAffected: copied.ItemsAffected, Failures: removed.Failures}
		out.fail(src, ErrCopiedButSourceRetained)
		return out
	}
	return Outcome{Succeeded: true, ItemsAffected: copied.ItemsAffected}
}

// inside reports whether path equals src or lives underneath it. Moving a
// directory into itself would otherwise recurse forever in the copy
// fallback.
func inside(src, path string) bool {
	rel, err := filepath.Rel(src, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
