package explorer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// TreeSize totals regular-file bytes and count under path. The walk is
// parallel and unordered, never follows symlinks, and skips unreadable
// entries; cancel through ctx.
func (e *Engine) TreeSize(ctx context.Context, path string) (int64, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, classify(err)
	}
	if !info.IsDir() {
		return info.Size(), 1, nil
	}

	var totalBytes, fileCount atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		totalBytes.Add(fi.Size())
		fileCount.Add(1)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return totalBytes.Load(), int(fileCount.Load()), nil
}

// TreeLines renders the subtree under root as connector-prefixed lines for
// display, hidden entries skipped. maxDepth <= 0 means unlimited.
func (e *Engine) TreeLines(ctx context.Context, root string, maxDepth int) ([]string, error) {
	if err := requireDir(root); err != nil {
		return nil, err
	}

	lines := []string{filepath.Base(root)}
	if err := e.treeLines(ctx, root, "", 1, maxDepth, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (e *Engine) treeLines(ctx context.Context, dir, prefix string, depth, maxDepth int, lines *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if maxDepth > 0 && depth > maxDepth {
		return nil
	}

	dirents, err := e.children(dir)
	if err != nil {
		*lines = append(*lines, prefix+"└── (unreadable)")
		return nil
	}

	visible := dirents[:0]
	for _, de := range dirents {
		if de.Name() == "" || de.Name()[0] == '.' {
			continue
		}
		visible = append(visible, de)
	}

	for i, de := range visible {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(visible)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		*lines = append(*lines, prefix+connector+de.Name())
		if de.IsDir() {
			child := filepath.Join(dir, de.Name())
			if err := e.treeLines(ctx, child, childPrefix, depth+1, maxDepth, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

// Glob matches a doublestar pattern (e.g. "**/*.go") against the subtree
// under root and returns absolute paths in sorted order.
func (e *Engine) Glob(ctx context.Context, root, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := requireDir(root); err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob failed: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
