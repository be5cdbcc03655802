package explorer

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Remove deletes path. Files and symlinks are unlinked directly (the link,
// never its target). An empty directory needs no confirmation. A non-empty
// directory requires allowRecursive && confirmed; otherwise the call returns
// ErrConfirmationRequired without mutating anything. During a recursive
// delete, children go before their directory, and the first failure aborts
// the remaining siblings at that level: the enclosing directories stay in
// place and the outcome ends with ErrPartialDelete for the root path, after
// the underlying causes in walk order.
func (e *Engine) Remove(path string, allowRecursive, confirmed bool) Outcome {
	info, err := os.Lstat(path)
	if err != nil {
		return rejected(path, classify(err))
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return rejected(path, classify(err))
		}
		return Outcome{Succeeded: true, ItemsAffected: 1}
	}

	dirents, err := e.children(path)
	if err != nil {
		return rejected(path, err)
	}

	if len(dirents) == 0 {
		if err := os.Remove(path); err != nil {
			return rejected(path, classify(err))
		}
		return Outcome{Succeeded: true, ItemsAffected: 1}
	}

	if !allowRecursive || !confirmed {
		return rejected(path, ErrConfirmationRequired)
	}

	timer := e.log.Timed("remove", zap.String("path", path))
	defer timer.Stop()

	out := Outcome{Succeeded: true}
	if err := e.removeTree(path, &out); err != nil {
		out.fail(path, ErrPartialDelete)
	}
	return out
}

// removeTree deletes the children of dir depth-first, then dir itself. The
// first failure is recorded and stops the walk at that level.
func (e *Engine) removeTree(dir string, out *Outcome) error {
	dirents, err := e.children(dir)
	if err != nil {
		out.fail(dir, err)
		return err
	}

	for _, de := range dirents {
		child := filepath.Join(dir, de.Name())
		if de.IsDir() {
			if err := e.removeTree(child, out); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			err = classify(err)
			out.fail(child, err)
			return err
		}
		out.ItemsAffected++
		e.report("remove", child, out.ItemsAffected)
	}

	if err := os.Remove(dir); err != nil {
		err = classify(err)
		out.fail(dir, err)
		return err
	}
	out.ItemsAffected++
	e.report("remove", dir, out.ItemsAffected)
	return nil
}
