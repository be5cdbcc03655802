package explorer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// Copy recursively replicates src (file or directory) to dst, preserving
// permission bits and creating missing ancestor directories. A child failure
// inside a directory copy is recorded and the walk continues with the
// remaining siblings; nothing is ever deleted. Content is duplicated through
// symlinks, matching stat semantics.
func (e *Engine) Copy(src, dst string) Outcome {
	info, err := os.Stat(src)
	if err != nil {
		return rejected(src, fmt.Errorf("%w: %w", ErrSourceNotFound, err))
	}

	timer := e.log.Timed("copy", zap.String("src", src), zap.String("dst", dst))
	defer timer.Stop()

	out := Outcome{Succeeded: true}
	e.copyNode(src, dst, info, &out)
	return out
}

// copyNode dispatches one resolved source entry.
func (e *Engine) copyNode(src, dst string, info fs.FileInfo, out *Outcome) {
	if info.IsDir() {
		e.copyTree(src, dst, info.Mode().Perm(), out)
		return
	}
	e.copyFile(src, dst, info.Mode().Perm(), out)
}

// copyFile duplicates byte content and permission bits, overwriting any
// existing file at dst.
func (e *Engine) copyFile(src, dst string, perm fs.FileMode, out *Outcome) {
	if err := os.MkdirAll(filepath.Dir(dst), DefaultDirMode); err != nil {
		out.fail(src, fmt.Errorf("create destination ancestors: %w", classify(err)))
		return
	}
	if err := copyContents(src, dst, perm); err != nil {
		out.fail(src, classify(err))
		return
	}
	if e.verify {
		if err := verifyCopy(src, dst); err != nil {
			out.fail(src, err)
			return
		}
	}
	out.ItemsAffected++
	e.report("copy", dst, out.ItemsAffected)
}

// copyTree creates dst with src's permission bits and recurses into every
// child, best-effort. An already-existing destination directory is entered
// and merged into, its permissions left alone.
func (e *Engine) copyTree(src, dst string, perm fs.FileMode, out *Outcome) {
	if err := os.MkdirAll(filepath.Dir(dst), DefaultDirMode); err != nil {
		out.fail(src, fmt.Errorf("create destination ancestors: %w", classify(err)))
		return
	}

	switch err := os.Mkdir(dst, perm); {
	case err == nil:
		// Mkdir is umask-filtered; restate the exact source bits.
		if err := os.Chmod(dst, perm); err != nil {
			out.fail(src, classify(err))
			return
		}
		out.ItemsAffected++
		e.report("copy", dst, out.ItemsAffected)
	case errors.Is(err, fs.ErrExist):
		existing, serr := os.Stat(dst)
		if serr != nil || !existing.IsDir() {
			out.fail(src, fmt.Errorf("%w: %s", ErrDestinationIsFile, dst))
			return
		}
	default:
		out.fail(src, classify(err))
		return
	}

	dirents, err := e.children(src)
	if err != nil {
		out.fail(src, err)
		return
	}
	for _, de := range dirents {
		childSrc := filepath.Join(src, de.Name())
		childDst := filepath.Join(dst, de.Name())
		info, err := os.Stat(childSrc)
		if err != nil {
			out.fail(childSrc, classify(err))
			continue
		}
		e.copyNode(childSrc, childDst, info, out)
	}
}

// copyContents streams src into dst and applies the source permission bits.
func copyContents(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// OpenFile's mode is umask-filtered; restate the exact source bits.
	return os.Chmod(dst, perm)
}

// verifyCopy re-reads both files and compares BLAKE2b digests.
func verifyCopy(src, dst string) error {
	want, err := digest(src)
	if err != nil {
		return err
	}
	got, err := digest(dst)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("content mismatch after copy: %s", dst)
	}
	return nil
}

func digest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
