package explorer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CreateFile creates an empty file. The parent directory must already
// exist, and an existing path is never truncated: it fails with
// ErrDestinationExists instead.
func (e *Engine) CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, path)
		}
		return classify(err)
	}
	return f.Close()
}

// CreateDir creates a directory. With parents set, missing ancestors are
// created as well. An existing path fails with ErrDestinationExists either
// way.
func (e *Engine) CreateDir(path string, parents bool) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, path)
	}

	var err error
	if parents {
		err = os.MkdirAll(path, DefaultDirMode)
	} else {
		err = os.Mkdir(path, DefaultDirMode)
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// Rename gives path a new name inside its own directory. newName must be a
// bare name; a taken target fails with ErrDestinationExists.
func (e *Engine) Rename(path, newName string) error {
	if newName == "" || newName == "." || newName == ".." ||
		strings.ContainsRune(newName, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}

	if _, err := os.Lstat(path); err != nil {
		return classify(err)
	}

	target := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, target)
	}

	if err := os.Rename(path, target); err != nil {
		return classify(err)
	}
	return nil
}
