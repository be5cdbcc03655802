package explorer

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Search walks the subtree under root and collects entries whose base name
// contains term, compared case-insensitively with Unicode folding. Hidden
// directories are descended like any other; symbolic links are not followed.
// An unreadable subdirectory is skipped and contributes zero results, so a
// denied branch never hides its siblings; an unreadable root is an error,
// since the caller named it directly. Results arrive in deterministic
// pre-order (parent before children, siblings in enumeration order).
func (e *Engine) Search(root, term string) ([]Match, error) {
	timer := e.log.Timed("search", zap.String("root", root), zap.String("term", term))
	defer timer.Stop()

	folder := cases.Fold()
	needle := folder.String(term)

	var matches []Match
	if err := e.searchDir(root, needle, folder, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// searchDir matches and descends one level. Errors from nested levels are
// consumed here; only the caller's own enumeration error escapes.
func (e *Engine) searchDir(dir, needle string, folder cases.Caser, matches *[]Match) error {
	dirents, err := e.children(dir)
	if err != nil {
		return err
	}

	for _, de := range dirents {
		path := filepath.Join(dir, de.Name())
		if strings.Contains(folder.String(de.Name()), needle) {
			*matches = append(*matches, Match{Path: path, Kind: kindOfDirEntry(de)})
		}
		if de.IsDir() {
			if err := e.searchDir(path, needle, folder, matches); err != nil {
				e.log.Debug("skipping unreadable directory",
					zap.String("path", path), zap.Error(err))
			}
		}
	}
	return nil
}
