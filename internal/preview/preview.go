// Package preview inspects a file without the caller opening it: content
// type sniffing, a capped head of text lines, charset labels for non-UTF-8
// text, and structural summaries for JSON/YAML/TOML/CSV. Binary files report
// type and size only.
package preview

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/logging"
)

// Class is the coarse preview category.
type Class string

const (
	ClassText   Class = "text"
	ClassJSON   Class = "json"
	ClassYAML   Class = "yaml"
	ClassTOML   Class = "toml"
	ClassCSV    Class = "csv"
	ClassBinary Class = "binary"
)

// Default caps on how much of a file the previewer reads.
const (
	DefaultMaxLines = 40
	DefaultMaxBytes = 64 * 1024
)

var ErrIsDirectory = errors.New("cannot preview a directory")

// Preview is the inspection result.
type Preview struct {
	Path      string     `json:"path"`
	MIME      string     `json:"mime"`
	Class     Class      `json:"class"`
	Size      int64      `json:"size"`
	Charset   string     `json:"charset,omitempty"`
	Lines     []string   `json:"lines,omitempty"`
	Truncated bool       `json:"truncated"`
	Structure *Structure `json:"structure,omitempty"`
}

// Structure summarizes a structured file without dumping it.
type Structure struct {
	Format  string   `json:"format"`
	Keys    []string `json:"keys,omitempty"`
	Items   int      `json:"items"`
	Columns []string `json:"columns,omitempty"`
}

// Previewer inspects files. It is stateless and safe for concurrent use.
type Previewer struct {
	log      *logging.Logger
	maxLines int
	maxBytes int64
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithLimits overrides the line and byte caps.
func WithLimits(lines int, bytes int64) Option {
	return func(p *Previewer) {
		if lines > 0 {
			p.maxLines = lines
		}
		if bytes > 0 {
			p.maxBytes = bytes
		}
	}
}

// New creates a previewer. A nil logger is replaced with a no-op logger.
func New(log *logging.Logger, opts ...Option) *Previewer {
	if log == nil {
		log = logging.NewNop()
	}
	p := &Previewer{log: log, maxLines: DefaultMaxLines, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// File inspects one file.
func (p *Previewer) File(path string) (*Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}

	pv := &Preview{
		Path:  path,
		MIME:  mime.String(),
		Size:  info.Size(),
		Class: classOf(mime, strings.ToLower(filepath.Ext(path))),
	}

	if pv.Class == ClassBinary {
		return pv, nil
	}

	head, truncated, err := p.readHead(path, info.Size())
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	pv.Truncated = truncated

	if !validUTF8Head(head) {
		pv.Charset = detectCharset(head)
		pv.Class = ClassText
		return pv, nil
	}

	// Structural parsing needs the whole document; past the cap the head
	// lines still make a useful preview.
	if pv.Class != ClassText && !truncated {
		if st, err := p.structure(pv.Class, head); err == nil {
			pv.Structure = st
		} else {
			p.log.Debug("structure parse failed, previewing as text",
				zap.String("path", path), zap.Error(err))
		}
	}

	pv.Lines, pv.Truncated = p.headLines(head, truncated)
	return pv, nil
}

// readHead reads up to the byte cap.
func (p *Previewer) readHead(path string, size int64) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	limit := p.maxBytes
	if size < limit {
		limit = size
	}
	head := make([]byte, limit)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, false, err
	}
	return head[:n], size > int64(n), nil
}

// headLines splits the head into display lines under the line cap.
func (p *Previewer) headLines(head []byte, truncated bool) ([]string, bool) {
	if len(head) == 0 {
		return nil, truncated
	}
	text := strings.TrimSuffix(string(head), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > p.maxLines {
		return lines[:p.maxLines], true
	}
	return lines, truncated
}

// classOf maps detected content type plus extension tiebreak onto a class.
// Everything descending from text/plain in the detection hierarchy is text.
func classOf(mime *mimetype.MIME, ext string) Class {
	switch {
	case mime.Is("application/json"):
		return ClassJSON
	case mime.Is("text/csv"):
		return ClassCSV
	}

	if !isTextual(mime) {
		return ClassBinary
	}
	switch ext {
	case ".json":
		return ClassJSON
	case ".yaml", ".yml":
		return ClassYAML
	case ".toml":
		return ClassTOML
	case ".csv":
		return ClassCSV
	default:
		return ClassText
	}
}

func isTextual(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// validUTF8Head tolerates a rune cut off by the byte cap.
func validUTF8Head(b []byte) bool {
	for trim := 0; trim <= 3 && trim < len(b); trim++ {
		if utf8.Valid(b[:len(b)-trim]) {
			return true
		}
	}
	return len(b) == 0
}

func detectCharset(head []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return "unknown"
	}
	return result.Charset
}
