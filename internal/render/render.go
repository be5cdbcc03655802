// Package render turns engine results into terminal output: themed, aligned
// listings for humans and JSON documents for scripts.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/xplorefs/xplore/internal/archive"
	"github.com/xplorefs/xplore/internal/explorer"
	"github.com/xplorefs/xplore/internal/history"
	"github.com/xplorefs/xplore/internal/preview"
)

// Renderer writes results in one of two shapes: themed text or JSON.
type Renderer struct {
	theme Theme
	json  bool
}

// New creates a renderer. jsonOut switches every method to JSON documents.
func New(theme Theme, jsonOut bool) *Renderer {
	return &Renderer{theme: theme, json: jsonOut}
}

// Theme returns the active theme for callers that style their own text.
func (r *Renderer) Theme() Theme { return r.theme }

func (r *Renderer) emitJSON(w io.Writer, v interface{}) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

type entryView struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	Size       int64  `json:"size"`
	Mode       string `json:"mode"`
	Owner      string `json:"owner"`
	Group      string `json:"group"`
	ModifiedAt string `json:"modified_at"`
}

func viewOf(e explorer.Entry) entryView {
	return entryView{
		Name:       e.Name,
		Path:       e.Path,
		Kind:       string(e.Meta.Kind),
		Size:       e.Meta.Size,
		Mode:       "0" + strconv.FormatUint(uint64(e.Meta.Mode.Perm()), 8),
		Owner:      e.Meta.Owner,
		Group:      e.Meta.Group,
		ModifiedAt: Time(e.Meta.ModifiedAt),
	}
}

type failureView struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type outcomeView struct {
	Op            string        `json:"op"`
	Succeeded     bool          `json:"succeeded"`
	ItemsAffected int           `json:"items_affected"`
	Failures      []failureView `json:"failures,omitempty"`
}

// name styles an entry name by what it is. Directories get a trailing slash
// so the kind survives uncolored output.
func (r *Renderer) name(e explorer.Entry) string {
	switch {
	case e.Meta.Kind == explorer.KindDirectory:
		return r.theme.Directory.Render(e.Name + "/")
	case e.Meta.Kind == explorer.KindSymlink:
		return r.theme.Symlink.Render(e.Name)
	case e.Meta.Executable():
		return r.theme.Executable.Render(e.Name)
	default:
		return e.Name
	}
}

// Listing writes one row per entry: permissions, owner, group, size,
// modified, name.
func (r *Renderer) Listing(w io.Writer, entries []explorer.Entry) error {
	if r.json {
		views := make([]entryView, len(entries))
		for i, e := range entries {
			views[i] = viewOf(e)
		}
		return r.emitJSON(w, views)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-8s %-8s %10s  %s  %s\n",
			Mode(e.Meta.Mode), e.Meta.Owner, e.Meta.Group,
			Size(e.Meta.Size), Time(e.Meta.ModifiedAt), r.name(e))
	}
	return nil
}

// Metadata writes one entry's attributes as key/value lines.
func (r *Renderer) Metadata(w io.Writer, path string, meta explorer.EntryMetadata) error {
	if r.json {
		return r.emitJSON(w, viewOf(explorer.Entry{Name: path, Path: path, Meta: meta}))
	}

	fmt.Fprintf(w, "%s\n", r.theme.Header.Render(path))
	fmt.Fprintf(w, "  kind:     %s\n", meta.Kind)
	fmt.Fprintf(w, "  size:     %s\n", Size(meta.Size))
	fmt.Fprintf(w, "  mode:     %s\n", Mode(meta.Mode))
	fmt.Fprintf(w, "  owner:    %s\n", meta.Owner)
	fmt.Fprintf(w, "  group:    %s\n", meta.Group)
	fmt.Fprintf(w, "  modified: %s\n", Time(meta.ModifiedAt))
	return nil
}

// Outcome writes the result of a tree operation: the count on success, the
// count plus every failed path with its reason otherwise.
func (r *Renderer) Outcome(w io.Writer, op string, out explorer.Outcome) error {
	if r.json {
		view := outcomeView{
			Op:            op,
			Succeeded:     out.Succeeded,
			ItemsAffected: out.ItemsAffected,
		}
		for _, f := range out.Failures {
			view.Failures = append(view.Failures, failureView{Path: f.Path, Reason: f.Reason()})
		}
		return r.emitJSON(w, view)
	}

	if out.Succeeded {
		fmt.Fprintf(w, "%s: ok, %d items\n", op, out.ItemsAffected)
		return nil
	}
	fmt.Fprintln(w, r.theme.Error.Render(
		fmt.Sprintf("%s: failed, %d items affected", op, out.ItemsAffected)))
	for _, f := range out.Failures {
		fmt.Fprintf(w, "  %s: %s\n", f.Path, f.Reason())
	}
	return nil
}

// Batch writes the aggregate line after a multi-source invocation.
func (r *Renderer) Batch(w io.Writer, ok, failed int) error {
	if r.json {
		return r.emitJSON(w, map[string]int{"ok": ok, "failed": failed})
	}
	line := fmt.Sprintf("%d ok, %d failed", ok, failed)
	if failed == 0 {
		fmt.Fprintln(w, r.theme.Muted.Render(line))
	} else {
		fmt.Fprintln(w, r.theme.Error.Render(line))
	}
	return nil
}

// Matches writes search results, one path per line.
func (r *Renderer) Matches(w io.Writer, matches []explorer.Match) error {
	if r.json {
		if matches == nil {
			matches = []explorer.Match{}
		}
		return r.emitJSON(w, matches)
	}

	for _, m := range matches {
		if m.Kind == explorer.KindDirectory {
			fmt.Fprintln(w, r.theme.Directory.Render(m.Path))
		} else {
			fmt.Fprintln(w, m.Path)
		}
	}
	fmt.Fprintln(w, r.theme.Muted.Render(fmt.Sprintf("%d matches", len(matches))))
	return nil
}

// Lines writes pre-rendered lines (the tree view).
func (r *Renderer) Lines(w io.Writer, lines []string) error {
	if r.json {
		return r.emitJSON(w, lines)
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

// Paths writes a plain path list (glob results).
func (r *Renderer) Paths(w io.Writer, paths []string) error {
	if r.json {
		if paths == nil {
			paths = []string{}
		}
		return r.emitJSON(w, paths)
	}
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}

// Usage writes a disk-usage summary.
func (r *Renderer) Usage(w io.Writer, path string, bytes int64, files int) error {
	if r.json {
		return r.emitJSON(w, map[string]interface{}{
			"path": path, "bytes": bytes, "files": files,
		})
	}
	fmt.Fprintf(w, "%s  %s (%d files)\n", Size(bytes), path, files)
	return nil
}

// Records writes the recent-paths history, newest first.
func (r *Renderer) Records(w io.Writer, records []history.Record) error {
	if r.json {
		if records == nil {
			records = []history.Record{}
		}
		return r.emitJSON(w, records)
	}
	for _, rec := range records {
		kind := r.theme.Muted.Render(fmt.Sprintf("%-9s", rec.Kind))
		fmt.Fprintf(w, "%s  %s  %s\n", Time(rec.LastSeen.Local()), kind, rec.Path)
	}
	return nil
}

// ArchiveEntries writes an archive member listing.
func (r *Renderer) ArchiveEntries(w io.Writer, entries []archive.Entry) error {
	if r.json {
		if entries == nil {
			entries = []archive.Entry{}
		}
		return r.emitJSON(w, entries)
	}
	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			name = r.theme.Directory.Render(name)
		}
		fmt.Fprintf(w, "%10s  %s  %s\n", Size(e.Size), Time(e.ModifiedAt), name)
	}
	return nil
}

// Summary writes a pack/unpack result.
func (r *Renderer) Summary(w io.Writer, verb string, sum archive.Summary) error {
	if r.json {
		return r.emitJSON(w, sum)
	}
	fmt.Fprintf(w, "%s: %d files, %s\n", verb, sum.Files, Size(sum.TotalBytes))
	return nil
}

// Preview writes a file inspection.
func (r *Renderer) Preview(w io.Writer, pv *preview.Preview) error {
	if r.json {
		return r.emitJSON(w, pv)
	}

	fmt.Fprintf(w, "%s\n", r.theme.Header.Render(pv.Path))
	fmt.Fprintf(w, "  type: %s (%s)\n", pv.Class, pv.MIME)
	fmt.Fprintf(w, "  size: %s\n", Size(pv.Size))
	if pv.Charset != "" {
		fmt.Fprintf(w, "  charset: %s\n", pv.Charset)
	}
	if st := pv.Structure; st != nil {
		if len(st.Columns) > 0 {
			fmt.Fprintf(w, "  columns: %s\n", strings.Join(st.Columns, ", "))
			fmt.Fprintf(w, "  rows: %d\n", st.Items)
		} else if len(st.Keys) > 0 {
			fmt.Fprintf(w, "  keys: %s\n", strings.Join(st.Keys, ", "))
		} else {
			fmt.Fprintf(w, "  items: %d\n", st.Items)
		}
	}
	if len(pv.Lines) > 0 {
		fmt.Fprintln(w, r.theme.Muted.Render(strings.Repeat("-", 40)))
		for _, line := range pv.Lines {
			fmt.Fprintln(w, line)
		}
		if pv.Truncated {
			fmt.Fprintln(w, r.theme.Muted.Render("(truncated)"))
		}
	}
	return nil
}

// Error writes an error line.
func (r *Renderer) Error(w io.Writer, err error) {
	fmt.Fprintln(w, r.theme.Error.Render("error: "+err.Error()))
}
