package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xplorefs/xplore/internal/archive"
	"github.com/xplorefs/xplore/internal/explorer"
	"github.com/xplorefs/xplore/internal/render"
)

// The action methods are the command bodies. One-shot commands and the
// interactive shell dispatch into the same methods, so behavior cannot
// drift between the two front ends. Every method resolves its path
// arguments against the session, renders to a.Out, and returns nil,
// ErrOperationFailed for an already-rendered failed outcome, or the
// underlying error for a refused call.

// List renders the entries of dir; an empty dir means the working
// directory.
func (a *App) List(dir string, opts explorer.ListOptions) error {
	target := a.resolve(dir)
	entries, err := a.Engine.List(target, opts)
	if err != nil {
		return err
	}
	a.record(target, explorer.KindDirectory)
	return a.Renderer.Listing(a.Out, entries)
}

// Stat renders one entry's metadata.
func (a *App) Stat(path string) error {
	target := a.resolve(path)
	meta, err := a.Engine.Stat(target)
	if err != nil {
		return err
	}
	a.record(target, meta.Kind)
	return a.Renderer.Metadata(a.Out, target, meta)
}

// Copy copies every source to dst and renders one outcome per source.
// A destination that is an existing directory receives each source under
// its base name; with multiple sources the destination must be such a
// directory.
func (a *App) Copy(sources []string, dst string) error {
	resolvedDst := a.resolve(dst)
	if err := a.requireDirDst(len(sources), resolvedDst); err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		from := a.resolve(src)
		to := intoDir(from, resolvedDst)
		out := a.Engine.Copy(from, to)
		if out.Succeeded {
			a.recordByStat(to)
		} else {
			failed++
		}
		if err := a.Renderer.Outcome(a.Out, "copy", out); err != nil {
			return err
		}
	}
	if err := a.batchLine(len(sources), failed); err != nil {
		return err
	}
	return outcomeErr(failed > 0)
}

// Move moves every source to dst and renders one outcome per source.
func (a *App) Move(sources []string, dst string) error {
	resolvedDst := a.resolve(dst)
	if err := a.requireDirDst(len(sources), resolvedDst); err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		from := a.resolve(src)
		// Final location must be fixed before the move runs, so a moved
		// directory is not re-resolved into itself.
		to := intoDir(from, resolvedDst)
		out := a.Engine.Move(from, resolvedDst)
		if out.Succeeded {
			a.recordByStat(to)
		} else {
			failed++
		}
		if err := a.Renderer.Outcome(a.Out, "move", out); err != nil {
			return err
		}
	}
	if err := a.batchLine(len(sources), failed); err != nil {
		return err
	}
	return outcomeErr(failed > 0)
}

// requireDirDst enforces the multi-source rule shared by Copy and Move.
func (a *App) requireDirDst(sources int, dst string) error {
	if sources <= 1 {
		return nil
	}
	meta, err := a.Engine.Stat(dst)
	if err != nil || !meta.IsDir() {
		return fmt.Errorf("%s must be an existing directory when given multiple sources", dst)
	}
	return nil
}

// Remove deletes every path and renders one outcome per path. Deleting a
// non-empty directory requires recursive and confirmed; the engine refuses
// otherwise without touching anything.
func (a *App) Remove(paths []string, recursive, confirmed bool) error {
	failed := 0
	for _, p := range paths {
		out := a.Engine.Remove(a.resolve(p), recursive, confirmed)
		if !out.Succeeded {
			failed++
		}
		if err := a.Renderer.Outcome(a.Out, "remove", out); err != nil {
			return err
		}
	}
	if err := a.batchLine(len(paths), failed); err != nil {
		return err
	}
	return outcomeErr(failed > 0)
}

// batchLine appends the aggregate count after a multi-source invocation.
func (a *App) batchLine(sources, failed int) error {
	if sources <= 1 {
		return nil
	}
	return a.Renderer.Batch(a.Out, sources-failed, failed)
}

// Rename gives path a new name inside its parent. Quiet on success.
func (a *App) Rename(path, newName string) error {
	target := a.resolve(path)
	if err := a.Engine.Rename(target, newName); err != nil {
		return err
	}
	a.recordByStat(filepath.Join(filepath.Dir(target), newName))
	return nil
}

// Find searches the subtree under root for names containing term.
func (a *App) Find(root, term string) error {
	matches, err := a.Engine.Search(a.resolve(root), term)
	if err != nil {
		return err
	}
	return a.Renderer.Matches(a.Out, matches)
}

// Glob matches a doublestar pattern under root.
func (a *App) Glob(ctx context.Context, root, pattern string) error {
	paths, err := a.Engine.Glob(ctx, a.resolve(root), pattern)
	if err != nil {
		return err
	}
	return a.Renderer.Paths(a.Out, paths)
}

// Usage renders the recursive size of path.
func (a *App) Usage(ctx context.Context, path string) error {
	target := a.resolve(path)
	bytes, files, err := a.Engine.TreeSize(ctx, target)
	if err != nil {
		return err
	}
	return a.Renderer.Usage(a.Out, target, bytes, files)
}

// Tree renders the subtree under path with box-drawing connectors.
// depth <= 0 means unlimited.
func (a *App) Tree(ctx context.Context, path string, depth int) error {
	lines, err := a.Engine.TreeLines(ctx, a.resolve(path), depth)
	if err != nil {
		return err
	}
	return a.Renderer.Lines(a.Out, lines)
}

// MakeDir creates a directory, with ancestors when parents is set. Quiet
// on success.
func (a *App) MakeDir(path string, parents bool) error {
	target := a.resolve(path)
	if err := a.Engine.CreateDir(target, parents); err != nil {
		return err
	}
	a.record(target, explorer.KindDirectory)
	return nil
}

// Touch ensures a file exists. An already present file is left untouched
// and is not an error; the engine never truncates.
func (a *App) Touch(path string) error {
	target := a.resolve(path)
	err := a.Engine.CreateFile(target)
	if err != nil && !errors.Is(err, explorer.ErrDestinationExists) {
		return err
	}
	a.record(target, explorer.KindFile)
	return nil
}

// Chmod applies an octal mode string such as "755" or "0644". Quiet on
// success.
func (a *App) Chmod(path, modeStr string) error {
	mode, err := explorer.ParseMode(modeStr)
	if err != nil {
		return err
	}
	target := a.resolve(path)
	if err := a.Engine.SetPermissions(target, mode); err != nil {
		return err
	}
	a.recordByStat(target)
	return nil
}

// Chown applies an owner spec of the form "user", "user:group", or
// ":group". Quiet on success.
func (a *App) Chown(path, spec string) error {
	owner, group := splitOwnerSpec(spec)
	if owner == "" && group == "" {
		return fmt.Errorf("%w: empty owner spec", explorer.ErrUnknownPrincipal)
	}
	target := a.resolve(path)
	if err := a.Engine.SetOwnership(target, owner, group); err != nil {
		return err
	}
	a.recordByStat(target)
	return nil
}

func splitOwnerSpec(spec string) (owner, group string) {
	owner, group, cut := strings.Cut(spec, ":")
	if !cut {
		return spec, ""
	}
	return owner, group
}

// Zip archives source into a zip file at output.
func (a *App) Zip(ctx context.Context, source, output string) error {
	out := a.resolve(output)
	sum, err := a.Archiver.CreateZip(ctx, a.resolve(source), out)
	if err != nil {
		return err
	}
	a.record(out, explorer.KindFile)
	return a.Renderer.Summary(a.Out, "created", sum)
}

// Unzip extracts (or with list, inspects) a zip archive.
func (a *App) Unzip(ctx context.Context, archivePath, dest string, list bool) error {
	src := a.resolve(archivePath)
	if list {
		entries, err := a.Archiver.ListZip(src)
		if err != nil {
			return err
		}
		return a.Renderer.ArchiveEntries(a.Out, entries)
	}
	sum, err := a.Archiver.ExtractZip(ctx, src, a.resolve(dest))
	if err != nil {
		return err
	}
	return a.Renderer.Summary(a.Out, "extracted", sum)
}

// TarCreate archives source into a tarball at output. An empty
// compression is inferred from the output suffix.
func (a *App) TarCreate(ctx context.Context, source, output, compression string) error {
	out := a.resolve(output)
	sum, err := a.Archiver.CreateTar(ctx, a.resolve(source), out, parseCompression(compression, output))
	if err != nil {
		return err
	}
	a.record(out, explorer.KindFile)
	return a.Renderer.Summary(a.Out, "created", sum)
}

// Untar extracts (or with list, inspects) a tarball, sniffing the
// compression from the file name.
func (a *App) Untar(ctx context.Context, archivePath, dest string, list bool) error {
	src := a.resolve(archivePath)
	if list {
		entries, err := a.Archiver.ListTar(src)
		if err != nil {
			return err
		}
		return a.Renderer.ArchiveEntries(a.Out, entries)
	}
	sum, err := a.Archiver.ExtractTar(ctx, src, a.resolve(dest))
	if err != nil {
		return err
	}
	return a.Renderer.Summary(a.Out, "extracted", sum)
}

func parseCompression(flag, output string) archive.Compression {
	if flag != "" {
		return archive.Compression(strings.ToLower(flag))
	}
	switch {
	case strings.HasSuffix(output, ".tar.gz"), strings.HasSuffix(output, ".tgz"):
		return archive.CompressionGzip
	case strings.HasSuffix(output, ".zst"):
		return archive.CompressionZstd
	default:
		return archive.CompressionNone
	}
}

// PreviewFile renders the head of a file with charset and structure
// detection.
func (a *App) PreviewFile(path string) error {
	target := a.resolve(path)
	pv, err := a.Preview.File(target)
	if err != nil {
		return err
	}
	a.record(target, explorer.KindFile)
	return a.Renderer.Preview(a.Out, pv)
}

// Recent renders the most recently touched paths, newest first. A
// non-positive limit falls back to the configured display count.
func (a *App) Recent(limit int) error {
	if limit < 1 {
		limit = a.Settings.RecentLimit
	}
	records, err := a.History.Recent(limit)
	if err != nil {
		return err
	}
	return a.Renderer.Records(a.Out, records)
}

// ForgetRecent drops one path from the history.
func (a *App) ForgetRecent(path string) error {
	return a.History.Forget(a.resolve(path))
}

// ClearRecent empties the history.
func (a *App) ClearRecent() error {
	return a.History.Clear()
}

// SetTheme switches the color theme, persists the choice, and rebuilds
// the renderer so the change takes effect immediately.
func (a *App) SetTheme(name string) error {
	if !slices.Contains(render.Themes(), name) {
		return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(render.Themes(), ", "))
	}
	a.Settings.Theme = name
	if a.Prefs != nil {
		if err := a.Prefs.Save(a.Settings); err != nil {
			return err
		}
	}
	a.Renderer = render.New(render.Lookup(name, a.Log), a.JSONOut)
	return nil
}

// ShowThemes lists the available themes, marking the active one.
func (a *App) ShowThemes() error {
	names := render.Themes()
	if a.JSONOut {
		return a.Renderer.Paths(a.Out, names)
	}
	for _, name := range names {
		if name == a.Settings.Theme {
			fmt.Fprintf(a.Out, "%s (active)\n", name)
		} else {
			fmt.Fprintln(a.Out, name)
		}
	}
	return nil
}
