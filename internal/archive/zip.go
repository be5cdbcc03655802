package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// CreateZip packs source (a directory tree or a single file) into a zip
// archive at output. Unreadable entries are skipped with a warning.
func (a *Archiver) CreateZip(ctx context.Context, source, output string) (Summary, error) {
	info, err := statSource(source)
	if err != nil {
		return Summary{}, err
	}

	out, err := os.Create(output)
	if err != nil {
		return Summary{}, fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	var sum Summary

	if info.IsDir() {
		err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err != nil || path == source {
				return nil
			}
			rel, _ := filepath.Rel(source, path)
			return a.zipEntry(zw, path, rel, d, &sum)
		})
	} else {
		de := fs.FileInfoToDirEntry(info)
		err = a.zipEntry(zw, source, filepath.Base(source), de, &sum)
	}
	if err == nil {
		err = zw.Close()
	} else {
		zw.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Summary{}, fmt.Errorf("zip creation failed: %w", err)
	}

	a.log.Debug("zip created",
		zap.String("output", output), zap.Int("files", sum.Files), zap.Int64("bytes", sum.TotalBytes))
	return sum, nil
}

// zipEntry appends one walked entry to the archive, keeping its mode bits.
func (a *Archiver) zipEntry(zw *zip.Writer, path, rel string, d fs.DirEntry, sum *Summary) error {
	info, err := d.Info()
	if err != nil {
		a.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
		return nil
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate
	if d.IsDir() {
		header.Name += "/"
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if d.IsDir() {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		a.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer file.Close()

	n, err := io.Copy(w, file)
	if err != nil {
		return err
	}
	sum.TotalBytes += n
	sum.Files++
	return nil
}

// ExtractZip unpacks a zip archive into destination, restoring file modes
// and rejecting entries that escape it.
func (a *Archiver) ExtractZip(ctx context.Context, archivePath, destination string) (Summary, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrArchiveNotFound, err)
	}
	defer reader.Close()

	var sum Summary
	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		destPath, err := securePath(destination, file.Name)
		if err != nil {
			return sum, err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return sum, fmt.Errorf("extract %s: %w", file.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return sum, fmt.Errorf("extract %s: %w", file.Name, err)
		}

		n, err := a.unzipFile(file, destPath)
		if err != nil {
			return sum, fmt.Errorf("extract %s: %w", file.Name, err)
		}
		sum.TotalBytes += n
		sum.Files++
	}

	a.log.Debug("zip extracted",
		zap.String("archive", archivePath), zap.Int("files", sum.Files))
	return sum, nil
}

func (a *Archiver) unzipFile(file *zip.File, destPath string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	mode := file.FileInfo().Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	// OpenFile filters mode through the umask.
	return n, os.Chmod(destPath, mode)
}

// ListZip returns the members of a zip archive in stored order.
func (a *Archiver) ListZip(archivePath string) ([]Entry, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveNotFound, err)
	}
	defer reader.Close()

	entries := make([]Entry, 0, len(reader.File))
	for _, file := range reader.File {
		info := file.FileInfo()
		entries = append(entries, Entry{
			Name:       file.Name,
			Size:       info.Size(),
			Compressed: int64(file.CompressedSize64),
			ModifiedAt: info.ModTime(),
			IsDir:      info.IsDir(),
		})
	}
	return entries, nil
}
