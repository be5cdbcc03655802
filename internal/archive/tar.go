package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// CreateTar packs source into a tar archive at output with the requested
// payload compression.
func (a *Archiver) CreateTar(ctx context.Context, source, output string, comp Compression) (Summary, error) {
	info, err := statSource(source)
	if err != nil {
		return Summary{}, err
	}

	out, err := os.Create(output)
	if err != nil {
		return Summary{}, fmt.Errorf("create archive: %w", err)
	}

	var closers []io.Closer
	var tw *tar.Writer
	switch comp {
	case CompressionGzip:
		gz := gzip.NewWriter(out)
		closers = append(closers, gz)
		tw = tar.NewWriter(gz)
	case CompressionZstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			out.Close()
			return Summary{}, fmt.Errorf("zstd writer: %w", err)
		}
		closers = append(closers, zw)
		tw = tar.NewWriter(zw)
	case CompressionNone, "":
		tw = tar.NewWriter(out)
	default:
		out.Close()
		return Summary{}, fmt.Errorf("%w: %s", ErrBadCompression, comp)
	}

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
			return a.tarEntry(tw, path, rel, d, &sum)
		})
	} else {
		de := fs.FileInfoToDirEntry(info)
		err = a.tarEntry(tw, source, filepath.Base(source), de, &sum)
	}

	// Close innermost-out so every layer flushes.
	if err == nil {
		err = tw.Close()
	} else {
		tw.Close()
	}
	for _, c := range closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Summary{}, fmt.Errorf("tar creation failed: %w", err)
	}

	a.log.Debug("tar created",
		zap.String("output", output), zap.String("compression", string(comp)),
		zap.Int("files", sum.Files), zap.Int64("bytes", sum.TotalBytes))
	return sum, nil
}

// tarEntry appends one walked entry, keeping mode and times from the header.
func (a *Archiver) tarEntry(tw *tar.Writer, path, rel string, d fs.DirEntry, sum *Summary) error {
	info, err := d.Info()
	if err != nil {
		a.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
		return nil
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	if d.IsDir() {
		header.Name += "/"
	}
	if err := tw.WriteHeader(header); err != nil {
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

	n, err := io.Copy(tw, file)
	if err != nil {
		return err
	}
	sum.TotalBytes += n
	sum.Files++
	return nil
}

// ExtractTar unpacks a tar archive into destination, sniffing gzip and zstd
// from the file name and rejecting entries that escape the destination.
// Members that are neither files nor directories are skipped.
func (a *Archiver) ExtractTar(ctx context.Context, archivePath, destination string) (Summary, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrArchiveNotFound, err)
	}
	defer file.Close()

	tr, closer, err := tarReader(archivePath, file)
	if err != nil {
		return Summary{}, err
	}
	if closer != nil {
		defer closer()
	}

	var sum Summary
	for {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("read archive: %w", err)
		}

		destPath, err := securePath(destination, header.Name)
		if err != nil {
			return sum, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return sum, fmt.Errorf("extract %s: %w", header.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return sum, fmt.Errorf("extract %s: %w", header.Name, err)
			}
			n, err := a.untarFile(tr, destPath, header)
			if err != nil {
				return sum, fmt.Errorf("extract %s: %w", header.Name, err)
			}
			sum.TotalBytes += n
			sum.Files++
		default:
			a.log.Debug("skipping archive member",
				zap.String("name", header.Name), zap.Int("type", int(header.Typeflag)))
		}
	}

	a.log.Debug("tar extracted",
		zap.String("archive", archivePath), zap.Int("files", sum.Files))
	return sum, nil
}

func (a *Archiver) untarFile(tr *tar.Reader, destPath string, header *tar.Header) (int64, error) {
	mode := fs.FileMode(header.Mode).Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, tr)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	return n, os.Chmod(destPath, mode)
}

// ListTar returns the members of a tar archive in stored order.
func (a *Archiver) ListTar(archivePath string) ([]Entry, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveNotFound, err)
	}
	defer file.Close()

	tr, closer, err := tarReader(archivePath, file)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer()
	}

	var entries []Entry
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		entries = append(entries, Entry{
			Name:       header.Name,
			Size:       header.Size,
			ModifiedAt: header.ModTime,
			IsDir:      header.Typeflag == tar.TypeDir,
		})
	}
	return entries, nil
}

// tarReader layers the decompressor the file name calls for. The returned
// cleanup func is nil for plain tar.
func tarReader(archivePath string, file *os.File) (*tar.Reader, func(), error) {
	switch {
	case strings.HasSuffix(archivePath, ".gz"), strings.HasSuffix(archivePath, ".tgz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return tar.NewReader(gz), func() { gz.Close() }, nil
	case strings.HasSuffix(archivePath, ".zst"):
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return tar.NewReader(zr), zr.Close, nil
	default:
		return tar.NewReader(file), nil, nil
	}
}
