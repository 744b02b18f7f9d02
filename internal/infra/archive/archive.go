package archive

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// Unpacker extracts server archives by extension.
type Unpacker struct {
	log logger.Logger
}

// NewUnpacker creates an Unpacker.
func NewUnpacker(log logger.Logger) *Unpacker {
	return &Unpacker{log: log}
}

// Extract unpacks archivePath into dest and returns the archive's top-level
// directory name. Archives whose entries do not share a single top-level
// directory are rejected.
func (u *Unpacker) Extract(ctx context.Context, archivePath, dest string) (string, error) {
	var top string
	var err error
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		top, err = extractTarGz(ctx, archivePath, dest)
	case strings.HasSuffix(archivePath, ".zip"):
		top, err = extractZip(ctx, archivePath, dest)
	default:
		return "", fmt.Errorf("unrecognized archive format: %s", filepath.Base(archivePath))
	}
	if err != nil {
		return "", err
	}
	u.log.Debug("extracted archive", "archive", archivePath, "top", top)
	return top, nil
}

func extractTarGz(ctx context.Context, archivePath, dest string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	var top string
	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read tar entry: %w", err)
		}

		rel, err := secureRelPath(hdr.Name)
		if err != nil {
			return "", err
		}
		if rel == "." {
			continue
		}
		if top, err = trackTopDir(top, rel); err != nil {
			return "", err
		}

		target := filepath.Join(dest, rel)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode()); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return "", err
			}
		}
	}
	if top == "" {
		return "", fmt.Errorf("%s: empty archive", filepath.Base(archivePath))
	}
	return top, nil
}

func extractZip(ctx context.Context, archivePath, dest string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	// Faster deflate than the stdlib decoder.
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	var top string
	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		rel, err := secureRelPath(entry.Name)
		if err != nil {
			return "", err
		}
		if rel == "." {
			continue
		}
		if top, err = trackTopDir(top, rel); err != nil {
			return "", err
		}

		target := filepath.Join(dest, rel)
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, entry.Mode()); err != nil {
				return "", err
			}
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("open zip entry %s: %w", entry.Name, err)
		}
		err = writeFile(target, rc, entry.Mode())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	if top == "" {
		return "", fmt.Errorf("%s: empty archive", filepath.Base(archivePath))
	}
	return top, nil
}

// secureRelPath normalizes an archive entry name and rejects paths escaping
// the extraction directory.
func secureRelPath(name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return rel, nil
}

// trackTopDir enforces the single-top-level-directory shape server archives
// are expected to have.
func trackTopDir(current, rel string) (string, error) {
	first := rel
	if i := strings.IndexByte(rel, filepath.Separator); i >= 0 {
		first = rel[:i]
	}
	if current == "" {
		return first, nil
	}
	if current != first {
		return "", fmt.Errorf("archive has multiple top-level entries: %s, %s", current, first)
	}
	return current, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
