package service

import (
	"context"

	"github.com/masonlherndon/vsclone/internal/core/domain"
)

// EditorInfo exposes the local editor's command-line introspection.
type EditorInfo interface {
	// Version returns the editor's release version (e.g., "1.85.0").
	Version(ctx context.Context) (string, error)

	// CommitID returns the editor's build commit hash.
	CommitID(ctx context.Context) (string, error)

	// Extensions returns the installed extension tokens in the order the
	// editor reports them, each carrying its pinned version
	// (publisher.package@version).
	Extensions(ctx context.Context) ([]string, error)
}

// Downloader streams a URL to a file inside dir.
//
// name is the desired filename; when empty the downloader self-selects one
// (from response headers, falling back to a generated name). The returned
// path is relative to dir so it can be recorded in the manifest as-is.
// Any non-success HTTP status is an error.
type Downloader interface {
	Fetch(ctx context.Context, url, dir, name string) (string, error)
}

// NativeInstaller performs the platform-appropriate editor installation
// (package manager on one OS family, direct execution on another).
type NativeInstaller interface {
	InstallEditor(ctx context.Context, p domain.Platform, artifactPath string) error
}

// ExtensionInstaller installs a batch of extension packages into the editor
// in a single invocation.
type ExtensionInstaller interface {
	InstallExtensions(ctx context.Context, artifactPaths []string) error
}

// Extractor unpacks an archive into dest and returns the name of the
// archive's top-level directory within dest.
type Extractor interface {
	Extract(ctx context.Context, archivePath, dest string) (topDir string, err error)
}
