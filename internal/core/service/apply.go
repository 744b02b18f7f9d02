package service

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/masonlherndon/vsclone/internal/core/domain"
	"github.com/masonlherndon/vsclone/internal/core/platform"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// Layout describes where the editor keeps its local state. It is injectable
// so tests never touch the real home directory.
type Layout struct {
	// LocalExtensions is the desktop editor's extension directory
	// (~/.vscode/extensions).
	LocalExtensions string

	// ServerRoot is the headless server's root directory (~/.vscode-server).
	ServerRoot string
}

// DefaultLayout returns the layout under the current user's home directory.
func DefaultLayout() (Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		LocalExtensions: filepath.Join(home, ".vscode", "extensions"),
		ServerRoot:      filepath.Join(home, ".vscode-server"),
	}, nil
}

// ServerExtensions is the server's own extension directory.
func (l Layout) ServerExtensions() string {
	return filepath.Join(l.ServerRoot, "extensions")
}

// ServerCore is the commit-namespaced directory holding one server build,
// so multiple server versions can coexist on disk.
func (l Layout) ServerCore(commitID string) string {
	return filepath.Join(l.ServerRoot, "bin", commitID)
}

// ApplyService reconstructs a captured snapshot on the current machine. It
// consumes only the manifest and the artifacts beside it; it never talks to
// the network and never rewrites the manifest.
type ApplyService struct {
	reg       *platform.Registry
	native    NativeInstaller
	extInst   ExtensionInstaller
	extractor Extractor
	layout    Layout
	log       logger.Logger
}

// NewApplyService creates a new ApplyService.
func NewApplyService(reg *platform.Registry, native NativeInstaller, extInst ExtensionInstaller, extractor Extractor, layout Layout, log logger.Logger) *ApplyService {
	return &ApplyService{
		reg:       reg,
		native:    native,
		extInst:   extInst,
		extractor: extractor,
		layout:    layout,
		log:       log,
	}
}

// Run executes the apply state machine against the snapshot in dir:
// load and validate the manifest, check the running platform, install the
// editor, resolve the extension set, wipe prior extension/server state,
// batch-install the extensions, and materialize the server.
//
// Re-running apply on an already-applied machine converges to the same end
// state: the reset stage removes everything a previous run installed into
// the extension and server directories.
func (s *ApplyService) Run(ctx context.Context, dir string) error {
	m, err := domain.ReadManifest(dir)
	if err != nil {
		return err
	}
	// Key-set validation only: an extension entry with no usable artifact
	// is a resolution failure (NoCompatibleArtifact), not corruption.
	platforms := s.reg.Names()
	if err := m.ValidateKeys(platforms); err != nil {
		return err
	}

	// The platform check happens before anything destructive or mutating.
	cur, err := domain.CurrentPlatform()
	if err != nil {
		return err
	}
	if !s.reg.Supports(cur) {
		return domain.ErrUnsupportedPlatform.WithDetails("apply on " + string(cur))
	}

	installerPath := m.Installer[cur]
	if installerPath == "" {
		return domain.ErrManifestCorrupt.WithDetails("no installer recorded for " + string(cur))
	}
	s.log.Info("installing editor", "version", m.Version, "platform", cur)
	if err := s.native.InstallEditor(ctx, cur, filepath.Join(dir, installerPath)); err != nil {
		return domain.ErrInstallationFailed.WithDetails("editor installer").WithCause(err)
	}

	toInstall, err := resolveExtensions(m, cur, dir)
	if err != nil {
		return err
	}

	// Wipe old extension and server state so the machine ends in exactly
	// the captured state, with no leftovers from a previous install.
	if err := os.RemoveAll(s.layout.LocalExtensions); err != nil {
		return domain.ErrInstallationFailed.WithDetails("reset extension directory").WithCause(err)
	}
	if err := os.RemoveAll(s.layout.ServerRoot); err != nil {
		return domain.ErrInstallationFailed.WithDetails("reset server directory").WithCause(err)
	}

	if len(toInstall) > 0 {
		s.log.Info("installing extensions", "count", len(toInstall))
		if err := s.extInst.InstallExtensions(ctx, toInstall); err != nil {
			return domain.ErrInstallationFailed.WithDetails("extension batch install").WithCause(err)
		}
	}

	if err := s.materializeServer(ctx, m, cur, dir); err != nil {
		return err
	}
	s.log.Info("snapshot applied", "version", m.Version, "commit", m.CommitID)
	return nil
}

// resolveExtensions picks, for every extension entry, the running-platform
// package when present and the universal package otherwise. An entry with
// neither aborts the apply. Tokens are resolved in sorted order so the batch
// install invocation is deterministic.
func resolveExtensions(m *domain.Manifest, cur domain.Platform, dir string) ([]string, error) {
	tokens := make([]string, 0, len(m.Extensions))
	for token := range m.Extensions {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	paths := make([]string, 0, len(tokens))
	for _, token := range tokens {
		entry := m.Extensions[token]
		switch {
		case entry[cur] != "":
			paths = append(paths, filepath.Join(dir, entry[cur]))
		case entry[domain.PlatformGeneric] != "":
			paths = append(paths, filepath.Join(dir, entry[domain.PlatformGeneric]))
		default:
			return nil, domain.ErrNoCompatibleArtifact.WithDetails(token + " on " + string(cur))
		}
	}
	return paths, nil
}

// materializeServer extracts the server archive into the commit-namespaced
// directory and mirrors the freshly installed desktop extensions into the
// server's extension directory, so the headless server sees the same set as
// the desktop editor.
func (s *ApplyService) materializeServer(ctx context.Context, m *domain.Manifest, cur domain.Platform, dir string) error {
	archive := m.Server[cur]
	if archive == "" {
		return domain.ErrManifestCorrupt.WithDetails("no server recorded for " + string(cur))
	}

	tmp, err := os.MkdirTemp("", "vsclone-server-*")
	if err != nil {
		return domain.ErrInstallationFailed.WithDetails("server staging directory").WithCause(err)
	}
	defer os.RemoveAll(tmp)

	topDir, err := s.extractor.Extract(ctx, filepath.Join(dir, archive), tmp)
	if err != nil {
		return domain.ErrInstallationFailed.WithDetails("server archive " + archive).WithCause(err)
	}

	core := s.layout.ServerCore(m.CommitID)
	if err := copyTree(filepath.Join(tmp, topDir), core); err != nil {
		return domain.ErrInstallationFailed.WithDetails("server payload copy").WithCause(err)
	}
	// With zero extensions the desktop directory was never recreated; the
	// server still gets an (empty) extension directory.
	if _, err := os.Stat(s.layout.LocalExtensions); os.IsNotExist(err) {
		if err := os.MkdirAll(s.layout.ServerExtensions(), 0o755); err != nil {
			return domain.ErrInstallationFailed.WithDetails("server extension directory").WithCause(err)
		}
		return nil
	}
	if err := copyTree(s.layout.LocalExtensions, s.layout.ServerExtensions()); err != nil {
		return domain.ErrInstallationFailed.WithDetails("server extension copy").WithCause(err)
	}
	return nil
}

// copyTree copies the directory tree rooted at src into dest, creating dest
// and any missing parents. Symlinks are recreated, not followed; server
// payloads and extension directories both carry them.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
