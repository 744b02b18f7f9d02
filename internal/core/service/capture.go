package service

import (
	"context"
	"fmt"

	"github.com/masonlherndon/vsclone/internal/core/domain"
	"github.com/masonlherndon/vsclone/internal/core/platform"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// CaptureService builds a snapshot of the local editor installation into a
// target directory. Every stage failure is fatal: the manifest is written
// only after all artifacts for all supported platforms are on disk, so a
// snapshot directory with a manifest is always complete.
type CaptureService struct {
	reg    *platform.Registry
	editor EditorInfo
	dl     Downloader
	log    logger.Logger
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(reg *platform.Registry, editor EditorInfo, dl Downloader, log logger.Logger) *CaptureService {
	return &CaptureService{
		reg:    reg,
		editor: editor,
		dl:     dl,
		log:    log,
	}
}

// Run executes the capture state machine: identify the local installation,
// fetch installers and servers for every supported platform, fetch every
// extension (platform-specific first, universal fallback), then persist the
// manifest into dir.
func (s *CaptureService) Run(ctx context.Context, dir string) (*domain.Manifest, error) {
	version, err := s.editor.Version(ctx)
	if err != nil {
		return nil, domain.ErrEditorQuery.WithDetails("version").WithCause(err)
	}
	commitID, err := s.editor.CommitID(ctx)
	if err != nil {
		return nil, domain.ErrEditorQuery.WithDetails("commit id").WithCause(err)
	}
	tokens, err := s.editor.Extensions(ctx)
	if err != nil {
		return nil, domain.ErrEditorQuery.WithDetails("extension list").WithCause(err)
	}
	s.log.Info("captured editor identity", "version", version, "commit", commitID, "extensions", len(tokens))

	platforms := s.reg.Names()
	m := domain.NewManifest(version, commitID, platforms)

	for _, p := range platforms {
		id, err := s.reg.Lookup(platform.ClassInstaller, p)
		if err != nil {
			return nil, err
		}
		path, err := s.dl.Fetch(ctx, s.reg.InstallerURL(version, id), dir, "")
		if err != nil {
			return nil, domain.ErrDownloadFailed.WithDetails("installer for " + id).WithCause(err)
		}
		m.Installer[p] = path
	}

	for _, p := range platforms {
		id, err := s.reg.Lookup(platform.ClassServer, p)
		if err != nil {
			return nil, err
		}
		path, err := s.dl.Fetch(ctx, s.reg.ServerURL(commitID, id), dir, "")
		if err != nil {
			return nil, domain.ErrDownloadFailed.WithDetails("server for " + id).WithCause(err)
		}
		m.Server[p] = path
	}

	for _, token := range tokens {
		ext, err := domain.ParseExtension(token)
		if err != nil {
			return nil, err
		}
		res, err := s.fetchExtension(ctx, dir, ext)
		if err != nil {
			return nil, err
		}
		m.AddExtension(token, platforms)
		for p, path := range res.specific {
			m.Extensions[token][p] = path
		}
		m.Extensions[token][domain.PlatformGeneric] = res.generic
	}

	if err := m.Validate(platforms); err != nil {
		return nil, err
	}
	if err := m.WriteFile(dir); err != nil {
		return nil, err
	}
	s.log.Info("snapshot complete", "dir", dir)
	return m, nil
}

// extensionFetch is the per-extension resolution outcome: which platforms
// produced a specific package, and the universal package path when the
// specific set was incomplete. This keeps the fallback policy explicit and
// testable apart from download mechanics.
type extensionFetch struct {
	specific map[domain.Platform]string
	generic  string
}

// fetchExtension attempts every supported platform's specific package first,
// through the backup asset endpoint. If all specific attempts succeed the
// universal package is skipped. If any fail, the universal package is fetched
// in addition; if that also fails, the capture aborts.
func (s *CaptureService) fetchExtension(ctx context.Context, dir string, ext domain.Extension) (extensionFetch, error) {
	res := extensionFetch{specific: make(map[domain.Platform]string)}
	complete := true

	for _, p := range s.reg.Names() {
		id, err := s.reg.Lookup(platform.ClassExtension, p)
		if err != nil {
			return extensionFetch{}, err
		}
		url := s.reg.ExtensionURL(ext, id, true)
		path, err := s.dl.Fetch(ctx, url, dir, platform.ExtensionFilename(ext, id))
		if err != nil {
			s.log.Warn("no platform-specific package", "extension", ext.String(), "platform_id", id)
			complete = false
			continue
		}
		res.specific[p] = path
	}

	if !complete {
		url := s.reg.ExtensionURL(ext, "", true)
		path, err := s.dl.Fetch(ctx, url, dir, platform.ExtensionFilename(ext, ""))
		if err != nil {
			return extensionFetch{}, domain.ErrDownloadFailed.
				WithDetails(fmt.Sprintf("extension %s (universal fallback)", ext)).
				WithCause(err)
		}
		res.generic = path
	}

	return res, nil
}
