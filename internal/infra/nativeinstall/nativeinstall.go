package nativeinstall

import (
	"context"

	"github.com/masonlherndon/vsclone/internal/core/domain"
	"github.com/masonlherndon/vsclone/internal/infra/execrun"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// Installer performs the platform-appropriate editor installation.
type Installer struct {
	run execrun.Runner
	log logger.Logger
}

// New creates an Installer.
func New(log logger.Logger, run execrun.Runner) *Installer {
	return &Installer{run: run, log: log}
}

// InstallEditor installs the editor artifact at artifactPath for platform p.
// Debian packages go through the system package manager; the Windows
// installer is a self-installing executable.
func (i *Installer) InstallEditor(ctx context.Context, p domain.Platform, artifactPath string) error {
	i.log.Info("running native install", "platform", p, "artifact", artifactPath)
	switch p {
	case domain.PlatformLinux:
		return i.run.Run(ctx, "sudo", "apt-get", "install", "-y", artifactPath)
	case domain.PlatformWindows:
		return i.run.Run(ctx, artifactPath)
	default:
		return domain.ErrUnsupportedPlatform.WithDetails("native install on " + string(p))
	}
}
