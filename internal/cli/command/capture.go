// Package command provides CLI command definitions for vsclone.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masonlherndon/vsclone/internal/core/service"
	"github.com/masonlherndon/vsclone/internal/infra/editor"
	"github.com/masonlherndon/vsclone/internal/infra/execrun"
	"github.com/masonlherndon/vsclone/internal/infra/fetch"
	"github.com/masonlherndon/vsclone/internal/infra/shutdown"
)

// CaptureCommand returns the capture command.
func CaptureCommand() *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Download the installed editor's artifacts for every supported platform",
		ArgsUsage: "DIR",
		Description: "Queries the locally installed editor for its version, commit and\n" +
			"extension list, downloads the matching installers, server builds and\n" +
			"extension packages for all supported platforms, and writes a manifest\n" +
			"into DIR. Requires network access and a working `code` CLI.",
		Action: captureRun,
	}
}

func captureRun(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" || c.NArg() != 1 {
		return fmt.Errorf("capture: exactly one snapshot directory argument required")
	}

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("capture: %s exists and is not a directory", dir)
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("capture: create %s: %w", dir, err)
		}
	} else {
		return fmt.Errorf("capture: stat %s: %w", dir, err)
	}

	log := GetLogger(c)
	reg := GetRegistry(c)

	runner := execrun.New(log, os.Stdout)
	ed := editor.New(log, runner)
	dl := fetch.New(log, progressWriter(c))
	svc := service.NewCaptureService(reg, ed, dl, log)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	m, err := svc.Run(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Printf("captured %s (commit %s, %d extensions) into %s\n",
		m.Version, m.CommitID, len(m.Extensions), dir)
	return nil
}
