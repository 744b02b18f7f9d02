// Package command provides CLI command definitions for vsclone.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masonlherndon/vsclone/internal/core/service"
	"github.com/masonlherndon/vsclone/internal/infra/archive"
	"github.com/masonlherndon/vsclone/internal/infra/editor"
	"github.com/masonlherndon/vsclone/internal/infra/execrun"
	"github.com/masonlherndon/vsclone/internal/infra/nativeinstall"
	"github.com/masonlherndon/vsclone/internal/infra/shutdown"
)

// ApplyCommand returns the apply command.
func ApplyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Rebuild the captured editor setup from a snapshot directory",
		ArgsUsage: "DIR",
		Description: "Reads the manifest in DIR and installs the editor, its extensions\n" +
			"and the headless server build for the current platform. Works entirely\n" +
			"from the artifacts in DIR; no network access is needed.",
		Action: applyRun,
	}
}

func applyRun(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" || c.NArg() != 1 {
		return fmt.Errorf("apply: exactly one snapshot directory argument required")
	}

	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("apply: %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("apply: %s is not a directory", dir)
	}

	log := GetLogger(c)
	reg := GetRegistry(c)

	layout, err := service.DefaultLayout()
	if err != nil {
		return fmt.Errorf("apply: resolve home directory: %w", err)
	}

	runner := execrun.New(log, os.Stdout)
	native := nativeinstall.New(log, runner)
	ed := editor.New(log, runner)
	unpacker := archive.NewUnpacker(log)
	svc := service.NewApplyService(reg, native, ed, unpacker, layout, log)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := svc.Run(ctx, dir); err != nil {
		return err
	}

	fmt.Printf("applied snapshot from %s\n", dir)
	return nil
}
