package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/masonlherndon/vsclone/internal/infra/execrun"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// DefaultBinary is the editor's CLI entry point on PATH.
const DefaultBinary = "code"

// CLI talks to the editor through its command-line interface.
type CLI struct {
	binary string
	run    execrun.Runner
	log    logger.Logger
}

// New creates a CLI using the default editor binary.
func New(log logger.Logger, run execrun.Runner) *CLI {
	return &CLI{
		binary: DefaultBinary,
		run:    run,
		log:    log,
	}
}

// Version returns the editor's release version, the first line of
// `code --version`.
func (c *CLI) Version(ctx context.Context) (string, error) {
	lines, err := c.versionLines(ctx)
	if err != nil {
		return "", err
	}
	return lines[0], nil
}

// CommitID returns the editor's build commit, the second line of
// `code --version`.
func (c *CLI) CommitID(ctx context.Context) (string, error) {
	lines, err := c.versionLines(ctx)
	if err != nil {
		return "", err
	}
	return lines[1], nil
}

func (c *CLI) versionLines(ctx context.Context) ([]string, error) {
	out, err := c.run.Output(ctx, c.binary, "--version")
	if err != nil {
		return nil, err
	}
	lines := splitLines(out)
	if len(lines) < 2 {
		return nil, fmt.Errorf("unexpected --version output: %q", out)
	}
	return lines, nil
}

// Extensions returns the installed extension tokens with pinned versions, in
// the order the editor reports them.
func (c *CLI) Extensions(ctx context.Context) ([]string, error) {
	out, err := c.run.Output(ctx, c.binary, "--list-extensions", "--show-versions")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// InstallExtensions installs every artifact in a single editor invocation,
// so the visible extension list updates once. On Windows the editor binary
// must be launched elevated through powershell.
func (c *CLI) InstallExtensions(ctx context.Context, artifactPaths []string) error {
	args := make([]string, 0, len(artifactPaths)*2)
	for _, p := range artifactPaths {
		args = append(args, "--install-extension", p)
	}

	if runtime.GOOS == "windows" {
		name, elevated, err := c.elevatedCommand(args)
		if err != nil {
			return err
		}
		return c.run.Run(ctx, name, elevated...)
	}
	return c.run.Run(ctx, c.binary, args...)
}

// elevatedCommand wraps the editor invocation in an elevated powershell
// launch, addressing the binary under the user's local program directory.
func (c *CLI) elevatedCommand(args []string) (string, []string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	codePath := filepath.Join(home, "AppData", "Local", "Programs", "Microsoft VS Code", "bin", c.binary)
	return "powershell", []string{
		"Start-Process",
		"-verb", "runas",
		`"` + codePath + `"`,
		`"` + strings.Join(args, " ") + `"`,
	}, nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
