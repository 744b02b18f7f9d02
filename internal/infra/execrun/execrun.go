package execrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// Runner executes external commands. Run streams combined output to the
// operator; Output captures stdout for parsing.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Streaming is the real Runner. Commands block until process exit.
type Streaming struct {
	out io.Writer
	log logger.Logger
}

// New creates a Streaming runner writing subprocess output to out
// (typically stdout).
func New(log logger.Logger, out io.Writer) *Streaming {
	if out == nil {
		out = os.Stdout
	}
	return &Streaming{out: out, log: log}
}

// Run echoes the command line, then executes it with output streamed to the
// operator. A non-zero exit is returned as an error.
func (s *Streaming) Run(ctx context.Context, name string, args ...string) error {
	fmt.Fprintln(s.out, name+" "+strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = s.out
	cmd.Stderr = s.out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Output executes the command and returns its captured stdout.
func (s *Streaming) Output(ctx context.Context, name string, args ...string) (string, error) {
	s.log.Debug("querying command", "name", name, "args", args)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}
