// Package command provides CLI command definitions for vsclone.
package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masonlherndon/vsclone/internal/core/platform"
	"github.com/masonlherndon/vsclone/internal/infra/buildinfo"
	"github.com/masonlherndon/vsclone/internal/infra/confloader"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "vsclone",
		Usage:   "Snapshot a VS Code installation and rebuild it offline",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			CaptureCommand(),
			ApplyCommand(),
			ShowCommand(),
		},
		Before: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)

			log := logger.New(logger.Config{
				Level:  flags.LogLevel,
				Format: flags.LogFormat,
				Output: os.Stderr,
			})
			if flags.Quiet {
				log = logger.Nop()
			}
			logger.SetDefault(log)

			reg := platform.Default()
			loader := confloader.NewLoader(confloader.WithConfigFile(flags.Config))
			if err := loader.Load(reg); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			c.App.Metadata["logger"] = log
			c.App.Metadata["registry"] = reg
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML file overriding endpoints and platform tables",
			EnvVars: []string{"VSCLONE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"VSCLONE_LOG_LEVEL"},
			Value:   "info",
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format: text, json",
			EnvVars: []string{"VSCLONE_LOG_FORMAT"},
			Value:   "text",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress logs and progress output",
			EnvVars: []string{"VSCLONE_QUIET"},
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config    string
	LogLevel  string
	LogFormat string
	Quiet     bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:    c.String("config"),
		LogLevel:  c.String("log-level"),
		LogFormat: c.String("log-format"),
		Quiet:     c.Bool("quiet"),
	}
}

// GetLogger retrieves the logger prepared by the Before hook.
func GetLogger(c *cli.Context) logger.Logger {
	if log, ok := c.App.Metadata["logger"].(logger.Logger); ok {
		return log
	}
	return logger.Default()
}

// GetRegistry retrieves the platform registry prepared by the Before hook.
func GetRegistry(c *cli.Context) *platform.Registry {
	if reg, ok := c.App.Metadata["registry"].(*platform.Registry); ok {
		return reg
	}
	return platform.Default()
}

// progressWriter returns the writer download progress renders to.
func progressWriter(c *cli.Context) io.Writer {
	if c.Bool("quiet") {
		return io.Discard
	}
	return os.Stderr
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
