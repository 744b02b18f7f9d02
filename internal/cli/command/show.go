// Package command provides CLI command definitions for vsclone.
package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/masonlherndon/vsclone/internal/cli/output"
	"github.com/masonlherndon/vsclone/internal/core/domain"
)

// ShowCommand returns the show command.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Summarize the manifest of a snapshot directory",
		ArgsUsage: "DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: table, json",
				Value:   "table",
			},
		},
		Action: showRun,
	}
}

func showRun(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" || c.NArg() != 1 {
		return fmt.Errorf("show: exactly one snapshot directory argument required")
	}

	m, err := domain.ReadManifest(dir)
	if err != nil {
		return err
	}

	format := output.Format(c.String("output"))
	formatter := output.NewFormatter(format)
	if format == output.FormatJSON {
		return formatter.Format(os.Stdout, m)
	}

	table := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	table.AddRow("version", m.Version)
	table.AddRow("commit", m.CommitID)
	for _, p := range sortedPlatforms(m.Installer) {
		table.AddRow("installer["+string(p)+"]", orDash(m.Installer[p]))
	}
	for _, p := range sortedPlatforms(m.Server) {
		table.AddRow("server["+string(p)+"]", orDash(m.Server[p]))
	}
	table.AddRow("extensions", fmt.Sprintf("%d", len(m.Extensions)))
	if err := formatter.Format(os.Stdout, table); err != nil {
		return err
	}

	if len(m.Extensions) == 0 {
		return nil
	}

	fmt.Println()
	ext := &output.Table{Headers: []string{"EXTENSION", "PLATFORMS"}}
	tokens := make([]string, 0, len(m.Extensions))
	for token := range m.Extensions {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		entry := m.Extensions[token]
		var with []string
		for _, p := range sortedPlatforms(entry) {
			if entry[p] != "" {
				with = append(with, string(p))
			}
		}
		ext.AddRow(token, joinOrDash(with))
	}
	return formatter.Format(os.Stdout, ext)
}

func sortedPlatforms[V any](m map[domain.Platform]V) []domain.Platform {
	keys := make([]domain.Platform, 0, len(m))
	for p := range m {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
