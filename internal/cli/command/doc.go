// Package command provides CLI command definitions for vsclone.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command and global flags
//   - capture.go: Snapshot capture (online phase)
//   - apply.go: Snapshot application (offline phase)
//   - show.go: Manifest inspection
//
// Commands follow a consistent pattern of parsing flags, wiring the
// services, and formatting output.
package command
