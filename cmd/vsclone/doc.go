// Package main provides the entry point for vsclone.
//
// The tool snapshots a working VS Code installation and rebuilds it on a
// machine without internet access:
//
//   - capture: download installers, server builds and extension packages
//     for every supported platform and write a manifest
//   - apply: install the editor, extensions and server build for the
//     current platform from a snapshot directory
//   - show: summarize a snapshot's manifest
//
// Usage:
//
//	vsclone capture ./snapshot
//	vsclone apply ./snapshot
//	vsclone show --output json ./snapshot
package main
