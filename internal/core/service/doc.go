// Package service implements the two snapshot phases for vsclone.
//
// CaptureService builds a snapshot of the local editor installation:
// it queries the editor's identity, downloads installer/server builds
// for every supported platform and every extension package, and writes
// the manifest that describes the result.
//
// ApplyService reconstructs that snapshot on the current machine from
// the manifest alone; the two services share no state beyond the
// manifest file, so capture and apply can run on different machines at
// different times.
//
// Both services define interfaces for their external collaborators
// (editor introspection, downloads, extraction, native installation),
// allowing dependency injection and testing with fakes.
package service
