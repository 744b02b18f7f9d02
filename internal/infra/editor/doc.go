// Package editor wraps the editor's own command-line interface: the
// version/commit/extension-list introspection used during capture, and
// the batch extension installation used during apply.
package editor
