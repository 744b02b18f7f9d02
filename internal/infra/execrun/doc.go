// Package execrun executes external commands for vsclone, streaming
// their output to the operator as it is produced. It exists so the
// editor and installer adapters can share one execution path and so
// tests can substitute a fake runner.
package execrun
