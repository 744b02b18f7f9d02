// Package shutdown provides graceful shutdown for vsclone.
//
// This package ties process termination signals (SIGINT, SIGTERM) to
// context cancellation, so an interrupted capture or apply stops at the
// next blocking operation instead of being killed mid-write.
//
// Usage:
//
//	ctx, cancel := shutdown.WithSignals(context.Background())
//	defer cancel()
package shutdown
