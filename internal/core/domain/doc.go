// Package domain defines the core domain models for vsclone.
//
// Domain models are pure value objects without any IO dependencies
// or framework coupling. This package contains:
//
//   - Manifest: the persisted snapshot description, the sole contract
//     between the capture and apply phases
//   - Extension: parsed publisher.package@version descriptor
//   - Platform: logical platform names used as manifest keys
//   - Errors: domain-specific error definitions
package domain
