package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a vsclone failure with a structured error code.
// Codes are stable identifiers; messages are for humans.
type DomainError struct {
	Code    string // Error code (e.g., "VC-MANI-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Platform Errors (PLAT)
// ============================================================================

var (
	// ErrUnsupportedPlatform indicates a (class, platform) pair outside the
	// supported set, or a host OS the tool cannot install onto.
	ErrUnsupportedPlatform = NewDomainError("VC-PLAT-4040", "unsupported platform")
)

// ============================================================================
// Extension Errors (EXT)
// ============================================================================

var (
	// ErrMalformedToken indicates an extension token that does not follow
	// the publisher.package@version grammar.
	ErrMalformedToken = NewDomainError("VC-EXT-4000", "malformed extension token")

	// ErrNoCompatibleArtifact indicates an extension entry with neither a
	// platform-specific nor a generic artifact usable on this platform.
	ErrNoCompatibleArtifact = NewDomainError("VC-EXT-4041", "no compatible artifact for platform")
)

// ============================================================================
// Capture Errors (EDIT, FETCH)
// ============================================================================

var (
	// ErrEditorQuery indicates the local editor could not be interrogated
	// for its version, commit or extension list.
	ErrEditorQuery = NewDomainError("VC-EDIT-5010", "editor query failed")

	// ErrDownloadFailed indicates an artifact download did not complete.
	ErrDownloadFailed = NewDomainError("VC-FETCH-5020", "artifact download failed")
)

// ============================================================================
// Manifest Errors (MANI)
// ============================================================================

var (
	// ErrManifestNotFound indicates the snapshot directory has no manifest.
	ErrManifestNotFound = NewDomainError("VC-MANI-4040", "manifest not found")

	// ErrManifestCorrupt indicates the manifest could not be parsed or is
	// missing required fields.
	ErrManifestCorrupt = NewDomainError("VC-MANI-4220", "manifest corrupt")
)

// ============================================================================
// Install Errors (INST)
// ============================================================================

var (
	// ErrInstallationFailed indicates an installation stage exited non-zero.
	ErrInstallationFailed = NewDomainError("VC-INST-5000", "installation failed")
)
