package domain

import "runtime"

// Platform is a logical platform name used as a manifest key. The supported
// set comes from the platform registry configuration; the names here are the
// defaults shipped with the tool.
type Platform string

const (
	PlatformLinux   Platform = "Linux"
	PlatformWindows Platform = "Windows"

	// PlatformGeneric is a sentinel key used only in extension entries for
	// the platform-agnostic ("universal") package. It is never a member of
	// the supported platform set.
	PlatformGeneric Platform = "Generic"
)

// CurrentPlatform maps the running OS to its logical platform name. It fails
// with ErrUnsupportedPlatform on any OS the apply phase cannot install onto.
func CurrentPlatform() (Platform, error) {
	switch runtime.GOOS {
	case "linux":
		return PlatformLinux, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return "", ErrUnsupportedPlatform.WithDetails("host os " + runtime.GOOS)
	}
}
