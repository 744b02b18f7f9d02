package domain

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
)

func TestDomainError_Is(t *testing.T) {
	err := ErrDownloadFailed.WithDetails("installer for linux-deb-x64")
	if !errors.Is(err, ErrDownloadFailed) {
		t.Error("WithDetails copy should match the base error by code")
	}
	if errors.Is(err, ErrManifestCorrupt) {
		t.Error("distinct codes must not match")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrDownloadFailed.WithCause(cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestDomainError_Error(t *testing.T) {
	base := ErrUnsupportedPlatform.Error()
	detailed := ErrUnsupportedPlatform.WithDetails("Darwin").Error()
	if base == detailed {
		t.Error("details should appear in the message")
	}
	if GetErrorCode(ErrUnsupportedPlatform) != "VC-PLAT-4040" {
		t.Errorf("GetErrorCode() = %q", GetErrorCode(ErrUnsupportedPlatform))
	}
}

func TestCurrentPlatform(t *testing.T) {
	got, err := CurrentPlatform()
	switch runtime.GOOS {
	case "linux":
		if err != nil || got != PlatformLinux {
			t.Errorf("CurrentPlatform() = (%q, %v), want (Linux, nil)", got, err)
		}
	case "windows":
		if err != nil || got != PlatformWindows {
			t.Errorf("CurrentPlatform() = (%q, %v), want (Windows, nil)", got, err)
		}
	default:
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("CurrentPlatform() error = %v, want ErrUnsupportedPlatform", err)
		}
	}
}
