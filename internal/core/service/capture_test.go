package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/masonlherndon/vsclone/internal/core/domain"
	"github.com/masonlherndon/vsclone/internal/core/platform"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

func newCapture(editor *fakeEditor, dl *fakeDownloader) *CaptureService {
	return NewCaptureService(platform.Default(), editor, dl, logger.Nop())
}

func TestCaptureService_Run(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{
		version: "1.85.0",
		commit:  "abc123",
		tokens:  []string{"ms.python@2024.1.0"},
	}
	dl := &fakeDownloader{}

	m, err := newCapture(editor, dl).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if m.Version != "1.85.0" || m.CommitID != "abc123" {
		t.Errorf("identity = (%q, %q)", m.Version, m.CommitID)
	}
	for _, p := range []domain.Platform{domain.PlatformLinux, domain.PlatformWindows} {
		if m.Installer[p] == "" {
			t.Errorf("Installer[%s] empty", p)
		}
		if m.Server[p] == "" {
			t.Errorf("Server[%s] empty", p)
		}
	}
	if !dl.fetched("/commit:abc123/server-linux-x64/stable") {
		t.Error("Linux server build was not fetched from the commit channel")
	}

	entry := m.Extensions["ms.python@2024.1.0"]
	if entry[domain.PlatformLinux] == "" || entry[domain.PlatformWindows] == "" {
		t.Errorf("platform-specific paths missing: %v", entry)
	}
	if entry[domain.PlatformGeneric] != "" {
		t.Errorf("Generic = %q, want empty when all specific downloads succeed", entry[domain.PlatformGeneric])
	}

	// Manifest and artifacts on disk, paths relative to the snapshot dir.
	if _, err := os.Stat(filepath.Join(dir, domain.ManifestFilename)); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, entry[domain.PlatformLinux])); err != nil {
		t.Errorf("extension artifact missing: %v", err)
	}

	// All specific downloads succeeded, so the universal package must not
	// have been fetched.
	for _, u := range dl.urls {
		if strings.Contains(u, "assetbyname") && !strings.Contains(u, "targetPlatform=") {
			t.Errorf("universal package fetched despite complete specific set: %s", u)
		}
	}
}

func TestCaptureService_Run_ExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{
		version: "1.85.0",
		commit:  "abc123",
		tokens:  []string{"ms.python@2024.1.0"},
	}
	// The Windows-specific package does not exist for this extension.
	dl := &fakeDownloader{fail: []string{"targetPlatform=win32-x64"}}

	m, err := newCapture(editor, dl).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entry := m.Extensions["ms.python@2024.1.0"]
	if entry[domain.PlatformLinux] == "" {
		t.Error("succeeding platform path should be set")
	}
	if entry[domain.PlatformWindows] != "" {
		t.Errorf("failing platform path = %q, want empty", entry[domain.PlatformWindows])
	}
	if entry[domain.PlatformGeneric] == "" {
		t.Error("Generic path should be set when a specific download fails")
	}
	if !dl.fetched("?targetPlatform=win32-x64") {
		t.Error("Windows-specific package was never attempted")
	}
}

func TestCaptureService_Run_ExtensionFallbackAlsoFails(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{
		version: "1.85.0",
		commit:  "abc123",
		tokens:  []string{"ms.python@2024.1.0"},
	}
	// Every extension download fails, specific and universal alike.
	dl := &fakeDownloader{fail: []string{"assetbyname"}}

	_, err := newCapture(editor, dl).Run(context.Background(), dir)
	if !errors.Is(err, domain.ErrDownloadFailed) {
		t.Fatalf("Run() error = %v, want ErrDownloadFailed", err)
	}
	assertNoManifest(t, dir)
}

func TestCaptureService_Run_InstallerFailureAborts(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{version: "1.85.0", commit: "abc123"}
	dl := &fakeDownloader{fail: []string{"win32-x64-user"}}

	_, err := newCapture(editor, dl).Run(context.Background(), dir)
	if !errors.Is(err, domain.ErrDownloadFailed) {
		t.Fatalf("Run() error = %v, want ErrDownloadFailed", err)
	}
	assertNoManifest(t, dir)
}

func TestCaptureService_Run_ServerFailureAborts(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{version: "1.85.0", commit: "abc123"}
	dl := &fakeDownloader{fail: []string{"server-linux-x64"}}

	_, err := newCapture(editor, dl).Run(context.Background(), dir)
	if !errors.Is(err, domain.ErrDownloadFailed) {
		t.Fatalf("Run() error = %v, want ErrDownloadFailed", err)
	}
	assertNoManifest(t, dir)
}

func TestCaptureService_Run_EditorQueryFailure(t *testing.T) {
	editor := &fakeEditor{err: fmt.Errorf("code: command not found")}
	_, err := newCapture(editor, &fakeDownloader{}).Run(context.Background(), t.TempDir())
	if !errors.Is(err, domain.ErrEditorQuery) {
		t.Fatalf("Run() error = %v, want ErrEditorQuery", err)
	}
}

func TestCaptureService_Run_MalformedToken(t *testing.T) {
	editor := &fakeEditor{
		version: "1.85.0",
		commit:  "abc123",
		tokens:  []string{"not-a-token"},
	}
	dir := t.TempDir()
	_, err := newCapture(editor, &fakeDownloader{}).Run(context.Background(), dir)
	if !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("Run() error = %v, want ErrMalformedToken", err)
	}
	assertNoManifest(t, dir)
}

func assertNoManifest(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, domain.ManifestFilename)); !os.IsNotExist(err) {
		t.Error("no manifest may be written on a failed capture")
	}
}
