package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/masonlherndon/vsclone/internal/core/domain"
)

// fakeEditor answers identity queries from fixed values.
type fakeEditor struct {
	version string
	commit  string
	tokens  []string
	err     error
}

func (f *fakeEditor) Version(ctx context.Context) (string, error)      { return f.version, f.err }
func (f *fakeEditor) CommitID(ctx context.Context) (string, error)     { return f.commit, f.err }
func (f *fakeEditor) Extensions(ctx context.Context) ([]string, error) { return f.tokens, f.err }

// fakeDownloader writes a small file per fetch and records every URL.
// URLs containing any fail fragment return an error instead.
type fakeDownloader struct {
	fail []string
	urls []string
}

func (f *fakeDownloader) Fetch(ctx context.Context, url, dir, name string) (string, error) {
	f.urls = append(f.urls, url)
	for _, frag := range f.fail {
		if strings.Contains(url, frag) {
			return "", fmt.Errorf("HTTP 404: %s", url)
		}
	}
	if name == "" {
		name = strings.ReplaceAll(strings.TrimPrefix(url, "https://"), "/", "_")
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(url), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (f *fakeDownloader) fetched(fragment string) bool {
	for _, u := range f.urls {
		if strings.Contains(u, fragment) {
			return true
		}
	}
	return false
}

// fakeNative records editor install invocations.
type fakeNative struct {
	calls []string
	err   error
}

func (f *fakeNative) InstallEditor(ctx context.Context, p domain.Platform, artifactPath string) error {
	f.calls = append(f.calls, artifactPath)
	return f.err
}

// fakeExtInstaller records the batch and simulates the editor populating
// its local extension directory.
type fakeExtInstaller struct {
	extensionsDir string
	batches       [][]string
	err           error
}

func (f *fakeExtInstaller) InstallExtensions(ctx context.Context, artifactPaths []string) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, artifactPaths)
	if err := os.MkdirAll(f.extensionsDir, 0o755); err != nil {
		return err
	}
	for _, p := range artifactPaths {
		name := strings.TrimSuffix(filepath.Base(p), ".vsix")
		if err := os.MkdirAll(filepath.Join(f.extensionsDir, name), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// fakeExtractor materializes a fixed payload tree under dest.
type fakeExtractor struct {
	topDir string
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, archivePath, dest string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	payload := filepath.Join(dest, f.topDir)
	if err := os.MkdirAll(filepath.Join(payload, "bin"), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(payload, "bin", "code-server"), []byte("server"), 0o755); err != nil {
		return "", err
	}
	return f.topDir, nil
}

// currentPlatformOrSkip returns the running platform, skipping the test on
// hosts outside the supported set.
func currentPlatformOrSkip(t *testing.T) domain.Platform {
	t.Helper()
	p, err := domain.CurrentPlatform()
	if err != nil {
		t.Skipf("host platform unsupported: %v", err)
	}
	return p
}
