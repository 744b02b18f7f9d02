package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o755,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUnpacker_Extract_TarGz(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "server-linux.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"vscode-server-linux-x64/bin/code-server": "#!/bin/sh",
		"vscode-server-linux-x64/product.json":    "{}",
	})

	dest := t.TempDir()
	top, err := NewUnpacker(logger.Nop()).Extract(context.Background(), archivePath, dest)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if top != "vscode-server-linux-x64" {
		t.Errorf("top = %q, want %q", top, "vscode-server-linux-x64")
	}

	payload := filepath.Join(dest, top, "bin", "code-server")
	data, err := os.ReadFile(payload)
	if err != nil {
		t.Fatalf("payload missing: %v", err)
	}
	if string(data) != "#!/bin/sh" {
		t.Errorf("payload contents = %q", data)
	}
	info, err := os.Stat(payload)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Error("executable bit lost during extraction")
	}
}

func TestUnpacker_Extract_Zip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "server-win32.zip")
	writeZip(t, archivePath, map[string]string{
		"vscode-server-win32-x64/code-server.cmd": "@echo off",
		"vscode-server-win32-x64/product.json":    "{}",
	})

	dest := t.TempDir()
	top, err := NewUnpacker(logger.Nop()).Extract(context.Background(), archivePath, dest)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if top != "vscode-server-win32-x64" {
		t.Errorf("top = %q, want %q", top, "vscode-server-win32-x64")
	}
	if _, err := os.Stat(filepath.Join(dest, top, "product.json")); err != nil {
		t.Errorf("payload missing: %v", err)
	}
}

func TestUnpacker_Extract_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.rar")
	if err := os.WriteFile(path, []byte("???"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewUnpacker(logger.Nop()).Extract(context.Background(), path, t.TempDir()); err == nil {
		t.Error("Extract() accepted an unknown format")
	}
}

func TestUnpacker_Extract_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"../outside": "nope",
	})

	if _, err := NewUnpacker(logger.Nop()).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("Extract() accepted a path-escaping entry")
	}
}

func TestUnpacker_Extract_RejectsMultipleTopLevels(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "flat.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"a/file": "1",
		"b/file": "2",
	})

	if _, err := NewUnpacker(logger.Nop()).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("Extract() accepted an archive without a single top-level directory")
	}
}
