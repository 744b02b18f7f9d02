package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFilename is the fixed name of the manifest inside a snapshot
// directory.
const ManifestFilename = "manifest.json"

// Manifest is the single persisted artifact of the capture phase and the
// sole contract consumed by the apply phase. All recorded paths are relative
// to the manifest's own directory; the snapshot is portable only if that
// directory moves as a unit.
//
// Fields are declared in sorted key order so the encoded document is stable
// and diffable. Field names are frozen: consumers ignore unknown future
// fields and treat missing expected fields as corruption.
type Manifest struct {
	CommitID   string                         `json:"commit_id"`
	Extensions map[string]map[Platform]string `json:"extensions"`
	Installer  map[Platform]string            `json:"installer"`
	Server     map[Platform]string            `json:"server"`
	Version    string                         `json:"version"`
}

// NewManifest returns a manifest with every platform slot pre-filled empty,
// ready for the capture stages to record artifact paths into.
func NewManifest(version, commitID string, platforms []Platform) *Manifest {
	m := &Manifest{
		Version:    version,
		CommitID:   commitID,
		Installer:  make(map[Platform]string, len(platforms)),
		Server:     make(map[Platform]string, len(platforms)),
		Extensions: make(map[string]map[Platform]string),
	}
	for _, p := range platforms {
		m.Installer[p] = ""
		m.Server[p] = ""
	}
	return m
}

// AddExtension pre-fills the entry for an extension token with empty slots
// for every supported platform plus the Generic sentinel.
func (m *Manifest) AddExtension(token string, platforms []Platform) {
	entry := make(map[Platform]string, len(platforms)+1)
	for _, p := range platforms {
		entry[p] = ""
	}
	entry[PlatformGeneric] = ""
	m.Extensions[token] = entry
}

// Validate checks the full manifest invariants against the supported
// platform set: identity fields present, the installer and server maps carry
// exactly the supported keys, every extension entry carries the supported
// keys plus Generic, and every extension entry has at least one non-empty
// path. The capture phase must never persist a manifest failing this.
func (m *Manifest) Validate(platforms []Platform) error {
	if err := m.ValidateKeys(platforms); err != nil {
		return err
	}
	for token, entry := range m.Extensions {
		usable := false
		for _, path := range entry {
			if path != "" {
				usable = true
				break
			}
		}
		if !usable {
			return ErrManifestCorrupt.WithDetails("extension " + token + " has no artifact path")
		}
	}
	return nil
}

// ValidateKeys checks identity fields and platform key sets only, leaving
// per-entry artifact availability to the consumer. The apply phase uses it
// so an extension entry with no usable path surfaces from resolution as
// NoCompatibleArtifact instead of as manifest corruption.
func (m *Manifest) ValidateKeys(platforms []Platform) error {
	if m.Version == "" {
		return ErrManifestCorrupt.WithDetails("missing version")
	}
	if m.CommitID == "" {
		return ErrManifestCorrupt.WithDetails("missing commit_id")
	}
	if err := checkKeys("installer", m.Installer, platforms, false); err != nil {
		return err
	}
	if err := checkKeys("server", m.Server, platforms, false); err != nil {
		return err
	}
	for token, entry := range m.Extensions {
		if err := checkKeys("extensions["+token+"]", entry, platforms, true); err != nil {
			return err
		}
	}
	return nil
}

func checkKeys(field string, got map[Platform]string, platforms []Platform, generic bool) error {
	want := len(platforms)
	if generic {
		want++
	}
	if got == nil {
		return ErrManifestCorrupt.WithDetails("missing " + field)
	}
	if len(got) != want {
		return ErrManifestCorrupt.WithDetails(fmt.Sprintf("%s has %d platform keys, want %d", field, len(got), want))
	}
	for _, p := range platforms {
		if _, ok := got[p]; !ok {
			return ErrManifestCorrupt.WithDetails(field + " missing platform " + string(p))
		}
	}
	if generic {
		if _, ok := got[PlatformGeneric]; !ok {
			return ErrManifestCorrupt.WithDetails(field + " missing platform " + string(PlatformGeneric))
		}
	}
	return nil
}

// WriteFile persists the manifest into dir under ManifestFilename as
// tab-indented JSON with deterministic key order.
func (m *Manifest) WriteFile(dir string) error {
	data, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(dir, ManifestFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads and structurally validates the manifest from dir. It
// fails with ErrManifestNotFound when absent and ErrManifestCorrupt when the
// document cannot be parsed or required fields are missing. Key-set
// validation against the platform set is the caller's job (Validate), since
// the supported set is configuration.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrManifestNotFound.WithDetails(path)
		}
		return nil, ErrManifestNotFound.WithCause(err).WithDetails(path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ErrManifestCorrupt.WithCause(err).WithDetails(path)
	}
	if m.Version == "" || m.CommitID == "" || m.Installer == nil || m.Server == nil || m.Extensions == nil {
		return nil, ErrManifestCorrupt.WithDetails(path + ": missing required fields")
	}
	return &m, nil
}
