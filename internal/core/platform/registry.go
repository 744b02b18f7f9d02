package platform

import (
	"sort"

	"github.com/masonlherndon/vsclone/internal/core/domain"
)

// Class identifies which artifact a vendor identifier is for. Vendors use
// different identifier vocabularies per artifact type (installer packaging
// format vs. raw architecture tag) even for the same physical platform.
type Class string

const (
	ClassInstaller Class = "installer"
	ClassServer    Class = "server"
	ClassExtension Class = "extension"
)

// Identifiers holds the per-class vendor identifiers for one platform.
type Identifiers struct {
	Installer string `koanf:"installer"`
	Server    string `koanf:"server"`
	Extension string `koanf:"extension"`
}

// Endpoints holds the artifact host locations.
type Endpoints struct {
	// Update serves installer and server builds.
	Update string `koanf:"update"`

	// Gallery is the primary extension package endpoint.
	Gallery string `koanf:"gallery"`

	// Assets is the backup asset-serving host, addressed per publisher as
	// https://<publisher>.<Assets>/...
	Assets string `koanf:"assets"`
}

// Registry is the supported-platform table plus the artifact host endpoints.
// It is pure data; Lookup and the URL builders never branch on platform
// names.
type Registry struct {
	Endpoints Endpoints `koanf:"endpoints"`

	// Platforms maps logical platform names to their vendor identifiers.
	Platforms map[string]Identifiers `koanf:"platforms"`
}

// Default returns the compiled-in registry covering the two supported
// desktop OS families.
func Default() *Registry {
	return &Registry{
		Endpoints: Endpoints{
			Update:  "https://update.code.visualstudio.com",
			Gallery: "https://marketplace.visualstudio.com",
			Assets:  "gallery.vsassets.io",
		},
		Platforms: map[string]Identifiers{
			string(domain.PlatformLinux): {
				Installer: "linux-deb-x64",
				Server:    "linux-x64",
				Extension: "linux-x64",
			},
			string(domain.PlatformWindows): {
				Installer: "win32-x64-user",
				Server:    "win32-x64",
				Extension: "win32-x64",
			},
		},
	}
}

// Names returns the supported platform names in deterministic (sorted)
// order, so capture iteration and manifest contents are stable across runs.
func (r *Registry) Names() []domain.Platform {
	names := make([]domain.Platform, 0, len(r.Platforms))
	for name := range r.Platforms {
		names = append(names, domain.Platform(name))
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup resolves the vendor identifier for a (class, platform) pair. It
// fails with ErrUnsupportedPlatform when the pair is outside the registry.
func (r *Registry) Lookup(class Class, p domain.Platform) (string, error) {
	ids, ok := r.Platforms[string(p)]
	if !ok {
		return "", domain.ErrUnsupportedPlatform.WithDetails(string(class) + " artifact for " + string(p))
	}
	var id string
	switch class {
	case ClassInstaller:
		id = ids.Installer
	case ClassServer:
		id = ids.Server
	case ClassExtension:
		id = ids.Extension
	}
	if id == "" {
		return "", domain.ErrUnsupportedPlatform.WithDetails(string(class) + " artifact for " + string(p))
	}
	return id, nil
}

// Supports reports whether the platform is in the supported set.
func (r *Registry) Supports(p domain.Platform) bool {
	_, ok := r.Platforms[string(p)]
	return ok
}
