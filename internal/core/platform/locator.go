package platform

import (
	"fmt"

	"github.com/masonlherndon/vsclone/internal/core/domain"
)

// InstallerURL builds the download URL for the editor installer of a given
// release version.
func (r *Registry) InstallerURL(version, platformID string) string {
	return fmt.Sprintf("%s/%s/%s/stable", r.Endpoints.Update, version, platformID)
}

// ServerURL builds the download URL for the headless server build of a
// given commit.
func (r *Registry) ServerURL(commitID, platformID string) string {
	return fmt.Sprintf("%s/commit:%s/server-%s/stable", r.Endpoints.Update, commitID, platformID)
}

// ExtensionURL builds the download URL for an extension package. An empty
// platformID targets the platform-agnostic ("universal") package. When
// backup is set the URL addresses the per-publisher asset-serving endpoint
// instead of the primary gallery, which serves the same package through an
// indirect path when the direct download is unavailable.
func (r *Registry) ExtensionURL(ext domain.Extension, platformID string, backup bool) string {
	query := ""
	if platformID != "" {
		query = "?targetPlatform=" + platformID
	}
	if backup {
		return fmt.Sprintf(
			"https://%s.%s/_apis/public/gallery/publisher/%s/extension/%s/%s/assetbyname/Microsoft.VisualStudio.Services.VSIXPackage%s",
			ext.Publisher, r.Endpoints.Assets, ext.Publisher, ext.Package, ext.Version, query,
		)
	}
	return fmt.Sprintf(
		"%s/_apis/public/gallery/publishers/%s/vsextensions/%s/%s/vspackage%s",
		r.Endpoints.Gallery, ext.Publisher, ext.Package, ext.Version, query,
	)
}

// ExtensionFilename derives the canonical local filename for an extension
// package. It is deterministic and injective over (publisher, package,
// version, platformID-or-absent), so re-running a capture maps the same
// logical artifact to the same file.
func ExtensionFilename(ext domain.Extension, platformID string) string {
	if platformID == "" {
		return fmt.Sprintf("%s.%s-%s.vsix", ext.Publisher, ext.Package, ext.Version)
	}
	return fmt.Sprintf("%s.%s-%s@%s.vsix", ext.Publisher, ext.Package, ext.Version, platformID)
}
