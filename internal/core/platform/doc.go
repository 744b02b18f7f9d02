// Package platform maps logical platform names to the vendor-specific
// identifiers used in artifact download URLs, and constructs canonical
// URLs and local filenames for each artifact class.
//
// The platform-to-identifier tables are configuration data: Default()
// returns the compiled-in tables, and a YAML file or environment
// variables can overlay them through the confloader, so adding a
// platform never touches the resolution algorithm.
package platform
