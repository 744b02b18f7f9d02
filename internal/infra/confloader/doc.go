// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader on top of koanf that
// overlays, in priority order, environment variables and a YAML file over
// the compiled-in defaults of a target struct. It is used to override the
// platform registry (artifact endpoints and the supported-platform table)
// without a rebuild.
//
// Priority (highest to lowest):
//
//  1. Environment variables (VSCLONE_*)
//  2. Configuration file (YAML)
//  3. Compiled-in defaults (the pre-populated target struct)
package confloader
