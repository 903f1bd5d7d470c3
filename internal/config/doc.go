// Package config holds the run configuration for fbref-comps.
//
// Defaults reproduce a plain run against the FBref competitions page. An
// optional JSON5 file may override them, and a sibling "<name>.local.<ext>"
// file overrides the file in turn. Command-line flags are applied last by the
// cli package.
package config
