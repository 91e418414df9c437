// Package config provides configuration management for the webfont packager.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to the option structs of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Packages are written to ./packages/{id}
//	// 12 fonts are packaged in parallel in batch mode
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
//
// # Saving Settings
//
//	settings.PackagesPath = "/srv/fonts"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Catalog API location and HTTP behavior
//   - Output directory and manifest metadata
//   - Concurrency limits for fonts and downloads
//   - Download retry behavior
package config
