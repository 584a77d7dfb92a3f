// Package cli implements the labelator command-line interface.
//
// This package provides commands for rendering label sheets from text or
// JSON input, inspecting sheet calibrations, managing the render cache,
// and serving the browser preview. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PDF, or PNG label sheets from a labels file
//   - sheets: List and inspect sheet calibrations
//   - preview: Serve a live browser preview
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"os"
	"path/filepath"
)

// appName is the application name used for directories and display.
const appName = "labelator"

// cacheDir returns the cache directory using XDG standard (~/.cache/labelator/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
