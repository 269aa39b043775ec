// FILE: lixenwraith/gameini/discovery.go
package gameini

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the settings file looked up when none is named
const DefaultFileName = "Game.ini"

// DiscoveryOptions configures locating a settings file on disk
type DiscoveryOptions struct {
	// File name to look for, e.g. "Game.ini" or "GameUserSettings.ini"
	Name string

	// Custom search directories, tried first
	Paths []string

	// Environment variable holding an explicit path
	EnvVar string

	// Dedicated server install directory; adds its Saved/Config/<platform>
	// directories to the search
	ServerRoot string

	// Whether to search the current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults for the named file
func DefaultDiscoveryOptions(name string) DiscoveryOptions {
	if name == "" {
		name = DefaultFileName
	}
	return DiscoveryOptions{
		Name:          name,
		EnvVar:        "GAMEINI_FILE",
		UseCurrentDir: true,
	}
}

// FindFile returns the path of the first matching file. The environment
// variable wins over any search; a missing file wraps ErrNotFound.
func FindFile(opts DiscoveryOptions) (string, error) {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			if _, err := os.Stat(path); err != nil {
				return "", fmt.Errorf("file from %s: %w", opts.EnvVar, err)
			}
			return path, nil
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)
	if opts.ServerRoot != "" {
		searchPaths = append(searchPaths, serverConfigPaths(opts.ServerRoot)...)
	}
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	for _, dir := range searchPaths {
		path := filepath.Join(dir, opts.Name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", opts.Name, strings.Join(searchPaths, ", "), ErrNotFound)
}

// serverConfigPaths returns the per-platform config directories of a
// dedicated server install, with and without the game directory prefix
func serverConfigPaths(root string) []string {
	var paths []string
	for _, prefix := range []string{filepath.Join("ShooterGame", "Saved"), "Saved"} {
		for _, platform := range []string{"WindowsServer", "LinuxServer"} {
			paths = append(paths, filepath.Join(root, prefix, "Config", platform))
		}
	}
	return paths
}
