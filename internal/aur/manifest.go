package aur

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrManifestNotFound is returned when the manifest file does not exist
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestInvalid is returned when the manifest has unknown keys or bad values
	ErrManifestInvalid = errors.New("manifest is invalid")
)

// Manifest lists packages to check and packages to skip.
//
//	packages = ["foo", "bar-git"]
//	ignore   = ["baz-bin"]
type Manifest struct {
	Packages []string `toml:"packages"`
	Ignore   []string `toml:"ignore"`
}

// LoadManifest reads and validates a TOML manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return ParseManifest(string(data))
}

// ParseManifest decodes manifest content, rejecting unknown keys
func ParseManifest(content string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(content, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrManifestInvalid, strings.Join(keys, ", "))
	}

	for _, list := range [][]string{m.Packages, m.Ignore} {
		for _, name := range list {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: empty package name", ErrManifestInvalid)
			}
		}
	}

	return &m, nil
}

// Ignores returns true if name is on the ignore list
func (m *Manifest) Ignores(name string) bool {
	if m == nil {
		return false
	}
	for _, ignored := range m.Ignore {
		if ignored == name {
			return true
		}
	}
	return false
}

// Filter drops ignored packages, preserving order
func (m *Manifest) Filter(packages []PackageInfo) []PackageInfo {
	if m == nil || len(m.Ignore) == 0 {
		return packages
	}

	filtered := make([]PackageInfo, 0, len(packages))
	for _, pkg := range packages {
		if !m.Ignores(pkg.Name) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}
