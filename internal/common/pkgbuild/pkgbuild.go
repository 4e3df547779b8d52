// Package pkgbuild reads fields from Arch Linux PKGBUILD recipes.
package pkgbuild

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// FileName is the recipe file makepkg reads
const FileName = "PKGBUILD"

// SrcinfoFileName is the generated metadata file committed next to the recipe
const SrcinfoFileName = ".SRCINFO"

var (
	// ErrRecipeNotFound is returned when the directory has no PKGBUILD
	ErrRecipeNotFound = errors.New("PKGBUILD not found")
	// ErrVersionNotFound is returned when the PKGBUILD has no pkgver assignment
	ErrVersionNotFound = errors.New("pkgver not found in PKGBUILD")
)

// pkgverRegex matches a literal pkgver assignment on its own line
var pkgverRegex = regexp.MustCompile(`(?m)^pkgver=([A-Za-z0-9._]*)$`)

// ExtractVersion reads the PKGBUILD at the top level of dir and returns its pkgver
func ExtractVersion(dir string) (string, error) {
	path, err := Find(dir)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseVersion(string(data))
}

// Find returns the path of the PKGBUILD in dir.
// The name must match exactly, so a "pkgbuild" file on a case-insensitive
// filesystem is not accepted.
func Find(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrRecipeNotFound, dir)
		}
		return "", err
	}

	for _, entry := range entries {
		if entry.Name() == FileName && !entry.IsDir() {
			return filepath.Join(dir, FileName), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrRecipeNotFound, dir)
}

// ParseVersion returns the value of the first pkgver= line in content
func ParseVersion(content string) (string, error) {
	matches := pkgverRegex.FindStringSubmatch(content)
	if matches == nil {
		return "", ErrVersionNotFound
	}
	return matches[1], nil
}

// WriteSrcinfo writes content verbatim to .SRCINFO in dir
func WriteSrcinfo(dir, content string) error {
	return os.WriteFile(filepath.Join(dir, SrcinfoFileName), []byte(content), 0644)
}
