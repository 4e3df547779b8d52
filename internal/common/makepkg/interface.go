// Package makepkg wraps the makepkg build utility for a single PKGBUILD checkout.
package makepkg

// Builder defines the makepkg operations used on a package checkout.
// This interface allows for mocking makepkg in tests.
type Builder interface {
	// FetchSources downloads and extracts sources and runs pkgver()
	// without building a package (makepkg -o)
	FetchSources() error

	// BuildClean runs a full build, installing missing dependencies and
	// removing build files afterwards, without creating an archive
	// (makepkg -scC --noconfirm --noarchive)
	BuildClean() error

	// PrintSrcinfo returns the generated .SRCINFO content (makepkg --printsrcinfo)
	PrintSrcinfo() (string, error)

	// WorkDir returns the directory holding the PKGBUILD
	WorkDir() string
}
