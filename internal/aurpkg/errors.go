package aurpkg

import (
	"errors"
	"fmt"
)

var (
	// ErrClone indicates the recipe repository could not be cloned or read
	ErrClone = errors.New("clone failed")
	// ErrBuild indicates makepkg could not fetch sources or the new pkgver could not be read
	ErrBuild = errors.New("build failed")
	// ErrUpdate indicates a step of the update sequence failed
	ErrUpdate = errors.New("update failed")
	// ErrVersionsNotPopulated is returned when versions are compared before clone and build
	ErrVersionsNotPopulated = errors.New("current and new versions are not populated")
	// ErrNotCloned is returned when a package is built before it is cloned
	ErrNotCloned = errors.New("package is not cloned")
)

// Error describes a failed lifecycle step of a single package.
// errors.Is matches both Kind and the underlying cause.
type Error struct {
	Package string
	Op      string
	Kind    error
	Err     error
}

func newError(pkg, op string, kind, err error) *Error {
	return &Error{Package: pkg, Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v at %s", e.Package, e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %v at %s: %v", e.Package, e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
