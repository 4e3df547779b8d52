// Package preflight verifies the external tools aurupd depends on are installed.
package preflight

import (
	"errors"
	"os/exec"
	"strings"
)

var (
	// ErrMissingTool indicates a required executable is not on PATH
	ErrMissingTool = errors.New("required tool is not installed")
)

// DefaultTools are the executables every run needs
var DefaultTools = []string{"git", "makepkg"}

// MissingToolsError lists every required executable that could not be found
type MissingToolsError struct {
	Tools []string
}

func (e *MissingToolsError) Error() string {
	msg := "missing required tools:"
	for _, tool := range e.Tools {
		msg += "\n  - " + tool + " is not installed. Please install " + tool + "."
	}
	return msg
}

// Is reports ErrMissingTool so callers can match the category
func (e *MissingToolsError) Is(target error) bool {
	return target == ErrMissingTool
}

// Checker resolves executables on PATH
type Checker struct {
	lookPath func(string) (string, error)
}

// NewChecker creates a Checker backed by exec.LookPath
func NewChecker() *Checker {
	return NewCheckerWithLookPath(exec.LookPath)
}

// NewCheckerWithLookPath creates a Checker with a custom resolver
func NewCheckerWithLookPath(lookPath func(string) (string, error)) *Checker {
	return &Checker{lookPath: lookPath}
}

// Check resolves each tool and returns a *MissingToolsError naming all the
// ones that are missing, or nil if every tool is available
func (c *Checker) Check(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if strings.TrimSpace(tool) == "" {
			continue
		}
		if _, err := c.lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return &MissingToolsError{Tools: missing}
	}
	return nil
}

// Check verifies tools with exec.LookPath
func Check(tools ...string) error {
	return NewChecker().Check(tools...)
}
