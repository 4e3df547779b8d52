package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Package state colors
	UpToDate = color.New(color.FgGreen)
	Outdated = color.New(color.FgYellow, color.Bold)
	Updated  = color.New(color.FgGreen, color.Bold)
	ReadOnly = color.New(color.FgMagenta)
	Failed   = color.New(color.FgRed, color.Bold)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header  = color.New(color.FgWhite, color.Bold)
	Package = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// StateColor returns the appropriate color for a package state
func StateColor(state string) *color.Color {
	switch state {
	case "up-to-date":
		return UpToDate
	case "outdated":
		return Outdated
	case "updated":
		return Updated
	case "read-only":
		return ReadOnly
	case "failed":
		return Failed
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// Sprint returns a colored string without printing
func Sprint(c *color.Color, a ...interface{}) string {
	return c.Sprint(a...)
}

// FormatState formats a state string with appropriate color
func FormatState(state string) string {
	c := StateColor(state)
	return c.Sprintf("[%s]", state)
}

// FormatPackage formats a package name, with its version when known
func FormatPackage(name, version string) string {
	if version != "" {
		return Package.Sprintf("%s %s", name, version)
	}
	return Package.Sprint(name)
}

// FormatVersionChange formats "old → new" with the new version highlighted
func FormatVersionChange(oldVersion, newVersion string) string {
	return fmt.Sprintf("%s → %s", oldVersion, Outdated.Sprint(newVersion))
}
