package git

// GitExecutor defines the interface for git operations on a package checkout.
// This interface allows for mocking git operations in tests.
type GitExecutor interface {
	// Clone clones url into the working directory.
	// Returns ErrAccessDenied when git exits with status 128.
	Clone(url string) error

	// ConfigLocal sets a repository-local config value
	ConfigLocal(key, value string) error

	// Status returns the current git status as a list of StatusEntry
	Status() ([]StatusEntry, error)

	// Add stages every change in the working directory
	Add() error

	// Commit creates a git commit with the specified message
	Commit(message string) error

	// Push pushes commits to the remote repository
	Push() error

	// WorkDir returns the working directory of the git repository
	WorkDir() string
}
