package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/obentoo/aurupd/internal/common/command"
)

// ExitAccessDenied is the status git exits with when a clone is refused
const ExitAccessDenied = 128

var (
	ErrGitCommand   = errors.New("git command failed")
	ErrAccessDenied = errors.New("repository not accessible with current credentials")
)

// GitRunner executes git commands in a specific working directory
type GitRunner struct {
	workDir string
	runner  command.Runner
}

// NewGitRunner creates a new GitRunner for the specified working directory
func NewGitRunner(workDir string) *GitRunner {
	return NewGitRunnerWithCommand(workDir, command.NewExecRunner())
}

// NewGitRunnerWithCommand creates a GitRunner that executes git through runner
func NewGitRunnerWithCommand(workDir string, runner command.Runner) *GitRunner {
	return &GitRunner{
		workDir: workDir,
		runner:  runner,
	}
}

// WorkDir returns the working directory of the GitRunner
func (g *GitRunner) WorkDir() string {
	return g.workDir
}

// runCommand executes a git command and returns the raw result
func (g *GitRunner) runCommand(args ...string) (*command.Result, error) {
	result, err := g.runner.Run(g.workDir, "git", args...)
	if err != nil {
		return nil, errors.Join(ErrGitCommand, err)
	}
	return result, nil
}

// run executes a git command and converts a non-zero exit into an error
func (g *GitRunner) run(args ...string) (string, error) {
	result, err := g.runCommand(args...)
	if err != nil {
		return "", err
	}
	if err := result.Err(); err != nil {
		return result.Stdout, fmt.Errorf("%w: git %s: %w", ErrGitCommand, args[0], err)
	}
	return result.Stdout, nil
}

// Clone clones url into the working directory.
// Status 128 is reported as ErrAccessDenied so callers can fall back to
// another transport.
func (g *GitRunner) Clone(url string) error {
	result, err := g.runner.Run("", "git", "clone", url, g.workDir)
	if err != nil {
		return errors.Join(ErrGitCommand, err)
	}

	switch result.ExitCode {
	case 0:
		return nil
	case ExitAccessDenied:
		return fmt.Errorf("%w: %s", ErrAccessDenied, url)
	default:
		return fmt.Errorf("%w: git clone %s: %w", ErrGitCommand, url, result.Err())
	}
}

// ConfigLocal sets a repository-local config value
func (g *GitRunner) ConfigLocal(key, value string) error {
	_, err := g.run("config", "--local", key, value)
	return err
}

// StatusEntry represents a single entry from git status --porcelain
type StatusEntry struct {
	Status   string // A, M, D, R, ??
	FilePath string
}

// Status returns the current git status as a list of StatusEntry
func (g *GitRunner) Status() ([]StatusEntry, error) {
	stdout, err := g.run("status", "--porcelain")
	if err != nil {
		return nil, err
	}

	return ParseStatusOutput(stdout), nil
}

// ParseStatusOutput parses git status --porcelain output into StatusEntry slice
func ParseStatusOutput(output string) []StatusEntry {
	var entries []StatusEntry

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}

		// XY filename; X is the index status, Y the worktree status
		status := strings.TrimSpace(line[:2])
		filePath := line[3:]

		// R  old -> new
		if strings.HasPrefix(status, "R") {
			parts := strings.Split(filePath, " -> ")
			if len(parts) == 2 {
				filePath = parts[1]
			}
		}

		entries = append(entries, StatusEntry{
			Status:   status,
			FilePath: filePath,
		})
	}

	return entries
}

// Add stages every change in the working directory ("git add .")
func (g *GitRunner) Add() error {
	_, err := g.run("add", ".")
	return err
}

// Commit creates a git commit with the specified message
func (g *GitRunner) Commit(message string) error {
	_, err := g.run("commit", "-m", message)
	return err
}

// Push pushes commits to the remote repository
func (g *GitRunner) Push() error {
	_, err := g.run("push")
	return err
}

// Ensure GitRunner implements GitExecutor interface
var _ GitExecutor = (*GitRunner)(nil)
