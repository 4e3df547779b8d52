package makepkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/obentoo/aurupd/internal/common/command"
)

var (
	// ErrMakepkgFailed indicates makepkg exited with a non-zero status
	ErrMakepkgFailed = errors.New("makepkg failed")
)

var (
	fetchArgs     = []string{"-o"}
	buildArgs     = []string{"-scC", "--noconfirm", "--noarchive"}
	srcinfoArgs   = []string{"--printsrcinfo"}
	makepkgBinary = "makepkg"
)

// Runner executes makepkg in a specific working directory
type Runner struct {
	workDir string
	runner  command.Runner
}

// NewRunner creates a new Runner for the specified working directory
func NewRunner(workDir string) *Runner {
	return NewRunnerWithCommand(workDir, command.NewExecRunner())
}

// NewRunnerWithCommand creates a Runner that executes makepkg through runner
func NewRunnerWithCommand(workDir string, runner command.Runner) *Runner {
	return &Runner{
		workDir: workDir,
		runner:  runner,
	}
}

// WorkDir returns the working directory of the Runner
func (r *Runner) WorkDir() string {
	return r.workDir
}

func (r *Runner) run(args ...string) (string, error) {
	result, err := r.runner.Run(r.workDir, makepkgBinary, args...)
	if err != nil {
		return "", errors.Join(ErrMakepkgFailed, err)
	}
	if err := result.Err(); err != nil {
		return "", fmt.Errorf("%w: makepkg %s: %w", ErrMakepkgFailed, strings.Join(args, " "), err)
	}
	return result.Stdout, nil
}

// FetchSources runs makepkg -o
func (r *Runner) FetchSources() error {
	_, err := r.run(fetchArgs...)
	return err
}

// BuildClean runs makepkg -scC --noconfirm --noarchive
func (r *Runner) BuildClean() error {
	_, err := r.run(buildArgs...)
	return err
}

// PrintSrcinfo runs makepkg --printsrcinfo and returns its stdout verbatim
func (r *Runner) PrintSrcinfo() (string, error) {
	return r.run(srcinfoArgs...)
}

// Ensure Runner implements Builder interface
var _ Builder = (*Runner)(nil)
