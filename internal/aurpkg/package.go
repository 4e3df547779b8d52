// Package aurpkg models a single AUR package through its clone, build and
// update lifecycle.
package aurpkg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/obentoo/aurupd/internal/common/config"
	"github.com/obentoo/aurupd/internal/common/git"
	"github.com/obentoo/aurupd/internal/common/logger"
	"github.com/obentoo/aurupd/internal/common/makepkg"
	"github.com/obentoo/aurupd/internal/common/pkgbuild"
)

const (
	defaultSSHURL   = "ssh://aur@aur.archlinux.org/%s.git"
	defaultHTTPSURL = "https://aur.archlinux.org/%s.git"
)

// Package is one AUR package and its private checkout
type Package struct {
	Name           string
	Description    string
	CurrentVersion string
	NewVersion     string
	WorkDir        string
	Cloned         bool
	UsedSSH        bool

	built    bool
	sshURL   string
	httpsURL string
	git      git.GitExecutor
	builder  makepkg.Builder
}

// Option configures a Package
type Option func(*Package)

// WithRemotes sets the authenticated and anonymous clone URLs
func WithRemotes(sshURL, httpsURL string) Option {
	return func(p *Package) {
		p.sshURL = sshURL
		p.httpsURL = httpsURL
	}
}

// WithGit replaces the git executor operating on the work dir
func WithGit(g git.GitExecutor) Option {
	return func(p *Package) {
		p.git = g
	}
}

// WithBuilder replaces the makepkg builder operating on the work dir
func WithBuilder(b makepkg.Builder) Option {
	return func(p *Package) {
		p.builder = b
	}
}

// NewPackage creates a package with a fresh scratch directory.
// The caller must Close the package to remove it.
func NewPackage(name, description string, opts ...Option) (*Package, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsRune(name, os.PathSeparator) {
		return nil, fmt.Errorf("invalid package name %q", name)
	}

	dir, err := os.MkdirTemp("", "aurupd-"+name+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory for %s: %w", name, err)
	}

	p := &Package{
		Name:        name,
		Description: description,
		WorkDir:     dir,
		sshURL:      fmt.Sprintf(defaultSSHURL, name),
		httpsURL:    fmt.Sprintf(defaultHTTPSURL, name),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.git == nil {
		p.git = git.NewGitRunner(dir)
	}
	if p.builder == nil {
		p.builder = makepkg.NewRunner(dir)
	}
	return p, nil
}

// Close removes the work directory. It is safe to call more than once.
func (p *Package) Close() error {
	if p == nil || p.WorkDir == "" {
		return nil
	}
	err := os.RemoveAll(p.WorkDir)
	p.WorkDir = ""
	return err
}

// Built reports whether Build has completed
func (p *Package) Built() bool {
	return p.built
}

// Clone checks out the recipe over SSH, falling back to HTTPS once when
// access is denied. A package cloned over HTTPS cannot be pushed.
func (p *Package) Clone() error {
	if p.Cloned {
		return nil
	}

	usedSSH := true
	err := p.git.Clone(p.sshURL)
	if errors.Is(err, git.ErrAccessDenied) {
		logger.Warn("%s: access denied over SSH, retrying over HTTPS (read-only)", p.Name)
		usedSSH = false
		err = p.git.Clone(p.httpsURL)
	}
	if err != nil {
		return newError(p.Name, "git clone", ErrClone, err)
	}

	version, err := pkgbuild.ExtractVersion(p.WorkDir)
	if err != nil {
		return newError(p.Name, "read pkgver", ErrClone, err)
	}

	p.CurrentVersion = version
	p.UsedSSH = usedSSH
	p.Cloned = true
	logger.Debug("%s: cloned version %s (ssh=%t)", p.Name, version, usedSSH)
	return nil
}

// Build fetches sources with makepkg -o and records the resulting pkgver
func (p *Package) Build() error {
	if !p.Cloned {
		return newError(p.Name, "makepkg -o", ErrBuild, ErrNotCloned)
	}

	if err := p.builder.FetchSources(); err != nil {
		return newError(p.Name, "makepkg -o", ErrBuild, err)
	}

	version, err := pkgbuild.ExtractVersion(p.WorkDir)
	if err != nil {
		return newError(p.Name, "read pkgver", ErrBuild, err)
	}

	p.NewVersion = version
	p.built = true
	logger.Debug("%s: built version %s", p.Name, version)
	return nil
}

// NeedsUpdate reports whether the built pkgver differs from the cloned one.
// Versions are compared as trimmed strings.
func (p *Package) NeedsUpdate() (bool, error) {
	if !p.Cloned || !p.built {
		return false, fmt.Errorf("%s: %w", p.Name, ErrVersionsNotPopulated)
	}
	return strings.TrimSpace(p.CurrentVersion) != strings.TrimSpace(p.NewVersion), nil
}

// Outcome is the result of a successful Update call
type Outcome int

const (
	OutcomeUpToDate Outcome = iota
	OutcomeReadOnly
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeReadOnly:
		return "read-only"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// UpdateOptions controls the commit made by Update
type UpdateOptions struct {
	CommitMessage string
	Email         string
	Name          string
}

// Update rebuilds the package and pushes a commit with the regenerated .SRCINFO.
// Nothing is changed when the package is up to date or was cloned over HTTPS.
// A failed step is not rolled back.
func (p *Package) Update(opts UpdateOptions) (Outcome, error) {
	needsUpdate, err := p.NeedsUpdate()
	if err != nil {
		return OutcomeUpToDate, newError(p.Name, "compare versions", ErrUpdate, err)
	}
	if !needsUpdate {
		return OutcomeUpToDate, nil
	}
	if !p.UsedSSH {
		return OutcomeReadOnly, nil
	}

	message := opts.CommitMessage
	if strings.TrimSpace(message) == "" {
		message = config.DefaultCommitMessage
	}

	if err := p.builder.BuildClean(); err != nil {
		return OutcomeUpToDate, newError(p.Name, "makepkg -scC", ErrUpdate, err)
	}

	srcinfo, err := p.builder.PrintSrcinfo()
	if err != nil {
		return OutcomeUpToDate, newError(p.Name, "makepkg --printsrcinfo", ErrUpdate, err)
	}
	if err := pkgbuild.WriteSrcinfo(p.WorkDir, srcinfo); err != nil {
		return OutcomeUpToDate, newError(p.Name, "write .SRCINFO", ErrUpdate, err)
	}

	if opts.Email != "" {
		if err := p.git.ConfigLocal("user.email", opts.Email); err != nil {
			return OutcomeUpToDate, newError(p.Name, "git config user.email", ErrUpdate, err)
		}
	}
	if opts.Name != "" {
		if err := p.git.ConfigLocal("user.name", opts.Name); err != nil {
			return OutcomeUpToDate, newError(p.Name, "git config user.name", ErrUpdate, err)
		}
	}

	if err := p.git.Add(); err != nil {
		return OutcomeUpToDate, newError(p.Name, "git add", ErrUpdate, err)
	}
	p.logStaged()

	if err := p.git.Commit(message); err != nil {
		return OutcomeUpToDate, newError(p.Name, "git commit", ErrUpdate, err)
	}
	if err := p.git.Push(); err != nil {
		return OutcomeUpToDate, newError(p.Name, "git push", ErrUpdate, err)
	}

	logger.Info("%s: pushed %s -> %s", p.Name, p.CurrentVersion, p.NewVersion)
	p.CurrentVersion = p.NewVersion
	return OutcomeUpdated, nil
}

func (p *Package) logStaged() {
	entries, err := p.git.Status()
	if err != nil {
		logger.Debug("%s: git status: %v", p.Name, err)
		return
	}
	for _, entry := range entries {
		logger.Debug("%s: staged %s %s", p.Name, entry.Status, entry.FilePath)
	}
}
