// Package updater runs the search, check and update pipeline over a batch of
// AUR packages.
package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/obentoo/aurupd/internal/aur"
	"github.com/obentoo/aurupd/internal/aurpkg"
	"github.com/obentoo/aurupd/internal/common/config"
	"github.com/obentoo/aurupd/internal/common/lock"
	"github.com/obentoo/aurupd/internal/common/logger"
)

// Error variables for updater errors
var (
	// ErrInvalidSelector is returned when a selector names zero or several sources
	ErrInvalidSelector = errors.New("exactly one of user, package or manifest must be selected")
)

// Searcher is the subset of the AUR client the updater needs
type Searcher interface {
	SearchByUser(ctx context.Context, user string) ([]aur.PackageInfo, error)
	GetPackage(ctx context.Context, name string) (*aur.PackageInfo, error)
}

// PackageFactory creates a package entity for an AUR record
type PackageFactory func(info aur.PackageInfo) (*aurpkg.Package, error)

// Selector chooses which packages a run operates on
type Selector struct {
	// User selects every package the user maintains or co-maintains
	User string
	// Package selects a single package by name
	Package string
	// Manifest selects its package list; its ignore list is applied to the results
	Manifest *aur.Manifest
}

func (s Selector) validate() error {
	set := 0
	if s.User != "" {
		set++
	}
	if s.Package != "" {
		set++
	}
	if s.Manifest != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidSelector
	}
	return nil
}

// CheckResult represents the result of cloning and building a single package.
type CheckResult struct {
	// Info is the AUR record the package was created from
	Info aur.PackageInfo
	// Package is the entity, nil if it could not be created
	Package *aurpkg.Package
	// NeedsUpdate is true if the built pkgver differs from the cloned one
	NeedsUpdate bool
	// Err contains any error that occurred during clone or build
	Err error
}

// State returns the display state of the check
func (r CheckResult) State() string {
	switch {
	case r.Err != nil:
		return "failed"
	case r.NeedsUpdate:
		return "outdated"
	default:
		return "up-to-date"
	}
}

// ApplyResult represents the result of updating a single package.
type ApplyResult struct {
	// Package is the entity that was updated
	Package *aurpkg.Package
	// Outcome is what Update did when it succeeded
	Outcome aurpkg.Outcome
	// Err contains any error that occurred during the update
	Err error
}

// State returns the display state of the update
func (r ApplyResult) State() string {
	if r.Err != nil {
		return "failed"
	}
	return r.Outcome.String()
}

// Summary counts package states at the end of a run
type Summary struct {
	Total    int
	UpToDate int
	Outdated int
	Updated  int
	ReadOnly int
	Failed   int
}

// HasFailures returns true if any package failed
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// RunOptions controls a full run
type RunOptions struct {
	// Update pushes outdated packages after checking
	Update bool
	// UpdateOptions is passed to every package update
	UpdateOptions aurpkg.UpdateOptions
	// LockDir holds the update lock; defaults to the state directory
	LockDir string
}

// Updater coordinates the AUR client, package entities and progress reporting
type Updater struct {
	searcher   Searcher
	newPackage PackageFactory
	reporter   Reporter
}

// Option is a functional option for configuring Updater
type Option func(*Updater)

// WithReporter sets the progress reporter
func WithReporter(r Reporter) Option {
	return func(u *Updater) {
		u.reporter = r
	}
}

// WithPackageFactory sets how package entities are created
func WithPackageFactory(f PackageFactory) Option {
	return func(u *Updater) {
		u.newPackage = f
	}
}

// NewUpdater creates an updater querying searcher
func NewUpdater(searcher Searcher, opts ...Option) *Updater {
	u := &Updater{
		searcher: searcher,
		reporter: NopReporter{},
		newPackage: func(info aur.PackageInfo) (*aurpkg.Package, error) {
			return aurpkg.NewPackage(info.Name, info.Description)
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ConfigPackageFactory creates packages using the clone URL templates in cfg
func ConfigPackageFactory(cfg *config.Config) PackageFactory {
	return func(info aur.PackageInfo) (*aurpkg.Package, error) {
		return aurpkg.NewPackage(info.Name, info.Description,
			aurpkg.WithRemotes(cfg.SSHURL(info.Name), cfg.HTTPSURL(info.Name)))
	}
}

// Resolve returns the AUR records chosen by sel, minus ignored names.
// Zero results is not an error.
func (u *Updater) Resolve(ctx context.Context, sel Selector) ([]aur.PackageInfo, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	var records []aur.PackageInfo
	switch {
	case sel.User != "":
		found, err := u.searcher.SearchByUser(ctx, sel.User)
		if err != nil {
			return nil, err
		}
		records = found

	case sel.Package != "":
		pkg, err := u.searcher.GetPackage(ctx, sel.Package)
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			records = append(records, *pkg)
		}

	default:
		for _, name := range sel.Manifest.Packages {
			if sel.Manifest.Ignores(name) {
				continue
			}
			pkg, err := u.searcher.GetPackage(ctx, name)
			if err != nil {
				return nil, err
			}
			if pkg == nil {
				logger.Warn("%s: not found in the AUR, skipping", name)
				continue
			}
			records = append(records, *pkg)
		}
	}

	if records == nil {
		records = []aur.PackageInfo{}
	}
	return sel.Manifest.Filter(records), nil
}

// Check clones and builds every record in order.
// A failing package is recorded and the next one is still processed.
// The caller must Close the returned results.
func (u *Updater) Check(records []aur.PackageInfo) []CheckResult {
	results := make([]CheckResult, 0, len(records))
	for _, info := range records {
		u.reporter.Checking(info)
		result := u.checkOne(info)
		if result.Err != nil {
			logger.Debug("check failed: %v", result.Err)
		}
		u.reporter.Checked(result)
		results = append(results, result)
	}
	return results
}

func (u *Updater) checkOne(info aur.PackageInfo) CheckResult {
	result := CheckResult{Info: info}

	pkg, err := u.newPackage(info)
	if err != nil {
		result.Err = err
		return result
	}
	result.Package = pkg

	if err := pkg.Clone(); err != nil {
		result.Err = err
		return result
	}
	if err := pkg.Build(); err != nil {
		result.Err = err
		return result
	}

	needsUpdate, err := pkg.NeedsUpdate()
	if err != nil {
		result.Err = err
		return result
	}
	result.NeedsUpdate = needsUpdate
	return result
}

// Apply updates every checked package that needs it, in order.
// A failing package is recorded and the next one is still processed.
func (u *Updater) Apply(results []CheckResult, opts aurpkg.UpdateOptions) []ApplyResult {
	var applied []ApplyResult
	for _, check := range results {
		if check.Err != nil || !check.NeedsUpdate {
			continue
		}

		outcome, err := check.Package.Update(opts)
		result := ApplyResult{Package: check.Package, Outcome: outcome, Err: err}
		if err != nil {
			logger.Debug("update failed: %v", err)
		}
		u.reporter.Applied(result)
		applied = append(applied, result)
	}
	return applied
}

// Close removes the work directories of every checked package
func Close(results []CheckResult) {
	for _, result := range results {
		if err := result.Package.Close(); err != nil {
			logger.Warn("%s: failed to remove work directory: %v", result.Info.Name, err)
		}
	}
}

// Run resolves, checks and optionally updates the selected packages.
// Update runs hold an exclusive lock for their whole duration.
func (u *Updater) Run(ctx context.Context, sel Selector, opts RunOptions) (*Summary, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	if opts.Update {
		dir := opts.LockDir
		if dir == "" {
			stateDir, err := lock.StateDir()
			if err != nil {
				return nil, fmt.Errorf("failed to determine state directory: %w", err)
			}
			dir = stateDir
		}
		l, err := lock.Acquire(dir)
		if err != nil {
			return nil, err
		}
		defer l.Release()
		logger.Debug("acquired update lock %s", l.Path())
	}

	records, err := u.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	u.reporter.Found(records)

	checks := u.Check(records)
	defer Close(checks)

	var applied []ApplyResult
	if opts.Update {
		applied = u.Apply(checks, opts.UpdateOptions)
	}

	return summarize(checks, applied, opts.Update), nil
}

func summarize(checks []CheckResult, applied []ApplyResult, update bool) *Summary {
	summary := &Summary{Total: len(checks)}

	for _, check := range checks {
		switch check.State() {
		case "failed":
			summary.Failed++
		case "up-to-date":
			summary.UpToDate++
		case "outdated":
			if !update {
				summary.Outdated++
			}
		}
	}

	for _, result := range applied {
		switch result.State() {
		case "failed":
			summary.Failed++
		case "updated":
			summary.Updated++
		case "read-only":
			summary.ReadOnly++
		case "up-to-date":
			summary.UpToDate++
		}
	}

	return summary
}
