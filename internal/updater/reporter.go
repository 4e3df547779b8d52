package updater

import "github.com/obentoo/aurupd/internal/aur"

// Reporter receives progress events during a run
type Reporter interface {
	// Found is called once with the resolved records
	Found(records []aur.PackageInfo)
	// Checking is called before a package is cloned
	Checking(info aur.PackageInfo)
	// Checked is called after a package is cloned and built, or failed
	Checked(result CheckResult)
	// Applied is called after an update attempt
	Applied(result ApplyResult)
}

// NopReporter discards all events
type NopReporter struct{}

func (NopReporter) Found([]aur.PackageInfo)  {}
func (NopReporter) Checking(aur.PackageInfo) {}
func (NopReporter) Checked(CheckResult)      {}
func (NopReporter) Applied(ApplyResult)      {}
