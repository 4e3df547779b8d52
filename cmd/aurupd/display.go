package main

import (
	"fmt"
	"strings"

	"github.com/obentoo/aurupd/internal/aur"
	"github.com/obentoo/aurupd/internal/common/logger"
	"github.com/obentoo/aurupd/internal/common/output"
	"github.com/obentoo/aurupd/internal/updater"
)

// consoleReporter prints run progress to the terminal
type consoleReporter struct {
	selector updater.Selector
	update   bool
}

func (r *consoleReporter) Found(records []aur.PackageInfo) {
	if len(records) == 0 {
		output.PrintInfo("%s", noResultsMessage(r.selector))
		return
	}

	fmt.Println()
	output.Header.Println(foundHeader(r.selector, len(records)))
	for _, info := range records {
		fmt.Println(formatRecord(info))
	}
	fmt.Println()
}

func (r *consoleReporter) Checking(info aur.PackageInfo) {
	logger.Info("Checking %s...", info.Name)
}

func (r *consoleReporter) Checked(result updater.CheckResult) {
	switch result.State() {
	case "failed":
		output.PrintError("%v", result.Err)
	case "outdated":
		pkg := result.Package
		fmt.Println(formatOutdated(pkg.Name, pkg.CurrentVersion, pkg.NewVersion))
		if !pkg.UsedSSH && r.update {
			output.PrintWarning("%s was cloned over HTTPS and will not be pushed", pkg.Name)
		}
	default:
		pkg := result.Package
		fmt.Printf("  %s %s is up to date\n",
			output.FormatState("up-to-date"), output.FormatPackage(pkg.Name, pkg.CurrentVersion))
	}
}

func (r *consoleReporter) Applied(result updater.ApplyResult) {
	switch result.State() {
	case "failed":
		output.PrintError("%v", result.Err)
	case "updated":
		output.PrintSuccess("%s updated to %s", result.Package.Name, result.Package.NewVersion)
	case "read-only":
		output.PrintWarning("%s is read-only, skipped push", result.Package.Name)
	}
}

// noResultsMessage names what was searched for when nothing matched
func noResultsMessage(sel updater.Selector) string {
	switch {
	case sel.User != "":
		return fmt.Sprintf("No packages found for user %s", sel.User)
	case sel.Package != "":
		return fmt.Sprintf("No package found for %s", sel.Package)
	default:
		return "No manifest packages found in the AUR"
	}
}

// foundHeader names the search source above the list of results
func foundHeader(sel updater.Selector, count int) string {
	switch {
	case sel.User != "":
		return fmt.Sprintf("Found %d package(s) for user %s", count, sel.User)
	case sel.Package != "":
		return fmt.Sprintf("Found package %s", sel.Package)
	default:
		return fmt.Sprintf("Found %d package(s) from manifest", count)
	}
}

// formatOutdated formats the check line of a package with a new version
func formatOutdated(name, current, next string) string {
	return fmt.Sprintf("  %s %s has a new version: %s",
		output.FormatState("outdated"), output.FormatPackage(name, ""), output.FormatVersionChange(current, next))
}

// formatRecord formats a search result line
func formatRecord(info aur.PackageInfo) string {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(output.FormatPackage(info.Name, info.Version))
	if info.IsOutOfDate() {
		sb.WriteString(" ")
		sb.WriteString(output.Sprint(output.Warning, "(flagged out-of-date)"))
	}
	if info.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(output.Sprintf(output.Dim, "- %s", info.Description))
	}
	return sb.String()
}

// formatSummary renders the non-zero counts of a run summary
func formatSummary(s *updater.Summary) string {
	parts := []string{fmt.Sprintf("%d checked", s.Total)}
	counts := []struct {
		state string
		n     int
	}{
		{"up-to-date", s.UpToDate},
		{"outdated", s.Outdated},
		{"updated", s.Updated},
		{"read-only", s.ReadOnly},
		{"failed", s.Failed},
	}
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, output.Sprintf(output.StateColor(c.state), "%d %s", c.n, c.state))
		}
	}
	return strings.Join(parts, ", ")
}

// displaySummary prints the final counts of a run
func displaySummary(s *updater.Summary) {
	if s.Total == 0 {
		return
	}

	fmt.Println()
	output.Header.Println("Summary")
	fmt.Println("  " + formatSummary(s))

	if s.Outdated > 0 {
		output.Info.Println("Use --update to push new versions")
	}
	if s.HasFailures() {
		output.Warning.Printf("%d package(s) had errors\n", s.Failed)
	}
}
