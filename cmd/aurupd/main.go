package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/obentoo/aurupd/internal/aur"
	"github.com/obentoo/aurupd/internal/aurpkg"
	"github.com/obentoo/aurupd/internal/common/config"
	"github.com/obentoo/aurupd/internal/common/logger"
	"github.com/obentoo/aurupd/internal/common/output"
	"github.com/obentoo/aurupd/internal/common/preflight"
	"github.com/obentoo/aurupd/internal/common/version"
	"github.com/obentoo/aurupd/internal/updater"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var (
	// searchUser selects every package maintained or co-maintained by a user
	searchUser string
	// packageName selects a single package
	packageName string
	// manifestPath selects the packages listed in a TOML manifest
	manifestPath string
	// updateMode pushes outdated packages
	updateMode bool
	// commitEmail sets the local git user.email before committing
	commitEmail string
	// commitName sets the local git user.name before committing
	commitName string
	// commitMessage is the commit message for updates
	commitMessage string
	// configPath overrides the config file location
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "aurupd",
	Short: "Check and update AUR packages",
	Long: `Find AUR packages by maintainer or by name, check whether makepkg produces
a newer pkgver, and optionally rebuild, commit and push the updated recipes.

Examples:
  aurupd --search alice                      Check every package alice maintains
  aurupd --package foo                       Check a single package
  aurupd --manifest packages.toml            Check the packages listed in a manifest
  aurupd --search alice --update             Push new versions of outdated packages
  aurupd -p foo -u --email a@b.c --name Alice --commit "Bump to upstream"`,
	Version: version.Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
	},
	Run: runRoot,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.Flags().StringVarP(&searchUser, "search", "s", "", "Check packages maintained or co-maintained by user")
	rootCmd.Flags().StringVarP(&packageName, "package", "p", "", "Check a single package")
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Check packages listed in a TOML manifest")
	rootCmd.Flags().BoolVarP(&updateMode, "update", "u", false, "Rebuild, commit and push outdated packages")
	rootCmd.Flags().StringVar(&commitEmail, "email", "", "Git user.email for update commits")
	rootCmd.Flags().StringVar(&commitName, "name", "", "Git user.name for update commits")
	rootCmd.Flags().StringVarP(&commitMessage, "commit", "c", config.DefaultCommitMessage, "Commit message for updates")

	rootCmd.MarkFlagsMutuallyExclusive("search", "package", "manifest")
	rootCmd.MarkFlagsOneRequired("search", "package", "manifest")
}

func runRoot(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	if cfg.Log.File {
		if err := logger.EnableFileLogging(logger.FileOptions{
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}); err != nil {
			logger.Warn("file logging disabled: %v", err)
		}
	}

	if err := preflight.Check(preflight.DefaultTools...); err != nil {
		output.PrintError("%v", err)
		logger.Close()
		os.Exit(1)
	}

	selector, err := buildSelector()
	if err != nil {
		output.PrintError("%v", err)
		logger.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := aur.NewClientWithOptions(cfg.AUR.RPCURL, cfg.AUR.Timeout)
	u := updater.NewUpdater(client,
		updater.WithPackageFactory(updater.ConfigPackageFactory(cfg)),
		updater.WithReporter(&consoleReporter{selector: selector, update: updateMode}),
	)

	summary, err := u.Run(ctx, selector, updater.RunOptions{
		Update:        updateMode,
		UpdateOptions: resolveUpdateOptions(cmd, cfg),
	})
	if err != nil {
		output.PrintError("%v", err)
		logger.Close()
		os.Exit(1)
	}

	displaySummary(summary)
	logger.Close()

	if summary.HasFailures() {
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise the default location
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// buildSelector converts the selector flags into an updater.Selector
func buildSelector() (updater.Selector, error) {
	switch {
	case searchUser != "":
		return updater.Selector{User: searchUser}, nil
	case packageName != "":
		return updater.Selector{Package: packageName}, nil
	case manifestPath != "":
		manifest, err := aur.LoadManifest(manifestPath)
		if err != nil {
			return updater.Selector{}, err
		}
		return updater.Selector{Manifest: manifest}, nil
	default:
		return updater.Selector{}, updater.ErrInvalidSelector
	}
}

// resolveUpdateOptions merges commit flags over config values.
// Flags win only when explicitly set.
func resolveUpdateOptions(cmd *cobra.Command, cfg *config.Config) aurpkg.UpdateOptions {
	opts := aurpkg.UpdateOptions{
		CommitMessage: cfg.Git.CommitMessage,
		Email:         cfg.Git.Email,
		Name:          cfg.Git.User,
	}
	if cmd.Flags().Changed("commit") || opts.CommitMessage == "" {
		opts.CommitMessage = commitMessage
	}
	if cmd.Flags().Changed("email") {
		opts.Email = commitEmail
	}
	if cmd.Flags().Changed("name") {
		opts.Name = commitName
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
