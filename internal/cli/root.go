package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/logging"
	"github.com/ariel-frischer/dailyrelease/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "dailyrelease",
	Short: "Cut a dated release from yesterday's merged pull requests",
	Long: `dailyrelease collects the pull requests merged on a given day, groups them
by label into a changelog section, bumps the manifest version to the date,
commits, tags and pushes the result, and creates a GitHub release.

It is designed to run once a day from CI with GITHUB_TOKEN, GITHUB_REPOSITORY
and GITHUB_REF_NAME set.`,
	Example: `  # Release yesterday's pull requests
  dailyrelease run

  # See what would be released without changing anything
  dailyrelease preview

  # Set up the template, changelog placeholder and config
  dailyrelease init`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Project config file (default .dailyrelease/config.yml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log each step")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command and returns the process exit code.
// Errors are printed to stderr before returning.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		clierrors.FprintError(os.Stderr, err)
	}
	return ExitCode(err)
}

// setupLogging installs the slog default from --debug/--verbose. With
// --debug, go-git operations are traced too.
func setupLogging(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := logging.Setup(cmd.ErrOrStderr(), logging.Options{Debug: debug, Verbose: verbose})
	if debug {
		git.SetDebugLogger(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		})
	}

	if !progress.DetectTerminalCapabilities().SupportsColor {
		color.NoColor = true
	}
}

// logger returns the default logger set up by setupLogging.
func logger() *slog.Logger {
	return slog.Default()
}
