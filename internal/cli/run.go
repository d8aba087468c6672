package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/history"
	"github.com/ariel-frischer/dailyrelease/internal/progress"
	"github.com/ariel-frischer/dailyrelease/internal/release"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Release the pull requests merged on a day",
	Long: `Release the pull requests merged on a day (yesterday by default).

The run lists the most recently updated closed pull requests (one page),
keeps those merged on the target day, and groups them by label:
  project infrastructure  excluded
  update                  Updated
  bug, docs               Fixed
  anything else           Changed

The rendered section is inserted under the changelog placeholder, the
manifest version is set to YYYY.MM.DD, both files are committed, tagged and
pushed, and a GitHub release is created. When nothing was merged, or every
merged pull request is excluded, the run exits 0 without changing anything.`,
	Example: `  # Release yesterday
  dailyrelease run

  # Release a specific day
  dailyrelease run --date 2024-05-01

  # Render only
  dailyrelease run --dry-run

  # Fail if the placeholder or version line is missing
  dailyrelease run --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		strict, _ := cmd.Flags().GetBool("strict")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		date, err := parseDate(dateFlag, cfg)
		if err != nil {
			return err
		}

		pipeline, err := newPipeline(cfg, release.Options{Date: date, DryRun: dryRun, Strict: strict}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result)
	},
}

func init() {
	runCmd.GroupID = GroupRelease
	rootCmd.AddCommand(runCmd)
	addDateFlag(runCmd)
	runCmd.Flags().Bool("dry-run", false, "Render the section without writing files, pushing, or creating a release")
	runCmd.Flags().Bool("strict", false, "Fail when the changelog placeholder or manifest version line is missing")
}

func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Merge day to release, YYYY-MM-DD (default yesterday)")
}

// parseDate reads --date in the configured time zone. Empty means yesterday,
// which the pipeline resolves.
func parseDate(value string, cfg *config.Configuration) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, clierrors.Wrap(err, clierrors.Configuration)
	}
	date, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, clierrors.InvalidDate(value)
	}
	return date, nil
}

// newPipeline wires the GitHub client, git publisher, history and progress
// display from configuration.
func newPipeline(cfg *config.Configuration, opts release.Options, stderr io.Writer) (*release.Pipeline, error) {
	if cfg.Repository == "" {
		return nil, clierrors.MissingRepository()
	}

	client, err := forge.NewGitHubClient(forge.GitHubOptions{
		Repository: cfg.Repository,
		Token:      cfg.Token,
		APIURL:     cfg.APIURL,
	})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration)
	}

	writer := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	writer.Logger = logger()

	return &release.Pipeline{
		Config: cfg,
		Forge:  client,
		Publisher: &git.Publisher{
			RepoDir:   cfg.RepoDir,
			RemoteURL: pushURL(cfg),
			Branch:    cfg.Branch,
			Token:     cfg.Token,
		},
		History:  writer,
		Progress: progress.NewDisplay(stderr, progress.DetectTerminalCapabilitiesFor(os.Stderr)),
		Logger:   logger(),
		Options:  opts,
	}, nil
}

// pushURL returns the configured remote_url or the token-bearing HTTPS URL.
func pushURL(cfg *config.Configuration) string {
	if cfg.RemoteURL != "" {
		return cfg.RemoteURL
	}
	return git.RemoteURL(cfg.GitHost, cfg.Token, cfg.Repository)
}

// printResult reports the outcome of a run.
func printResult(out io.Writer, result *release.Result) error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if result.Skipped != "" {
		fmt.Fprintf(out, "%s Nothing to release for %s: %s\n", yellow("⚠"), result.Date.Format(time.DateOnly), result.Skipped)
		return nil
	}

	opts := changelog.FormatOptions{Plain: color.NoColor}
	if err := changelog.FormatTerminal(result.Release, result.Grouped, out, opts); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if result.DryRun {
		fmt.Fprintf(out, "%s Dry run: changelog, manifest and remote left unchanged\n", yellow("⚠"))
		return nil
	}

	if !result.ChangelogUpdated {
		fmt.Fprintf(out, "%s Changelog: placeholder not found, unchanged\n", yellow("⚠"))
	}
	if !result.ManifestUpdated {
		fmt.Fprintf(out, "%s Manifest: version line not found, unchanged\n", yellow("⚠"))
	}
	fmt.Fprintf(out, "%s Released %s: %s\n", green("✓"), result.Release, result.ReleaseURL)
	return nil
}
