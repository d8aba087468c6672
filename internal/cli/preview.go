package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/release"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the changelog section a run would add",
	Long: `Print the changelog section a run would add, without writing files,
pushing, or creating a release. Equivalent to 'run --dry-run' but prints
the rendered markdown (or HTML with --html) to stdout for piping.`,
	Example: `  # Markdown for yesterday
  dailyrelease preview

  # HTML for a specific day
  dailyrelease preview --date 2024-05-01 --html > section.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		asHTML, _ := cmd.Flags().GetBool("html")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		date, err := parseDate(dateFlag, cfg)
		if err != nil {
			return err
		}

		pipeline, err := newPipeline(cfg, release.Options{Date: date, DryRun: true}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cmd.Context())
		if err != nil {
			return err
		}
		return writePreview(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, asHTML)
	},
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)
	addDateFlag(previewCmd)
	previewCmd.Flags().Bool("html", false, "Print HTML instead of markdown")
}

// writePreview prints the section under its release heading. Skipped runs
// print the reason to stderr and nothing to stdout.
func writePreview(out, errOut io.Writer, result *release.Result, asHTML bool) error {
	if result.Skipped != "" {
		fmt.Fprintf(errOut, "Nothing to release for %s: %s\n", result.Date.Format("2006-01-02"), result.Skipped)
		return nil
	}

	section := fmt.Sprintf("## %s\n%s", result.Release, result.Summary)
	if !asHTML {
		fmt.Fprint(out, section)
		return nil
	}

	html, err := changelog.RenderHTML(section)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	fmt.Fprint(out, html)
	return nil
}
