package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Check that this repository is ready for a release run (doc)",
	Long: `Check that this repository is ready for a release run:
  - repository and branch are configured
  - a token is available
  - repo_dir is a git checkout with user.name and user.email
  - the changelog template exists and parses
  - the changelog holds the placeholder
  - the manifest has a version = "X.Y.Z" line

Warnings do not fail the command; errors exit with code 1.`,
	Example: `  # Check the current repository
  dailyrelease doctor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runDoctor(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	doctorCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor prints the health report and fails when a blocking check failed.
func runDoctor(out io.Writer, cfg *config.Configuration) error {
	report := health.RunHealthChecks(cfg)
	fmt.Fprint(out, health.FormatReport(report))

	if !report.Passed {
		return clierrors.NewPrerequisiteError("repository is not ready for a release run",
			"Fix the checks marked ✗ above")
	}
	return nil
}
