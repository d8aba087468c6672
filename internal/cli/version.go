package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/dailyrelease/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for dailyrelease",
	Example: `  # Show version info
  dailyrelease version

  # Plain output (for scripts)
  dailyrelease version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout(), build.Current())
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), build.Current())
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer, info build.Info) {
	fmt.Fprintf(out, "dailyrelease %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	fmt.Fprintf(out, "go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
}

// printPrettyVersion prints labelled, colored version lines
func printPrettyVersion(out io.Writer, info build.Info) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := info.Version
	if info.IsDevBuild() {
		version += dim(" (development build)")
	}
	fmt.Fprintf(out, "%s %s\n\n", cyan("dailyrelease"), version)
	rows := []struct {
		label string
		value string
	}{
		{"Commit", truncateCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %s  %s\n", yellow(fmt.Sprintf("%-8s", row.label)), row.value)
	}
	fmt.Fprintf(out, "\n%s\n", dim(build.SourceURL))
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
