package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the changelog template, placeholder and config",
	Long: `Prepare a repository for dailyrelease:
  - the default changelog template at template_path
  - a changelog containing the placeholder, when changelog_path is absent
    or lacks the placeholder (the placeholder is then prepended)
  - a commented project config at .dailyrelease/config.yml

Existing template and config files are kept unless --force is given.`,
	Example: `  # Set up the current repository
  dailyrelease init

  # Overwrite the template and config with defaults
  dailyrelease init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if configPath == "" {
			configPath = config.ProjectConfigPath()
		}
		return runInit(cmd.OutOrStdout(), cfg, configPath, force)
	},
}

func init() {
	initCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing template and config")
}

// runInit writes the template, changelog placeholder and project config.
func runInit(out io.Writer, cfg *config.Configuration, configPath string, force bool) error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	templatePath := cfg.TemplateFile()
	written, err := writeIfAbsent(templatePath, changelog.DefaultTemplate(), force)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if written {
		fmt.Fprintf(out, "%s Template: created at %s\n", green("✓"), templatePath)
	} else {
		fmt.Fprintf(out, "%s Template: exists at %s (use --force to overwrite)\n", yellow("⚠"), templatePath)
	}

	changelogPath := cfg.ChangelogFile()
	status, err := ensurePlaceholder(changelogPath, cfg.Placeholder)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	fmt.Fprintf(out, "%s Changelog: %s %s\n", green("✓"), status, changelogPath)

	written, err = writeIfAbsent(configPath, config.GetDefaultConfigTemplate(), force)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if written {
		fmt.Fprintf(out, "%s Config: created at %s\n", green("✓"), configPath)
	} else {
		fmt.Fprintf(out, "%s Config: exists at %s (use --force to overwrite)\n", yellow("⚠"), configPath)
	}

	fmt.Fprintf(out, "\nNext: make sure %s has a line like version = \"0.0.0\", then run 'dailyrelease doctor' and 'dailyrelease preview'.\n", cfg.ManifestPath)
	return nil
}

// writeIfAbsent writes content to path unless it exists and force is false.
func writeIfAbsent(path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// ensurePlaceholder creates the changelog with the placeholder, or prepends
// the placeholder to an existing changelog that lacks it.
func ensurePlaceholder(path, placeholder string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		content := "# Changelog\n\n" + placeholder + "\n"
		if _, err := writeIfAbsent(path, content, true); err != nil {
			return "", err
		}
		return "created at", nil
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if strings.Contains(string(data), placeholder) {
		return "placeholder present in", nil
	}
	if err := os.WriteFile(path, []byte(placeholder+"\n\n"+string(data)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return "placeholder added to", nil
}
