package cli

import (
	"errors"

	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configError(configPath, err)
	}
	return cfg, nil
}

// configError turns a config loading error into a Configuration CLIError.
func configError(path string, err error) error {
	if path == "" {
		path = config.ProjectConfigPath()
	}
	var verr *config.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "invalid configuration",
			"Fix '"+verr.Field+"' in "+path+" or the matching DAILYRELEASE_ environment variable")
	}
	return clierrors.ConfigParseError(path, err)
}
