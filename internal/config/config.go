// dailyrelease - Daily changelog and release automation
// Source: https://github.com/ariel-frischer/dailyrelease

// Package config provides hierarchical configuration management for dailyrelease using koanf.
// Configuration is loaded with priority: DAILYRELEASE_* environment variables > GitHub Actions
// variables (GITHUB_TOKEN, GITHUB_REPOSITORY, GITHUB_REF_NAME) > project config
// (.dailyrelease/config.yml) > user config (~/.config/dailyrelease/config.yml) > defaults.
// A .env file in the working directory is loaded into the process environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides of any config key.
const EnvPrefix = "DAILYRELEASE_"

// githubEnv maps the variables GitHub Actions provides to config keys.
var githubEnv = map[string]string{
	"GITHUB_TOKEN":      "token",
	"GITHUB_REPOSITORY": "repository",
	"GITHUB_REF_NAME":   "branch",
}

// Configuration represents the dailyrelease configuration
type Configuration struct {
	// Repository is the "owner/name" identifier on the hosting service.
	Repository string `koanf:"repository"`
	// Token authenticates API calls and the push. Optional, but releases
	// cannot be published without it.
	Token string `koanf:"token"`
	// Branch is pushed after the release commit. Required when publishing.
	Branch string `koanf:"branch"`

	// APIURL targets a GitHub Enterprise API. Empty means api.github.com.
	APIURL string `koanf:"api_url" validate:"omitempty,url"`
	// GitHost is the host of the push URL.
	GitHost string `koanf:"git_host" validate:"required,hostname|hostname_port"`
	// RemoteURL overrides the push target built from GitHost, Token and
	// Repository, e.g. for mirrors or a local path.
	RemoteURL string `koanf:"remote_url"`

	RepoDir       string `koanf:"repo_dir" validate:"required"`
	ChangelogPath string `koanf:"changelog_path" validate:"required"`
	ManifestPath  string `koanf:"manifest_path" validate:"required"`
	TemplatePath  string `koanf:"template_path" validate:"required"`
	Placeholder   string `koanf:"placeholder" validate:"required"`

	// PerPage bounds the single page of closed pull requests examined.
	PerPage int `koanf:"per_page" validate:"min=1,max=100"`
	// Timezone decides which calendar day a merge timestamp falls on and
	// what "yesterday" means.
	Timezone string `koanf:"timezone" validate:"required"`
	// Strict turns a missing placeholder or version line into an error.
	Strict bool `koanf:"strict"`

	StateDir          string `koanf:"state_dir"`
	MaxHistoryEntries int    `koanf:"max_history_entries" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .dailyrelease/config.yml).
	// A .json extension selects the JSON parser.
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (tests).
	UserConfigPath string
	// DotEnvPath overrides the .env path. "-" disables .env loading.
	DotEnvPath string
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	if err := loadDotEnv(opts.DotEnvPath); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if err := loadConfigFile(k, userPath, "user"); err != nil {
		return nil, err
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadConfigFile(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDotEnv loads KEY=VALUE pairs from a .env file without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "-" {
		return nil
	}
	if path == "" {
		path = ".env"
	}
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadConfigFile validates and loads a YAML or JSON config file if it exists.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads GitHub Actions variables, then DAILYRELEASE_*
// overrides on top.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("GITHUB_", ".", githubTransform), nil); err != nil {
		return fmt.Errorf("failed to load GitHub environment: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.RepoDir = expandHomePath(cfg.RepoDir)

	return &cfg, nil
}

// Location returns the configured time zone.
func (c *Configuration) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolvePath returns path joined to RepoDir unless it is absolute.
func (c *Configuration) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RepoDir, path)
}

// ChangelogFile returns the resolved changelog path.
func (c *Configuration) ChangelogFile() string { return c.ResolvePath(c.ChangelogPath) }

// ManifestFile returns the resolved manifest path.
func (c *Configuration) ManifestFile() string { return c.ResolvePath(c.ManifestPath) }

// TemplateFile returns the resolved template path.
func (c *Configuration) TemplateFile() string { return c.ResolvePath(c.TemplatePath) }

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist) && err == nil
}

// envTransform converts environment variable names to config keys
// Example: DAILYRELEASE_PER_PAGE -> per_page
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// githubTransform keeps only the GitHub Actions variables dailyrelease reads.
func githubTransform(s string) string {
	return githubEnv[s]
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
