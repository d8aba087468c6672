package health

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
)

const placeholder = "<!-- GENERATOR_PLACEHOLDER -->"

// readyRepo creates a checkout with identity, template, changelog and manifest.
func readyRepo(t *testing.T) *config.Configuration {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Release Bot"
	cfg.User.Email = "bot@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".github", "changelog-template.md"), []byte(changelog.DefaultTemplate()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# Changelog\n\n"+placeholder+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte("setup(\n    name=\"pkg\",\n)\nversion = \"1.0.0\"\n"), 0o644))

	return &config.Configuration{
		Repository:    "octo/widgets",
		Token:         "secret",
		Branch:        "main",
		RepoDir:       dir,
		ChangelogPath: "CHANGELOG.md",
		ManifestPath:  "setup.py",
		TemplatePath:  ".github/changelog-template.md",
		Placeholder:   placeholder,
	}
}

func TestRunHealthChecks_Ready(t *testing.T) {
	t.Parallel()

	report := RunHealthChecks(readyRepo(t))

	assert.True(t, report.Passed)
	require.Len(t, report.Checks, 7)
	names := make([]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		assert.True(t, check.Passed, "%s: %s", check.Name, check.Message)
		names = append(names, check.Name)
	}
	assert.Equal(t, []string{"Repository", "Branch", "Token", "Git", "Template", "Changelog", "Manifest"}, names)
}

func TestRunHealthChecks_Problems(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate      func(t *testing.T, cfg *config.Configuration)
		check       string
		wantPassed  bool
		wantWarning bool
		wantMessage string
	}{
		"missing repository": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.Repository = "" },
			check:       "Repository",
			wantPassed:  false,
			wantMessage: "not set",
		},
		"malformed repository": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.Repository = "widgets" },
			check:       "Repository",
			wantPassed:  false,
			wantMessage: "widgets",
		},
		"missing branch": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.Branch = "" },
			check:       "Branch",
			wantPassed:  false,
			wantMessage: "GITHUB_REF_NAME",
		},
		"missing token warns": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.Token = "" },
			check:       "Token",
			wantPassed:  true,
			wantWarning: true,
			wantMessage: "not set",
		},
		"not a repository": {
			mutate:      func(t *testing.T, cfg *config.Configuration) { cfg.RepoDir = t.TempDir() },
			check:       "Git",
			wantPassed:  false,
			wantMessage: "not inside a git repository",
		},
		"missing template": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.TemplatePath = "missing.md" },
			check:       "Template",
			wantPassed:  false,
			wantMessage: "dailyrelease init",
		},
		"changelog without placeholder warns": {
			mutate: func(t *testing.T, cfg *config.Configuration) {
				require.NoError(t, os.WriteFile(cfg.ChangelogFile(), []byte("# Changelog\n"), 0o644))
			},
			check:       "Changelog",
			wantPassed:  true,
			wantWarning: true,
			wantMessage: "placeholder",
		},
		"manifest without version warns": {
			mutate: func(t *testing.T, cfg *config.Configuration) {
				require.NoError(t, os.WriteFile(cfg.ManifestFile(), []byte("name = \"pkg\"\n"), 0o644))
			},
			check:       "Manifest",
			wantPassed:  true,
			wantWarning: true,
			wantMessage: "version",
		},
		"missing manifest": {
			mutate:      func(_ *testing.T, cfg *config.Configuration) { cfg.ManifestPath = "pyproject.toml" },
			check:       "Manifest",
			wantPassed:  false,
			wantMessage: "cannot read",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := readyRepo(t)
			tt.mutate(t, cfg)
			report := RunHealthChecks(cfg)

			var found *CheckResult
			for i := range report.Checks {
				if report.Checks[i].Name == tt.check {
					found = &report.Checks[i]
				}
			}
			require.NotNil(t, found)
			assert.Equal(t, tt.wantWarning, found.Warning)
			assert.False(t, found.Passed)
			assert.Contains(t, found.Message, tt.wantMessage)
			assert.Equal(t, tt.wantPassed, report.Passed)
		})
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{Checks: []CheckResult{
		{Name: "Repository", Passed: true, Message: "octo/widgets"},
		{Name: "Token", Warning: true, Message: "not set"},
		{Name: "Branch", Message: "not set"},
	}}

	assert.Equal(t,
		"✓ Repository: octo/widgets\n⚠ Token: not set\n✗ Branch: not set\n",
		FormatReport(report))
}
