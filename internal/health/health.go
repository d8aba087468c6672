// Package health checks that a repository is ready for a release run: the
// hosting-service settings are present, the checkout opens with an author
// identity, and the template, changelog and manifest are in place. The
// report backs the 'dailyrelease doctor' command.
package health

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Warning marks a failed check that does not block a run.
	Warning bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// add records a check; only non-warning failures fail the report.
func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Warning {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(cfg *config.Configuration) *HealthReport {
	report := &HealthReport{Passed: true}

	report.add(CheckRepository(cfg))
	report.add(CheckBranch(cfg))
	report.add(CheckToken(cfg))
	report.add(CheckGit(cfg))
	report.add(CheckTemplate(cfg))
	report.add(CheckChangelog(cfg))
	report.add(CheckManifest(cfg))

	return report
}

// CheckRepository checks the owner/name identifier.
func CheckRepository(cfg *config.Configuration) CheckResult {
	const name = "Repository"
	if cfg.Repository == "" {
		return CheckResult{Name: name, Message: "not set (GITHUB_REPOSITORY or 'repository')"}
	}
	if _, _, err := forge.SplitRepository(cfg.Repository); err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: cfg.Repository}
}

// CheckBranch checks the branch a release pushes to.
func CheckBranch(cfg *config.Configuration) CheckResult {
	const name = "Branch"
	if cfg.Branch == "" {
		return CheckResult{Name: name, Message: "not set (GITHUB_REF_NAME or 'branch')"}
	}
	return CheckResult{Name: name, Passed: true, Message: cfg.Branch}
}

// CheckToken reports whether a token is configured. A missing token only
// warns: listing public pull requests works without one.
func CheckToken(cfg *config.Configuration) CheckResult {
	const name = "Token"
	if cfg.Token == "" {
		return CheckResult{Name: name, Warning: true, Message: "not set; push and release creation will be rejected"}
	}
	return CheckResult{Name: name, Passed: true, Message: "configured"}
}

// CheckGit checks that repo_dir is a checkout with an author identity.
func CheckGit(cfg *config.Configuration) CheckResult {
	const name = "Git"
	id, err := git.CheckRepository(cfg.RepoDir)
	switch {
	case errors.Is(err, git.ErrNotRepository):
		return CheckResult{Name: name, Message: fmt.Sprintf("%s is not inside a git repository", cfg.RepoDir)}
	case errors.Is(err, git.ErrIdentityNotConfigured):
		return CheckResult{Name: name, Message: "user.name and user.email are not configured"}
	case err != nil:
		return CheckResult{Name: name, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: "commits as " + id.String()}
}

// CheckTemplate checks that the changelog template exists and parses.
func CheckTemplate(cfg *config.Configuration) CheckResult {
	const name = "Template"
	path := cfg.TemplateFile()
	if _, err := changelog.LoadTemplate(path); err != nil {
		if errors.Is(err, changelog.ErrTemplateNotFound) {
			return CheckResult{Name: name, Message: fmt.Sprintf("%s not found - run 'dailyrelease init'", path)}
		}
		return CheckResult{Name: name, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: path}
}

// CheckChangelog checks that the changelog holds the placeholder.
func CheckChangelog(cfg *config.Configuration) CheckResult {
	return checkFileContains("Changelog", cfg.ChangelogFile(), func(content string) bool {
		return strings.Contains(content, cfg.Placeholder)
	}, fmt.Sprintf("placeholder %s missing", cfg.Placeholder))
}

// CheckManifest checks that the manifest has a version line to bump.
func CheckManifest(cfg *config.Configuration) CheckResult {
	return checkFileContains("Manifest", cfg.ManifestFile(), changelog.HasVersionLine,
		`no line like version = "X.Y.Z"`)
}

// checkFileContains is a warning-level check: runs still succeed without the
// marker unless strict is set.
func checkFileContains(name, path string, ok func(string) bool, missing string) CheckResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckResult{Name: name, Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	if !ok(string(data)) {
		return CheckResult{Name: name, Warning: true, Message: fmt.Sprintf("%s: %s", path, missing)}
	}
	return CheckResult{Name: name, Passed: true, Message: path}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output strings.Builder

	for _, check := range report.Checks {
		symbol := "✓"
		switch {
		case check.Passed:
		case check.Warning:
			symbol = "⚠"
		default:
			symbol = "✗"
		}
		fmt.Fprintf(&output, "%s %s: %s\n", symbol, check.Name, check.Message)
	}

	return output.String()
}
