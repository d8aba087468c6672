package config

import "github.com/ariel-frischer/dailyrelease/internal/changelog"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# dailyrelease configuration
# Environment overrides: DAILYRELEASE_<KEY>, e.g. DAILYRELEASE_PER_PAGE=50
# GitHub Actions provides GITHUB_TOKEN, GITHUB_REPOSITORY and GITHUB_REF_NAME.

# Hosting service
# repository: owner/name              # Defaults to $GITHUB_REPOSITORY
# branch: main                        # Defaults to $GITHUB_REF_NAME
api_url: ""                           # GitHub Enterprise API URL (empty = github.com)
git_host: github.com                  # Host used in the push URL
remote_url: ""                        # Push target override (empty = https://<token>@<git_host>/<repository>.git)

# Files (relative to repo_dir)
repo_dir: .
changelog_path: CHANGELOG.md
manifest_path: setup.py
template_path: .github/changelog-template.md
placeholder: "<!-- GENERATOR_PLACEHOLDER -->"

# Selection
per_page: 30                          # Closed pull requests examined (single page, 1-100)
timezone: UTC                         # Calendar used for "merged yesterday"
strict: false                         # Fail when placeholder or version line is missing

# History
state_dir: ~/.dailyrelease/state
max_history_entries: 500
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repository": "",
		"token":      "",
		"branch":     "",
		"api_url":    "",
		"git_host":   "github.com",
		"remote_url": "",
		"repo_dir":   ".",
		// Paths mirror the layout of repositories generated from the
		// project template: changelog at the root, template under .github.
		"changelog_path": "CHANGELOG.md",
		"manifest_path":  "setup.py",
		"template_path":  ".github/changelog-template.md",
		"placeholder":    changelog.DefaultPlaceholder,
		// per_page: GitHub's default page size. Only one page is read.
		"per_page":            30,
		"timezone":            "UTC",
		"strict":              false,
		"state_dir":           "~/.dailyrelease/state",
		"max_history_entries": 500,
	}
}
