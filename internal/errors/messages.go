package errors

import "fmt"

// Common error messages for the dailyrelease CLI.
// These templates ensure consistent, actionable error messages.

// MissingRepository creates an error for an unset repository identifier.
func MissingRepository() *CLIError {
	return NewConfigError(
		"no GitHub repository configured",
		"Set the GITHUB_REPOSITORY environment variable (owner/name)",
		"Or set 'repository' in .dailyrelease/config.yml",
	)
}

// MissingBranch creates an error for an unset push branch.
func MissingBranch() *CLIError {
	return NewConfigError(
		"no git branch set",
		"Set the GITHUB_REF_NAME environment variable to the branch to push",
		"Or set 'branch' in .dailyrelease/config.yml",
	)
}

// MissingTemplate creates an error for an absent changelog template.
func MissingTemplate(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("changelog template not found at %s", path),
		Remediation: []string{
			"Run 'dailyrelease init' to write the default template",
			"Or point 'template_path' at an existing template",
		},
		Cause: cause,
	}
}

// MarkerNotFound creates an error for a changelog without the placeholder.
func MarkerNotFound(path, marker string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("placeholder %q not found in %s", marker, path),
		fmt.Sprintf("Add a line containing %s where new releases should appear", marker),
		"Or run without --strict to continue with a warning",
	)
}

// VersionLineNotFound creates an error for a manifest without a version line.
func VersionLineNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no line matching version = \"X.Y.Z\" in %s", path),
		"Make sure the manifest has a top-level line like: version = \"1.0.0\"",
		"Or run without --strict to continue with a warning",
	)
}

// InvalidDate creates an error for a malformed --date flag.
func InvalidDate(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid date: %s", value),
		"dailyrelease run --date YYYY-MM-DD",
		"Use the ISO format, e.g. 2024-05-01",
	)
}

// ConfigParseError creates an error for unparseable config files.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to parse config file %s: %v", path, err),
		Remediation: []string{
			"Check the YAML syntax of the config file",
			"Run 'dailyrelease init --force' to regenerate it",
		},
		Cause: err,
	}
}

// GitNotRepository creates an error for operations outside a repository.
func GitNotRepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s is not inside a git repository", path),
		"Run dailyrelease from the repository checkout",
		"Or set 'repo_dir' to the checkout path",
	)
}
