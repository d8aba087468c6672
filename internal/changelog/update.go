package changelog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultPlaceholder is the changelog line new sections are inserted below.
const DefaultPlaceholder = "<!-- GENERATOR_PLACEHOLDER -->"

// versionLine matches a manifest line of the form: version = "X.Y.Z"
var versionLine = regexp.MustCompile(`(?m)^version = "\d+\.\d+\.\d+"$`)

// InsertSection places a "## {release}" section directly below marker and
// keeps the marker in place for the next run. It returns false and the
// unchanged content when the marker is absent.
//
// Inserting the same release twice produces two stacked sections.
func InsertSection(content, marker, release, summary string) (string, bool) {
	if marker == "" || !strings.Contains(content, marker) {
		return content, false
	}
	section := fmt.Sprintf("## %s\n%s", release, summary)
	return strings.ReplaceAll(content, marker, marker+"\n\n"+section), true
}

// HasVersionLine reports whether content holds a line UpdateVersion rewrites.
func HasVersionLine(content string) bool {
	return versionLine.MatchString(content)
}

// UpdateVersion replaces the version line with the release string. It
// returns false and the unchanged content when no line matches.
func UpdateVersion(content, release string) (string, bool) {
	if !versionLine.MatchString(content) {
		return content, false
	}
	return versionLine.ReplaceAllLiteralString(content, fmt.Sprintf("version = %q", release)), true
}

// UpdateChangelogFile inserts the release section into the file at path.
// The file is left untouched when the marker is missing.
func UpdateChangelogFile(path, marker, release, summary string) (bool, error) {
	return rewriteFile(path, func(content string) (string, bool) {
		return InsertSection(content, marker, release, summary)
	})
}

// UpdateManifestFile rewrites the version line of the file at path.
// The file is left untouched when no version line matches.
func UpdateManifestFile(path, release string) (bool, error) {
	return rewriteFile(path, func(content string) (string, bool) {
		return UpdateVersion(content, release)
	})
}

// FileHasMarker reports whether the file at path contains marker.
func FileHasMarker(path, marker string) (bool, error) {
	return fileMatches(path, func(content string) bool {
		return marker != "" && strings.Contains(content, marker)
	})
}

// FileHasVersionLine reports whether the file at path has a version line.
func FileHasVersionLine(path string) (bool, error) {
	return fileMatches(path, HasVersionLine)
}

func fileMatches(path string, match func(string) bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return match(string(data)), nil
}

// rewriteFile applies edit to the file content and writes the result back
// with the original permissions when edit reports a change.
func rewriteFile(path string, edit func(string) (string, bool)) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	updated, changed := edit(string(data))
	if !changed {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
