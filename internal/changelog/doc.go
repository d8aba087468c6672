// Package changelog turns merged pull requests into a release section.
//
// This package implements:
//   - Label-based grouping of pull requests into changelog buckets
//   - Markdown rendering through an auto-escaping template
//   - Insertion of a release section below the changelog placeholder marker
//   - Rewriting of the version line in the project manifest
//   - Terminal formatting of grouped pull requests for CLI display
//
// The release marker (YYYY.MM.DD) produced by ReleaseName doubles as the
// changelog heading, the manifest version and the tag name.
package changelog
