// Package release runs the daily release: fetch the pull requests merged on
// the target day, group and render them, update the changelog and manifest,
// commit, tag and push, then create the hosted release.
// Related: internal/forge, internal/changelog, internal/git
package release
