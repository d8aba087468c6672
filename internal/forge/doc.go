// Package forge talks to the source-code hosting service. It lists recently
// closed pull requests, narrows them to the ones merged on a given day, and
// creates tagged releases.
//
// The narrow Client interface lets the release pipeline run against fakes in
// tests; GitHubClient is the production implementation on top of go-github.
package forge
