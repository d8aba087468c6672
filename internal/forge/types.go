package forge

import (
	"context"
	"slices"
	"time"
)

// PullRequest is the read-only view of a pull request used for changelog
// generation. MergedAt is nil for pull requests closed without merging.
type PullRequest struct {
	Number   int
	Title    string
	URL      string
	Author   string
	Labels   []string
	MergedAt *time.Time
}

// HasLabel reports whether the pull request carries the named label.
func (p PullRequest) HasLabel(name string) bool {
	return slices.Contains(p.Labels, name)
}

// IsMerged reports whether the pull request has a merge timestamp.
func (p PullRequest) IsMerged() bool {
	return p.MergedAt != nil
}

// ReleaseRequest describes a release to create on the hosting service.
type ReleaseRequest struct {
	TagName string
	Name    string
	Body    string
}

// Release is the created release as reported by the hosting service.
type Release struct {
	ID      int64
	TagName string
	Name    string
	URL     string
}

// PullLister lists the most recently updated closed pull requests, newest
// first. Only a single page of at most perPage items is returned.
type PullLister interface {
	ListRecentlyClosed(ctx context.Context, perPage int) ([]PullRequest, error)
}

// ReleaseCreator creates a release referencing an already pushed tag.
type ReleaseCreator interface {
	CreateRelease(ctx context.Context, req ReleaseRequest) (*Release, error)
}

// Client is the capability surface the release pipeline needs from the
// hosting service.
type Client interface {
	PullLister
	ReleaseCreator
}
