package release

import (
	"context"
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/history"
)

// RepoPublisher commits, tags and pushes the release files.
// *git.Publisher implements it.
type RepoPublisher interface {
	Publish(ctx context.Context, paths []string, release string) (*git.PublishResult, error)
}

// Recorder stores one entry per run. *history.Writer implements it.
type Recorder interface {
	LogEntry(entry history.Entry)
}

// StepReporter shows step progress. *progress.Display implements it.
type StepReporter interface {
	StartStep(name string)
	CompleteStep(detail string)
	FailStep(err error)
}

// Options change how a run behaves.
type Options struct {
	// Date is the merge day to release. Zero means yesterday in the
	// configured time zone.
	Date time.Time
	// DryRun renders the section without touching files, git or the
	// hosting service.
	DryRun bool
	// Strict fails the run when the changelog placeholder or the manifest
	// version line is missing.
	Strict bool
}

// SkipReason explains an early exit.
type SkipReason string

const (
	SkipNoneMerged  SkipReason = "no pull requests merged"
	SkipAllExcluded SkipReason = "all merged pull requests are excluded from the changelog"
)

// Result describes what a run did.
type Result struct {
	Date    time.Time
	Release string
	Merged  []forge.PullRequest
	Grouped changelog.GroupedPulls
	Summary string

	ChangelogUpdated bool
	ManifestUpdated  bool
	Commit           string
	Published        bool
	ReleaseURL       string

	// Skipped is set when the run stopped before rendering.
	Skipped SkipReason
	DryRun  bool
}

// Outcome maps the result to its history outcome.
func (r *Result) Outcome() history.Outcome {
	switch {
	case r.Skipped != "":
		return history.OutcomeSkipped
	case r.DryRun:
		return history.OutcomeDryRun
	case r.Published:
		return history.OutcomePublished
	default:
		return history.OutcomeFailed
	}
}
