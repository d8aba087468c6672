package release

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/history"
	"github.com/ariel-frischer/dailyrelease/internal/logging"
)

// Pipeline holds the collaborators of a release run.
type Pipeline struct {
	Config    *config.Configuration
	Forge     forge.Client
	Publisher RepoPublisher
	// History and Progress are optional.
	History  Recorder
	Progress StepReporter
	Logger   *slog.Logger
	Options  Options
	// Now defaults to time.Now.
	Now func() time.Time
}

// TargetDate returns the calendar day before now in loc, at midnight.
func TargetDate(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Run executes one release. An early exit returns a Result with Skipped set
// and a nil error. The run is appended to History whatever the outcome.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	started := p.now()
	logger := p.logger()

	loc, err := p.Config.Location()
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration)
	}

	date := p.Options.Date
	if date.IsZero() {
		date = TargetDate(started, loc)
	}
	result = &Result{
		Date:    date,
		Release: changelog.ReleaseName(date),
		DryRun:  p.Options.DryRun,
	}
	logger = logger.With(logging.Release(result.Release))

	defer func() {
		p.record(result, err, p.now().Sub(started), logger)
	}()

	if p.Config.Repository == "" {
		return result, clierrors.MissingRepository()
	}

	if err := p.collect(ctx, result, loc, logger); err != nil {
		return result, err
	}
	if result.Skipped != "" {
		logger.Info("nothing to release", "reason", string(result.Skipped), logging.Date(date.Format(time.DateOnly)))
		return result, nil
	}

	summary, err := p.render(result.Grouped)
	if err != nil {
		return result, err
	}
	result.Summary = summary

	if p.Options.DryRun {
		logger.Info("dry run, nothing written", logging.Count(result.Grouped.Count()))
		return result, nil
	}

	if p.Config.Branch == "" {
		return result, clierrors.MissingBranch()
	}
	if p.Config.Token == "" {
		logger.Warn("no token configured, push and release creation will likely be rejected")
	}

	if err := p.updateFiles(result, logger); err != nil {
		return result, err
	}

	if err := p.publish(ctx, result, logger); err != nil {
		return result, err
	}

	return result, nil
}

// collect fetches the merged pull requests and groups them, marking the
// result skipped when there is nothing to release.
func (p *Pipeline) collect(ctx context.Context, result *Result, loc *time.Location, logger *slog.Logger) error {
	s := steps{p.Progress}
	day := result.Date.Format(time.DateOnly)

	s.start(fmt.Sprintf("Fetching pull requests merged on %s", day))
	merged, err := forge.MergedOn(ctx, p.Forge, result.Date, loc, p.Config.PerPage)
	if err != nil {
		s.fail(err)
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to list pull requests",
			"Check that the token can read pull requests of "+p.Config.Repository)
	}
	s.done(fmt.Sprintf("%d merged", len(merged)))

	result.Merged = merged
	for _, pull := range merged {
		logger.Debug("merged pull request", logging.Pull(pull.Number), "title", pull.Title, "labels", pull.Labels)
	}
	if len(merged) == 0 {
		result.Skipped = SkipNoneMerged
		return nil
	}

	result.Grouped = changelog.Group(merged)
	if !result.Grouped.HasValues() {
		result.Skipped = SkipAllExcluded
	}
	return nil
}

func (p *Pipeline) render(grouped changelog.GroupedPulls) (string, error) {
	path := p.Config.TemplateFile()
	summary, err := changelog.RenderFile(path, grouped)
	if stderrors.Is(err, changelog.ErrTemplateNotFound) {
		return "", clierrors.MissingTemplate(path, err)
	}
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to render changelog section")
	}
	return summary, nil
}

// updateFiles inserts the section into the changelog and bumps the
// manifest version. A missing placeholder or version line leaves the file
// untouched and is only fatal in strict mode, where both files are checked
// before either is written.
func (p *Pipeline) updateFiles(result *Result, logger *slog.Logger) error {
	changelogPath := p.Config.ChangelogFile()
	manifestPath := p.Config.ManifestFile()

	if p.strict() {
		if err := p.checkMarkers(changelogPath, manifestPath); err != nil {
			return err
		}
	}

	updated, err := changelog.UpdateChangelogFile(changelogPath, p.Config.Placeholder, result.Release, result.Summary)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	result.ChangelogUpdated = updated
	if !updated {
		logger.Warn("placeholder not found, changelog left unchanged", logging.Path(changelogPath))
	}

	updated, err = changelog.UpdateManifestFile(manifestPath, result.Release)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	result.ManifestUpdated = updated
	if !updated {
		logger.Warn("version line not found, manifest left unchanged", logging.Path(manifestPath))
	}
	return nil
}

// checkMarkers fails when the changelog lacks the placeholder or the
// manifest lacks a version line.
func (p *Pipeline) checkMarkers(changelogPath, manifestPath string) error {
	ok, err := changelog.FileHasMarker(changelogPath, p.Config.Placeholder)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if !ok {
		return clierrors.MarkerNotFound(changelogPath, p.Config.Placeholder)
	}

	ok, err = changelog.FileHasVersionLine(manifestPath)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if !ok {
		return clierrors.VersionLineNotFound(manifestPath)
	}
	return nil
}

// publish commits, tags and pushes, then creates the hosted release.
func (p *Pipeline) publish(ctx context.Context, result *Result, logger *slog.Logger) error {
	s := steps{p.Progress}

	s.start(fmt.Sprintf("Pushing release %s to %s", result.Release, p.Config.Branch))
	pushed, err := p.Publisher.Publish(ctx, []string{p.Config.ChangelogFile(), p.Config.ManifestFile()}, result.Release)
	if pushed != nil {
		result.Commit = pushed.Commit.String()
	}
	if err != nil {
		s.fail(err)
		return publishError(err, p.Config.RepoDir)
	}
	s.done(shortHash(result.Commit))
	logger.Info("pushed release", logging.Branch(p.Config.Branch), "commit", result.Commit)

	s.start("Creating release " + result.Release)
	created, err := p.Forge.CreateRelease(ctx, forge.ReleaseRequest{
		TagName: result.Release,
		Name:    result.Release,
		Body:    result.Summary,
	})
	if err != nil {
		s.fail(err)
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to create release "+result.Release,
			"The tag is already pushed; create the release by hand or rerun after fixing access")
	}
	result.Published = true
	result.ReleaseURL = created.URL
	s.done(created.URL)
	logger.Info("created release", logging.URL(created.URL))
	return nil
}

func publishError(err error, repoDir string) error {
	switch {
	case stderrors.Is(err, git.ErrNotRepository):
		return clierrors.GitNotRepository(repoDir)
	case stderrors.Is(err, git.ErrIdentityNotConfigured):
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "git author identity is not configured",
			"git config user.name \"Release Bot\"",
			"git config user.email bot@example.com")
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to publish release commit",
			"Local commit and tag are kept; push them by hand once the remote is reachable")
	}
}

// record logs the finished run and appends it to History.
func (p *Pipeline) record(result *Result, runErr error, elapsed time.Duration, logger *slog.Logger) {
	if result == nil {
		return
	}
	entry := history.Entry{
		Timestamp:  p.now(),
		Release:    result.Release,
		Date:       result.Date.Format(time.DateOnly),
		Pulls:      len(result.Merged),
		Outcome:    result.Outcome(),
		Duration:   elapsed.Round(time.Millisecond).String(),
		ReleaseURL: result.ReleaseURL,
	}
	switch {
	case runErr != nil:
		entry.Outcome = history.OutcomeFailed
		entry.Detail = runErr.Error()
	case result.Skipped != "":
		entry.Detail = string(result.Skipped)
	}

	logger.Info("run finished",
		logging.Repository(p.Config.Repository),
		logging.Outcome(string(entry.Outcome)),
		logging.DurationMS(elapsed))

	if p.History != nil {
		p.History.LogEntry(entry)
	}
}

func (p *Pipeline) strict() bool {
	return p.Options.Strict || p.Config.Strict
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.Discard()
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
