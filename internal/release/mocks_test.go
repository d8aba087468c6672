package release

import (
	"context"
	"sync"

	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/history"
	"github.com/go-git/go-git/v5/plumbing"
)

// mockForge serves a fixed page of closed pull requests and records
// release requests.
type mockForge struct {
	Pulls      []forge.PullRequest
	ListErr    error
	ReleaseErr error

	ListCalls       int
	ReleaseRequests []forge.ReleaseRequest
}

func (m *mockForge) ListRecentlyClosed(_ context.Context, _ int) ([]forge.PullRequest, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Pulls, nil
}

func (m *mockForge) CreateRelease(_ context.Context, req forge.ReleaseRequest) (*forge.Release, error) {
	m.ReleaseRequests = append(m.ReleaseRequests, req)
	if m.ReleaseErr != nil {
		return nil, m.ReleaseErr
	}
	return &forge.Release{ID: 1, TagName: req.TagName, Name: req.Name, URL: "https://github.com/octo/widgets/releases/tag/" + req.TagName}, nil
}

// mockPublisher records publish calls instead of touching git.
type mockPublisher struct {
	Err error

	Calls []publishCall
}

type publishCall struct {
	Paths   []string
	Release string
}

func (m *mockPublisher) Publish(_ context.Context, paths []string, release string) (*git.PublishResult, error) {
	m.Calls = append(m.Calls, publishCall{Paths: paths, Release: release})
	result := &git.PublishResult{
		Commit: plumbing.NewHash("0123456789abcdef0123456789abcdef01234567"),
		Tag:    release,
	}
	if m.Err != nil {
		return result, m.Err
	}
	return result, nil
}

// mockRecorder keeps history entries in memory.
type mockRecorder struct {
	mu      sync.Mutex
	Entries []history.Entry
}

func (m *mockRecorder) LogEntry(entry history.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
}

// mockSteps records step names and results.
type mockSteps struct {
	Events []string
}

func (m *mockSteps) StartStep(name string) { m.Events = append(m.Events, "start:"+name) }
func (m *mockSteps) CompleteStep(d string) { m.Events = append(m.Events, "done:"+d) }
func (m *mockSteps) FailStep(err error) { m.Events = append(m.Events, "fail:"+err.Error()) }
