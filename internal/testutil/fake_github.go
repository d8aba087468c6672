package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// FakePull is a pull request served by FakeGitHub.
type FakePull struct {
	Number   int
	Title    string
	Labels   []string
	MergedAt *time.Time
}

// FakeGitHub serves the two GitHub REST endpoints dailyrelease uses:
// listing pulls and creating releases. Point api_url at URL().
type FakeGitHub struct {
	Repository string
	Pulls      []FakePull

	server *httptest.Server

	mu       sync.Mutex
	releases []map[string]any
}

// NewFakeGitHub starts a server for repository ("owner/name").
func NewFakeGitHub(t *testing.T, repository string, pulls ...FakePull) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{Repository: repository, Pulls: pulls}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/"+repository+"/pulls", f.listPulls)
	mux.HandleFunc("POST /api/v3/repos/"+repository+"/releases", f.createRelease)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// URL is the enterprise base URL to configure as api_url.
func (f *FakeGitHub) URL() string {
	return f.server.URL + "/"
}

// Releases returns the decoded bodies of release creation requests.
func (f *FakeGitHub) Releases() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.releases...)
}

func (f *FakeGitHub) listPulls(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, len(f.Pulls))
	for _, p := range f.Pulls {
		labels := make([]map[string]string, 0, len(p.Labels))
		for _, l := range p.Labels {
			labels = append(labels, map[string]string{"name": l})
		}
		pull := map[string]any{
			"number":   p.Number,
			"title":    p.Title,
			"state":    "closed",
			"html_url": fmt.Sprintf("https://github.com/%s/pull/%d", f.Repository, p.Number),
			"user":     map[string]string{"login": "octocat"},
			"labels":   labels,
		}
		if p.MergedAt != nil {
			pull["merged_at"] = p.MergedAt.Format(time.RFC3339)
		}
		out = append(out, pull)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (f *FakeGitHub) createRelease(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.releases = append(f.releases, body)
	id := len(f.releases)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":       id,
		"tag_name": body["tag_name"],
		"name":     body["name"],
		"html_url": fmt.Sprintf("https://github.com/%s/releases/tag/%v", f.Repository, body["tag_name"]),
	})
}
