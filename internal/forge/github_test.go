package forge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *GitHubClient {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewGitHubClient(GitHubOptions{
		Repository: "octo/widgets",
		Token:      "secret-token",
		APIURL:     server.URL + "/",
	})
	require.NoError(t, err)
	return client
}

func TestGitHubClient_ListRecentlyClosed(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/octo/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("direction"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `[
			{"number": 12, "title": "Fix <script> crash", "html_url": "https://github.com/octo/widgets/pull/12",
			 "user": {"login": "alice"}, "labels": [{"name": "bug"}], "merged_at": "2024-05-01T09:30:00Z"},
			{"number": 13, "title": "Abandoned", "html_url": "https://github.com/octo/widgets/pull/13",
			 "labels": [], "merged_at": null}
		]`)
	})

	client := newTestClient(t, mux)
	pulls, err := client.ListRecentlyClosed(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, pulls, 2)

	assert.Equal(t, 12, pulls[0].Number)
	assert.Equal(t, "Fix <script> crash", pulls[0].Title)
	assert.Equal(t, "alice", pulls[0].Author)
	assert.Equal(t, []string{"bug"}, pulls[0].Labels)
	require.NotNil(t, pulls[0].MergedAt)
	assert.Equal(t, "2024-05-01T09:30:00Z", pulls[0].MergedAt.UTC().Format("2006-01-02T15:04:05Z"))

	assert.Equal(t, 13, pulls[1].Number)
	assert.False(t, pulls[1].IsMerged())
	assert.Empty(t, pulls[1].Author)
}

func TestGitHubClient_CreateRelease(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/octo/widgets/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024.05.01", body["tag_name"])
		assert.Equal(t, "2024.05.01", body["name"])
		assert.Equal(t, "### Fixed\n", body["body"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 99, "tag_name": "2024.05.01", "name": "2024.05.01",
			"html_url": "https://github.com/octo/widgets/releases/tag/2024.05.01"}`)
	})

	client := newTestClient(t, mux)
	release, err := client.CreateRelease(context.Background(), ReleaseRequest{
		TagName: "2024.05.01",
		Name:    "2024.05.01",
		Body:    "### Fixed\n",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), release.ID)
	assert.Equal(t, "https://github.com/octo/widgets/releases/tag/2024.05.01", release.URL)
}

func TestGitHubClient_CreateRelease_UnknownTag(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/octo/widgets/releases", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message": "Validation Failed"}`)
	})

	client := newTestClient(t, mux)
	_, err := client.CreateRelease(context.Background(), ReleaseRequest{TagName: "2024.05.01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating release 2024.05.01")
}

func TestSplitRepository(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input     string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		"owner and name": {input: "octo/widgets", wantOwner: "octo", wantName: "widgets"},
		"missing slash":  {input: "widgets", wantErr: true},
		"empty owner":    {input: "/widgets", wantErr: true},
		"too many parts": {input: "a/b/c", wantErr: true},
		"empty":          {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			owner, repo, err := SplitRepository(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, repo)
		})
	}
}
