package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/changelog"
	"github.com/ariel-frischer/dailyrelease/internal/config"
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/ariel-frischer/dailyrelease/internal/git"
	"github.com/ariel-frischer/dailyrelease/internal/release"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value    string
		timezone string
		want     time.Time
		wantCode int
	}{
		"empty means yesterday": {
			value:    "",
			timezone: "UTC",
		},
		"utc": {
			value:    "2024-05-01",
			timezone: "UTC",
			want:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		"malformed": {
			value:    "05/01/2024",
			timezone: "UTC",
			wantCode: ExitInvalidArguments,
		},
		"bad timezone": {
			value:    "2024-05-01",
			timezone: "Nowhere/Special",
			wantCode: ExitConfigError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseDate(tt.value, &config.Configuration{Timezone: tt.timezone})
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_UsesTimezone(t *testing.T) {
	t.Parallel()

	got, err := parseDate("2024-05-01", &config.Configuration{Timezone: "Asia/Tokyo"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", got.Location().String())
	assert.Equal(t, 1, got.Day())
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	cfg := &config.Configuration{
		Repository: "octo/widgets",
		Token:      "secret",
		Branch:     "main",
		GitHost:    "github.com",
		RepoDir:    "/srv/repo",
		StateDir:   t.TempDir(),
		Timezone:   "UTC",
	}

	pipeline, err := newPipeline(cfg, release.Options{DryRun: true}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.IsType(t, &forge.GitHubClient{}, pipeline.Forge)
	publisher, ok := pipeline.Publisher.(*git.Publisher)
	require.True(t, ok)
	assert.Equal(t, "https://secret@github.com/octo/widgets.git", publisher.RemoteURL)
	assert.Equal(t, "main", publisher.Branch)
	assert.True(t, pipeline.Options.DryRun)
	assert.NotNil(t, pipeline.History)
}

func TestPushURL(t *testing.T) {
	t.Parallel()

	cfg := &config.Configuration{Repository: "octo/widgets", Token: "t", GitHost: "git.example.com"}
	assert.Equal(t, "https://t@git.example.com/octo/widgets.git", pushURL(cfg))

	cfg.RemoteURL = "/srv/mirror.git"
	assert.Equal(t, "/srv/mirror.git", pushURL(cfg))
}

func TestNewPipeline_MissingRepository(t *testing.T) {
	t.Parallel()

	_, err := newPipeline(&config.Configuration{}, release.Options{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
	assert.Equal(t, clierrors.Configuration, clierrors.AsCLIError(err).Category)
}

func sampleResult() *release.Result {
	pulls := []forge.PullRequest{
		{Number: 1, Title: "Fix crash", URL: "https://github.com/o/r/pull/1", Labels: []string{"bug"}},
		{Number: 2, Title: "Add option", URL: "https://github.com/o/r/pull/2"},
	}
	return &release.Result{
		Date:             time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Release:          "2024.05.01",
		Merged:           pulls,
		Grouped:          changelog.Group(pulls),
		Summary:          "\n### Changed\n\n- Add option ([#2](https://github.com/o/r/pull/2))\n\n### Fixed\n\n- Fix crash ([#1](https://github.com/o/r/pull/1))\n",
		ChangelogUpdated: true,
		ManifestUpdated:  true,
		Published:        true,
		ReleaseURL:       "https://github.com/o/r/releases/tag/2024.05.01",
	}
}

func TestPrintResult(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(r *release.Result)
		want    []string
		notWant []string
	}{
		"published": {
			mutate: func(r *release.Result) {},
			want:   []string{"2024.05.01 (2 pull requests)", "Released 2024.05.01: https://github.com/o/r/releases/tag/2024.05.01"},
		},
		"skipped": {
			mutate: func(r *release.Result) {
				r.Skipped = release.SkipNoneMerged
			},
			want:    []string{"Nothing to release for 2024-05-01: no pull requests merged"},
			notWant: []string{"Released"},
		},
		"dry run": {
			mutate: func(r *release.Result) {
				r.DryRun = true
				r.Published = false
			},
			want:    []string{"Dry run"},
			notWant: []string{"Released"},
		},
		"placeholder missing": {
			mutate: func(r *release.Result) {
				r.ChangelogUpdated = false
			},
			want: []string{"Changelog: placeholder not found"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := sampleResult()
			tt.mutate(result)

			var buf bytes.Buffer
			require.NoError(t, printResult(&buf, result))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestWritePreview(t *testing.T) {
	t.Parallel()

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		var out, errOut bytes.Buffer
		require.NoError(t, writePreview(&out, &errOut, sampleResult(), false))
		assert.Equal(t, "## 2024.05.01\n"+sampleResult().Summary, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		var out, errOut bytes.Buffer
		require.NoError(t, writePreview(&out, &errOut, sampleResult(), true))
		assert.Contains(t, out.String(), "<h2>2024.05.01</h2>")
		assert.Contains(t, out.String(), "<h3>Fixed</h3>")
		assert.Contains(t, out.String(), `<a href="https://github.com/o/r/pull/1">#1</a>`)
	})

	t.Run("skipped", func(t *testing.T) {
		t.Parallel()
		result := sampleResult()
		result.Skipped = release.SkipAllExcluded
		var out, errOut bytes.Buffer
		require.NoError(t, writePreview(&out, &errOut, result, false))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "excluded")
	})
}
