package changelog

import (
	"testing"

	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/stretchr/testify/assert"
)

func pull(number int, labels ...string) forge.PullRequest {
	return forge.PullRequest{Number: number, Title: "PR", Labels: labels}
}

func numbers(pulls []forge.PullRequest) []int {
	var result []int
	for _, p := range pulls {
		result = append(result, p.Number)
	}
	return result
}

func TestGroup(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pulls             []forge.PullRequest
		wantChanged       []int
		wantFixed         []int
		wantDocumentation []int
		wantUpdated       []int
	}{
		"no labels goes to changed": {
			pulls:       []forge.PullRequest{pull(1)},
			wantChanged: []int{1},
		},
		"unknown labels go to changed": {
			pulls:       []forge.PullRequest{pull(1, "enhancement")},
			wantChanged: []int{1},
		},
		"bug goes to fixed": {
			pulls:     []forge.PullRequest{pull(1, "bug")},
			wantFixed: []int{1},
		},
		"update goes to updated": {
			pulls:       []forge.PullRequest{pull(1, "update")},
			wantUpdated: []int{1},
		},
		"docs goes to fixed not documentation": {
			pulls:     []forge.PullRequest{pull(1, "docs")},
			wantFixed: []int{1},
		},
		"update wins over bug": {
			pulls:       []forge.PullRequest{pull(1, "bug", "update")},
			wantUpdated: []int{1},
		},
		"bug wins over docs": {
			pulls:     []forge.PullRequest{pull(1, "docs", "bug")},
			wantFixed: []int{1},
		},
		"infrastructure is excluded regardless of other labels": {
			pulls: []forge.PullRequest{
				pull(1, "project infrastructure"),
				pull(2, "update", "project infrastructure"),
				pull(3, "bug", "docs", "project infrastructure"),
			},
		},
		"order within a section is preserved": {
			pulls:       []forge.PullRequest{pull(3), pull(1, "bug"), pull(2)},
			wantChanged: []int{3, 2},
			wantFixed:   []int{1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			grouped := Group(tt.pulls)
			assert.Equal(t, tt.wantChanged, numbers(grouped.Changed))
			assert.Equal(t, tt.wantFixed, numbers(grouped.Fixed))
			assert.Equal(t, tt.wantDocumentation, numbers(grouped.Documentation))
			assert.Equal(t, tt.wantUpdated, numbers(grouped.Updated))
		})
	}
}

func TestGroupedPulls_HasValues(t *testing.T) {
	t.Parallel()

	assert.False(t, GroupedPulls{}.HasValues())
	assert.False(t, Group(nil).HasValues())
	assert.False(t, Group([]forge.PullRequest{pull(1, "project infrastructure")}).HasValues())

	grouped := Group([]forge.PullRequest{pull(1, "bug"), pull(2, "update"), pull(3)})
	assert.True(t, grouped.HasValues())
	assert.Equal(t, 3, grouped.Count())
	assert.Len(t, grouped.Fixed, 1)
	assert.Len(t, grouped.Updated, 1)
	assert.Len(t, grouped.Changed, 1)
	assert.Empty(t, grouped.Documentation)
}

func TestGroupedPulls_Sections(t *testing.T) {
	t.Parallel()

	grouped := Group([]forge.PullRequest{pull(1, "bug")})
	sections := grouped.Sections()

	assert.Len(t, sections, 4)
	assert.Equal(t, []int{1}, numbers(sections["Fixed"]))
	assert.Contains(t, sections, "Documentation")
	assert.Equal(t, []string{"Changed", "Fixed", "Documentation", "Updated"}, SectionNames())
}
