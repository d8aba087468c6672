package changelog

import (
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/forge"
)

// Section names as exposed to the changelog template, in display order.
const (
	SectionChanged       = "Changed"
	SectionFixed         = "Fixed"
	SectionDocumentation = "Documentation"
	SectionUpdated       = "Updated"
)

// GroupedPulls holds merged pull requests sorted into changelog sections.
// It is built once by Group and read afterwards; callers must not append to
// the slices.
type GroupedPulls struct {
	Changed       []forge.PullRequest
	Fixed         []forge.PullRequest
	Documentation []forge.PullRequest
	Updated       []forge.PullRequest
}

// HasValues returns true if any section holds at least one pull request.
func (g GroupedPulls) HasValues() bool {
	return g.Count() > 0
}

// Count returns the total number of pull requests across all sections.
func (g GroupedPulls) Count() int {
	return len(g.Changed) +
		len(g.Fixed) +
		len(g.Documentation) +
		len(g.Updated)
}

// Sections returns the template view: section name to pull requests.
func (g GroupedPulls) Sections() map[string][]forge.PullRequest {
	return map[string][]forge.PullRequest{
		SectionChanged:       g.Changed,
		SectionFixed:         g.Fixed,
		SectionDocumentation: g.Documentation,
		SectionUpdated:       g.Updated,
	}
}

// SectionNames returns the section names in display order.
func SectionNames() []string {
	return []string{SectionChanged, SectionFixed, SectionDocumentation, SectionUpdated}
}

// ReleaseName formats the release marker for the given day.
func ReleaseName(date time.Time) string {
	return date.Format("2006.01.02")
}
