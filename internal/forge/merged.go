package forge

import (
	"context"
	"fmt"
	"time"
)

// DefaultPerPage matches the hosting service's default page size.
const DefaultPerPage = 30

// MergedOn returns the pull requests from the first page of recently closed
// ones whose merge timestamp falls on date, as observed in loc. The date's
// own clock time is ignored. Pull requests pushed off the first page by
// later updates are not seen.
func MergedOn(ctx context.Context, lister PullLister, date time.Time, loc *time.Location, perPage int) ([]PullRequest, error) {
	if loc == nil {
		loc = time.UTC
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	recent, err := lister.ListRecentlyClosed(ctx, perPage)
	if err != nil {
		return nil, fmt.Errorf("listing closed pull requests: %w", err)
	}

	var merged []PullRequest
	for _, pull := range recent {
		if !pull.IsMerged() {
			continue
		}
		if SameDay(*pull.MergedAt, date, loc) {
			merged = append(merged, pull)
		}
	}
	return merged, nil
}

// SameDay reports whether t falls on the calendar day of date in loc.
func SameDay(t, date time.Time, loc *time.Location) bool {
	ty, tm, td := t.In(loc).Date()
	dy, dm, dd := date.Date()
	return ty == dy && tm == dm && td == dd
}
