package changelog

import "github.com/ariel-frischer/dailyrelease/internal/forge"

// Labels that drive classification.
const (
	LabelInfrastructure = "project infrastructure"
	LabelUpdate         = "update"
	LabelBug            = "bug"
	LabelDocs           = "docs"
)

type bucket int

const (
	bucketExcluded bucket = iota
	bucketChanged
	bucketFixed
	bucketDocumentation
	bucketUpdated
)

// classificationRules is evaluated top to bottom; the first label present
// decides the bucket. Pull requests matching no rule land in Changed.
//
// NOTE: "docs" maps to Fixed, not Documentation. Existing changelogs were
// generated with this mapping and the Documentation section stays empty.
// Changing it alters published output, so it is kept until the project
// decides otherwise.
var classificationRules = []struct {
	label  string
	bucket bucket
}{
	{LabelInfrastructure, bucketExcluded},
	{LabelUpdate, bucketUpdated},
	{LabelBug, bucketFixed},
	{LabelDocs, bucketFixed},
}

// classify returns the bucket for a single pull request.
func classify(pull forge.PullRequest) bucket {
	for _, rule := range classificationRules {
		if pull.HasLabel(rule.label) {
			return rule.bucket
		}
	}
	return bucketChanged
}

// Group sorts pull requests into changelog sections, preserving input order
// within each section. Pull requests labeled "project infrastructure" are
// left out entirely.
func Group(pulls []forge.PullRequest) GroupedPulls {
	var grouped GroupedPulls
	for _, pull := range pulls {
		switch classify(pull) {
		case bucketExcluded:
		case bucketUpdated:
			grouped.Updated = append(grouped.Updated, pull)
		case bucketFixed:
			grouped.Fixed = append(grouped.Fixed, pull)
		case bucketDocumentation:
			grouped.Documentation = append(grouped.Documentation, pull)
		case bucketChanged:
			grouped.Changed = append(grouped.Changed, pull)
		}
	}
	return grouped
}
