package forge

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v72/github"
)

// GitHubClient implements Client against the GitHub REST API.
type GitHubClient struct {
	client *github.Client
	owner  string
	repo   string
}

// GitHubOptions configures a GitHubClient.
type GitHubOptions struct {
	// Repository is the "owner/name" identifier.
	Repository string
	// Token authenticates API calls. Empty means anonymous access.
	Token string
	// APIURL points at a GitHub Enterprise API endpoint. Empty means github.com.
	APIURL string
	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// NewGitHubClient creates a client for a single repository.
func NewGitHubClient(opts GitHubOptions) (*GitHubClient, error) {
	owner, repo, err := SplitRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.APIURL != "" {
		client, err = client.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("configuring API URL %s: %w", opts.APIURL, err)
		}
	}

	return &GitHubClient{client: client, owner: owner, repo: repo}, nil
}

// SplitRepository splits an "owner/name" identifier.
func SplitRepository(repository string) (owner, name string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", repository)
	}
	return parts[0], parts[1], nil
}

// ListRecentlyClosed returns the first page of closed pull requests sorted
// by last update, newest first.
func (c *GitHubClient) ListRecentlyClosed(ctx context.Context, perPage int) ([]PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	pulls, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing pull requests of %s/%s: %w", c.owner, c.repo, err)
	}

	result := make([]PullRequest, 0, len(pulls))
	for _, pull := range pulls {
		result = append(result, fromGitHub(pull))
	}
	return result, nil
}

// CreateRelease creates a published release for an existing tag.
func (c *GitHubClient) CreateRelease(ctx context.Context, req ReleaseRequest) (*Release, error) {
	release, _, err := c.client.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName: github.Ptr(req.TagName),
		Name:    github.Ptr(req.Name),
		Body:    github.Ptr(req.Body),
	})
	if err != nil {
		return nil, fmt.Errorf("creating release %s: %w", req.TagName, err)
	}

	return &Release{
		ID:      release.GetID(),
		TagName: release.GetTagName(),
		Name:    release.GetName(),
		URL:     release.GetHTMLURL(),
	}, nil
}

// fromGitHub converts the API model, dropping everything changelog
// generation does not read.
func fromGitHub(pull *github.PullRequest) PullRequest {
	labels := make([]string, 0, len(pull.Labels))
	for _, label := range pull.Labels {
		labels = append(labels, label.GetName())
	}

	result := PullRequest{
		Number: pull.GetNumber(),
		Title:  pull.GetTitle(),
		URL:    pull.GetHTMLURL(),
		Author: pull.GetUser().GetLogin(),
		Labels: labels,
	}
	if pull.MergedAt != nil {
		mergedAt := pull.MergedAt.Time
		result.MergedAt = &mergedAt
	}
	return result
}
