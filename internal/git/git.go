// Package git commits, tags and pushes release changes. It uses the go-git
// library so releases can be cut on runners without a configured git CLI;
// the push goes through an in-memory remote so the token-bearing URL never
// lands in .git/config.
package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// pushRemoteName names the in-memory remote used for release pushes.
const pushRemoteName = "dailyrelease"

// ErrIdentityNotConfigured is returned when user.name or user.email is unset.
var ErrIdentityNotConfigured = errors.New("git user.name and user.email must be configured")

// ErrNotRepository is returned when RepoDir is not inside a git working tree.
var ErrNotRepository = git.ErrRepositoryNotExists

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// Identity is the author recorded on release commits and tags.
type Identity struct {
	Name  string
	Email string
}

// String formats the identity as "Name <email>".
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// ReadIdentity returns user.name and user.email from the repository
// configuration, merged over the global and system files with the
// repository's own values taking precedence.
func ReadIdentity(repo *git.Repository) (Identity, error) {
	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return Identity{}, fmt.Errorf("reading git config: %w", err)
	}

	id := Identity{Name: cfg.User.Name, Email: cfg.User.Email}
	if id.Name == "" || id.Email == "" {
		return Identity{}, ErrIdentityNotConfigured
	}
	return id, nil
}

// CheckRepository opens the repository containing dir and returns the
// identity release commits would be authored with.
func CheckRepository(dir string) (Identity, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return Identity{}, err
	}
	return ReadIdentity(repo)
}

// Publisher commits release files, tags the commit and pushes both to the
// remote.
type Publisher struct {
	// RepoDir is any path inside the working tree.
	RepoDir string
	// RemoteURL is the push target. See RemoteURL.
	RemoteURL string
	// Branch is the branch pushed to the remote.
	Branch string
	// Token authenticates HTTPS pushes. Empty means the URL alone is used.
	Token string
	// Now stamps commit and tag signatures. Defaults to time.Now.
	Now func() time.Time
}

// PublishResult reports what was created locally.
type PublishResult struct {
	Commit plumbing.Hash
	Tag    string
	Author Identity
}

// Publish stages exactly the given paths, commits them as "Release
// {release}", creates an annotated tag named release with the same message,
// then pushes the branch and all tags. Nothing is rolled back when the push
// fails: the local commit and tag stay in place.
func (p *Publisher) Publish(ctx context.Context, paths []string, release string) (*PublishResult, error) {
	if p.Branch == "" {
		return nil, errors.New("no branch to push")
	}

	repo, err := openRepo(p.RepoDir)
	if err != nil {
		return nil, err
	}

	author, err := ReadIdentity(repo)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	if err := stagePaths(worktree, paths); err != nil {
		return nil, err
	}

	message := CommitMessage(release)
	sig := &object.Signature{Name: author.Name, Email: author.Email, When: p.now()}

	hash, err := worktree.Commit(message, &git.CommitOptions{Author: sig})
	if err != nil {
		return nil, fmt.Errorf("committing release %s: %w", release, err)
	}
	logDebug("[git] committed %s as %s", hash, author)

	if _, err := repo.CreateTag(release, hash, &git.CreateTagOptions{
		Tagger:  sig,
		Message: message,
	}); err != nil {
		return nil, fmt.Errorf("tagging release %s: %w", release, err)
	}
	logDebug("[git] created tag %s", release)

	result := &PublishResult{Commit: hash, Tag: release, Author: author}
	if err := p.push(ctx, repo); err != nil {
		return result, err
	}
	return result, nil
}

// stagePaths adds each path to the index. Relative paths are resolved
// against the working directory, as the files were written, then made
// relative to the worktree root.
func stagePaths(worktree *git.Worktree, paths []string) error {
	root := worktree.Filesystem.Root()
	for _, path := range paths {
		rel, err := worktreePath(root, path)
		if err != nil {
			return err
		}
		if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
		logDebug("[git] staged %s", rel)
	}
	return nil
}

// worktreePath returns path relative to root. Paths outside root are an
// error.
func worktreePath(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err == nil && !escapesRoot(rel) {
		return rel, nil
	}

	// root or the working directory may sit behind a symlink
	realRoot, rootErr := filepath.EvalSymlinks(root)
	realPath, pathErr := filepath.EvalSymlinks(abs)
	if rootErr == nil && pathErr == nil {
		if rel, err := filepath.Rel(realRoot, realPath); err == nil && !escapesRoot(rel) {
			return rel, nil
		}
	}
	return "", fmt.Errorf("%s is outside the repository at %s", path, root)
}

func escapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// push sends the branch, then every tag, to the remote URL.
func (p *Publisher) push(ctx context.Context, repo *git.Repository) error {
	remote := git.NewRemote(repo.Storer, &config.RemoteConfig{
		Name: pushRemoteName,
		URLs: []string{p.RemoteURL},
	})

	auth := p.auth()
	branchRef := plumbing.NewBranchReferenceName(p.Branch)
	refSpecs := [][]config.RefSpec{
		{config.RefSpec(fmt.Sprintf("%s:%s", branchRef, branchRef))},
		{config.RefSpec("refs/tags/*:refs/tags/*")},
	}

	for _, specs := range refSpecs {
		logDebug("[git] pushing %s to %s", specs[0], Redact(p.RemoteURL))
		err := remote.PushContext(ctx, &git.PushOptions{
			RemoteName: pushRemoteName,
			RefSpecs:   specs,
			Auth:       auth,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("pushing %s to %s: %w", specs[0], Redact(p.RemoteURL), err)
		}
	}
	return nil
}

// auth returns basic auth for HTTPS remotes when a token is set.
func (p *Publisher) auth() transport.AuthMethod {
	if p.Token == "" || !isHTTPURL(p.RemoteURL) {
		return nil
	}
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: p.Token,
	}
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// CommitMessage is the message used for both the release commit and tag.
func CommitMessage(release string) string {
	return "Release " + release
}

// RemoteURL builds the HTTPS push URL with the token as user info:
// https://{token}@{host}/{repository}.git. An empty token still yields a
// URL; the push will then fail authentication on the remote.
func RemoteURL(host, token, repository string) string {
	return fmt.Sprintf("https://%s@%s/%s.git", token, host, repository)
}

// Redact hides credentials in a remote URL for logging.
func Redact(remote string) string {
	u, err := url.Parse(remote)
	if err != nil || u.User == nil {
		return remote
	}
	u.User = url.User("redacted")
	return u.String()
}

// isHTTPURL checks if a URL uses the http or https scheme.
func isHTTPURL(remote string) bool {
	return strings.HasPrefix(remote, "https://") || strings.HasPrefix(remote, "http://")
}
