// Package testutil provides test utilities and helpers for dailyrelease tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// binaryPath caches the built dailyrelease binary path.
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// E2EEnv provides an isolated environment for E2E testing: a temp HOME, a
// checkout with a bare remote, and an environment stripped of any real
// GitHub credentials.
type E2EEnv struct {
	t         *testing.T
	tempDir   string
	repoDir   string
	remoteDir string
	binDir    string
	extraEnv  []string
	cleanedUp bool
}

// CommandResult captures the result of running a dailyrelease command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment and builds the binary.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{t: t}
	env.setup()
	t.Cleanup(env.Cleanup)

	return env
}

func (e *E2EEnv) setup() {
	e.t.Helper()

	tempDir, err := os.MkdirTemp("", "e2e-test-*")
	if err != nil {
		e.t.Fatalf("creating temp directory: %v", err)
	}
	e.tempDir = tempDir
	e.repoDir = filepath.Join(tempDir, "repo")
	e.remoteDir = filepath.Join(tempDir, "remote.git")
	e.binDir = filepath.Join(tempDir, "bin")

	for _, dir := range []string{e.repoDir, e.binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.t.Fatalf("creating %s: %v", dir, err)
		}
	}

	e.build()
}

func (e *E2EEnv) build() {
	e.t.Helper()

	buildOnce.Do(func() {
		binaryPath, buildErr = doBuild()
	})
	if buildErr != nil {
		e.t.Fatalf("building dailyrelease: %v", buildErr)
	}

	content, err := os.ReadFile(binaryPath)
	if err != nil {
		e.t.Fatalf("reading dailyrelease binary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.binDir, "dailyrelease"), content, 0o755); err != nil {
		e.t.Fatalf("writing dailyrelease binary: %v", err)
	}
}

func doBuild() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "dailyrelease-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}
	out := filepath.Join(tmpDir, "dailyrelease")

	cmd := exec.Command("go", "build", "-o", out, "./cmd/dailyrelease")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("building dailyrelease: %w\nOutput: %s", err, output)
	}
	return out, nil
}

// Setenv adds a variable to the environment of every later Run.
func (e *E2EEnv) Setenv(key, value string) {
	e.extraEnv = append(e.extraEnv, key+"="+value)
}

// Run executes a dailyrelease command inside the checkout.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(filepath.Join(e.binDir, "dailyrelease"), args...)
	cmd.Dir = e.repoDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}
	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.tempDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.tempDir, ".config"),
		"NO_COLOR=1",
	}

	safeVars := []string{"LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	// GITHUB_* from the host never reach the binary; tests set their own.
	return append(env, e.extraEnv...)
}

// TempDir returns the root temp directory for this test environment.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// RepoDir returns the checkout the binary runs in.
func (e *E2EEnv) RepoDir() string {
	return e.repoDir
}

// RemoteDir returns the bare repository pushes go to.
func (e *E2EEnv) RemoteDir() string {
	return e.remoteDir
}

// WriteFile writes a file relative to the checkout.
func (e *E2EEnv) WriteFile(rel, content string) {
	e.t.Helper()

	path := filepath.Join(e.repoDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
}

// ReadFile reads a file relative to the checkout.
func (e *E2EEnv) ReadFile(rel string) string {
	e.t.Helper()

	data, err := os.ReadFile(filepath.Join(e.repoDir, rel))
	if err != nil {
		e.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// Cleanup removes the temp directory.
func (e *E2EEnv) Cleanup() {
	if e.cleanedUp {
		return
	}
	e.cleanedUp = true

	if e.tempDir != "" {
		if err := os.RemoveAll(e.tempDir); err != nil {
			e.t.Logf("note: could not remove temp directory: %v", err)
		}
	}
}

// InitGitRepo initializes the checkout on branch main with one commit of
// its current files, and a bare remote.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()

	e.git(e.tempDir, "init", "--bare", "--initial-branch=main", e.remoteDir)
	e.git(e.repoDir, "init", "--initial-branch=main")
	e.git(e.repoDir, "config", "user.email", "test@test.com")
	e.git(e.repoDir, "config", "user.name", "Test")
	e.git(e.repoDir, "add", ".")
	e.git(e.repoDir, "commit", "-m", "Initial commit")
	e.git(e.repoDir, "push", e.remoteDir, "main")
}

// RemoteGit runs git in the bare remote and returns its output.
func (e *E2EEnv) RemoteGit(args ...string) string {
	e.t.Helper()
	return e.git(e.remoteDir, args...)
}

func (e *E2EEnv) git(dir string, args ...string) string {
	e.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+e.tempDir, "GIT_CONFIG_NOSYSTEM=1")
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}
