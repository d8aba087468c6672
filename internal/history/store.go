package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the history file inside the state directory.
const FileName = "history.yml"

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomePublished Outcome = "published"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeDryRun    Outcome = "dry-run"
	OutcomeFailed    Outcome = "failed"
)

// Entry is a single recorded run.
type Entry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Release   string    `yaml:"release"`
	// Date is the target merge date (YYYY-MM-DD).
	Date     string  `yaml:"date"`
	Pulls    int     `yaml:"pulls"`
	Outcome  Outcome `yaml:"outcome"`
	Duration string  `yaml:"duration"`
	// Detail holds the skip reason or error message.
	Detail     string `yaml:"detail,omitempty"`
	ReleaseURL string `yaml:"release_url,omitempty"`
}

// File is the on-disk layout.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// Path returns the history file location for stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// LoadHistory reads the history file. A missing file yields an empty history.
func LoadHistory(stateDir string) (*File, error) {
	data, err := os.ReadFile(Path(stateDir))
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var history File
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", Path(stateDir), err)
	}
	return &history, nil
}

// SaveHistory writes the history file atomically via a temp file and rename.
func SaveHistory(stateDir string, history *File) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(stateDir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing history: %w", err)
	}
	return os.Rename(tmp.Name(), Path(stateDir))
}

// Last returns up to n most recent entries, newest first. n <= 0 returns all.
func (h *File) Last(n int) []Entry {
	count := len(h.Entries)
	if n > 0 && n < count {
		count = n
	}
	out := make([]Entry, 0, count)
	for i := len(h.Entries) - 1; i >= 0 && len(out) < count; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}
