// Package history keeps a local log of inserted phrases.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/phrasekit/internal/insert"
)

// Entry is one insertion.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Target    string    `json:"target"`
	Text      string    `json:"text"`
	Error     string    `json:"error,omitempty"`
}

// Log appends entries to a JSON-lines file.
type Log struct {
	Path    string
	Enabled bool
}

// New creates a Log at path; an empty path means DefaultPath.
func New(path string, enabled bool) *Log {
	if path == "" {
		path = DefaultPath()
	}
	return &Log{Path: path, Enabled: enabled}
}

// DefaultPath is ~/.phrasekit/history.jsonl.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".phrasekit", "history.jsonl")
	}
	return filepath.Join(home, ".phrasekit", "history.jsonl")
}

// Append writes a single entry. A disabled log writes nothing.
func (l *Log) Append(_ context.Context, entry Entry) error {
	if !l.Enabled || l.Path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return fmt.Errorf("could not create history directory: %w", err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not encode history entry: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("could not open history %s: %w", l.Path, err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("could not write history %s: %w", l.Path, err)
	}
	return f.Close()
}

// Read returns all entries in the file, oldest first. A missing file has no
// entries; malformed lines are skipped.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Filter returns the entries at or after since whose text contains every
// word of query, matched like a phrase search.
func Filter(entries []Entry, since time.Time, query string) []Entry {
	words := strings.Fields(strings.ToLower(query))
	var result []Entry
	for _, e := range entries {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		text := strings.ToLower(e.Text)
		match := true
		for _, w := range words {
			if !strings.Contains(text, w) {
				match = false
				break
			}
		}
		if match {
			result = append(result, e)
		}
	}
	return result
}

// Clear truncates the history file.
func Clear(path string) error {
	err := os.Truncate(path, 0)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Recorder is an Inserter that logs every insertion made through Next.
// Recording is best-effort: a history write that fails is logged to Logger
// and never fails the insertion.
type Recorder struct {
	Next   insert.Inserter
	Log    *Log
	Target string
	Logger *zap.Logger
}

// Insert implements insert.Inserter.
func (r *Recorder) Insert(ctx context.Context, text string) error {
	err := r.Next.Insert(ctx, text)
	entry := Entry{Timestamp: time.Now(), Target: r.Target, Text: text}
	if err != nil {
		entry.Error = err.Error()
	}
	if logErr := r.Log.Append(ctx, entry); logErr != nil && r.Logger != nil {
		r.Logger.Warn("could not record insertion",
			zap.String("history", r.Log.Path),
			zap.Error(logErr))
	}
	return err
}
