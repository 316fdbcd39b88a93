package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kf/internal/pathutil"
)

// Entry is one visited directory with its last visit time.
type Entry struct {
	Path      string    `yaml:"path"`
	VisitedAt time.Time `yaml:"visited_at"`
}

type fileLayout struct {
	Entries []Entry `yaml:"entries"`
}

// List is the persisted visit history, most recent first. A max of zero or
// less means unbounded.
type List struct {
	path    string
	max     int
	entries []Entry

	now func() time.Time
}

// NewList loads the history at path. A missing or unreadable file starts an
// empty history; visit data is advisory and never blocks startup.
func NewList(path string, max int) *List {
	l := &List{path: path, max: max, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}

	var layout fileLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return l
	}
	l.entries = layout.Entries

	return l
}

// Visit moves path to the front, stamping it with the current time, and
// persists the result.
func (l *List) Visit(path string) error {
	abs, err := pathutil.Absolute(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	updated := make([]Entry, 0, len(l.entries)+1)
	updated = append(updated, Entry{Path: abs, VisitedAt: l.now()})
	for _, e := range l.entries {
		if e.Path == abs {
			continue
		}
		updated = append(updated, e)
	}

	if l.max > 0 && len(updated) > l.max {
		updated = updated[:l.max]
	}
	l.entries = updated

	return l.save()
}

// All returns the history, most recent first.
func (l *List) All() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Paths returns just the directory paths, most recent first.
func (l *List) Paths() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Path
	}
	return out
}

// Since returns entries visited at or after the cutoff.
func (l *List) Since(cutoff time.Time) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if !e.VisitedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Clear empties the history and persists the result.
func (l *List) Clear() error {
	l.entries = nil
	return l.save()
}

// save writes the history with an atomic replace so a crash mid-write keeps
// the previous file intact.
func (l *List) save() error {
	data, err := yaml.Marshal(fileLayout{Entries: l.entries})
	if err != nil {
		return fmt.Errorf("encoding recent list: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(l.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for recent list: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing recent list: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("syncing recent list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing recent list: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing recent list: %w", err)
	}

	return nil
}
