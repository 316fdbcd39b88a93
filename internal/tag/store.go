package tag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kf/internal/pathutil"
)

var (
	// ErrClosed signals that the store has been shut down.
	ErrClosed = errors.New("tag store closed")

	// ErrTagNotFound indicates an operation referenced a missing tag.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagExists indicates the target tag name is already taken.
	ErrTagExists = errors.New("tag already exists")
)

// Predicate answers whether a path is covered by a resolved scope. It is
// evaluated lazily per candidate so recursive folder tags never force
// descendant enumeration.
type Predicate func(path string) bool

// Seed is a traversal starting point produced by scope resolution.
type Seed struct {
	Path      string
	Recursive bool
}

// Store is the persistent tag index: one YAML document per tag under a tags
// directory, loaded in full at startup and held process-wide. Mutations are
// exclusive and each rewrites the affected tag file atomically before the
// call returns. Reads take a consistent snapshot, so an in-flight search
// never observes a half-applied mutation.
type Store struct {
	mu       sync.RWMutex
	dir      string
	tags     map[ID]*Tag
	warnings []string
	closed   bool
}

// NewStore opens the tag index rooted at dir, creating the directory when
// missing. Corrupt tag files are skipped and reported via Warnings.
func NewStore(dir string) (*Store, error) {
	normalized := pathutil.NormalizePath(dir)
	if err := os.MkdirAll(normalized, 0o755); err != nil {
		return nil, fmt.Errorf("creating tags directory: %w", err)
	}

	s := &Store{dir: normalized, tags: make(map[ID]*Tag)}
	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload discards the in-memory index and reads every tag file again. Used
// by the watcher when tag files change on disk; last writer wins.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.loadLocked()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading tags directory: %w", err)
	}

	tags := make(map[ID]*Tag, len(entries))
	var warnings []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") || pathutil.IsHiddenName(name) {
			continue
		}

		id := ID(strings.TrimSuffix(name, ".yaml"))
		if id == "" {
			continue
		}

		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("tag file %s: %v", name, err))
			continue
		}

		t := &Tag{Name: id}
		if err := yaml.Unmarshal(data, t); err != nil {
			warnings = append(warnings, fmt.Sprintf("tag file %s: %v", name, err))
			continue
		}

		for i := range t.Entries {
			t.Entries[i].Path = pathutil.NormalizePath(t.Entries[i].Path)
		}
		tags[id] = t
	}

	// Subtag references to tags that no longer exist are dropped on load,
	// so deletes and renames heal without rewriting every parent.
	for _, t := range tags {
		kept := t.Subtags[:0]
		for _, sub := range t.Subtags {
			if _, ok := tags[sub]; ok {
				kept = append(kept, sub)
			}
		}
		t.Subtags = kept
	}

	s.tags = tags
	s.warnings = warnings
	return nil
}

// Warnings returns load-time problems (corrupt or unreadable tag files).
// The caller is expected to surface them once.
func (s *Store) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.warnings...)
}

// Dir returns the tags directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) tagPath(name ID) string {
	return filepath.Join(s.dir, string(name)+".yaml")
}

// saveLocked writes one tag file with an atomic replace: temp file, fsync,
// rename. A crash mid-write leaves the previous file intact.
func (s *Store) saveLocked(t *Tag) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding tag %s: %w", t.Name, err)
	}

	target := s.tagPath(t.Name)
	tmp, err := os.CreateTemp(s.dir, "."+string(t.Name)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for tag %s: %w", t.Name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing tag %s: %w", t.Name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("syncing tag %s: %w", t.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing tag %s: %w", t.Name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing tag %s: %w", t.Name, err)
	}

	return nil
}

// Create adds an empty tag and persists it.
func (s *Store) Create(name ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, ok := s.tags[name]; ok {
		return fmt.Errorf("creating %s: %w", name, ErrTagExists)
	}

	t := &Tag{Name: name}
	s.tags[name] = t
	return s.saveLocked(t)
}

// Tag applies name to path. Recursive entries cover all current and future
// descendants. The tag is created on first use and the change is persisted
// before the call returns; on persistence failure the in-memory index keeps
// the new state and the error is surfaced to the caller.
func (s *Store) Tag(path string, name ID, recursive bool) error {
	abs, err := pathutil.Absolute(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	t, ok := s.tags[name]
	if !ok {
		t = &Tag{Name: name}
		s.tags[name] = t
	}

	if !t.Entries.Add(Entry{Path: abs, Recursive: recursive}) && ok {
		return nil
	}

	return s.saveLocked(t)
}

// Untag removes path from name. Removing the last entry keeps the empty tag.
func (s *Store) Untag(path string, name ID) error {
	abs, err := pathutil.Absolute(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	t, ok := s.tags[name]
	if !ok {
		return fmt.Errorf("untagging %s: %w", name, ErrTagNotFound)
	}

	if !t.Entries.Remove(abs) {
		return nil
	}

	return s.saveLocked(t)
}

// Rename moves a tag to a new name, replacing its file on disk.
func (s *Store) Rename(old, new ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	t, ok := s.tags[old]
	if !ok {
		return fmt.Errorf("renaming %s: %w", old, ErrTagNotFound)
	}
	if _, taken := s.tags[new]; taken {
		return fmt.Errorf("renaming %s to %s: %w", old, new, ErrTagExists)
	}

	t.Name = new
	if err := s.saveLocked(t); err != nil {
		t.Name = old
		return err
	}

	delete(s.tags, old)
	s.tags[new] = t
	if err := os.Remove(s.tagPath(old)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old tag file %s: %w", old, err)
	}

	return nil
}

// Delete removes the tag and its file.
func (s *Store) Delete(name ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, ok := s.tags[name]; !ok {
		return fmt.Errorf("deleting %s: %w", name, ErrTagNotFound)
	}

	delete(s.tags, name)
	if err := os.Remove(s.tagPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing tag file %s: %w", name, err)
	}

	return nil
}

// AddSubtag links child under parent. Cycles are permitted; resolution is
// cycle-safe.
func (s *Store) AddSubtag(parent, child ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	p, ok := s.tags[parent]
	if !ok {
		return fmt.Errorf("linking under %s: %w", parent, ErrTagNotFound)
	}
	if _, ok := s.tags[child]; !ok {
		return fmt.Errorf("linking %s: %w", child, ErrTagNotFound)
	}
	if parent == child {
		return fmt.Errorf("tag %s cannot be its own subtag", parent)
	}

	for _, existing := range p.Subtags {
		if existing == child {
			return nil
		}
	}

	p.Subtags = append(p.Subtags, child)
	return s.saveLocked(p)
}

// RemoveSubtag unlinks child from parent.
func (s *Store) RemoveSubtag(parent, child ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	p, ok := s.tags[parent]
	if !ok {
		return fmt.Errorf("unlinking under %s: %w", parent, ErrTagNotFound)
	}

	for i, existing := range p.Subtags {
		if existing == child {
			p.Subtags = append(p.Subtags[:i], p.Subtags[i+1:]...)
			return s.saveLocked(p)
		}
	}

	return nil
}

// List returns all tag names, sorted.
func (s *Store) List() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]ID, 0, len(s.tags))
	for name := range s.tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Get returns a copy of the named tag.
func (s *Store) Get(name ID) (Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[name]
	if !ok {
		return Tag{}, false
	}

	return t.clone(), true
}

// Snapshot returns copies of every tag, sorted by name.
func (s *Store) Snapshot() []Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// TagsFor returns the names of every tag covering path, including coverage
// inherited through subtags, sorted.
func (s *Store) TagsFor(path string) []ID {
	normalized := pathutil.NormalizePath(path)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []ID
	for name := range s.tags {
		if s.closureLocked(name).Covers(normalized) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// MakeUnique returns a tag name derived from id that is not yet in use.
func (s *Store) MakeUnique(id ID) ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return MakeUnique(id, func(candidate ID) bool {
		_, taken := s.tags[candidate]
		return taken
	})
}

// Suggest returns up to limit existing tag names ranked by closeness to raw.
// Used to hint at likely intents when a named tag does not exist.
func (s *Store) Suggest(raw string, limit int) []ID {
	names := s.List()
	haystack := make([]string, len(names))
	for i, name := range names {
		haystack[i] = string(name)
	}

	matches := fuzzy.Find(raw, haystack)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]ID, len(matches))
	for i, m := range matches {
		out[i] = ID(m.Str)
	}

	return out
}

// closureLocked unions the entries of name and all transitive subtags,
// memoized against cycles. Callers hold at least a read lock.
func (s *Store) closureLocked(name ID) Entries {
	visited := make(map[ID]struct{})
	var union Entries

	var walk func(ID)
	walk = func(id ID) {
		if _, seen := visited[id]; seen {
			return
		}
		visited[id] = struct{}{}

		t, ok := s.tags[id]
		if !ok {
			return
		}

		union = append(union, t.Entries...)
		for _, sub := range t.Subtags {
			walk(sub)
		}
	}
	walk(name)

	return union
}

// Resolve computes the intersection scope for the named tags: a lazy
// predicate answering coverage for any candidate path, plus deduplicated
// traversal seeds drawn from the smallest participating entry set. The
// predicate closes over a snapshot, so concurrent mutations do not affect an
// in-flight search. An empty name set matches everything.
func (s *Store) Resolve(names []ID) (Predicate, []Seed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, nil, ErrClosed
	}

	if len(names) == 0 {
		return func(string) bool { return true }, nil, nil
	}

	closures := make([]Entries, 0, len(names))
	smallest := -1
	for _, name := range names {
		if _, ok := s.tags[name]; !ok {
			return nil, nil, fmt.Errorf("resolving scope %s: %w", name, ErrTagNotFound)
		}

		closure := s.closureLocked(name).clone()
		closures = append(closures, closure)
		if smallest < 0 || len(closure) < len(closures[smallest]) {
			smallest = len(closures) - 1
		}
	}

	pred := func(path string) bool {
		normalized := pathutil.NormalizePath(path)
		for _, closure := range closures {
			if !closure.Covers(normalized) {
				return false
			}
		}
		return true
	}

	trimmed := closures[smallest].Trim()
	seeds := make([]Seed, 0, len(trimmed))
	for _, e := range trimmed {
		seeds = append(seeds, Seed{Path: e.Path, Recursive: e.Recursive})
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].Path < seeds[j].Path })

	return pred, seeds, nil
}

// Close marks the store unusable. Pending readers finish; later calls get
// ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.tags = nil
	return nil
}
