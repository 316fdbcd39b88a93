package tag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Paintersrp/kf/internal/pathutil"
)

// ErrEmptyID is returned when a raw tag name reduces to nothing.
var ErrEmptyID = errors.New("tag name is empty")

// ID is a normalized tag identifier. IDs are kebab-case, never contain
// whitespace, and are compared byte-wise everywhere they are stored.
type ID string

func (id ID) String() string {
	return string(id)
}

// ParseID normalizes raw user input into an ID: camelCase boundaries and
// runs of non-alphanumeric characters become single hyphens, letters are
// lowered. "test tagYeah" parses to "test-tag-yeah".
func ParseID(raw string) (ID, error) {
	var b strings.Builder

	pendingBreak := false
	var prev rune
	for _, r := range raw {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingBreak = b.Len() > 0
			prev = 0
			continue
		}

		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			pendingBreak = b.Len() > 0
		}

		if pendingBreak {
			b.WriteByte('-')
			pendingBreak = false
		}

		b.WriteRune(unicode.ToLower(r))
		prev = r
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("parsing tag name %q: %w", raw, ErrEmptyID)
	}

	return ID(b.String()), nil
}

// MakeUnique returns the first of id, id-2, id-3, ... for which taken
// reports false.
func MakeUnique(id ID, taken func(ID) bool) ID {
	if !taken(id) {
		return id
	}

	for n := 2; ; n++ {
		candidate := ID(fmt.Sprintf("%s-%d", id, n))
		if !taken(candidate) {
			return candidate
		}
	}
}

// Entry associates a normalized absolute path with a tag. Recursive entries
// cover the path and every descendant; coverage is evaluated lazily as a
// prefix test, never by materializing descendant lists.
type Entry struct {
	Path      string `yaml:"path"`
	Recursive bool   `yaml:"recursive,omitempty"`
}

// Covers reports whether the entry applies to path.
func (e Entry) Covers(path string) bool {
	if e.Path == pathutil.NormalizePath(path) {
		return true
	}

	return e.Recursive && pathutil.Covers(e.Path, path)
}

// Entries is the entry set of a single tag.
type Entries []Entry

// Covers reports whether any entry applies to path.
func (es Entries) Covers(path string) bool {
	normalized := pathutil.NormalizePath(path)
	for _, e := range es {
		if e.Path == normalized || (e.Recursive && pathutil.Covers(e.Path, normalized)) {
			return true
		}
	}

	return false
}

func (es Entries) find(path string) int {
	for i, e := range es {
		if e.Path == path {
			return i
		}
	}

	return -1
}

// Add inserts the entry, replacing an existing entry for the same path when
// the recursive flag differs. It reports whether the set changed.
func (es *Entries) Add(e Entry) bool {
	e.Path = pathutil.NormalizePath(e.Path)
	if e.Path == "" {
		return false
	}

	if i := es.find(e.Path); i >= 0 {
		if (*es)[i].Recursive == e.Recursive {
			return false
		}
		(*es)[i].Recursive = e.Recursive
		return true
	}

	*es = append(*es, e)
	return true
}

// Remove deletes the entry for path and reports whether one was present.
func (es *Entries) Remove(path string) bool {
	normalized := pathutil.NormalizePath(path)
	i := es.find(normalized)
	if i < 0 {
		return false
	}

	*es = append((*es)[:i], (*es)[i+1:]...)
	return true
}

// Trim returns the entries with any entry dropped that is already covered by
// a different recursive entry, preserving order. Used to deduplicate
// traversal seeds.
func (es Entries) Trim() Entries {
	trimmed := make(Entries, 0, len(es))
	for i, e := range es {
		covered := false
		for j, other := range es {
			if i == j || !other.Recursive {
				continue
			}
			if other.Covers(e.Path) && !(e.Recursive && other.Path == e.Path) {
				covered = true
				break
			}
		}
		if !covered {
			trimmed = append(trimmed, e)
		}
	}

	return trimmed
}

// clone returns an independent copy, safe to hand to concurrent readers.
func (es Entries) clone() Entries {
	if es == nil {
		return nil
	}

	out := make(Entries, len(es))
	copy(out, es)
	return out
}

// Tag is a named set of entries plus optional subtags whose entries are
// unioned in during resolution.
type Tag struct {
	Name    ID      `yaml:"-"`
	Entries Entries `yaml:"entries"`
	Subtags []ID    `yaml:"subtags,omitempty"`
}

func (t *Tag) clone() Tag {
	out := Tag{Name: t.Name, Entries: t.Entries.clone()}
	if t.Subtags != nil {
		out.Subtags = append([]ID(nil), t.Subtags...)
	}

	return out
}
