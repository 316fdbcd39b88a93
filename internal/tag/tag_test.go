package tag

import (
	"path/filepath"
	"testing"
)

func TestParseIDNormalizesToKebabCase(t *testing.T) {
	cases := []struct {
		raw  string
		want ID
	}{
		{"test tagYeah", "test-tag-yeah"},
		{"Projects", "projects"},
		{"my__weird   name", "my-weird-name"},
		{"--rust--", "rust"},
		{"Notes2024", "notes2024"},
		{"camelCaseTag", "camel-case-tag"},
	}

	for _, tc := range cases {
		got, err := ParseID(tc.raw)
		if err != nil {
			t.Fatalf("ParseID(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseID(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseIDRejectsEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "---", "!!!"} {
		if _, err := ParseID(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestMakeUniqueSuffixes(t *testing.T) {
	taken := map[ID]bool{"new-tag": true, "new-tag-2": true}
	isTaken := func(id ID) bool { return taken[id] }

	if got := MakeUnique("new-tag", isTaken); got != "new-tag-3" {
		t.Fatalf("expected new-tag-3, got %q", got)
	}
	if got := MakeUnique("fresh", isTaken); got != "fresh" {
		t.Fatalf("expected untaken name to pass through, got %q", got)
	}
}

func TestEntryCoversRecursiveDescendants(t *testing.T) {
	dir := Entry{Path: filepath.Join("/", "home", "projects"), Recursive: true}

	if !dir.Covers(filepath.Join("/", "home", "projects")) {
		t.Fatalf("expected recursive entry to cover itself")
	}
	if !dir.Covers(filepath.Join("/", "home", "projects", "kfiles", "src", "main.rs")) {
		t.Fatalf("expected recursive entry to cover descendants")
	}
	if dir.Covers(filepath.Join("/", "home", "projectsx")) {
		t.Fatalf("expected sibling with shared prefix to be outside coverage")
	}

	file := Entry{Path: filepath.Join("/", "home", "todo.txt")}
	if !file.Covers(filepath.Join("/", "home", "todo.txt")) {
		t.Fatalf("expected file entry to cover itself")
	}
	if file.Covers(filepath.Join("/", "home", "todo.txt.bak")) {
		t.Fatalf("expected file entry to cover nothing else")
	}
}

func TestEntriesAddUpgradesRecursiveFlag(t *testing.T) {
	var es Entries
	path := filepath.Join("/", "data")

	if !es.Add(Entry{Path: path}) {
		t.Fatalf("expected first add to change the set")
	}
	if es.Add(Entry{Path: path}) {
		t.Fatalf("expected duplicate add to be a no-op")
	}
	if !es.Add(Entry{Path: path, Recursive: true}) {
		t.Fatalf("expected recursive upgrade to change the set")
	}
	if len(es) != 1 || !es[0].Recursive {
		t.Fatalf("expected single recursive entry, got %+v", es)
	}
}

func TestEntriesRemove(t *testing.T) {
	path := filepath.Join("/", "data", "file.txt")
	es := Entries{{Path: path}}

	if !es.Remove(path) {
		t.Fatalf("expected removal of existing entry")
	}
	if es.Remove(path) {
		t.Fatalf("expected second removal to be a no-op")
	}
	if len(es) != 0 {
		t.Fatalf("expected empty set, got %+v", es)
	}
}

func TestEntriesTrimDropsSubsumedSeeds(t *testing.T) {
	root := filepath.Join("/", "projects")
	es := Entries{
		{Path: root, Recursive: true},
		{Path: filepath.Join(root, "kfiles"), Recursive: true},
		{Path: filepath.Join(root, "kfiles", "README.md")},
		{Path: filepath.Join("/", "docs", "notes.txt")},
	}

	trimmed := es.Trim()
	if len(trimmed) != 2 {
		t.Fatalf("expected 2 seeds after trim, got %+v", trimmed)
	}
	if trimmed[0].Path != root || trimmed[1].Path != filepath.Join("/", "docs", "notes.txt") {
		t.Fatalf("unexpected trim result: %+v", trimmed)
	}
}
