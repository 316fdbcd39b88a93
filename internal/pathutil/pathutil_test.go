package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizePathHandlesWindowsSeparators(t *testing.T) {
	mixed := strings.Join([]string{"home", "user", "files"}, "\\")
	want := filepath.Join("home", "user", "files")

	if got := NormalizePath(mixed); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := NormalizePath(""); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
}

func TestCoversMatchesSelfAndDescendants(t *testing.T) {
	root := filepath.Join("/", "home", "user", "projects")

	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join("/", "home", "user", "projects"), true},
		{filepath.Join("/", "home", "user", "projects", "kfiles", "src", "main.rs"), true},
		{filepath.Join("/", "home", "user", "projectsbackup"), false},
		{filepath.Join("/", "home", "user"), false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Covers(root, tc.path); got != tc.want {
			t.Fatalf("Covers(%q, %q) = %v, want %v", root, tc.path, got, tc.want)
		}
	}
}

func TestCanonicalResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", target, err)
	}

	link := filepath.Join(dir, "alias")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if got, want := Canonical(link), Canonical(target); got != want {
		t.Fatalf("expected link to resolve to %q, got %q", want, got)
	}
}

func TestCanonicalFallsBackOnDanglingLink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if got := Canonical(link); got != NormalizePath(link) {
		t.Fatalf("expected normalized input for dangling link, got %q", got)
	}
}

func TestIsHiddenName(t *testing.T) {
	if !IsHiddenName(".git") {
		t.Fatalf("expected .git to be hidden")
	}
	if IsHiddenName("src") || IsHiddenName(".") || IsHiddenName("..") {
		t.Fatalf("expected src, . and .. to be visible")
	}
}
