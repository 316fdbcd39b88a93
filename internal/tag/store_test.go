package tag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func mustStore(t *testing.T, dir string) *Store {
	t.Helper()

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore(%q): %v", dir, err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func mustTag(t *testing.T, s *Store, path string, name ID, recursive bool) {
	t.Helper()

	if err := s.Tag(path, name, recursive); err != nil {
		t.Fatalf("Tag(%q, %q): %v", path, name, err)
	}
}

func TestStoreTagPersistsBeforeReturn(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "notes.txt")

	s := mustStore(t, dir)
	mustTag(t, s, target, "work", false)

	if _, err := os.Stat(filepath.Join(dir, "work.yaml")); err != nil {
		t.Fatalf("expected tag file on disk after Tag returned: %v", err)
	}

	fresh := mustStore(t, dir)
	got, ok := fresh.Get("work")
	if !ok {
		t.Fatalf("expected fresh store to load the tag")
	}
	if len(got.Entries) != 1 || got.Entries[0].Path != target {
		t.Fatalf("unexpected entries after reload: %+v", got.Entries)
	}
}

func TestStoreTagSkipsSaveWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "notes.txt")

	s := mustStore(t, dir)
	mustTag(t, s, target, "work", false)

	// Removing the file out from under the store exposes whether a no-op
	// Tag call rewrites it.
	if err := os.Remove(filepath.Join(dir, "work.yaml")); err != nil {
		t.Fatalf("removing tag file: %v", err)
	}

	mustTag(t, s, target, "work", false)
	if _, err := os.Stat(filepath.Join(dir, "work.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no-op Tag to skip the save, stat err = %v", err)
	}

	// Upgrading the entry to recursive is a real change and must persist.
	mustTag(t, s, target, "work", true)
	if _, err := os.Stat(filepath.Join(dir, "work.yaml")); err != nil {
		t.Fatalf("expected changed Tag to save: %v", err)
	}
}

func TestStoreUntag(t *testing.T) {
	dir := t.TempDir()
	content := t.TempDir()
	keep := filepath.Join(content, "keep.txt")
	drop := filepath.Join(content, "drop.txt")

	s := mustStore(t, dir)
	mustTag(t, s, keep, "work", false)
	mustTag(t, s, drop, "work", false)

	if err := s.Untag(drop, "work"); err != nil {
		t.Fatalf("Untag: %v", err)
	}
	if err := s.Untag(drop, "work"); err != nil {
		t.Fatalf("expected repeated Untag to be a no-op, got %v", err)
	}
	if err := s.Untag(drop, "absent"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound for unknown tag, got %v", err)
	}

	fresh := mustStore(t, dir)
	got, ok := fresh.Get("work")
	if !ok || len(got.Entries) != 1 || got.Entries[0].Path != keep {
		t.Fatalf("unexpected state after untag: %+v", got.Entries)
	}
}

func TestStoreResolveRecursiveCoversFutureDescendants(t *testing.T) {
	root := t.TempDir()
	s := mustStore(t, t.TempDir())
	mustTag(t, s, root, "projects", true)

	pred, seeds, err := s.Resolve([]ID{"projects"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// The path below was never created nor tagged; recursive coverage is a
	// property of the prefix, not of an enumeration at tag time.
	future := filepath.Join(root, "kfiles", "src", "main.rs")
	if !pred(future) {
		t.Fatalf("expected recursive entry to cover future descendant %q", future)
	}
	if pred(filepath.Join(filepath.Dir(root), "elsewhere.txt")) {
		t.Fatalf("expected paths outside the entry to stay uncovered")
	}
	if len(seeds) != 1 || seeds[0].Path != root || !seeds[0].Recursive {
		t.Fatalf("unexpected seeds: %+v", seeds)
	}
}

func TestStoreResolveIntersection(t *testing.T) {
	content := t.TempDir()
	inBoth := filepath.Join(content, "src", "main.rs")
	codeOnly := filepath.Join(content, "src", "lib.go")
	rustOnly := filepath.Join(t.TempDir(), "other.rs")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, content, "code", true)
	mustTag(t, s, inBoth, "rust", false)
	mustTag(t, s, rustOnly, "rust", false)

	pred, _, err := s.Resolve([]ID{"code", "rust"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !pred(inBoth) {
		t.Fatalf("expected %q to satisfy both tags", inBoth)
	}
	if pred(codeOnly) {
		t.Fatalf("expected %q to fail the rust constraint", codeOnly)
	}
	if pred(rustOnly) {
		t.Fatalf("expected %q to fail the code constraint", rustOnly)
	}
}

func TestStoreResolveDisjointTagsMatchNothing(t *testing.T) {
	a := filepath.Join(t.TempDir(), "a.txt")
	b := filepath.Join(t.TempDir(), "b.txt")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, a, "alpha", false)
	mustTag(t, s, b, "beta", false)

	pred, _, err := s.Resolve([]ID{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, path := range []string{a, b} {
		if pred(path) {
			t.Fatalf("expected empty intersection, but %q matched", path)
		}
	}
}

func TestStoreResolveSnapshotSurvivesMutation(t *testing.T) {
	target := filepath.Join(t.TempDir(), "pinned.txt")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, target, "work", false)

	pred, _, err := s.Resolve([]ID{"work"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := s.Untag(target, "work"); err != nil {
		t.Fatalf("Untag: %v", err)
	}

	if !pred(target) {
		t.Fatalf("expected in-flight predicate to keep its snapshot after Untag")
	}
}

func TestStoreResolveSeedsFromSmallestClosure(t *testing.T) {
	bigRoot := t.TempDir()
	small := filepath.Join(bigRoot, "exact.txt")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, bigRoot, "big", true)
	mustTag(t, s, filepath.Join(bigRoot, "nested"), "big", true)
	mustTag(t, s, filepath.Join(bigRoot, "loose.txt"), "big", false)
	mustTag(t, s, small, "small", false)

	_, seeds, err := s.Resolve([]ID{"big", "small"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(seeds) != 1 || seeds[0].Path != small {
		t.Fatalf("expected the single-entry closure to seed traversal, got %+v", seeds)
	}

	// Alone, the big tag trims entries subsumed by its recursive root.
	_, seeds, err = s.Resolve([]ID{"big"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(seeds) != 1 || seeds[0].Path != bigRoot {
		t.Fatalf("expected subsumed entries to be trimmed from seeds, got %+v", seeds)
	}
}

func TestStoreResolveUnknownTag(t *testing.T) {
	s := mustStore(t, t.TempDir())

	if _, _, err := s.Resolve([]ID{"ghost"}); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestStoreResolveEmptyScopeMatchesEverything(t *testing.T) {
	s := mustStore(t, t.TempDir())

	pred, seeds, err := s.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if seeds != nil {
		t.Fatalf("expected no seeds for an empty scope, got %+v", seeds)
	}
	if !pred(filepath.Join("/", "anything", "at", "all")) {
		t.Fatalf("expected empty scope to match everything")
	}
}

func TestStoreSubtagClosure(t *testing.T) {
	parentPath := filepath.Join(t.TempDir(), "parent.txt")
	childPath := filepath.Join(t.TempDir(), "child.txt")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, parentPath, "parent", false)
	mustTag(t, s, childPath, "child", false)

	if err := s.AddSubtag("parent", "child"); err != nil {
		t.Fatalf("AddSubtag: %v", err)
	}
	if err := s.AddSubtag("parent", "child"); err != nil {
		t.Fatalf("expected duplicate link to be a no-op, got %v", err)
	}
	if err := s.AddSubtag("parent", "parent"); err == nil {
		t.Fatalf("expected self-link to be rejected")
	}
	if err := s.AddSubtag("parent", "ghost"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound for missing child, got %v", err)
	}

	pred, _, err := s.Resolve([]ID{"parent"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !pred(childPath) {
		t.Fatalf("expected parent to cover child entries via subtag")
	}
	if !pred(parentPath) {
		t.Fatalf("expected parent to keep covering its own entries")
	}

	if err := s.RemoveSubtag("parent", "child"); err != nil {
		t.Fatalf("RemoveSubtag: %v", err)
	}
	pred, _, err = s.Resolve([]ID{"parent"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pred(childPath) {
		t.Fatalf("expected unlinked child entries to drop out of coverage")
	}
}

func TestStoreSubtagCycleTerminates(t *testing.T) {
	aPath := filepath.Join(t.TempDir(), "a.txt")
	bPath := filepath.Join(t.TempDir(), "b.txt")

	s := mustStore(t, t.TempDir())
	mustTag(t, s, aPath, "a", false)
	mustTag(t, s, bPath, "b", false)

	if err := s.AddSubtag("a", "b"); err != nil {
		t.Fatalf("AddSubtag a->b: %v", err)
	}
	if err := s.AddSubtag("b", "a"); err != nil {
		t.Fatalf("AddSubtag b->a: %v", err)
	}

	pred, _, err := s.Resolve([]ID{"a"})
	if err != nil {
		t.Fatalf("Resolve with cyclic subtags: %v", err)
	}
	if !pred(aPath) || !pred(bPath) {
		t.Fatalf("expected cyclic closure to cover both entry sets")
	}

	got := s.TagsFor(aPath)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected both tags to cover %q, got %v", aPath, got)
	}
}

func TestStoreRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "notes.txt")

	s := mustStore(t, dir)
	mustTag(t, s, target, "old", false)
	mustTag(t, s, target, "taken", false)

	if err := s.Rename("old", "taken"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
	if err := s.Rename("ghost", "anything"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}

	if err := s.Rename("old", "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected old tag file to be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "new.yaml")); err != nil {
		t.Fatalf("expected new tag file to exist: %v", err)
	}

	got, ok := s.Get("new")
	if !ok || len(got.Entries) != 1 || got.Entries[0].Path != target {
		t.Fatalf("expected entries to survive the rename, got %+v", got.Entries)
	}
}

func TestStoreCreate(t *testing.T) {
	dir := t.TempDir()

	s := mustStore(t, dir)
	if err := s.Create("empty"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create("empty"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists on second create, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.yaml")); err != nil {
		t.Fatalf("expected tag file on disk after Create returned: %v", err)
	}

	fresh := mustStore(t, dir)
	got, ok := fresh.Get("empty")
	if !ok {
		t.Fatalf("expected fresh store to load the tag")
	}
	if len(got.Entries) != 0 {
		t.Fatalf("expected no entries, got %+v", got.Entries)
	}
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()

	s := mustStore(t, dir)
	mustTag(t, s, filepath.Join(t.TempDir(), "x.txt"), "doomed", false)

	if err := s.Delete("doomed"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("doomed"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound on second delete, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doomed.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected tag file to be removed, stat err = %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}
}

func TestStoreLoadPrunesDanglingSubtags(t *testing.T) {
	dir := t.TempDir()

	seed := mustStore(t, dir)
	mustTag(t, seed, filepath.Join(t.TempDir(), "a.txt"), "parent", false)
	mustTag(t, seed, filepath.Join(t.TempDir(), "b.txt"), "child", false)
	if err := seed.AddSubtag("parent", "child"); err != nil {
		t.Fatalf("AddSubtag: %v", err)
	}
	if err := seed.Delete("child"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	seed.Close()

	s := mustStore(t, dir)
	parent, ok := s.Get("parent")
	if !ok {
		t.Fatalf("expected parent to survive reload")
	}
	if len(parent.Subtags) != 0 {
		t.Fatalf("expected dangling subtag to be pruned on load, got %v", parent.Subtags)
	}
}

func TestStoreLoadSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	seed := mustStore(t, dir)
	mustTag(t, seed, filepath.Join(t.TempDir(), "good.txt"), "good", false)
	seed.Close()

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("just a scalar, not a mapping"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.yaml"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("writing hidden file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("writing stray file: %v", err)
	}

	s := mustStore(t, dir)
	if got := s.List(); len(got) != 1 || got[0] != "good" {
		t.Fatalf("expected only the valid tag to load, got %v", got)
	}

	warnings := s.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "bad.yaml") {
		t.Fatalf("expected one warning naming bad.yaml, got %v", warnings)
	}
}

func TestStoreConcurrentTagging(t *testing.T) {
	dir := t.TempDir()
	content := t.TempDir()

	s := mustStore(t, dir)

	const workers = 4
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				path := filepath.Join(content, fmt.Sprintf("file-%d-%d.txt", w, i))
				if err := s.Tag(path, "bulk", false); err != nil {
					t.Errorf("Tag(%q): %v", path, err)
					return
				}
				s.TagsFor(path)
				s.List()
			}
		}(w)
	}
	wg.Wait()

	got, ok := s.Get("bulk")
	if !ok || len(got.Entries) != workers*perWorker {
		t.Fatalf("expected %d entries, got %d", workers*perWorker, len(got.Entries))
	}

	fresh := mustStore(t, dir)
	reloaded, ok := fresh.Get("bulk")
	if !ok || len(reloaded.Entries) != workers*perWorker {
		t.Fatalf("expected reloaded store to hold %d entries, got %d", workers*perWorker, len(reloaded.Entries))
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading tags dir: %v", err)
	}
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".tmp") {
			t.Fatalf("leftover temp file %q after concurrent saves", f.Name())
		}
	}
}

func TestStoreMakeUnique(t *testing.T) {
	s := mustStore(t, t.TempDir())
	mustTag(t, s, filepath.Join(t.TempDir(), "a.txt"), "new-tag", false)
	mustTag(t, s, filepath.Join(t.TempDir(), "b.txt"), "new-tag-2", false)

	if got := s.MakeUnique("new-tag"); got != "new-tag-3" {
		t.Fatalf("expected new-tag-3, got %q", got)
	}
}

func TestStoreSuggest(t *testing.T) {
	s := mustStore(t, t.TempDir())
	mustTag(t, s, filepath.Join(t.TempDir(), "a.txt"), "work-notes", false)
	mustTag(t, s, filepath.Join(t.TempDir(), "b.txt"), "projects", false)

	got := s.Suggest("work", 5)
	if len(got) == 0 || got[0] != "work-notes" {
		t.Fatalf("expected work-notes to rank first, got %v", got)
	}

	if got := s.Suggest("zzzz", 5); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestStoreCloseRejectsOperations(t *testing.T) {
	s := mustStore(t, t.TempDir())

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected repeated Close to be a no-op, got %v", err)
	}

	if err := s.Tag(filepath.Join(t.TempDir(), "x.txt"), "any", false); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Tag, got %v", err)
	}
	if err := s.Reload(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Reload, got %v", err)
	}
	if _, _, err := s.Resolve([]ID{"any"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Resolve, got %v", err)
	}
}
