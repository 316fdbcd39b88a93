package remove

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()

	store, err := tag.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Tag(filepath.Join(t.TempDir(), "x.txt"), "doomed", false); err != nil {
		t.Fatalf("Tag: %v", err)
	}

	return &state.State{Tags: store}
}

func TestRemoveDeletesWithYesFlag(t *testing.T) {
	s := newTestState(t)

	cmd := NewCmdRemove(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{"--yes", "doomed"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, ok := s.Tags.Get("doomed"); ok {
		t.Fatalf("expected tag to be deleted")
	}
}

func TestRemoveAbortsWhenDeclined(t *testing.T) {
	old := confirm
	confirm = func(tag.ID) (bool, error) { return false, nil }
	t.Cleanup(func() { confirm = old })

	s := newTestState(t)

	cmd := NewCmdRemove(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{"doomed"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, ok := s.Tags.Get("doomed"); !ok {
		t.Fatalf("expected declined removal to keep the tag")
	}
	if !strings.Contains(out.String(), "Aborted") {
		t.Fatalf("expected abort notice, got %q", out.String())
	}
}
