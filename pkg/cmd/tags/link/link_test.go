package link

import (
	"bytes"
	"io"
	"path/filepath"
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

	return &state.State{Tags: store}
}

func TestLinkRequiresPathAndTag(t *testing.T) {
	cmd := NewCmdLink(newTestState(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{"only-a-path"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no tag name is provided")
	}
}

func TestLinkNormalizesAndTagsPath(t *testing.T) {
	s := newTestState(t)
	target := filepath.Join(t.TempDir(), "notes.txt")

	cmd := NewCmdLink(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{target, "Project Files"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	names := s.Tags.TagsFor(target)
	if len(names) != 1 || names[0] != "project-files" {
		t.Fatalf("expected kebab-cased tag on path, got %v", names)
	}
}

func TestUnlinkSuggestsOnUnknownTag(t *testing.T) {
	s := newTestState(t)
	target := filepath.Join(t.TempDir(), "notes.txt")
	if err := s.Tags.Tag(target, "work", false); err != nil {
		t.Fatalf("Tag: %v", err)
	}

	cmd := NewCmdUnlink(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{target, "wrk"})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected an error for an unknown tag")
	}
}
