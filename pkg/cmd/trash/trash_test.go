package trash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/kf/internal/handler"
	"github.com/Paintersrp/kf/internal/state"
)

func TestTrashCommandRequiresArgument(t *testing.T) {
	s := &state.State{}
	cmd := NewCmdTrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no path argument is provided")
	}
}

func TestTrashCommandMovesFile(t *testing.T) {
	trashDir := t.TempDir()
	s := &state.State{Handler: handler.NewFileHandler(trashDir)}

	target := filepath.Join(t.TempDir(), "scratch.txt")
	if err := os.WriteFile(target, []byte("content\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cmd := NewCmdTrash(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cmd.SetArgs([]string{target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, stat err %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "scratch.txt")); err != nil {
		t.Fatalf("expected entry in trash: %v", err)
	}
}
