package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/config"
	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func newScopeState(t *testing.T) *state.State {
	t.Helper()

	store, err := tag.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &state.State{
		Config: &config.Config{},
		Tags:   store,
	}
}

func scopeCommand(t *testing.T, flagArgs ...string) *cobra.Command {
	t.Helper()

	c := &cobra.Command{Use: "search"}
	flags.AddScope(c)
	for i := 0; i+1 < len(flagArgs); i += 2 {
		if err := c.Flags().Set(flagArgs[i], flagArgs[i+1]); err != nil {
			t.Fatalf("setting --%s: %v", flagArgs[i], err)
		}
	}

	return c
}

func TestResolveScope(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	s := newScopeState(t)
	if err := s.Tags.Create("work"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cwd, err := filepath.Abs(".")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}

	tests := map[string]struct {
		command  *cobra.Command
		rootArg  string
		defRoot  string
		wantRoot string
		wantTags []tag.ID
		wantErr  string
	}{
		"explicit root flag": {
			command:  scopeCommand(t, "root", root),
			wantRoot: root,
		},
		"root argument wins over flag": {
			command:  scopeCommand(t, "root", root),
			rootArg:  other,
			wantRoot: other,
		},
		"default root from config": {
			command:  scopeCommand(t),
			defRoot:  root,
			wantRoot: root,
		},
		"falls back to working directory": {
			command:  scopeCommand(t),
			wantRoot: cwd,
		},
		"tag scope": {
			command:  scopeCommand(t, "tag", "work"),
			wantTags: []tag.ID{"work"},
		},
		"tags and root conflict": {
			command: scopeCommand(t, "tag", "work", "root", root),
			wantErr: "cannot be combined",
		},
		"unknown tag suggests close matches": {
			command: scopeCommand(t, "tag", "wrk"),
			wantErr: "work",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s.Config.DefaultRoot = tc.defRoot

			got, err := ResolveScope(tc.command, s, tc.rootArg)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveScope returned error: %v", err)
			}

			if got.Root != tc.wantRoot {
				t.Fatalf("expected root %q, got %q", tc.wantRoot, got.Root)
			}
			if len(got.Tags) != len(tc.wantTags) {
				t.Fatalf("expected tags %v, got %v", tc.wantTags, got.Tags)
			}
			for i := range tc.wantTags {
				if got.Tags[i] != tc.wantTags[i] {
					t.Fatalf("expected tags %v, got %v", tc.wantTags, got.Tags)
				}
			}
		})
	}
}

func TestResolveTagRejectsEmptyName(t *testing.T) {
	s := newScopeState(t)

	if _, err := ResolveTag(s, "!!!"); err == nil {
		t.Fatalf("expected an error for a name with no usable characters")
	}
}
