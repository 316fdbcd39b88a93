package nest

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
)

func NewCmdNest(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nest [child] [parent]",
		Short: "Make one tag a subtag of another.",
		Long: heredoc.Doc(`
			Nest child under parent. Resolving parent then also covers every
			path the child covers, recursively through further subtags.

			Example:
			  kf tags nest rust work
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Help()
				return fmt.Errorf("child and parent tag names are required")
			}

			child, err := cmdpkg.ResolveTag(s, args[0])
			if err != nil {
				return err
			}
			parent, err := cmdpkg.ResolveTag(s, args[1])
			if err != nil {
				return err
			}

			if err := s.Tags.AddSubtag(parent, child); err != nil {
				return err
			}

			cmd.Printf("Nested %q under %q\n", child, parent)
			return nil
		},
	}

	return cmd
}

func NewCmdUnnest(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unnest [child] [parent]",
		Short: "Detach a subtag from its parent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Help()
				return fmt.Errorf("child and parent tag names are required")
			}

			child, err := cmdpkg.ResolveTag(s, args[0])
			if err != nil {
				return err
			}
			parent, err := cmdpkg.ResolveTag(s, args[1])
			if err != nil {
				return err
			}

			if err := s.Tags.RemoveSubtag(parent, child); err != nil {
				return err
			}

			cmd.Printf("Detached %q from %q\n", child, parent)
			return nil
		},
	}

	return cmd
}
