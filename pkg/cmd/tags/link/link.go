package link

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
)

func NewCmdLink(s *state.State) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "link [path] [name]...",
		Short: "Tag a path.",
		Long: heredoc.Doc(`
			Add a path to one or more tags. Missing tags are created on first
			use. With --recursive on a directory, the tag covers everything
			beneath it, including files created later.

			Examples:
			  kf tags link main.rs rust work
			  kf tags link --recursive ~/projects/kf kf-dev
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Help()
				return fmt.Errorf("a path and at least one tag name are required")
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %q: %w", args[0], err)
			}

			for _, raw := range args[1:] {
				id, err := tag.ParseID(raw)
				if err != nil {
					return err
				}
				if err := s.Tags.Tag(abs, id, recursive); err != nil {
					return err
				}
				cmd.Printf("Tagged %s with %q\n", abs, id)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(
		&recursive,
		"recursive",
		"R",
		false,
		"Cover the directory and everything ever placed beneath it.",
	)

	return cmd
}

func NewCmdUnlink(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink [path] [name]...",
		Short: "Remove a path from tags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Help()
				return fmt.Errorf("a path and at least one tag name are required")
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %q: %w", args[0], err)
			}

			for _, raw := range args[1:] {
				id, err := cmdpkg.ResolveTag(s, raw)
				if err != nil {
					return err
				}
				if err := s.Tags.Untag(abs, id); err != nil {
					return err
				}
				cmd.Printf("Untagged %s from %q\n", abs, id)
			}

			return nil
		},
	}

	return cmd
}
