package move

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
)

func NewCmdMove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mv [old] [new]",
		Aliases: []string{"move", "rename"},
		Short:   "Rename a tag.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Help()
				return fmt.Errorf("old and new tag names are required")
			}

			old, err := cmdpkg.ResolveTag(s, args[0])
			if err != nil {
				return err
			}
			newID, err := tag.ParseID(args[1])
			if err != nil {
				return err
			}

			if err := s.Tags.Rename(old, newID); err != nil {
				return err
			}

			cmd.Printf("Renamed tag %q to %q\n", old, newID)
			return nil
		},
	}

	return cmd
}
