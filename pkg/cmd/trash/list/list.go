package list

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trashed entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := s.Handler.ListTrash()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				cmd.Println("Trash is empty.")
				return nil
			}

			for _, name := range names {
				cmd.Println(name)
			}

			return nil
		},
	}

	return cmd
}
