package clear

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdClear(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the visit history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Recents.Clear(); err != nil {
				return err
			}

			cmd.Println("Cleared recent history.")
			return nil
		},
	}

	return cmd
}
