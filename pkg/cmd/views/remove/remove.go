package remove

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Delete a saved view.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("view name argument is required")
			}
			name := strings.TrimSpace(args[0])

			if err := s.Config.RemoveView(name); err != nil {
				return err
			}

			cmd.Printf("Removed view %q\n", name)
			return nil
		},
	}

	return cmd
}
