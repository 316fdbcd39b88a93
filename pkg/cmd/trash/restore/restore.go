package restore

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdRestore(s *state.State) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "restore [name]",
		Short: "Move a trashed entry back out.",
		Long: heredoc.Doc(`
			Restore an entry by the name "kf trash list" shows. Without --to,
			the entry lands in the working directory.

			Example:
			  kf trash restore scratch.txt --to ~/projects
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("trash entry name is required")
			}

			restored, err := s.Handler.Restore(args[0], dest)
			if err != nil {
				return err
			}

			cmd.Printf("Restored %s\n", restored)
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "to", "", "Directory to restore into.")

	return cmd
}
