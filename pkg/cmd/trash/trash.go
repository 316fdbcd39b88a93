package trash

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	trashlist "github.com/Paintersrp/kf/pkg/cmd/trash/list"
	trashrestore "github.com/Paintersrp/kf/pkg/cmd/trash/restore"
)

func NewCmdTrash(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash [path]",
		Short: "Move a path to the trash, or manage what is there.",
		Args:  cobra.ArbitraryArgs,
		Long: heredoc.Doc(`
			Move a file or directory into the trash instead of deleting it.
			Colliding names get a numeric suffix. The browser does the same
			with ctrl+x.

			Examples:
			  kf trash ./scratch.txt
			  kf trash list
			  kf trash restore scratch.txt
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %q: %w", args[0], err)
			}

			landed, err := s.Handler.Trash(abs)
			if err != nil {
				return err
			}

			cmd.Printf("Trashed as %s\n", filepath.Base(landed))
			return nil
		},
	}

	cmd.AddCommand(
		trashlist.NewCmdList(s),
		trashrestore.NewCmdRestore(s),
	)

	return cmd
}
