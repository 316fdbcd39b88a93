package remove

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
)

// confirm is swapped out in tests; the prompt needs a terminal.
var confirm = func(name tag.ID) (bool, error) {
	sel := selection.New(
		fmt.Sprintf("Delete tag %q? Tagged files stay on disk.", name),
		[]string{"no", "yes"},
	)
	sel.Filter = nil

	choice, err := sel.RunPrompt()
	if err != nil {
		return false, err
	}

	return choice == "yes", nil
}

func NewCmdRemove(s *state.State) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Delete a tag from the index.",
		Long: heredoc.Doc(`
			Delete a tag and its index file. The files the tag pointed at are
			not touched.

			Example:
			  kf tags rm old-project
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("tag name argument is required")
			}

			id, err := cmdpkg.ResolveTag(s, args[0])
			if err != nil {
				return err
			}

			if !skipConfirm {
				ok, err := confirm(id)
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Aborted.")
					return nil
				}
			}

			if err := s.Tags.Delete(id); err != nil {
				return err
			}

			cmd.Printf("Deleted tag %q\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt.")

	return cmd
}
