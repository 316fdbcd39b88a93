package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
)

func NewCmdAdd(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]...",
		Short: "Create empty tags.",
		Long: "Names are normalized to kebab-case, so \"Project Files\" " +
			"becomes project-files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("at least one tag name is required")
			}

			for _, raw := range args {
				id, err := tag.ParseID(raw)
				if err != nil {
					return err
				}
				if err := s.Tags.Create(id); err != nil {
					return err
				}
				cmd.Printf("Created tag %q\n", id)
			}

			return nil
		},
	}

	return cmd
}
