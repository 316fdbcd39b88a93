package list

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List favorite paths.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(s.Config.Favorites) == 0 {
				cmd.Println("No favorites yet. Add one with: kf fav add <path>")
				return nil
			}

			for _, fav := range s.Config.Favorites {
				if _, err := os.Stat(fav); err != nil {
					cmd.Printf("%s (missing)\n", fav)
					continue
				}
				cmd.Println(fav)
			}

			return nil
		},
	}

	return cmd
}
