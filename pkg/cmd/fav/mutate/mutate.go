package mutate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

// NewCmdMutate builds the add, rm, and toggle subcommands; they differ only
// in the config call they make.
func NewCmdMutate(s *state.State, verb string) *cobra.Command {
	shorts := map[string]string{
		"add":    "Favorite a path.",
		"rm":     "Unfavorite a path.",
		"toggle": "Favorite a path, or unfavorite it if it already is.",
	}

	cmd := &cobra.Command{
		Use:   verb + " [path]",
		Short: shorts[verb],
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %q: %w", args[0], err)
			}

			switch verb {
			case "add":
				if err := s.Config.AddFavorite(abs); err != nil {
					return err
				}
				cmd.Printf("Favorited %s\n", abs)
			case "rm":
				if err := s.Config.RemoveFavorite(abs); err != nil {
					return err
				}
				cmd.Printf("Unfavorited %s\n", abs)
			default:
				added, err := s.Config.ToggleFavorite(abs)
				if err != nil {
					return err
				}
				if added {
					cmd.Printf("Favorited %s\n", abs)
				} else {
					cmd.Printf("Unfavorited %s\n", abs)
				}
			}

			return nil
		},
	}

	return cmd
}
