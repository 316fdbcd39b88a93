package of

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdOf(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "of [path]",
		Short: "Show every tag covering a path.",
		Long: "Coverage includes recursive entries on ancestor directories " +
			"and tags inherited through subtags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %q: %w", args[0], err)
			}

			names := s.Tags.TagsFor(abs)
			if len(names) == 0 {
				cmd.Printf("No tags cover %s\n", abs)
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
