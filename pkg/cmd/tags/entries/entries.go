package entries

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
)

func NewCmdEntries(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries [name]",
		Short: "Show the paths a tag points at.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("tag name argument is required")
			}

			id, err := cmdpkg.ResolveTag(s, args[0])
			if err != nil {
				return err
			}

			t, ok := s.Tags.Get(id)
			if !ok {
				return fmt.Errorf("unknown tag %q", id)
			}

			for _, e := range t.Entries {
				if e.Recursive {
					cmd.Printf("%s (recursive)\n", e.Path)
					continue
				}
				cmd.Println(e.Path)
			}

			if len(t.Subtags) > 0 {
				names := make([]string, len(t.Subtags))
				for i, sub := range t.Subtags {
					names[i] = sub.String()
				}
				cmd.Println("Subtags: " + strings.Join(names, ", "))
			}

			return nil
		},
	}

	return cmd
}
