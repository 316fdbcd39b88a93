package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags with their entry counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := s.Tags.Snapshot()
			if len(snapshot) == 0 {
				cmd.Println("No tags yet. Create one with: kf tags link <path> <name>")
				return nil
			}

			for _, t := range snapshot {
				line := fmt.Sprintf("%s\t%d entries", t.Name, len(t.Entries))
				if len(t.Subtags) > 0 {
					names := make([]string, len(t.Subtags))
					for i, sub := range t.Subtags {
						names[i] = sub.String()
					}
					line += "\tsubtags: " + strings.Join(names, ", ")
				}
				cmd.Println(line)
			}

			return nil
		},
	}

	return cmd
}
