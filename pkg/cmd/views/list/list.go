package list

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/config"
	"github.com/Paintersrp/kf/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved views.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := s.Config.ViewNames()
			if len(names) == 0 {
				cmd.Println("No views saved.")
				return nil
			}

			for _, name := range names {
				view, ok := s.Config.GetView(name)
				if !ok {
					continue
				}
				cmd.Printf("%s\t%s\n", name, describe(view))
			}

			return nil
		},
	}

	return cmd
}

func describe(view config.View) string {
	var parts []string
	if view.Query != "" {
		parts = append(parts, "query: "+view.Query)
	}
	if len(view.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(view.Tags, ", "))
	}
	if view.Root != "" {
		parts = append(parts, "root: "+view.Root)
	}
	if len(parts) == 0 {
		return "(match everything under the default root)"
	}

	return strings.Join(parts, " · ")
}
