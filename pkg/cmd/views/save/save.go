package save

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/config"
	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func NewCmdSave(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [name] [query]...",
		Short: "Save a query and its scope under a name.",
		Long: heredoc.Doc(`
			Store the query text together with the tag scope or root so it can
			be rerun with "kf view run". Tags are checked against the index and
			the root is pinned to an absolute path, so the view means the same
			thing from any working directory.

			Examples:
			  kf view save rust-sources .rs --root ~/projects
			  kf view save work-docs "design" --tag work --tag docs
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("view name argument is required")
			}
			name := strings.TrimSpace(args[0])

			tagNames, err := flags.HandleTags(cmd)
			if err != nil {
				return err
			}
			root, err := flags.HandleRoot(cmd)
			if err != nil {
				return err
			}

			view := config.View{Query: strings.Join(args[1:], " ")}
			switch {
			case len(tagNames) > 0:
				if root != "" {
					return fmt.Errorf("tags and a root cannot be combined; pick one")
				}
				for _, raw := range tagNames {
					id, err := cmdpkg.ResolveTag(s, raw)
					if err != nil {
						return err
					}
					view.Tags = append(view.Tags, id.String())
				}
			case root != "":
				abs, err := filepath.Abs(root)
				if err != nil {
					return fmt.Errorf("resolving root %q: %w", root, err)
				}
				view.Root = abs
			}

			if err := s.Config.AddView(name, view); err != nil {
				return err
			}

			cmd.Printf("Saved view %q\n", name)
			return nil
		},
	}

	flags.AddScope(cmd)

	return cmd
}
