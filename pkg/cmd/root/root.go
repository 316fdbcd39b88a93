package root

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/constants"
	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/pkg/cmd/browse"
	"github.com/Paintersrp/kf/pkg/cmd/fav"
	"github.com/Paintersrp/kf/pkg/cmd/find"
	"github.com/Paintersrp/kf/pkg/cmd/initialize"
	"github.com/Paintersrp/kf/pkg/cmd/recent"
	"github.com/Paintersrp/kf/pkg/cmd/search"
	"github.com/Paintersrp/kf/pkg/cmd/tags"
	"github.com/Paintersrp/kf/pkg/cmd/trash"
	"github.com/Paintersrp/kf/pkg/cmd/views"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "kf",
		Version: constants.Version,
		Short:   "Find files by meaning: tags, fuzzy queries, and a live browser.",
		Long: `A terminal file browser that retrieves files by what they are, not where
they sit. Tag paths into named sets, then search with a compact query
syntax: fuzzy terms, ".ext" filters, quoted exact phrases, -f/-d type
filters.

      [query]         [scope]
  kf search main .rs --tag projects
  `,
		// Open the live browser by default
		RunE: browse.NewCmdBrowse(s).RunE,
	}

	// The default action is the browser, so its scope flags live on the
	// root as well.
	flags.AddScope(cmd)
	cmd.SetHelpTemplate(constants.Help)

	// Add Child Commands to Root
	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		search.NewCmdSearch(s),
		find.NewCmdFind(s),
		tags.NewCmdTags(s),
		fav.NewCmdFav(s),
		recent.NewCmdRecent(s),
		trash.NewCmdTrash(s),
		views.NewCmdViews(s),
	)

	return cmd, nil
}
