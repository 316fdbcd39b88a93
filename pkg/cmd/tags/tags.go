/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package tags

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	tagsadd "github.com/Paintersrp/kf/pkg/cmd/tags/add"
	tagsentries "github.com/Paintersrp/kf/pkg/cmd/tags/entries"
	tagslink "github.com/Paintersrp/kf/pkg/cmd/tags/link"
	tagslist "github.com/Paintersrp/kf/pkg/cmd/tags/list"
	tagsmove "github.com/Paintersrp/kf/pkg/cmd/tags/move"
	tagsnest "github.com/Paintersrp/kf/pkg/cmd/tags/nest"
	tagsof "github.com/Paintersrp/kf/pkg/cmd/tags/of"
	tagsremove "github.com/Paintersrp/kf/pkg/cmd/tags/remove"
)

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"t"},
		Short:   "Manage the tag index.",
		Long: heredoc.Doc(`
			Tags name sets of paths. A recursive tag entry covers a directory
			and everything ever placed beneath it; subtags fold one tag's paths
			into another. Searches scoped with --tag run against the
			intersection of the named tags.
		`),
		// Bare "kf tags" lists the index
		RunE: tagslist.NewCmdList(s).RunE,
	}

	cmd.AddCommand(
		tagslist.NewCmdList(s),
		tagsadd.NewCmdAdd(s),
		tagsremove.NewCmdRemove(s),
		tagsmove.NewCmdMove(s),
		tagsof.NewCmdOf(s),
		tagsentries.NewCmdEntries(s),
		tagslink.NewCmdLink(s),
		tagslink.NewCmdUnlink(s),
		tagsnest.NewCmdNest(s),
		tagsnest.NewCmdUnnest(s),
	)

	return cmd
}
