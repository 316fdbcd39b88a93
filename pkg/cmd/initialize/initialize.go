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
package initialize

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tui/initialize"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Initialize kf's configuration.",
		Long:    "Walk through setting up kf: the default search root, worker count, and theme.",
		Example: "kf init",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initialize.Run()
		},
	}

	return cmd
}
