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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/pkg/cmd/root"
)

func Execute() {
	// Config, tag index, watcher, and engine all hang off the state.
	s, err := state.NewState()
	cobra.CheckErr(err)

	rootCmd, rootErr := root.NewCmdRoot(s)
	if rootErr != nil {
		s.Close()
		cobra.CheckErr(rootErr)
	}

	execErr := rootCmd.Execute()

	if closeErr := s.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", closeErr)
	}
	if execErr != nil {
		os.Exit(1)
	}
}
