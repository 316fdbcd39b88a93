package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/search"
	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

// ResolveScope turns the --tag and --root flags into a search scope. An
// explicit rootArg wins over the flag. Tags and roots are mutually exclusive;
// with neither, the configured default root is searched, falling back to the
// working directory.
func ResolveScope(cmd *cobra.Command, s *state.State, rootArg string) (search.Scope, error) {
	if s == nil || s.Config == nil {
		return search.Scope{}, fmt.Errorf("state configuration is not initialized")
	}

	tagNames, err := flags.HandleTags(cmd)
	if err != nil {
		return search.Scope{}, err
	}
	root, err := flags.HandleRoot(cmd)
	if err != nil {
		return search.Scope{}, err
	}
	if rootArg != "" {
		root = rootArg
	}

	return ScopeFrom(s, tagNames, root)
}

// ScopeFrom builds a scope from raw tag names and a root. Saved views resolve
// through here with their stored values.
func ScopeFrom(s *state.State, tagNames []string, root string) (search.Scope, error) {
	if len(tagNames) > 0 {
		if root != "" {
			return search.Scope{}, fmt.Errorf("tags and a root cannot be combined; pick one")
		}

		ids := make([]tag.ID, 0, len(tagNames))
		for _, raw := range tagNames {
			id, err := ResolveTag(s, raw)
			if err != nil {
				return search.Scope{}, err
			}
			ids = append(ids, id)
		}
		return search.TagIntersection(ids...), nil
	}

	if root == "" {
		root = s.Config.DefaultRoot
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return search.Scope{}, fmt.Errorf("resolving root %q: %w", root, err)
	}

	return search.Unscoped(abs), nil
}

// ResolveTag parses raw into a tag name and verifies it exists, suggesting
// close matches when it does not.
func ResolveTag(s *state.State, raw string) (tag.ID, error) {
	id, err := tag.ParseID(raw)
	if err != nil {
		return "", err
	}

	if _, ok := s.Tags.Get(id); !ok {
		if suggestions := s.Tags.Suggest(raw, 3); len(suggestions) > 0 {
			names := make([]string, len(suggestions))
			for i, sg := range suggestions {
				names[i] = sg.String()
			}
			return "", fmt.Errorf(
				"unknown tag %q (did you mean %s?)",
				id,
				strings.Join(names, ", "),
			)
		}
		return "", fmt.Errorf("unknown tag %q", id)
	}

	return id, nil
}
