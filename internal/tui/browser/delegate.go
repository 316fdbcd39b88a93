package browser

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kf/internal/state"
)

var writeClipboard = clipboard.WriteAll

func newItemDelegate(keys *delegateKeyMap, s *state.State) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		var p string
		if i, ok := m.SelectedItem().(ListItem); ok {
			p = i.result.Path
		} else {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.trash):
				landed, err := s.Handler.Trash(p)
				if err != nil {
					return m.NewStatusMessage(statusStyle("Failed to trash " + filepath.Base(p)))
				}
				removeItemByPath(m, p)
				return m.NewStatusMessage(statusStyle("Trashed as " + filepath.Base(landed)))

			case key.Matches(msg, keys.yank):
				if err := writeClipboard(p); err != nil {
					return m.NewStatusMessage(statusStyle("Failed to copy path"))
				}
				return m.NewStatusMessage(statusStyle("Copied " + p))

			case key.Matches(msg, keys.favorite):
				added, err := s.Config.ToggleFavorite(p)
				if err != nil {
					return m.NewStatusMessage(statusStyle(fmt.Sprintf("Favorite error: %v", err)))
				}
				if added {
					return m.NewStatusMessage(statusStyle("Favorited " + filepath.Base(p)))
				}
				return m.NewStatusMessage(statusStyle("Unfavorited " + filepath.Base(p)))
			}
		}

		return nil
	}

	d.ShortHelpFunc = func() []key.Binding {
		return []key.Binding{keys.trash, keys.yank, keys.favorite}
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{{keys.trash, keys.yank, keys.favorite}}
	}
	return d
}

func removeItemByPath(m *list.Model, path string) {
	if path == "" {
		return
	}

	for idx, item := range m.Items() {
		li, ok := item.(ListItem)
		if !ok {
			continue
		}
		if li.result.Path == path {
			m.RemoveItem(idx)
			return
		}
	}
}

type delegateKeyMap struct {
	trash    key.Binding
	yank     key.Binding
	favorite key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		trash: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "trash"),
		),
		yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank path"),
		),
		favorite: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "favorite"),
		),
	}
}
