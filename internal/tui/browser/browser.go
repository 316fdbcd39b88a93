// Package browser is the interactive TUI: a live query over the streaming
// search engine with a preview pane.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Paintersrp/kf/internal/cache"
	"github.com/Paintersrp/kf/internal/preview"
	"github.com/Paintersrp/kf/internal/query"
	"github.com/Paintersrp/kf/internal/rank"
	"github.com/Paintersrp/kf/internal/search"
	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tag"
)

const (
	previewCacheSize = 64

	// input box (3 rows with border) plus the status line
	chromeHeight = 4
)

type BrowserModel struct {
	list           list.Model
	queryInput     textinput.Model
	tagInput       textinput.Model
	spinner        spinner.Model
	keys           *browserKeyMap
	delegateKeys   *delegateKeyMap
	state          *state.State
	engine         *search.Engine
	scope          search.Scope
	renderer       *preview.Renderer
	previews       *cache.PreviewCache
	top            *rank.TopK
	search         *search.Search
	gen            int
	typeFilter     query.Type
	maxResults     int
	resultsPerTick int
	preview        string
	status         string
	lastQuery      string
	selected       string
	width          int
	height         int
	searching      bool
	tagging        bool
}

func NewBrowserModel(s *state.State, scope search.Scope) (*BrowserModel, error) {
	dkeys := newDelegateKeyMap()
	bkeys := newBrowserKeyMap()
	delegate := newItemDelegate(dkeys, s)

	l := list.New(nil, delegate, 0, 0)
	l.Title = browseTitle(scope)
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	// the query input owns the letters; the list keeps only keys the
	// input has no use for
	l.KeyMap = list.KeyMap{
		CursorUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		CursorDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PrevPage:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
		GoToStart:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "start")),
		GoToEnd:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "end")),
	}
	l.AdditionalShortHelpKeys = bkeys.shortHelp

	qi := textinput.New()
	qi.Prompt = "query> "
	qi.Placeholder = `terms, .ext, "phrase", -f/-d`
	qi.Focus()

	ti := textinput.New()
	ti.Prompt = "tag> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &BrowserModel{
		list:           l,
		queryInput:     qi,
		tagInput:       ti,
		spinner:        sp,
		keys:           bkeys,
		delegateKeys:   dkeys,
		state:          s,
		engine:         s.Engine,
		scope:          scope,
		renderer:       s.Renderer,
		previews:       cache.New(previewCacheSize),
		typeFilter:     query.Any,
		maxResults:     s.Config.MaxResults,
		resultsPerTick: s.Config.ResultsPerTick,
	}
	if m.resultsPerTick < 1 {
		m.resultsPerTick = 1
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.setSize(w, h)
	}

	m.startSearch()
	if m.search == nil {
		return nil, fmt.Errorf("unable to browse: %s", m.status)
	}

	return m, nil
}

func (m BrowserModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.searching {
		cmds = append(cmds, m.spinner.Tick, m.tickCmd())
	}
	return tea.Batch(cmds...)
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.searching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tickMsg:
		cmd := m.handleTick(msg)
		return m, cmd

	case searchDoneMsg:
		cmd := m.handleSearchDone(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.tagging {
			return m.handleTagUpdate(msg)
		}

		switch {
		case key.Matches(msg, m.keys.quit):
			if m.search != nil {
				m.search.Cancel()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.selectEntry):
			if i, ok := m.list.SelectedItem().(ListItem); ok {
				m.selected = i.result.Path
			}
			if m.search != nil {
				m.search.Cancel()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.cycleType):
			m.cycleTypeFilter()
			cmd := m.startSearch()
			return m, cmd

		case key.Matches(msg, m.keys.refresh):
			// Stale previews go with the stale results.
			m.previews.Purge()
			cmd := m.startSearch()
			return m, cmd

		case key.Matches(msg, m.keys.tagEntry):
			m.toggleTagging()
			return m, nil
		}
	}

	nl, listCmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, listCmd)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var inputCmd tea.Cmd
		m.queryInput, inputCmd = m.queryInput.Update(keyMsg)
		cmds = append(cmds, inputCmd)

		if value := m.queryInput.Value(); value != m.lastQuery {
			m.lastQuery = value
			cmds = append(cmds, m.startSearch())
		}
	}

	m.handlePreview()
	return m, tea.Batch(cmds...)
}

func (m BrowserModel) handleTagUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.exitTag) {
		m.toggleTagging()
		return m, nil
	}

	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)

	if key.Matches(msg, m.keys.submitTag) {
		if err := m.applyTag(); err != nil {
			m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Error tagging: %v", err)))
		} else {
			m.toggleTagging()
		}
	}

	return m, cmd
}

func (m BrowserModel) View() string {
	input := inputStyle.Render(m.queryInput.View())
	listView := listStyle.Width(m.width / 2).Render(m.list.View())

	var side string
	if m.tagging {
		side = textPromptStyle.Render(
			lipgloss.NewStyle().
				Height(m.list.Height()).
				MaxHeight(m.list.Height()).
				Padding(0, 2).
				Render(fmt.Sprintf("%s\n\n%s", titleStyle.Render("Tag selection"), m.tagInput.View())),
		)
	} else {
		side = previewStyle.Render(
			lipgloss.NewStyle().
				Height(m.list.Height()).
				MaxHeight(m.list.Height()).
				Render(fmt.Sprintf("%s\n%s", titleStyle.Render("Preview"), m.preview)),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, listView, side)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, input, body, m.statusView()))
}

func (m BrowserModel) statusView() string {
	var line string
	if m.searching {
		line = m.spinner.View() + " searching"
	} else {
		line = m.status
	}

	if label := typeFilterLabel(m.typeFilter); label != "" {
		if line != "" {
			line += " · "
		}
		line += label
	}

	return statusBarStyle.Render(line)
}

// Run opens the browser and returns the path selected on exit, empty when
// the user quit without selecting.
func Run(s *state.State, scope search.Scope) (string, error) {
	m, err := NewBrowserModel(s, scope)
	if err != nil {
		return "", err
	}

	p := tea.NewProgram(*m, tea.WithInput(os.Stdin), tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			os.Exit(0)
		}
		return "", fmt.Errorf("error running browser: %w", err)
	}

	var final BrowserModel
	switch v := out.(type) {
	case BrowserModel:
		final = v
	case *BrowserModel:
		final = *v
	default:
		return "", nil
	}

	if final.selected == "" {
		return "", nil
	}

	visit := final.selected
	if info, err := os.Stat(visit); err == nil && !info.IsDir() {
		visit = filepath.Dir(visit)
	}
	if err := s.Recents.Visit(visit); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record visit: %v\n", err)
	}

	return final.selected, nil
}

func (m *BrowserModel) setSize(width, height int) {
	m.width = width
	m.height = height
	h, v := appStyle.GetFrameSize()
	m.list.SetSize(width-h, height-v-chromeHeight)
}

func (m *BrowserModel) refreshItems() tea.Cmd {
	return m.list.SetItems(toListItems(m.top.Sorted()))
}

func (m *BrowserModel) handlePreview() {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		m.preview = ""
		return
	}

	path := item.result.Path
	width := m.width / 2
	info, err := os.Stat(path)
	if err != nil {
		m.preview = m.renderer.Render(path, width)
		return
	}

	if rendered, hit := m.previews.Get(path, width, info.ModTime()); hit {
		m.preview = rendered
		return
	}
	rendered := m.renderer.Render(path, width)
	m.previews.Put(path, width, info.ModTime(), rendered)
	m.preview = rendered
}

func (m *BrowserModel) cycleTypeFilter() {
	switch m.typeFilter {
	case query.Any:
		m.typeFilter = query.FileOnly
	case query.FileOnly:
		m.typeFilter = query.DirOnly
	default:
		m.typeFilter = query.Any
	}
}

func (m *BrowserModel) toggleTagging() {
	if m.tagging {
		m.tagging = false
		m.tagInput.Blur()
		m.queryInput.Focus()
		return
	}

	m.tagging = true
	m.tagInput.SetValue("")
	m.queryInput.Blur()
	m.tagInput.Focus()
}

func (m *BrowserModel) applyTag() error {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return fmt.Errorf("nothing selected")
	}

	id, err := tag.ParseID(m.tagInput.Value())
	if err != nil {
		return err
	}

	return m.state.Tags.Tag(item.result.Path, id, item.result.IsDir)
}

func browseTitle(scope search.Scope) string {
	if len(scope.Tags) > 0 {
		names := make([]string, len(scope.Tags))
		for i, id := range scope.Tags {
			names[i] = id.String()
		}
		return "kf · tags: " + strings.Join(names, ", ")
	}
	return "kf · " + scope.Root
}
