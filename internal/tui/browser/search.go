package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kf/internal/query"
	"github.com/Paintersrp/kf/internal/rank"
	"github.com/Paintersrp/kf/internal/search"
)

const tickInterval = 50 * time.Millisecond

// tickMsg asks the model to drain another batch of streamed results. The
// generation stamp lets restarted searches ignore ticks from dead ones.
type tickMsg struct {
	gen int
}

type searchDoneMsg struct {
	gen   int
	err   error
	stats search.Stats
}

// startSearch cancels whatever is in flight and begins a fresh search for
// the current query text.
func (m *BrowserModel) startSearch() tea.Cmd {
	if m.search != nil {
		m.search.Cancel()
	}

	m.gen++
	m.top = rank.NewTopK(m.maxResults)
	m.status = ""
	m.list.ResetSelected()

	c := query.Parse(m.queryInput.Value())
	if m.typeFilter != query.Any {
		c.Type = m.typeFilter
	}

	s, err := m.engine.Run(context.Background(), c, m.scope)
	if err != nil {
		m.search = nil
		m.searching = false
		m.status = fmt.Sprintf("search failed: %v", err)
		return m.refreshItems()
	}

	m.search = s
	m.searching = true
	return tea.Batch(m.refreshItems(), m.spinner.Tick, m.tickCmd())
}

func (m BrowserModel) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// handleTick drains up to resultsPerTick streamed results without blocking,
// then either schedules the next tick or waits out the search on a
// background command.
func (m *BrowserModel) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen || m.search == nil {
		return nil
	}

	var cmds []tea.Cmd
	drained := 0
	closed := false

drain:
	for drained < m.resultsPerTick {
		select {
		case r, ok := <-m.search.Results():
			if !ok {
				closed = true
				break drain
			}
			m.top.Insert(r)
			drained++
		default:
			break drain
		}
	}

	if drained > 0 {
		cmds = append(cmds, m.refreshItems())
		m.handlePreview()
	}

	if closed {
		s := m.search
		gen := m.gen
		cmds = append(cmds, func() tea.Msg {
			err := s.Wait()
			return searchDoneMsg{gen: gen, err: err, stats: s.Stats()}
		})
	} else {
		cmds = append(cmds, m.tickCmd())
	}

	return tea.Batch(cmds...)
}

func (m *BrowserModel) handleSearchDone(msg searchDoneMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}

	m.searching = false
	m.status = formatStatus(msg.stats, msg.err)
	cmd := m.refreshItems()
	m.handlePreview()
	return cmd
}

func formatStatus(stats search.Stats, err error) string {
	parts := []string{
		fmt.Sprintf("%d scanned", stats.Scanned),
		fmt.Sprintf("%d matched", stats.Matched),
	}
	if stats.DroppedDirs > 0 {
		parts = append(parts, fmt.Sprintf("%d dirs dropped", stats.DroppedDirs))
	}
	if n := len(stats.Errors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", n))
	}
	if err != nil {
		parts = append(parts, err.Error())
	}

	return strings.Join(parts, " · ")
}

func typeFilterLabel(t query.Type) string {
	switch t {
	case query.FileOnly:
		return "files only"
	case query.DirOnly:
		return "dirs only"
	default:
		return ""
	}
}
