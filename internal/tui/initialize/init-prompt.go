package initialize

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/kf/internal/config"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	focusedDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585b70"))
	blurredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	cursorStyle         = focusedStyle.Copy()
	noStyle             = lipgloss.NewStyle()
	helpStyle           = blurredStyle.Copy()
	cursorModeHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#cba6f7"))

	focusedButton = focusedStyle.Copy().Render("[ Submit ]")
	blurredButton = fmt.Sprintf(
		"[ %s ]",
		blurredStyle.Render("Submit"),
	)
)

type InitPromptModel struct {
	home       string
	err        error
	inputs     []textinput.Model
	focusIndex int
	cursorMode cursor.Mode
}

func InitialPrompt(home string) InitPromptModel {
	m := InitPromptModel{
		inputs: make([]textinput.Model, 3),
		home:   home,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 32

		switch i {
		case 0:
			t.Prompt = "Default Search Root: "
			t.Placeholder = home
			t.Focus()
			t.PlaceholderStyle = focusedDimStyle
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
			t.CharLimit = 128
		case 1:
			t.Prompt = "Search Workers: "
			t.Placeholder = "one per CPU"
			t.PlaceholderStyle = focusedDimStyle
			t.PromptStyle = noStyle
			t.CharLimit = 3
		case 2:
			t.Prompt = "Folder Color: "
			t.Placeholder = "#E5C07B"
			t.PlaceholderStyle = focusedDimStyle
			t.PromptStyle = noStyle
			t.CharLimit = 7
		}

		m.inputs[i] = t
	}

	return m
}

func (m InitPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InitPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+r":
			m.cursorMode++
			if m.cursorMode > cursor.CursorHide {
				m.cursorMode = cursor.CursorBlink
			}
			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				cmds[i] = m.inputs[i].Cursor.SetMode(m.cursorMode)
			}
			return m, tea.Batch(cmds...)

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				m.err = m.apply()
				if m.err != nil {
					return m, nil
				}

				fmt.Println("Initialization complete!")
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	cmd := m.updateInputs(msg)

	return m, cmd
}

// apply scaffolds the config tree and writes the submitted values. Blank
// inputs keep the loaded (or default) value.
func (m *InitPromptModel) apply() error {
	if err := config.EnsureConfigExists(m.home); err != nil {
		return err
	}

	cfg, err := config.Load(m.home)
	if err != nil {
		return err
	}

	if root := strings.TrimSpace(m.inputs[0].Value()); root != "" {
		cfg.DefaultRoot = root
	}
	if raw := strings.TrimSpace(m.inputs[1].Value()); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers < 1 {
			return fmt.Errorf("invalid worker count %q", raw)
		}
		cfg.Workers = workers
	}
	if color := strings.TrimSpace(m.inputs[2].Value()); color != "" {
		if err := config.ValidateColor(color); err != nil {
			return err
		}
		cfg.FolderColor = color
	}

	return cfg.Save()
}

func (m *InitPromptModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m InitPromptModel) View() string {
	var b strings.Builder

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", *button)

	if m.err != nil {
		b.WriteString(helpStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteRune('\n')
	}

	b.WriteString(helpStyle.Render("cursor mode is "))
	b.WriteString(cursorModeHelpStyle.Render(m.cursorMode.String()))
	b.WriteString(helpStyle.Render(" (ctrl+r to change style)"))
	b.WriteString(
		helpStyle.Render("\n(Leave inputs blank for default values)"),
	)

	return b.String()
}

func Run() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(InitialPrompt(homeDir)).Run(); err != nil {
		return err
	}

	return nil
}
