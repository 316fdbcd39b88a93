package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	defaultFolderColor = "#E5C07B"
	defaultWrapWidth   = 100
	maxTextLines       = 40
	maxListEntries     = 200
)

// Renderer produces the preview pane text for a path. Every failure mode
// renders as text so the surrounding picker or browser never aborts.
type Renderer struct {
	dirStyle    lipgloss.Style
	headerStyle lipgloss.Style
	noteStyle   lipgloss.Style
}

func NewRenderer(folderColor string) *Renderer {
	if folderColor == "" {
		folderColor = defaultFolderColor
	}
	return &Renderer{
		dirStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(folderColor)),
		headerStyle: lipgloss.NewStyle().Bold(true).Underline(true),
		noteStyle:   lipgloss.NewStyle().Faint(true),
	}
}

var defaultRenderer = NewRenderer("")

// Render renders path with the default styling.
func Render(path string, width int) string {
	return defaultRenderer.Render(path, width)
}

func (r *Renderer) Render(path string, width int) string {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("unable to preview %s: %v", filepath.Base(path), err)
	}
	if info.IsDir() {
		return r.renderDir(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return r.renderMarkdown(path, width)
	}
	return r.renderText(path)
}

func (r *Renderer) renderDir(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Sprintf("unable to list %s: %v", filepath.Base(path), err)
	}

	var dirs, files []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name()+"/")
		} else {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	var builder strings.Builder
	builder.WriteString(r.headerStyle.Render(filepath.Base(path)))
	builder.WriteString("\n\n")

	shown := 0
	for _, name := range dirs {
		if shown == maxListEntries {
			break
		}
		builder.WriteString(r.dirStyle.Render(name))
		builder.WriteString("\n")
		shown++
	}
	for _, name := range files {
		if shown == maxListEntries {
			break
		}
		builder.WriteString(name)
		builder.WriteString("\n")
		shown++
	}
	if hidden := len(dirs) + len(files) - shown; hidden > 0 {
		builder.WriteString(r.noteStyle.Render(fmt.Sprintf("… and %d more", hidden)))
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

func (r *Renderer) renderMarkdown(path string, width int) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("unable to read %s: %v", filepath.Base(path), err)
	}

	var builder strings.Builder
	if outline := headingOutline(source); outline != "" {
		builder.WriteString(r.noteStyle.Render(outline))
		builder.WriteString("\n\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrapWidth(width)),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		builder.Write(source)
		return builder.String()
	}

	body, err := renderer.Render(string(source))
	if err != nil {
		builder.Write(source)
		return builder.String()
	}
	builder.WriteString(body)
	return builder.String()
}

func (r *Renderer) renderText(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("unable to read %s: %v", filepath.Base(path), err)
	}
	if isBinary(content) {
		return r.noteStyle.Render(
			fmt.Sprintf("%s: binary file, %d bytes", filepath.Base(path), len(content)),
		)
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) <= maxTextLines {
		return string(content)
	}

	clipped := strings.Join(lines[:maxTextLines], "\n")
	notice := r.noteStyle.Render(fmt.Sprintf("… and %d more lines", len(lines)-maxTextLines))
	return clipped + "\n" + notice
}

// headingOutline walks the markdown AST and returns the document headings
// indented by level, one per line.
func headingOutline(source []byte) string {
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	var lines []string
	ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title := strings.TrimSpace(string(heading.Text(source)))
			if title != "" {
				lines = append(lines, strings.Repeat("  ", heading.Level-1)+title)
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(lines, "\n")
}

func wrapWidth(width int) int {
	if width <= 0 || width > defaultWrapWidth {
		return defaultWrapWidth
	}
	return width
}

func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 1024 {
		probe = probe[:1024]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
