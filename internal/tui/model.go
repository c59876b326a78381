// Package tui browses one process snapshot interactively. The snapshot is
// never re-read: filtering and resizing only re-render the same forest.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/w31r4/ptree/internal/process"
	"github.com/w31r4/ptree/internal/render"
	"github.com/w31r4/ptree/internal/tree"
)

const (
	headerHeight = 1
	footerHeight = 1

	// maxSuggestions caps the "closest:" hint shown when the filter matches nothing.
	maxSuggestions = 3
)

// Options configures the browser.
type Options struct {
	Filter tree.FilterOptions
	Styles *render.Styles
}

// model holds the browser state.
type model struct {
	forest   *tree.Forest
	commands []string
	styles   *render.Styles

	filter tree.FilterOptions
	shown  int

	textInput textinput.Model
	viewport  viewport.Model
	ready     bool

	suggestions []string
}

// Run opens the browser on snapshot and blocks until the user quits.
func Run(ctx context.Context, snapshot *process.Snapshot, opts Options) error {
	m := newModel(snapshot, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func newModel(snapshot *process.Snapshot, opts Options) model {
	forest := tree.Build(tree.Normalize(snapshot.Records))

	var commands []string
	forest.Walk(func(n *tree.Node, _ int) bool {
		commands = append(commands, n.Cmdline)
		return true
	})

	ti := textinput.New()
	ti.Placeholder = "substring"
	ti.Prompt = "/"
	ti.CharLimit = 156
	ti.Width = 30
	ti.SetValue(opts.Filter.Name)

	return model{
		forest:    forest,
		commands:  commands,
		styles:    opts.Styles,
		filter:    opts.Filter,
		textInput: ti,
		viewport:  viewport.New(render.DefaultWidth, 20),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// refresh re-filters the forest and re-renders it at the viewport width.
func (m *model) refresh() {
	m.filter.Name = m.textInput.Value()
	filtered := m.forest.Filter(m.filter)
	m.shown = filtered.Len()

	r := render.New(render.Options{
		Width:     m.viewport.Width,
		Styles:    m.styles,
		Highlight: m.filter.Name,
	})
	m.viewport.SetContent(strings.Join(r.Lines(filtered), "\n"))
	m.viewport.GotoTop()

	m.suggestions = nil
	if m.filter.Name != "" && m.shown == 0 {
		m.suggestions = closestCommands(m.filter.Name, m.commands)
	}
}

// commandSource exposes command lines to the fuzzy matcher.
type commandSource []string

func (s commandSource) String(i int) string { return s[i] }

func (s commandSource) Len() int { return len(s) }

// closestCommands ranks command lines by fuzzy similarity to term.
func closestCommands(term string, commands []string) []string {
	matches := fuzzy.FindFrom(term, commandSource(commands))

	var out []string
	seen := make(map[string]bool)
	for _, match := range matches {
		if seen[match.Str] {
			continue
		}
		seen[match.Str] = true
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
