package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// View renders the header, the tree viewport and the footer.
func (m model) View() string {
	if !m.ready {
		return "Loading process tree..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m model) renderHeader() string {
	count := faintStyle.Render(fmt.Sprintf("(%d/%d)", m.shown, m.forest.Len()))
	scope := "mine"
	if m.filter.AllUsers {
		scope = "all users"
	}
	return fmt.Sprintf("%s %s %s %s", titleStyle.Render("ptree"), count, badgeStyle.Render("["+scope+"]"), m.textInput.View())
}

func (m model) renderFooter() string {
	if len(m.suggestions) > 0 {
		return faintStyle.Render(truncate("no matches, closest: "+strings.Join(m.suggestions, " • "), m.viewport.Width))
	}
	if m.textInput.Focused() {
		return faintStyle.Render("enter/esc: done")
	}
	return faintStyle.Render("/: filter • x: clear • a: all users • ↑/↓ pgup/pgdn: scroll • q: quit")
}

// truncate cuts s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
