package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.textInput.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.textInput.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.textInput, cmd = m.textInput.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			cmd = m.textInput.Focus()
			return m, cmd
		case "a":
			m.filter.AllUsers = !m.filter.AllUsers
			m.refresh()
			return m, nil
		case "x":
			m.textInput.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
