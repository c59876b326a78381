package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles colors the parts of a rendered tree.
type Styles struct {
	Glyph lipgloss.Style
	PID   lipgloss.Style
	Match lipgloss.Style
}

// NewStyles builds the palette on r so the color profile detected (or forced)
// for the output stream applies.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Glyph: r.NewStyle().Foreground(lipgloss.Color("240")),
		PID:   r.NewStyle().Foreground(lipgloss.Color("33")),
		Match: r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	}
}
