// Package render draws a process forest as box-drawing text.
//
// Each process produces one block:
//
//	1 /sbin/init
//	├─ 412 /usr/sbin/sshd -D
//	│  └─ 9001 sshd: alice [priv]
//	└─ 733 /usr/lib/systemd/systemd --user
//	       --deserialize 12
//
// Roots carry no connector. Long command lines wrap at whitespace and every
// continuation line starts in the column where the command text began, below
// the ancestor glyphs of the first line; the node's own connector column is
// left blank.
package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/w31r4/ptree/internal/tree"
)

const (
	// DefaultWidth is used when the terminal width cannot be detected.
	DefaultWidth = 132
	// MinTextWidth keeps deeply nested command lines readable when the
	// indentation eats most of the terminal.
	MinTextWidth = 20
)

const (
	teeConnector   = "├─ "
	elbowConnector = "└─ "
	barIndent      = "│  "
	blankIndent    = "   "
	bar            = "│"
)

// Forest is the read-only view of a process forest the renderer walks.
// *tree.Forest implements it, filtered or not.
type Forest interface {
	Roots() []*tree.Node
	Children(n *tree.Node) []*tree.Node
}

// Options configures a Renderer.
type Options struct {
	// Width is the output width in display cells; DefaultWidth when <= 0.
	Width int
	// Styles colors the output. Nil renders plain text.
	Styles *Styles
	// Highlight is emphasized wherever it occurs in a command line fragment.
	// Each wrapped fragment is matched on its own, so an occurrence split
	// across a line break stays plain. It is only honored together with Styles.
	Highlight string
}

// Renderer turns forests into lines of text.
type Renderer struct {
	width     int
	styles    *Styles
	highlight string
}

// New returns a Renderer for opts.
func New(opts Options) *Renderer {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{width: width, styles: opts.Styles, highlight: opts.Highlight}
}

// Width returns the output width the renderer wraps to.
func (r *Renderer) Width() int {
	return r.width
}

// Lines renders f depth-first, siblings in the order the forest returns them.
// The output depends only on f and the options.
func (r *Renderer) Lines(f Forest) []string {
	var lines []string
	for _, root := range f.Roots() {
		lines = r.node(lines, f, root, "", "", "")
	}
	return lines
}

// Render writes the lines for f to w, each terminated by a newline.
func (r *Renderer) Render(w io.Writer, f Forest) error {
	bw := bufio.NewWriter(w)
	for _, line := range r.Lines(f) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// node appends the block for n and its subtree. prefix holds the ancestor
// glyphs, connector the node's own glyph ("" for roots) and childPrefix the
// glyphs its children start with.
func (r *Renderer) node(lines []string, f Forest, n *tree.Node, prefix, connector, childPrefix string) []string {
	children := f.Children(n)
	pid := strconv.FormatInt(int64(n.PID), 10)
	pidWidth := lipgloss.Width(pid)

	textColumn := lipgloss.Width(prefix+connector) + pidWidth + 1
	avail := r.width - textColumn
	if avail < MinTextWidth {
		avail = MinTextWidth
	}

	fragments := Wrap(n.Cmdline, avail)

	first := r.glyph(prefix+connector) + r.pid(pid)
	if len(fragments) > 0 {
		first += " " + r.text(fragments[0])
	}
	lines = append(lines, first)

	if len(fragments) > 1 {
		under := " "
		if len(children) > 0 {
			under = bar
		}
		// The node's own connector column stays blank below the first line.
		lead := r.glyph(prefix+strings.Repeat(" ", lipgloss.Width(connector))+under) + strings.Repeat(" ", pidWidth)
		for _, frag := range fragments[1:] {
			lines = append(lines, lead+r.text(frag))
		}
	}

	for i, child := range children {
		if i == len(children)-1 {
			lines = r.node(lines, f, child, childPrefix, elbowConnector, childPrefix+blankIndent)
		} else {
			lines = r.node(lines, f, child, childPrefix, teeConnector, childPrefix+barIndent)
		}
	}
	return lines
}

func (r *Renderer) glyph(s string) string {
	if r.styles == nil || strings.TrimSpace(s) == "" {
		return s
	}
	return r.styles.Glyph.Render(s)
}

func (r *Renderer) pid(s string) string {
	if r.styles == nil {
		return s
	}
	return r.styles.PID.Render(s)
}

func (r *Renderer) text(s string) string {
	if r.styles == nil || r.highlight == "" || !strings.Contains(s, r.highlight) {
		return s
	}
	return strings.ReplaceAll(s, r.highlight, r.styles.Match.Render(r.highlight))
}
