package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Wrap breaks text at spaces into lines no wider than width display cells,
// packing as many whole words per line as fit. A word wider than width is
// kept intact on a line of its own. Lines only break at a single space, and
// any further spaces stay attached to the neighbouring word, so joining the
// result with single spaces gives back text exactly.
func Wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if width <= 0 {
		return []string{text}
	}

	words := splitWords(text)

	var (
		lines    []string
		current  strings.Builder
		curWidth int
	)

	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
			curWidth = 0
		}
	}

	for _, word := range words {
		w := lipgloss.Width(word)
		if curWidth > 0 && curWidth+1+w > width {
			flush()
		}
		if curWidth > 0 {
			current.WriteByte(' ')
			curWidth++
		}
		current.WriteString(word)
		curWidth += w
	}

	flush()
	return lines
}

// splitWords splits text at single spaces. Extra spaces are appended to the
// preceding word, or prepended to the first one.
func splitWords(text string) []string {
	var (
		words   []string
		leading string
	)
	for _, tok := range strings.Split(text, " ") {
		if tok == "" {
			if len(words) == 0 {
				leading += " "
			} else {
				words[len(words)-1] += " "
			}
			continue
		}
		words = append(words, leading+tok)
		leading = ""
	}
	return words
}
