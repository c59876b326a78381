package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "word wider than width", text: "hello", width: 2, want: []string{"hello"}},
		{name: "fits", text: "hello --world", width: 20, want: []string{"hello --world"}},
		{name: "exact fit", text: "hello --world", width: 13, want: []string{"hello --world"}},
		{name: "one word per line", text: "hello --world", width: 7, want: []string{"hello", "--world"}},
		{name: "long second word", text: "hello --world-war", width: 6, want: []string{"hello", "--world-war"}},
		{name: "greedy fill", text: "hello --word z", width: 9, want: []string{"hello", "--word z"}},
		{
			name:  "mixed",
			text:  "hello z --word z superdyduperdydo",
			width: 9,
			want:  []string{"hello z", "--word z", "superdyduperdydo"},
		},
		{name: "keeps inner spaces", text: `sh -c "echo  hi"`, width: 80, want: []string{`sh -c "echo  hi"`}},
		{name: "extra spaces stay with the word", text: "aa  bb cc", width: 5, want: []string{"aa ", "bb cc"}},
		{name: "tabs are not break points", text: "a\tb c", width: 3, want: []string{"a\tb", "c"}},
		{name: "no limit", text: "a  b", width: 0, want: []string{"a  b"}},
		{name: "empty", text: "", width: 10, want: nil},
		{name: "blank", text: "   ", width: 10, want: nil},
		{name: "wide runes", text: "日本語 テキスト", width: 7, want: []string{"日本語", "テキスト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func TestWrapRoundTrip(t *testing.T) {
	texts := []string{
		"/usr/bin/python3 -m http.server 8000 --bind 127.0.0.1 --directory /srv/www/htdocs/public",
		`bash -c "sleep 10;  echo   done" --login`,
		"  leading and trailing  ",
	}
	for _, text := range texts {
		for width := 1; width <= len(text)+1; width++ {
			assert.Equal(t, text, strings.Join(Wrap(text, width), " "), "%q at width %d", text, width)
		}
	}
}
