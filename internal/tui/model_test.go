package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/w31r4/ptree/internal/process"
	"github.com/w31r4/ptree/internal/tree"
)

func testSnapshot() *process.Snapshot {
	return &process.Snapshot{
		CurrentUser: "u1",
		Records: []process.Record{
			{PID: 1, ParentPID: 0, Owner: "root", Cmdline: "init"},
			{PID: 2, ParentPID: 1, Owner: "u1", Cmdline: "bash"},
			{PID: 3, ParentPID: 2, Owner: "u1", Cmdline: "vim main.go"},
			{PID: 4, ParentPID: 1, Owner: "u2", Cmdline: "firefox"},
			{PID: 5, ParentPID: 4, Owner: "u2", Cmdline: "Web Content"},
		},
	}
}

func sized(m model) model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(model)
}

func typeKeys(m model, keys string) model {
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func TestUpdateWindowSizeRenders(t *testing.T) {
	m := newModel(testSnapshot(), Options{Filter: tree.FilterOptions{User: "u1"}})
	if m.View() != "Loading process tree..." {
		t.Fatalf("expected loading view before the first resize, got %q", m.View())
	}

	m = sized(m)
	if m.shown != 3 {
		t.Errorf("expected 3 processes for u1, but got %d", m.shown)
	}
	if m.viewport.Height != 22 {
		t.Errorf("viewport height should be 22, but got %d", m.viewport.Height)
	}
	if !strings.Contains(m.View(), "└─ 3 vim main.go") {
		t.Errorf("expected rendered tree in view, got:\n%s", m.View())
	}
}

func TestUpdateFilter(t *testing.T) {
	m := sized(newModel(testSnapshot(), Options{Filter: tree.FilterOptions{AllUsers: true}}))
	if m.shown != 5 {
		t.Fatalf("expected all 5 processes, but got %d", m.shown)
	}

	m = typeKeys(m, "/fire")
	if !m.textInput.Focused() {
		t.Fatal("filter input should be focused after /")
	}
	if m.filter.Name != "fire" {
		t.Errorf("filter should be %q, but got %q", "fire", m.filter.Name)
	}
	if m.shown != 3 {
		t.Errorf("expected init, firefox and its child, but got %d", m.shown)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.textInput.Focused() {
		t.Error("enter should leave the filter input")
	}

	m = typeKeys(m, "x")
	if m.filter.Name != "" || m.shown != 5 {
		t.Errorf("x should clear the filter, got %q with %d shown", m.filter.Name, m.shown)
	}
}

func TestUpdateToggleAllUsers(t *testing.T) {
	m := sized(newModel(testSnapshot(), Options{Filter: tree.FilterOptions{User: "u1"}}))

	m = typeKeys(m, "a")
	if !m.filter.AllUsers || m.shown != 5 {
		t.Errorf("a should show all users, got all=%v shown=%d", m.filter.AllUsers, m.shown)
	}

	m = typeKeys(m, "a")
	if m.filter.AllUsers || m.shown != 3 {
		t.Errorf("a should toggle back, got all=%v shown=%d", m.filter.AllUsers, m.shown)
	}
}

func TestNoMatchSuggestions(t *testing.T) {
	m := sized(newModel(testSnapshot(), Options{Filter: tree.FilterOptions{AllUsers: true}}))
	m = typeKeys(m, "/frfx")

	if m.shown != 0 {
		t.Fatalf("expected no substring matches, but got %d", m.shown)
	}
	if len(m.suggestions) == 0 || m.suggestions[0] != "firefox" {
		t.Fatalf("expected firefox as closest suggestion, got %v", m.suggestions)
	}
	if !strings.Contains(m.View(), "no matches, closest: firefox") {
		t.Errorf("footer should list suggestions, got:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := sized(newModel(testSnapshot(), Options{}))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should keep short strings, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate(%q, 5) = %q", "abcdefghij", got)
	}
}
