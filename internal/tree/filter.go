package tree

import (
	"strings"
)

// FilterOptions selects which processes survive Filter.
type FilterOptions struct {
	// User is the invoking user's id. Only processes it owns are kept unless
	// AllUsers is set.
	User     string
	AllUsers bool

	// Name, when not empty, keeps processes whose command line contains it
	// (case-sensitive) together with all of their descendants.
	Name string
}

// Active reports whether the options remove anything at all.
func (o FilterOptions) Active() bool {
	return !o.AllUsers || o.Name != ""
}

// Filter derives a forest holding only the processes selected by opts. Every
// kept process keeps its chain of ancestors so the result stays connected to
// the original roots. The user filter runs first; the name filter then looks
// for matches among its survivors and pulls in each match's complete subtree,
// including descendants owned by other users. Without active options f is
// returned unchanged. A filter that matches nothing yields an empty forest.
func (f *Forest) Filter(opts FilterOptions) *Forest {
	if !opts.Active() {
		return f
	}

	eligible := func(*Node) bool { return true }
	if !opts.AllUsers {
		owned := f.derive(func(n *Node) bool { return n.Owner == opts.User }, false)
		if opts.Name == "" {
			return owned
		}
		eligible = owned.Contains
	}

	return f.derive(func(n *Node) bool {
		return eligible(n) && strings.Contains(n.Cmdline, opts.Name)
	}, true)
}

// derive builds a view of f in two passes. The first pass marks, bottom-up,
// every node whose subtree holds a keeper. The second rebuilds top-down,
// keeping marked nodes and, when pull is set, everything below a keeper.
func (f *Forest) derive(keeper func(*Node) bool, pull bool) *Forest {
	seeded := make([]bool, len(f.nodes))
	marked := make([]bool, len(f.nodes))

	var mark func(i int) bool
	mark = func(i int) bool {
		seeded[i] = keeper(&f.nodes[i])
		found := seeded[i]
		for _, c := range f.children[i] {
			if mark(c) {
				found = true
			}
		}
		marked[i] = found
		return found
	}
	for _, r := range f.roots {
		mark(r)
	}

	out := &Forest{
		nodes:    f.nodes,
		byPID:    f.byPID,
		children: make([][]int, len(f.nodes)),
		member:   make([]bool, len(f.nodes)),
	}

	var keep func(i int, pulled bool)
	keep = func(i int, pulled bool) {
		out.member[i] = true
		out.size++
		pulled = pulled || (pull && seeded[i])
		for _, c := range f.children[i] {
			if pulled || marked[c] {
				out.children[i] = append(out.children[i], c)
				keep(c, pulled)
			}
		}
	}
	for _, r := range f.roots {
		if marked[r] {
			out.roots = append(out.roots, r)
			keep(r, false)
		}
	}

	return out
}
