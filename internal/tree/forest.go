// Package tree turns a flat process snapshot into an ordered forest of
// parent/child trees and derives filtered views of it.
package tree

import (
	"log/slog"
	"sort"

	"github.com/w31r4/ptree/internal/process"
)

// Node is one process inside a Forest.
type Node struct {
	PID     int32
	Owner   string
	Cmdline string

	index  int
	parent int // arena index, -1 for roots
}

// Forest is an ordered collection of process trees. All nodes are stored in a
// single arena sorted by pid and linked by index, so a node's parent is a plain
// lookup and never a second owner. Filtered forests share the arena of the
// forest they were derived from.
type Forest struct {
	nodes    []Node
	byPID    map[int32]int
	roots    []int
	children [][]int

	// member is nil when every arena node belongs to the forest.
	member []bool
	size   int
}

// Build links normalized records into a forest. A record becomes a root when
// its parent pid is not positive, is absent from records, or when linking it
// would close a cycle. Roots and every children list are in ascending pid order.
func Build(records map[int32]process.Record) *Forest {
	pids := make([]int32, 0, len(records))
	for pid := range records {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	f := &Forest{
		nodes:    make([]Node, len(pids)),
		byPID:    make(map[int32]int, len(pids)),
		children: make([][]int, len(pids)),
		size:     len(pids),
	}
	for i, pid := range pids {
		rec := records[pid]
		f.nodes[i] = Node{PID: pid, Owner: rec.Owner, Cmdline: rec.Cmdline, index: i, parent: -1}
		f.byPID[pid] = i
	}

	for i := range f.nodes {
		ppid := records[f.nodes[i].PID].ParentPID
		if ppid <= 0 {
			continue
		}
		p, ok := f.byPID[ppid]
		if !ok {
			slog.Debug("Parent not in snapshot, treating as root", "pid", f.nodes[i].PID, "ppid", ppid)
			continue
		}
		if f.isAncestorOrSelf(i, p) {
			slog.Debug("Parent link would form a cycle, treating as root", "pid", f.nodes[i].PID, "ppid", ppid)
			continue
		}
		f.nodes[i].parent = p
	}

	for i := range f.nodes {
		if p := f.nodes[i].parent; p >= 0 {
			f.children[p] = append(f.children[p], i)
		} else {
			f.roots = append(f.roots, i)
		}
	}

	return f
}

// isAncestorOrSelf reports whether target is start or one of its linked
// ancestors. Only established links are followed and those never form a
// cycle, so the walk always ends at a root.
func (f *Forest) isAncestorOrSelf(target, start int) bool {
	for cur := start; cur >= 0; cur = f.nodes[cur].parent {
		if cur == target {
			return true
		}
	}
	return false
}

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	return f.size
}

// Roots returns the root nodes in ascending pid order.
func (f *Forest) Roots() []*Node {
	return f.resolve(f.roots)
}

// Children returns the children of n in ascending pid order.
func (f *Forest) Children(n *Node) []*Node {
	if !f.Contains(n) {
		return nil
	}
	return f.resolve(f.children[n.index])
}

// Parent returns the parent of n, or nil when n is a root.
func (f *Forest) Parent(n *Node) *Node {
	if !f.Contains(n) || n.parent < 0 {
		return nil
	}
	return &f.nodes[n.parent]
}

// Contains reports whether n is part of this forest.
func (f *Forest) Contains(n *Node) bool {
	if n == nil || n.index < 0 || n.index >= len(f.nodes) || &f.nodes[n.index] != n {
		return false
	}
	return f.member == nil || f.member[n.index]
}

// Lookup returns the node for pid if it is part of the forest.
func (f *Forest) Lookup(pid int32) (*Node, bool) {
	i, ok := f.byPID[pid]
	if !ok || (f.member != nil && !f.member[i]) {
		return nil, false
	}
	return &f.nodes[i], true
}

// Walk visits every node depth-first in pre-order, siblings in pid order.
// Returning false from fn skips the node's subtree.
func (f *Forest) Walk(fn func(n *Node, depth int) bool) {
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if !fn(&f.nodes[i], depth) {
			return
		}
		for _, c := range f.children[i] {
			visit(c, depth+1)
		}
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}

func (f *Forest) resolve(indexes []int) []*Node {
	if len(indexes) == 0 {
		return nil
	}
	out := make([]*Node, len(indexes))
	for i, idx := range indexes {
		out[i] = &f.nodes[idx]
	}
	return out
}
