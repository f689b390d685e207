package vfs

import (
	"fmt"
	"strings"

	"github.com/dendrascience/zipshell/archive"
)

// Kind tells directories and files apart.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a directory or a file leaf. Only directories have children.
type Node struct {
	kind     Kind
	children map[string]*Node
	order    []string // child names in insertion order
}

func newDirectory() *Node {
	return &Node{kind: KindDirectory, children: make(map[string]*Node)}
}

func newFile() *Node {
	return &Node{kind: KindFile}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.kind == KindDirectory
}

// Child returns the named child. Files never have children.
func (n *Node) Child(name string) (*Node, bool) {
	if n.kind != KindDirectory {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Names returns the child names in insertion order.
func (n *Node) Names() []string {
	names := make([]string, len(n.order))
	copy(names, n.order)
	return names
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.order)
}

// Equal reports whether n and other describe the same structure: same kinds
// and, for directories, the same child names mapping to equal subtrees.
// Child order is ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind || len(n.children) != len(other.children) {
		return false
	}
	for name, child := range n.children {
		oc, ok := other.children[name]
		if !ok || !child.Equal(oc) {
			return false
		}
	}
	return true
}

func (n *Node) addChild(name string, child *Node) {
	if _, exists := n.children[name]; !exists {
		n.order = append(n.order, name)
	}
	n.children[name] = child
}

// promote turns a file leaf into an empty directory in place.
func (n *Node) promote() {
	n.kind = KindDirectory
	n.children = make(map[string]*Node)
	n.order = nil
}

// Problem records an entry that Build skipped or had to reconcile.
type Problem struct {
	Path   string
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Reason)
}

// Tree is the directory tree built from an archive's entry list.
type Tree struct {
	root     *Node
	problems []Problem
}

// NewTree returns a tree holding only an empty root directory.
func NewTree() *Tree {
	return &Tree{root: newDirectory()}
}

// Build constructs a tree from entries. The result does not depend on entry
// order, and repeated entries are no-ops.
//
// When a file and a directory claim the same path the directory wins. Entries
// whose path is empty or contains a ".." segment are skipped. Both cases are
// reported by Problems.
func Build(entries []archive.Entry) *Tree {
	t := NewTree()
	for _, e := range entries {
		t.Add(e)
	}
	return t
}

// Root returns the root directory.
func (t *Tree) Root() *Node {
	return t.root
}

// Problems returns the entries Build skipped or reconciled, in input order.
func (t *Tree) Problems() []Problem {
	problems := make([]Problem, len(t.problems))
	copy(problems, t.problems)
	return problems
}

// Add inserts a single archive entry into the tree.
func (t *Tree) Add(e archive.Entry) {
	segments, err := archive.SplitName(e.Path)
	if err != nil {
		t.problems = append(t.problems, Problem{Path: e.Path, Reason: err.Error()})
		return
	}

	current := t.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := current.children[seg]
		switch {
		case !ok:
			child = newDirectory()
			current.addChild(seg, child)
		case child.kind == KindFile:
			t.conflict(e.Path, seg)
			child.promote()
		}
		current = child
	}

	last := segments[len(segments)-1]
	existing, ok := current.children[last]
	switch {
	case !ok && e.IsDir:
		current.addChild(last, newDirectory())
	case !ok:
		current.addChild(last, newFile())
	case e.IsDir && existing.kind == KindFile:
		t.conflict(e.Path, last)
		existing.promote()
	case !e.IsDir && existing.kind == KindDirectory:
		t.conflict(e.Path, last)
	}
}

func (t *Tree) conflict(path, name string) {
	t.problems = append(t.problems, Problem{
		Path:   path,
		Reason: fmt.Sprintf("%q is both a file and a directory; keeping the directory", name),
	})
}

// Walk calls fn for every node below the root, depth first, in insertion
// order. The path passed to fn is root-relative and slash-separated. Walk stops
// at the first error fn returns.
func (t *Tree) Walk(fn func(path string, n *Node) error) error {
	return walk(t.root, nil, fn)
}

func walk(n *Node, prefix []string, fn func(string, *Node) error) error {
	for _, name := range n.order {
		child := n.children[name]
		segments := append(prefix[:len(prefix):len(prefix)], name)
		if err := fn(strings.Join(segments, "/"), child); err != nil {
			return err
		}
		if child.kind == KindDirectory {
			if err := walk(child, segments, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
