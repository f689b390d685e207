package vfs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RootSegment is the sentinel that starts every path stack.
const RootSegment = "/"

// NoEntriesMessage is what List returns for an empty directory.
const NoEntriesMessage = "No files or directories found."

// ContentReader reads file content by root-relative path. *archive.Zip and
// any fs.ReadFileFS satisfy it.
type ContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// MkdirOutcome reports what Mkdir did.
type MkdirOutcome int

const (
	Created MkdirOutcome = iota
	AlreadyExists
)

// Navigator holds the tree and the current path stack.
type Navigator struct {
	tree   *Tree
	reader ContentReader
	path   []string
}

// NewNavigator returns a navigator positioned at the root of tree.
func NewNavigator(tree *Tree, reader ContentReader) *Navigator {
	return &Navigator{
		tree:   tree,
		reader: reader,
		path:   []string{RootSegment},
	}
}

// Tree returns the navigator's tree.
func (n *Navigator) Tree() *Tree {
	return n.tree
}

// Path returns a copy of the path stack, root sentinel first.
func (n *Navigator) Path() []string {
	path := make([]string, len(n.path))
	copy(path, n.path)
	return path
}

// ResolveCurrentDirectory walks the tree along the path stack. The result is
// normally a directory, but can be a file leaf after a Cd into a file.
func (n *Navigator) ResolveCurrentDirectory() (*Node, error) {
	current := n.tree.root
	for _, seg := range n.path[1:] {
		child, ok := current.Child(seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, n.joined(""))
		}
		current = child
	}
	return current, nil
}

// Mkdir creates an empty directory in the current directory. An existing child
// of either kind is left alone and reported as AlreadyExists.
func (n *Navigator) Mkdir(name string) (MkdirOutcome, error) {
	if name == "." || name == ".." || strings.Contains(name, "/") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	current, err := n.ResolveCurrentDirectory()
	if err != nil {
		return 0, err
	}
	if !current.IsDir() {
		return 0, ErrNotDirectory
	}
	if _, exists := current.children[name]; exists {
		return AlreadyExists, nil
	}
	current.addChild(name, newDirectory())
	return Created, nil
}

// List returns the current directory's children in insertion order, with
// directories suffixed by "/". An empty directory yields NoEntriesMessage; a
// file leaf yields nothing.
func (n *Navigator) List() ([]string, error) {
	current, err := n.ResolveCurrentDirectory()
	if err != nil {
		return nil, err
	}
	if !current.IsDir() {
		return []string{}, nil
	}
	if current.Len() == 0 {
		return []string{NoEntriesMessage}, nil
	}

	names := make([]string, 0, current.Len())
	for _, name := range current.order {
		if current.children[name].IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

// Cd changes the current directory. ".." pops one segment but never the root.
// Any existing child name is pushed, including file leaves.
func (n *Navigator) Cd(name string) error {
	if name == ".." {
		if len(n.path) > 1 {
			n.path = n.path[:len(n.path)-1]
		}
		return nil
	}
	current, err := n.ResolveCurrentDirectory()
	if err != nil {
		return err
	}
	if _, ok := current.Child(name); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	n.path = append(n.path, name)
	return nil
}

// ReadFile returns the text of the named child of the current directory. Any
// failure, including content that is not UTF-8, is reported as ErrNotFound.
func (n *Navigator) ReadFile(name string) (string, error) {
	current, err := n.ResolveCurrentDirectory()
	if err != nil {
		return "", err
	}
	if _, ok := current.Child(name); !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := n.reader.ReadFile(n.joined(name))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, name, ErrNotText)
	}
	return string(data), nil
}

// WordCount counts lines, words and characters of the named file.
func (n *Navigator) WordCount(name string) (Counts, error) {
	content, err := n.ReadFile(name)
	if err != nil {
		return Counts{}, err
	}
	return Count(content), nil
}

// Tac returns the named file's lines in reverse order, joined by "\n".
func (n *Navigator) Tac(name string) (string, error) {
	content, err := n.ReadFile(name)
	if err != nil {
		return "", err
	}
	return Reverse(content), nil
}

// joined returns the root-relative path of name inside the current directory.
func (n *Navigator) joined(name string) string {
	segments := append([]string{}, n.path[1:]...)
	if name != "" {
		segments = append(segments, name)
	}
	return strings.Join(segments, "/")
}
