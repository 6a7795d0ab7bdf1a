// Package vfs implements the in-memory file tree navigated by the shell.
//
// A tree is made of two node variants: *File, which carries content, and
// *Dir, which owns a set of uniquely named children. Nothing outside this
// package holds node references for long; callers navigate with Path values
// and look nodes up on demand.
package vfs

import (
	"sort"
	"strings"
)

// Node is either a *File or a *Dir.
type Node interface {
	Name() string
	IsDir() bool

	clone() Node
}

// File is a leaf node with string content.
type File struct {
	name    string
	Content string
}

// NewFile creates a file node.
func NewFile(name, content string) *File {
	return &File{name: name, Content: content}
}

func (f *File) Name() string { return f.name }
func (f *File) IsDir() bool  { return false }

func (f *File) clone() Node {
	return &File{name: f.name, Content: f.Content}
}

// Dir is a directory node. Child names are unique.
type Dir struct {
	name     string
	children map[string]Node
}

// NewDir creates an empty directory node.
func NewDir(name string) *Dir {
	return &Dir{
		name:     name,
		children: make(map[string]Node),
	}
}

func (d *Dir) Name() string { return d.name }
func (d *Dir) IsDir() bool  { return true }

func (d *Dir) clone() Node {
	c := NewDir(d.name)
	for name, child := range d.children {
		c.children[name] = child.clone()
	}
	return c
}

// Add inserts a child. It fails with ErrExists if the name is taken and
// with ErrInvalidName for names that cannot appear in a path.
func (d *Dir) Add(n Node) error {
	if !ValidName(n.Name()) {
		return ErrInvalidName
	}
	if _, ok := d.children[n.Name()]; ok {
		return ErrExists
	}
	d.children[n.Name()] = n
	return nil
}

// Remove deletes a child by name.
func (d *Dir) Remove(name string) error {
	if _, ok := d.children[name]; !ok {
		return ErrNotFound
	}
	delete(d.children, name)
	return nil
}

// Child returns the named child.
func (d *Dir) Child(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Children returns the children sorted by name.
func (d *Dir) Children() []Node {
	result := make([]Node, 0, len(d.children))
	for _, n := range d.children {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Len returns the number of children.
func (d *Dir) Len() int { return len(d.children) }

// ValidName reports whether name can be used for a node.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "/")
}
