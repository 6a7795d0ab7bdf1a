package vfs

import (
	"fmt"
)

// FS owns one tree. All lookups and future mutations go through it.
type FS struct {
	root *Dir
}

// New wraps an existing root directory.
func New(root *Dir) *FS {
	return &FS{root: root}
}

// RootPath returns the path naming the root alone.
func (fs *FS) RootPath() Path { return Path{fs.root.Name()} }

// Lookup walks p from the root. It returns ErrNotFound when a segment is
// missing or when an intermediate node is a file.
func (fs *FS) Lookup(p Path) (Node, error) {
	if len(p) == 0 || p[0] != fs.root.Name() {
		return nil, ErrNotFound
	}
	var cur Node = fs.root
	for _, name := range p[1:] {
		dir, ok := cur.(*Dir)
		if !ok {
			return nil, ErrNotFound
		}
		child, ok := dir.Child(name)
		if !ok {
			return nil, ErrNotFound
		}
		cur = child
	}
	return cur, nil
}

// Resolve turns expr into an absolute path relative to cwd and checks that
// it exists. Resolution has no side effects.
func (fs *FS) Resolve(expr string, cwd Path) (Path, Node, error) {
	if len(cwd) == 0 {
		cwd = fs.RootPath()
	}
	p := cwd.Join(expr)
	n, err := fs.Lookup(p)
	if err != nil {
		return nil, nil, err
	}
	return p, n, nil
}

// ResolveDir is Resolve restricted to directories. A path that names a
// file fails with ErrNotDir.
func (fs *FS) ResolveDir(expr string, cwd Path) (Path, *Dir, error) {
	p, n, err := fs.Resolve(expr, cwd)
	if err != nil {
		return nil, nil, err
	}
	dir, ok := n.(*Dir)
	if !ok {
		return nil, nil, ErrNotDir
	}
	return p, dir, nil
}

// Dir returns the directory at p.
func (fs *FS) Dir(p Path) (*Dir, error) {
	n, err := fs.Lookup(p)
	if err != nil {
		return nil, err
	}
	dir, ok := n.(*Dir)
	if !ok {
		return nil, ErrNotDir
	}
	return dir, nil
}

// Mkdir creates an empty directory named name inside the directory at parent.
func (fs *FS) Mkdir(parent Path, name string) error {
	dir, err := fs.Dir(parent)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", parent.Join(name), err)
	}
	return dir.Add(NewDir(name))
}

// WriteFile creates or replaces a file inside the directory at parent.
// Replacing a directory is refused with ErrIsDir.
func (fs *FS) WriteFile(parent Path, name, content string) error {
	dir, err := fs.Dir(parent)
	if err != nil {
		return fmt.Errorf("write %s: %w", parent.Join(name), err)
	}
	if existing, ok := dir.Child(name); ok {
		f, isFile := existing.(*File)
		if !isFile {
			return ErrIsDir
		}
		f.Content = content
		return nil
	}
	return dir.Add(NewFile(name, content))
}

// WalkFunc is called for every node in depth-first, name-sorted order.
type WalkFunc func(p Path, n Node) error

// Walk visits every node of the tree, starting with the root.
func (fs *FS) Walk(fn WalkFunc) error {
	return walk(fs.RootPath(), fs.root, fn)
}

func walk(p Path, n Node, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		return err
	}
	dir, ok := n.(*Dir)
	if !ok {
		return nil
	}
	for _, child := range dir.Children() {
		if err := walk(append(p.Clone(), child.Name()), child, fn); err != nil {
			return err
		}
	}
	return nil
}
