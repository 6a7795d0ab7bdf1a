package vfs

import "strings"

// Path is a sequence of node names starting with the root's name.
type Path []string

// String renders the path in slash form. The root alone renders as "/".
func (p Path) String() string {
	if len(p) <= 1 {
		return "/"
	}
	return "/" + strings.Join(p[1:], "/")
}

// Base returns the last element of the path.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Clone returns a copy that does not share storage with p.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Equal reports whether both paths name the same location.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Join resolves expr against p without consulting any tree.
// A leading "/" restarts from the root; "." is skipped; ".." pops one
// element but never the root.
func (p Path) Join(expr string) Path {
	if len(p) == 0 {
		return nil
	}
	var next Path
	if strings.HasPrefix(expr, "/") {
		next = Path{p[0]}
	} else {
		next = p.Clone()
	}
	for _, part := range strings.Split(expr, "/") {
		switch part {
		case "", ".":
		case "..":
			if len(next) > 1 {
				next = next[:len(next)-1]
			}
		default:
			next = append(next, part)
		}
	}
	return next
}
