package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NERVsystems/nathterm/internal/vfs"
)

func registerFS(r *Registry) {
	r.MustRegister(Command{
		Name:     "ls",
		Synopsis: "ls [-l]",
		Summary:  "List files",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     runLs,
	})
	r.MustRegister(Command{
		Name:     "cd",
		Synopsis: "cd [dir]",
		Summary:  "Change directory",
		Category: CategorySystem,
		Usage:    "cd [directory]",
		MinArgs:  1,
		Kind:     KindSync,
		Sync:     runCd,
	})
	r.MustRegister(Command{
		Name:     "cat",
		Synopsis: "cat [file]",
		Summary:  "Read file",
		Category: CategorySystem,
		MinArgs:  1,
		Kind:     KindSync,
		Sync:     runCat,
	})
	r.MustRegister(Command{
		Name:     "pwd",
		Synopsis: "pwd",
		Summary:  "Working directory",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     func(c *Call) Content { return Text(c.Session.Cwd().String()) },
	})
}

const emptyDir = "Directory is empty."

func runLs(c *Call) Content {
	s := c.Session
	var target string
	for _, a := range c.Args {
		if !strings.HasPrefix(a, "-") {
			target = a
			break
		}
	}

	var dir *vfs.Dir
	if target == "" {
		d, err := s.fs.Dir(s.Cwd())
		if err != nil {
			return Text(emptyDir)
		}
		dir = d
	} else {
		_, node, err := s.fs.Resolve(target, s.Cwd())
		if err != nil {
			return Text(fmt.Sprintf("ls: cannot access '%s': No such file or directory", target))
		}
		d, ok := node.(*vfs.Dir)
		if !ok {
			return Listing{{Name: node.Name()}}
		}
		dir = d
	}

	if dir.Len() == 0 {
		return Text(emptyDir)
	}
	var items Listing
	for _, child := range dir.Children() {
		items = append(items, Item{Name: child.Name(), Dir: child.IsDir()})
	}
	return items
}

func runCd(c *Call) Content {
	s := c.Session
	arg := c.Arg(0)
	p, _, err := s.fs.ResolveDir(arg, s.Cwd())
	switch {
	case errors.Is(err, vfs.ErrNotDir):
		return Text("cd: not a directory: " + arg)
	case err != nil:
		return Text("cd: no such file or directory: " + arg)
	}
	s.setCwd(p)
	return Text("")
}

func runCat(c *Call) Content {
	s := c.Session
	arg := c.Arg(0)
	_, node, err := s.fs.Resolve(arg, s.Cwd())
	if err != nil {
		return Text(fmt.Sprintf("cat: %s: No such file or directory", arg))
	}
	f, ok := node.(*vfs.File)
	if !ok {
		return Text(fmt.Sprintf("cat: %s: Is a directory", arg))
	}
	return Document{Name: f.Name(), Body: f.Content}
}
