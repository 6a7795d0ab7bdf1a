package vfs

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// NodeSpec is the YAML form of a tree node.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"` // "dir" or "file"
	Content  string     `yaml:"content,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// Template is a validated tree from which fresh per-session trees are built.
type Template struct {
	proto *Dir
}

// DefaultTemplate returns the built-in seed tree.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(defaultSeed)
}

// LoadTemplate reads a seed tree from a YAML file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate parses and validates a YAML seed tree.
func ParseTemplate(data []byte) (*Template, error) {
	var spec NodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return NewTemplate(spec)
}

// NewTemplate validates spec. The root must be a directory.
func NewTemplate(spec NodeSpec) (*Template, error) {
	if spec.Type != "dir" {
		return nil, fmt.Errorf("seed root %q: %w", spec.Name, ErrNotDir)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("seed root: %w", ErrInvalidName)
	}
	root, err := build(spec)
	if err != nil {
		return nil, err
	}
	return &Template{proto: root.(*Dir)}, nil
}

// Build returns a new tree owned by the caller. Trees built from the same
// template share nothing.
func (t *Template) Build() *FS {
	return New(t.proto.clone().(*Dir))
}

func build(spec NodeSpec) (Node, error) {
	switch spec.Type {
	case "file":
		if len(spec.Children) > 0 {
			return nil, fmt.Errorf("seed file %q has children: %w", spec.Name, ErrNotDir)
		}
		return NewFile(spec.Name, spec.Content), nil
	case "dir":
		if spec.Content != "" {
			return nil, fmt.Errorf("seed directory %q has content: %w", spec.Name, ErrIsDir)
		}
		dir := NewDir(spec.Name)
		for _, cs := range spec.Children {
			child, err := build(cs)
			if err != nil {
				return nil, err
			}
			if err := dir.Add(child); err != nil {
				return nil, fmt.Errorf("seed %s/%s: %w", spec.Name, cs.Name, err)
			}
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("seed node %q: unknown type %q", spec.Name, spec.Type)
	}
}
