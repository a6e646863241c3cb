package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"simple-panels/layout"
	"simple-panels/log"
)

//go:embed default_layout.yaml
var defaultLayoutYAML []byte

// GroupDecl declares one panel group in a layout file.
type GroupDecl struct {
	Name        string      `yaml:"name"`
	Orientation string      `yaml:"orientation"`
	StorageID   string      `yaml:"storage_id"`
	Panels      []PanelDecl `yaml:"panels"`
}

// PanelDecl declares one panel. A panel either shows Body or hosts a nested
// Group.
type PanelDecl struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`

	DefaultSize      float64 `yaml:"default_size,omitempty"`
	MinSize          float64 `yaml:"min_size,omitempty"`
	MaxSize          float64 `yaml:"max_size,omitempty"`
	Collapsible      bool    `yaml:"collapsible,omitempty"`
	CollapsedSize    float64 `yaml:"collapsed_size,omitempty"`
	DefaultCollapsed bool    `yaml:"default_collapsed,omitempty"`

	Group *GroupDecl `yaml:"group,omitempty"`
}

// ParseLayout decodes and validates a YAML layout declaration.
func ParseLayout(data []byte) (*GroupDecl, error) {
	var decl GroupDecl
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return &decl, nil
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() *GroupDecl {
	decl, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in layout is invalid: %v", err))
	}
	return decl
}

// LoadLayoutFile reads the layout declared at path. An empty path, or a file
// that cannot be read or parsed, yields the built-in layout.
func LoadLayoutFile(path string) *GroupDecl {
	if path == "" {
		return DefaultLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.WarningLog.Printf("failed to read layout file %s: %v", path, err)
		return DefaultLayout()
	}
	decl, err := ParseLayout(data)
	if err != nil {
		log.ErrorLog.Printf("invalid layout file %s: %v", path, err)
		return DefaultLayout()
	}
	return decl
}

// Validate checks the declaration and every nested group.
func (g *GroupDecl) Validate() error {
	seen := make(map[string]string)
	return g.validate(g.Name, seen)
}

func (g *GroupDecl) validate(path string, storageIDs map[string]string) error {
	if len(g.Panels) == 0 {
		return fmt.Errorf("group %q: no panels", path)
	}
	if _, ok := layout.ParseOrientation(strings.ToLower(g.Orientation)); !ok && g.Orientation != "" {
		return fmt.Errorf("group %q: unknown orientation %q", path, g.Orientation)
	}
	if g.StorageID != "" {
		if other, dup := storageIDs[g.StorageID]; dup {
			return fmt.Errorf("group %q: storage_id %q already used by group %q", path, g.StorageID, other)
		}
		storageIDs[g.StorageID] = path
	}

	ids := make(map[string]bool)
	for i, p := range g.Panels {
		name := p.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		} else if ids[name] {
			return fmt.Errorf("group %q: duplicate panel id %q", path, name)
		}
		ids[name] = true

		for field, v := range map[string]float64{
			"default_size":   p.DefaultSize,
			"min_size":       p.MinSize,
			"max_size":       p.MaxSize,
			"collapsed_size": p.CollapsedSize,
		} {
			if v < 0 || v > layout.TotalSize {
				return fmt.Errorf("group %q panel %q: %s %v out of range", path, name, field, v)
			}
		}
		if p.MaxSize > 0 && p.MinSize > p.MaxSize {
			return fmt.Errorf("group %q panel %q: min_size %v exceeds max_size %v", path, name, p.MinSize, p.MaxSize)
		}
		if p.DefaultCollapsed && !p.Collapsible {
			return fmt.Errorf("group %q panel %q: default_collapsed requires collapsible", path, name)
		}
		if p.Group != nil {
			if err := p.Group.validate(path+"/"+name, storageIDs); err != nil {
				return err
			}
		}
	}
	return nil
}

// LayoutOrientation returns the group's axis. An empty orientation is
// horizontal.
func (g *GroupDecl) LayoutOrientation() layout.Orientation {
	o, _ := layout.ParseOrientation(strings.ToLower(g.Orientation))
	return o
}

// PanelSpecs converts the panel declarations for layout.NewGroup.
func (g *GroupDecl) PanelSpecs() []layout.PanelSpec {
	specs := make([]layout.PanelSpec, len(g.Panels))
	for i, p := range g.Panels {
		specs[i] = layout.PanelSpec{
			ID:               p.ID,
			DefaultSize:      p.DefaultSize,
			MinSize:          p.MinSize,
			MaxSize:          p.MaxSize,
			Collapsible:      p.Collapsible,
			CollapsedSize:    p.CollapsedSize,
			DefaultCollapsed: p.DefaultCollapsed,
		}
	}
	return specs
}

// Walk visits g and every nested group depth first.
func (g *GroupDecl) Walk(fn func(*GroupDecl)) {
	fn(g)
	for _, p := range g.Panels {
		if p.Group != nil {
			p.Group.Walk(fn)
		}
	}
}

// StorageIDs returns the storage ids of every group that persists.
func (g *GroupDecl) StorageIDs() []string {
	var ids []string
	g.Walk(func(d *GroupDecl) {
		if d.StorageID != "" {
			ids = append(ids, d.StorageID)
		}
	})
	return ids
}
