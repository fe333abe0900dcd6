package service

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/qnl/chipsmith/internal/design"
)

// ExportService round-trips designs through YAML, preserving component
// insertion order and option declaration order.
type ExportService struct{}

type exportDoc struct {
	Design       exportHeader      `yaml:"design"`
	Components   []exportComponent `yaml:"components"`
	Dependencies []exportEdge      `yaml:"dependencies,omitempty"`
}

type exportHeader struct {
	Name      string `yaml:"name"`
	UUID      string `yaml:"uuid"`
	Overwrite bool   `yaml:"overwrite"`
	NextID    int    `yaml:"next_id"`
}

type exportComponent struct {
	ID      int            `yaml:"id"`
	Name    string         `yaml:"name"`
	Class   string         `yaml:"class"`
	Options *orderedValues `yaml:"options"`
}

type exportEdge struct {
	Dependent  int `yaml:"dependent"`
	Dependency int `yaml:"dependency"`
}

// orderedValues marshals an option set as a YAML mapping in declaration
// order, which plain map marshalling would sort away.
type orderedValues struct {
	opts *design.Options
}

func (o *orderedValues) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range o.opts.Keys() {
		v, _ := o.opts.Get(k)
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v},
		)
	}
	return node, nil
}

func (o *orderedValues) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("options: expected mapping, got %v", node.Kind)
	}
	o.opts = design.NewOptions()
	for i := 0; i+1 < len(node.Content); i += 2 {
		o.opts.Set(node.Content[i].Value, node.Content[i+1].Value)
	}
	return nil
}

// Export writes the design as YAML.
func (s *ExportService) Export(w io.Writer, d *design.Design) error {
	doc := exportDoc{
		Design: exportHeader{
			Name:      d.Name,
			UUID:      d.UUID,
			Overwrite: d.OverwriteEnabled(),
			NextID:    d.NextID(),
		},
	}
	for _, c := range d.Components() {
		doc.Components = append(doc.Components, exportComponent{
			ID:      c.ID,
			Name:    c.Name,
			Class:   c.Class,
			Options: &orderedValues{opts: c.Options},
		})
	}
	for _, e := range d.DependencyEdges() {
		doc.Dependencies = append(doc.Dependencies, exportEdge{Dependent: e[0], Dependency: e[1]})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export design %q: %w", d.Name, err)
	}
	return enc.Close()
}

// Import rebuilds a design from exported YAML.
func (s *ExportService) Import(r io.Reader) (*design.Design, error) {
	var doc exportDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("import design: %w", err)
	}
	if doc.Design.Name == "" {
		return nil, fmt.Errorf("import design: missing name")
	}

	d := design.New(doc.Design.Name)
	if doc.Design.UUID != "" {
		d.UUID = doc.Design.UUID
	}
	d.EnableOverwrite(doc.Design.Overwrite)
	for _, c := range doc.Components {
		opts := design.NewOptions()
		if c.Options != nil && c.Options.opts != nil {
			opts = c.Options.opts
		}
		comp := &design.Component{
			ID:      c.ID,
			Name:    c.Name,
			Class:   c.Class,
			Options: opts,
		}
		if err := d.Restore(comp); err != nil {
			return nil, fmt.Errorf("import component %q: %w", c.Name, err)
		}
	}
	for _, e := range doc.Dependencies {
		if err := d.RestoreDependency(e.Dependent, e.Dependency); err != nil {
			return nil, fmt.Errorf("import dependency %d->%d: %w", e.Dependent, e.Dependency, err)
		}
	}
	// Older exports lack next_id; Restore already bumped past the highest
	// component ID, and RestoreNextID never lowers the counter.
	d.RestoreNextID(doc.Design.NextID)
	return d, nil
}
