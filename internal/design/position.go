package design

import (
	"fmt"
	"math"

	"github.com/qnl/chipsmith/internal/library"
	"github.com/qnl/chipsmith/internal/units"
)

// ErrUnknownNode reports a node name the component's footprint doesn't have.
var ErrUnknownNode = fmt.Errorf("design: unknown node")

// Node names every rectangular footprint exposes.
const (
	NodeOrigin = "origin"
	NodeTop    = "top"
	NodeBottom = "bottom"
	NodeLeft   = "left"
	NodeRight  = "right"
)

// Point is a global coordinate in millimetres.
type Point struct {
	X, Y float64
}

// Nodes computes the component's anchor points in global coordinates from
// its footprint extents, orientation and position. Components whose template
// declares no footprint expose only the origin.
func (d *Design) Nodes(id int) (map[string]Point, error) {
	c, err := d.ByID(id)
	if err != nil {
		return nil, err
	}
	tpl, err := library.Lookup(c.Class)
	if err != nil {
		return nil, err
	}

	pos, err := c.position()
	if err != nil {
		return nil, err
	}

	nodes := map[string]Point{NodeOrigin: {}}
	if tpl.WidthOpt != "" && tpl.HeightOpt != "" {
		w, err := c.optionLength(tpl.WidthOpt)
		if err != nil {
			return nil, err
		}
		h, err := c.optionLength(tpl.HeightOpt)
		if err != nil {
			return nil, err
		}
		nodes[NodeTop] = Point{0, h / 2}
		nodes[NodeBottom] = Point{0, -h / 2}
		nodes[NodeLeft] = Point{-w / 2, 0}
		nodes[NodeRight] = Point{w / 2, 0}
	}

	theta := 0.0
	if raw, ok := c.Options.Get("orientation"); ok {
		deg, err := units.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("component %q: orientation: %w", c.Name, err)
		}
		theta = deg * math.Pi / 180
	}

	sin, cos := math.Sin(theta), math.Cos(theta)
	for k, p := range nodes {
		nodes[k] = Point{
			X: p.X*cos - p.Y*sin + pos.X,
			Y: p.X*sin + p.Y*cos + pos.Y,
		}
	}
	return nodes, nil
}

// Position moves a component so the named node lands at (x, y), rewriting
// pos_x/pos_y by the required shift.
func (d *Design) Position(id int, node string, x, y float64) error {
	c, err := d.ByID(id)
	if err != nil {
		return err
	}
	nodes, err := d.Nodes(id)
	if err != nil {
		return err
	}
	cur, ok := nodes[node]
	if !ok {
		return fmt.Errorf("%w: %q on component %q", ErrUnknownNode, node, c.Name)
	}
	pos, err := c.position()
	if err != nil {
		return err
	}
	c.Options.Set("pos_x", units.Format(pos.X+(x-cur.X)))
	c.Options.Set("pos_y", units.Format(pos.Y+(y-cur.Y)))
	c.UpdatedAt = now()
	return nil
}

// Bounds returns the component's axis-aligned footprint (min, max corners)
// ignoring orientation, for viewer scaling. Components without a footprint
// report a point at their position.
func (d *Design) Bounds(id int) (Point, Point, error) {
	c, err := d.ByID(id)
	if err != nil {
		return Point{}, Point{}, err
	}
	tpl, err := library.Lookup(c.Class)
	if err != nil {
		return Point{}, Point{}, err
	}
	pos, err := c.position()
	if err != nil {
		return Point{}, Point{}, err
	}
	var w, h float64
	if tpl.WidthOpt != "" && tpl.HeightOpt != "" {
		if w, err = c.optionLength(tpl.WidthOpt); err != nil {
			return Point{}, Point{}, err
		}
		if h, err = c.optionLength(tpl.HeightOpt); err != nil {
			return Point{}, Point{}, err
		}
	}
	min := Point{pos.X - w/2, pos.Y - h/2}
	max := Point{pos.X + w/2, pos.Y + h/2}
	return min, max, nil
}

func (c *Component) position() (Point, error) {
	x, err := c.optionLength("pos_x")
	if err != nil {
		return Point{}, err
	}
	y, err := c.optionLength("pos_y")
	if err != nil {
		return Point{}, err
	}
	return Point{x, y}, nil
}

func (c *Component) optionLength(key string) (float64, error) {
	raw, ok := c.Options.Get(key)
	if !ok {
		return 0, fmt.Errorf("component %q: missing option %q", c.Name, key)
	}
	v, err := units.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("component %q: option %q: %w", c.Name, key, err)
	}
	return v, nil
}
