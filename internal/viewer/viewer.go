// Package viewer renders a chip design as a character-grid plan: one marker
// letter per component over its scaled footprint, plus a legend. It is a
// catalog sketch, not CAD output.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qnl/chipsmith/internal/design"
)

// ErrClosed reports use of a viewer after Close.
var ErrClosed = fmt.Errorf("viewer: closed")

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Viewer holds the viewport state between refreshes.
type Viewer struct {
	width  int
	height int

	min, max design.Point
	scaled   bool
	closed   bool
}

// New creates a viewer with a fixed character viewport.
func New(width, height int) *Viewer {
	if width < 16 {
		width = 16
	}
	if height < 8 {
		height = 8
	}
	return &Viewer{width: width, height: height}
}

// AutoScale fits the viewport extents to the design's bounding box with a
// small margin. An empty design scales to a 1mm square around the origin.
func (v *Viewer) AutoScale(d *design.Design) error {
	if v.closed {
		return ErrClosed
	}
	min := design.Point{X: 0, Y: 0}
	max := design.Point{X: 0, Y: 0}
	first := true
	for _, c := range d.Components() {
		lo, hi, err := d.Bounds(c.ID)
		if err != nil {
			return err
		}
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		if lo.X < min.X {
			min.X = lo.X
		}
		if lo.Y < min.Y {
			min.Y = lo.Y
		}
		if hi.X > max.X {
			max.X = hi.X
		}
		if hi.Y > max.Y {
			max.Y = hi.Y
		}
	}
	// Degenerate extents blow up the cell mapping; pad to at least 1mm.
	if max.X-min.X < 1 {
		mid := (max.X + min.X) / 2
		min.X, max.X = mid-0.5, mid+0.5
	}
	if max.Y-min.Y < 1 {
		mid := (max.Y + min.Y) / 2
		min.Y, max.Y = mid-0.5, mid+0.5
	}
	mx := (max.X - min.X) * 0.05
	my := (max.Y - min.Y) * 0.05
	v.min = design.Point{X: min.X - mx, Y: min.Y - my}
	v.max = design.Point{X: max.X + mx, Y: max.Y + my}
	v.scaled = true
	return nil
}

// Refresh re-renders the plan with the current extents, auto-scaling first
// when the viewport has never been scaled.
func (v *Viewer) Refresh(d *design.Design) (string, error) {
	if v.closed {
		return "", ErrClosed
	}
	if !v.scaled {
		if err := v.AutoScale(d); err != nil {
			return "", err
		}
	}

	grid := make([][]rune, v.height)
	for y := range grid {
		grid[y] = make([]rune, v.width)
		for x := range grid[y] {
			grid[y][x] = '·'
		}
	}

	comps := d.Components()
	legend := make([]string, 0, len(comps))
	for i, c := range comps {
		marker := rune('A' + i%26)
		lo, hi, err := d.Bounds(c.ID)
		if err != nil {
			return "", err
		}
		x0, y0 := v.cell(lo.X, hi.Y)
		x1, y1 := v.cell(hi.X, lo.Y)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if y >= 0 && y < v.height && x >= 0 && x < v.width {
					grid[y][x] = marker
				}
			}
		}
		cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
		legend = append(legend, fmt.Sprintf("%c  #%d %s (%s) @ (%.2f, %.2f) mm",
			marker, c.ID, c.Name, c.Class, cx, cy))
	}

	var plan strings.Builder
	for y, row := range grid {
		if y > 0 {
			plan.WriteByte('\n')
		}
		plan.WriteString(string(row))
	}

	var out strings.Builder
	out.WriteString(titleStyle.Render(fmt.Sprintf("%s — %d component(s)", d.Name, len(comps))))
	out.WriteByte('\n')
	if len(comps) == 0 {
		out.WriteString(frameStyle.Render(emptyStyle.Render(plan.String())))
	} else {
		out.WriteString(frameStyle.Render(plan.String()))
	}
	out.WriteByte('\n')
	out.WriteString(legendStyle.Render(strings.Join(legend, "\n")))
	return out.String(), nil
}

// Close releases the viewer; further calls fail with ErrClosed.
func (v *Viewer) Close() {
	v.closed = true
}

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool { return v.closed }

// cell maps a global coordinate to a grid cell. Y is inverted so larger
// values render nearer the top.
func (v *Viewer) cell(x, y float64) (int, int) {
	fx := (x - v.min.X) / (v.max.X - v.min.X)
	fy := (v.max.Y - y) / (v.max.Y - v.min.Y)
	cx := int(fx * float64(v.width-1))
	cy := int(fy * float64(v.height-1))
	return cx, cy
}
