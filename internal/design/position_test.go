package design

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestNodesForRectangularFootprint(t *testing.T) {
	d := New("chip")
	c := mustAdd(t, d, "Transmon", "Q1") // 535um x 745um at origin

	nodes, err := d.Nodes(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	checks := map[string]Point{
		NodeOrigin: {0, 0},
		NodeTop:    {0, 0.745 / 2},
		NodeBottom: {0, -0.745 / 2},
		NodeLeft:   {-0.535 / 2, 0},
		NodeRight:  {0.535 / 2, 0},
	}
	for name, want := range checks {
		got, ok := nodes[name]
		if !ok {
			t.Fatalf("node %q missing", name)
		}
		if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps {
			t.Errorf("node %s = %+v, want %+v", name, got, want)
		}
	}
}

func TestNodesFollowPosition(t *testing.T) {
	d := New("chip")
	c, err := d.Add("Transmon", "Q1", map[string]string{"pos_x": "2mm", "pos_y": "1mm"})
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := d.Nodes(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := nodes[NodeOrigin]; math.Abs(got.X-2) > eps || math.Abs(got.Y-1) > eps {
		t.Errorf("origin = %+v, want (2, 1)", got)
	}
}

func TestNodesRotated(t *testing.T) {
	d := New("chip")
	c, err := d.Add("Transmon", "Q1", map[string]string{"orientation": "90"})
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := d.Nodes(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	// At 90 degrees the right node rotates onto +Y.
	got := nodes[NodeRight]
	if math.Abs(got.X) > eps || math.Abs(got.Y-0.535/2) > eps {
		t.Errorf("rotated right node = %+v", got)
	}
}

func TestPositionMovesNodeToTarget(t *testing.T) {
	d := New("chip")
	c := mustAdd(t, d, "Transmon", "Q1")

	if err := d.Position(c.ID, NodeTop, 3, 4); err != nil {
		t.Fatal(err)
	}
	nodes, err := d.Nodes(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	got := nodes[NodeTop]
	if math.Abs(got.X-3) > 1e-6 || math.Abs(got.Y-4) > 1e-6 {
		t.Errorf("top after Position = %+v, want (3, 4)", got)
	}
}

func TestPositionUnknownNode(t *testing.T) {
	d := New("chip")
	c := mustAdd(t, d, "Transmon", "Q1")
	if err := d.Position(c.ID, "corner", 0, 0); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	d := New("chip")
	c, err := d.Add("Bandage", "B1", map[string]string{"pos_x": "1mm"}) // 100um x 200um
	if err != nil {
		t.Fatal(err)
	}
	min, max, err := d.Bounds(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(min.X-0.95) > eps || math.Abs(max.X-1.05) > eps {
		t.Errorf("x bounds = %v..%v", min.X, max.X)
	}
	if math.Abs(min.Y+0.1) > eps || math.Abs(max.Y-0.1) > eps {
		t.Errorf("y bounds = %v..%v", min.Y, max.Y)
	}
}
