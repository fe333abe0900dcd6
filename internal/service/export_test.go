package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qnl/chipsmith/internal/design"
)

func exportFixture(t *testing.T) *design.Design {
	t.Helper()
	d := design.New("demo")
	q, err := d.Add("Transmon", "Q1", map[string]string{"width": "600um"})
	if err != nil {
		t.Fatal(err)
	}
	j, err := d.Add("ManhattanJunction", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddDependency(j.ID, q.ID); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestExportImportRoundTrip(t *testing.T) {
	var svc ExportService
	d := exportFixture(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, d); err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := svc.Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got.Name != "demo" || got.UUID != d.UUID {
		t.Errorf("header = %q %q", got.Name, got.UUID)
	}
	if got.Len() != 2 {
		t.Fatalf("len = %d", got.Len())
	}
	q1, err := got.ByName("Q1")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := q1.Options.Get("width"); v != "600um" {
		t.Errorf("width = %q", v)
	}
	// Option order survives.
	if got, want := q1.Options.Keys()[0], "pos_x"; got != want {
		t.Errorf("first key = %q, want %q", got, want)
	}
	j1 := got.Components()[1]
	if deps := got.Dependencies(j1.ID); len(deps) != 1 || deps[0] != q1.ID {
		t.Errorf("dependencies = %v", deps)
	}
}

func TestExportKeepsBurnedIDs(t *testing.T) {
	var svc ExportService
	d := exportFixture(t)
	q3, err := d.Add("Transmon", "Q3", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteID(q3.ID); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := svc.Export(&buf, d); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Import(&buf)
	if err != nil {
		t.Fatal(err)
	}
	c, err := got.Add("Transmon", "Q4", nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != q3.ID+1 {
		t.Errorf("id after round trip = %d, want %d; deleted ids must stay burned", c.ID, q3.ID+1)
	}
}

func TestExportOrdering(t *testing.T) {
	var svc ExportService
	d := exportFixture(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, d); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	// pos_x is declared before width in the template; sorted marshalling
	// would reverse them.
	if strings.Index(text, "pos_x") > strings.Index(text, "width") {
		t.Errorf("option order not preserved:\n%s", text)
	}
	if strings.Index(text, "Q1") > strings.Index(text, "ManhattanJunction") {
		t.Errorf("component order not preserved:\n%s", text)
	}
}

func TestImportRejectsMissingName(t *testing.T) {
	var svc ExportService
	_, err := svc.Import(strings.NewReader("design:\n  uuid: x\ncomponents: []\n"))
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestImportDuplicateComponentName(t *testing.T) {
	var svc ExportService
	doc := `design:
  name: demo
components:
  - id: 1
    name: Q1
    class: Transmon
    options: {}
  - id: 2
    name: Q1
    class: Transmon
    options: {}
`
	if _, err := svc.Import(strings.NewReader(doc)); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}
