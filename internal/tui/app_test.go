package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qnl/chipsmith/internal/config"
	"github.com/qnl/chipsmith/internal/design"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		Viewer: config.ViewerConfig{Width: 40, Height: 10},
	}
	return New(context.Background(), cfg, Services{}, design.New("test"))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		a.Update(key(k))
	}
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestAddComponentFlow(t *testing.T) {
	a := testApp(t)

	press(a, "a") // open class picker
	if a.modal != modalAddClass {
		t.Fatalf("modal = %q", a.modal)
	}
	press(a, "enter") // choose first class (Transmon)
	if a.modal != modalAddName {
		t.Fatalf("modal = %q", a.modal)
	}
	typeText(a, "Q1")
	press(a, "enter")

	if a.design.Len() != 1 {
		t.Fatalf("len = %d", a.design.Len())
	}
	c, err := a.design.ByName("Q1")
	if err != nil || c.Class != "Transmon" {
		t.Fatalf("component = %v, %v", c, err)
	}
	if !a.dirty {
		t.Error("add did not mark state dirty")
	}
}

func TestAddAutoNamedComponent(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter", "enter") // empty name

	if a.design.Len() != 1 {
		t.Fatalf("len = %d", a.design.Len())
	}
	if _, err := a.design.ByName("transmon_1"); err != nil {
		t.Errorf("auto name missing: %v", err)
	}
}

func TestDuplicateAddSurfacesError(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	if a.design.Len() != 1 {
		t.Fatalf("len = %d", a.design.Len())
	}
	if !strings.Contains(a.status, "error") {
		t.Errorf("status = %q, want error", a.status)
	}
}

func TestOverwriteToggleAllowsReplace(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	press(a, "o") // enable overwrite
	if !a.design.OverwriteEnabled() {
		t.Fatal("overwrite not enabled")
	}
	press(a, "a", "j", "enter") // second class (Fluxonium)
	typeText(a, "Q1")
	press(a, "enter")

	if a.design.Len() != 1 {
		t.Fatalf("len = %d", a.design.Len())
	}
	c, _ := a.design.ByName("Q1")
	if c == nil || c.Class != "Fluxonium" {
		t.Errorf("replacement = %+v", c)
	}
}

func TestRenameFlow(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	press(a, "r")
	if a.modal != modalRename {
		t.Fatalf("modal = %q", a.modal)
	}
	// input pre-fills the current name; clear it first
	a.input.SetValue("")
	typeText(a, "QubitA")
	press(a, "enter")

	if _, err := a.design.ByName("QubitA"); err != nil {
		t.Errorf("rename failed: %v", err)
	}
}

func TestCopyFlow(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	press(a, "c")
	typeText(a, "Q2")
	press(a, "enter")

	if a.design.Len() != 2 {
		t.Fatalf("len = %d", a.design.Len())
	}
	cp, err := a.design.ByName("Q2")
	if err != nil || cp.Class != "Transmon" {
		t.Errorf("copy = %v, %v", cp, err)
	}
}

func TestDeleteGatedVsForced(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")
	press(a, "a", "j", "enter")
	typeText(a, "J1")
	press(a, "enter")

	q1, _ := a.design.ByName("Q1")
	j1, _ := a.design.ByName("J1")
	if err := a.design.AddDependency(j1.ID, q1.ID); err != nil {
		t.Fatal(err)
	}

	a.compCursor = 0 // Q1
	press(a, "d")
	if a.design.Len() != 2 {
		t.Fatal("gated delete removed a depended-on component")
	}
	if !strings.Contains(a.status, "error") {
		t.Errorf("status = %q", a.status)
	}

	press(a, "D")
	if a.modal != modalConfirmDelete {
		t.Fatalf("modal = %q", a.modal)
	}
	press(a, "y")
	if a.design.Len() != 1 {
		t.Fatal("force delete did not remove component")
	}
}

func TestOptionEditFlow(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	press(a, "enter") // open options view
	if a.state != viewOptions {
		t.Fatalf("state = %q", a.state)
	}
	press(a, "j", "j", "enter") // edit third option (width)
	a.input.SetValue("")
	typeText(a, "600um")
	press(a, "enter")

	c, _ := a.design.ByName("Q1")
	if v, _ := c.Options.Get("width"); v != "600um" {
		t.Errorf("width = %q", v)
	}
}

func TestViewRendersCatalog(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	out := a.View()
	for _, want := range []string{"Q1", "Transmon", "design test"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlanViewRefresh(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	_, cmd := a.Update(key("v"))
	if a.state != viewPlan {
		t.Fatalf("state = %q", a.state)
	}
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	a.Update(cmd()) // run the command synchronously
	if a.plan == "" {
		t.Error("plan not rendered")
	}
	if !strings.Contains(a.View(), "Q1") {
		t.Error("plan view missing component")
	}
}

func TestRefreshPlanDeliversMessage(t *testing.T) {
	a := testApp(t)
	press(a, "a", "enter")
	typeText(a, "Q1")
	press(a, "enter")

	// The command renders but must not touch the model; only Update
	// applies the result.
	msg := a.refreshPlan()()
	if a.plan != "" {
		t.Error("command wrote the plan directly")
	}
	pm, ok := msg.(planMsg)
	if !ok {
		t.Fatalf("message = %T, want planMsg", msg)
	}
	if !strings.Contains(string(pm), "Q1") {
		t.Errorf("rendered plan missing component: %q", pm)
	}
	a.Update(msg)
	if a.plan == "" || a.status != "plan refreshed" {
		t.Errorf("after update: plan %d bytes, status %q", len(a.plan), a.status)
	}
}

func TestQuitClosesViewer(t *testing.T) {
	a := testApp(t)
	_, cmd := a.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !a.view.Closed() {
		t.Error("viewer not closed on quit")
	}
}
