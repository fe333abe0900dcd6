// Package tui is the interactive surface over one open design: catalog
// browsing, option editing, the chip plan viewer, and maintenance.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qnl/chipsmith/internal/config"
	"github.com/qnl/chipsmith/internal/design"
	"github.com/qnl/chipsmith/internal/library"
	"github.com/qnl/chipsmith/internal/service"
	"github.com/qnl/chipsmith/internal/viewer"
)

// Services bundles what the app needs beyond the open design.
type Services struct {
	Designs     *service.DesignService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewCatalog  appState = "catalog"
	viewOptions  appState = "options"
	viewPlan     appState = "plan"
	viewSettings appState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalAddClass      modalState = "addClass"
	modalAddName       modalState = "addName"
	modalRename        modalState = "rename"
	modalCopy          modalState = "copy"
	modalEditOption    modalState = "editOption"
	modalConfirmDelete modalState = "confirmDelete"
	modalConfirmReset  modalState = "confirmReset"
)

// App ties together views over one open design.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services

	design *design.Design
	view   *viewer.Viewer

	state          appState
	modal          modalState
	status         string
	compCursor     int
	optCursor      int
	classCursor    int
	settingsCursor int
	plan           string
	input          textinput.Model
	editingKey     string
	pendingClass   string
	dirty          bool
}

type statusMsg string
type errMsg struct{ err error }
type savedMsg struct{}
type planMsg string

// New builds the app around an already-open design.
func New(ctx context.Context, cfg config.Config, services Services, d *design.Design) *App {
	ti := textinput.New()
	ti.CharLimit = 64
	v := viewer.New(cfg.Viewer.Width, cfg.Viewer.Height)
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		design:   d,
		view:     v,
		state:    viewCatalog,
		status:   "ready",
		input:    ti,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewOptions:
			return a.handleOptionsKey(m)
		case viewPlan:
			return a.handlePlanKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		}
		return a.handleCatalogKey(m)
	case statusMsg:
		a.status = string(m)
	case planMsg:
		a.plan = string(m)
		a.status = "plan refreshed"
	case savedMsg:
		a.dirty = false
		a.status = "saved"
	case errMsg:
		a.status = "error: " + m.err.Error()
	}
	return a, nil
}

func (a *App) handleCatalogKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.view.Close()
		return a, tea.Quit
	case "up", "k":
		if a.compCursor > 0 {
			a.compCursor--
		}
	case "down", "j":
		if a.compCursor < a.design.Len()-1 {
			a.compCursor++
		}
	case "enter":
		if a.design.Len() > 0 {
			a.state = viewOptions
			a.optCursor = 0
		}
	case "a":
		a.modal = modalAddClass
		a.classCursor = 0
	case "c":
		if c := a.selected(); c != nil {
			a.openInput(modalCopy, "new name (empty = auto)", "")
		}
	case "r":
		if c := a.selected(); c != nil {
			a.openInput(modalRename, "new name", c.Name)
		}
	case "d":
		if c := a.selected(); c != nil {
			if err := a.design.Delete(c.Name); err != nil {
				a.status = "error: " + err.Error()
			} else {
				a.afterRemoval()
				a.status = "deleted " + c.Name
			}
		}
	case "D":
		if c := a.selected(); c != nil {
			a.modal = modalConfirmDelete
		}
	case "o":
		a.design.EnableOverwrite(!a.design.OverwriteEnabled())
		if a.design.OverwriteEnabled() {
			a.status = "overwrite enabled"
		} else {
			a.status = "overwrite disabled"
		}
		a.dirty = true
	case "v":
		a.state = viewPlan
		return a, a.refreshPlan()
	case "p":
		a.state = viewSettings
		a.settingsCursor = 0
	case "s":
		return a, a.saveCmd()
	}
	return a, nil
}

func (a *App) handleOptionsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := a.selected()
	if c == nil {
		a.state = viewCatalog
		return a, nil
	}
	keys := c.Options.Keys()
	switch m.String() {
	case "q", "ctrl+c":
		a.view.Close()
		return a, tea.Quit
	case "esc":
		a.state = viewCatalog
	case "up", "k":
		if a.optCursor > 0 {
			a.optCursor--
		}
	case "down", "j":
		if a.optCursor < len(keys)-1 {
			a.optCursor++
		}
	case "enter", "e":
		if a.optCursor < len(keys) {
			key := keys[a.optCursor]
			cur, _ := c.Options.Get(key)
			a.editingKey = key
			a.openInput(modalEditOption, key, cur)
		}
	case "n":
		a.editingKey = ""
		a.openInput(modalEditOption, "key=value", "")
	}
	return a, nil
}

func (a *App) handlePlanKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.view.Close()
		return a, tea.Quit
	case "esc":
		a.state = viewCatalog
	case "v", "r":
		return a, a.refreshPlan()
	case "z":
		if err := a.view.AutoScale(a.design); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		return a, a.refreshPlan()
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.view.Close()
		return a, tea.Quit
	case "esc":
		a.state = viewCatalog
	case "o":
		a.design.EnableOverwrite(!a.design.OverwriteEnabled())
		a.dirty = true
	case "x":
		a.modal = modalConfirmReset
	}
	return a, nil
}

// selected returns the component under the catalog cursor.
func (a *App) selected() *design.Component {
	comps := a.design.Components()
	if a.compCursor < 0 || a.compCursor >= len(comps) {
		return nil
	}
	return comps[a.compCursor]
}

// afterRemoval clamps the cursor once a component is gone.
func (a *App) afterRemoval() {
	a.dirty = true
	if a.compCursor >= a.design.Len() && a.compCursor > 0 {
		a.compCursor--
	}
}

func (a *App) openInput(m modalState, placeholder, value string) {
	a.modal = m
	a.input.Placeholder = placeholder
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) closeInput() {
	a.modal = modalNone
	a.input.Blur()
	a.input.SetValue("")
}

// commands

func (a *App) saveCmd() tea.Cmd {
	d := a.design
	return func() tea.Msg {
		if err := a.services.Designs.Save(a.ctx, d); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (a *App) refreshPlan() tea.Cmd {
	v, d := a.view, a.design
	return func() tea.Msg {
		// The model is only touched in Update; the command just renders.
		out, err := v.Refresh(d)
		if err != nil {
			return errMsg{err}
		}
		return planMsg(out)
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("database reset")
	}
}

// classes lists template classes for the add modal.
func (a *App) classes() []string {
	return library.Classes()
}
