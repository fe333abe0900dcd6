package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qnl/chipsmith/internal/library"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	flagOnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	classRowStyle = lipgloss.NewStyle().PaddingLeft(2)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewOptions:
		body = a.renderOptions()
	case viewPlan:
		body = a.renderPlan()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderCatalog()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	body += "\n" + statusStyle.Render(a.statusLine())
	return body
}

func (a *App) statusLine() string {
	line := a.status
	if a.dirty {
		line += "  [unsaved]"
	}
	if a.design.OverwriteEnabled() {
		line += "  [overwrite]"
	}
	return line
}

func (a *App) renderCatalog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("design %s — %d component(s)", a.design.Name, a.design.Len())))
	b.WriteString("\n\n")
	comps := a.design.Components()
	if len(comps) == 0 {
		b.WriteString(dimStyle.Render("  (empty — press a to add a component)"))
		b.WriteString("\n")
	}
	for i, c := range comps {
		row := fmt.Sprintf("#%-3d %-20s %s", c.ID, c.Name, c.Class)
		if deps := a.design.Dependents(c.ID); len(deps) > 0 {
			row += dimStyle.Render(fmt.Sprintf("  <- %d dependent(s)", len(deps)))
		}
		if i == a.compCursor {
			b.WriteString(cursorStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter options  a add  c copy  r rename  d delete  D force  o overwrite  v plan  p settings  s save  q quit"))
	return b.String()
}

func (a *App) renderOptions() string {
	c := a.selected()
	if c == nil {
		return dimStyle.Render("no component selected")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (#%d) — %s", c.Name, c.ID, c.Class)))
	b.WriteString("\n\n")
	for i, k := range c.Options.Keys() {
		v, _ := c.Options.Get(k)
		row := fmt.Sprintf("%-24s %s", k, v)
		if i == a.optCursor {
			b.WriteString(cursorStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter edit  n new option  esc back  q quit"))
	return b.String()
}

func (a *App) renderPlan() string {
	var b strings.Builder
	if a.plan == "" {
		b.WriteString(dimStyle.Render("(no plan yet — press v to refresh)"))
	} else {
		b.WriteString(a.plan)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("v refresh  z rescale  esc back  q quit"))
	return b.String()
}

func (a *App) renderSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("settings"))
	b.WriteString("\n\n")
	flag := "off"
	if a.design.OverwriteEnabled() {
		flag = flagOnStyle.Render("on")
	}
	b.WriteString(fmt.Sprintf("  overwrite on name collision: %s\n", flag))
	b.WriteString(fmt.Sprintf("  database: %s\n", a.cfg.Database.Path))
	b.WriteString(fmt.Sprintf("  viewer: %dx%d\n", a.cfg.Viewer.Width, a.cfg.Viewer.Height))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("o toggle overwrite  x reset database  esc back  q quit"))
	return b.String()
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAddClass:
		var b strings.Builder
		b.WriteString(titleStyle.Render("add component"))
		b.WriteString("\n")
		for i, class := range a.classes() {
			tpl, err := library.Lookup(class)
			desc := ""
			if err == nil {
				desc = dimStyle.Render("  " + tpl.Description)
			}
			row := class + desc
			if i == a.classCursor {
				b.WriteString(cursorStyle.Render("> " + row))
			} else {
				b.WriteString(classRowStyle.Render(row))
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("enter choose  esc cancel"))
		return modalStyle.Render(b.String())
	case modalConfirmDelete:
		c := a.selected()
		name := ""
		if c != nil {
			name = c.Name
		}
		return modalStyle.Render(fmt.Sprintf("force-delete %q? ignores dependents  (y/n)", name))
	case modalConfirmReset:
		return modalStyle.Render("wipe ALL persisted designs?  (y/n)")
	case modalAddName:
		return modalStyle.Render(fmt.Sprintf("new %s\n%s", a.pendingClass, a.input.View()))
	case modalRename:
		return modalStyle.Render("rename\n" + a.input.View())
	case modalCopy:
		return modalStyle.Render("copy\n" + a.input.View())
	case modalEditOption:
		label := a.editingKey
		if label == "" {
			label = "new option"
		}
		return modalStyle.Render(label + "\n" + a.input.View())
	}
	return ""
}
