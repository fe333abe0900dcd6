package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalAddClass:
		return a.handleAddClassKey(m)
	case modalConfirmDelete:
		return a.handleConfirmDeleteKey(m)
	case modalConfirmReset:
		return a.handleConfirmResetKey(m)
	}
	return a.handleInputModalKey(m)
}

func (a *App) handleAddClassKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	classes := a.classes()
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if a.classCursor > 0 {
			a.classCursor--
		}
	case "down", "j":
		if a.classCursor < len(classes)-1 {
			a.classCursor++
		}
	case "enter":
		a.pendingClass = classes[a.classCursor]
		a.openInput(modalAddName, "name (empty = auto)", "")
	}
	return a, nil
}

func (a *App) handleConfirmDeleteKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y":
		if c := a.selected(); c != nil {
			if err := a.design.DeleteID(c.ID); err != nil {
				a.status = "error: " + err.Error()
			} else {
				a.afterRemoval()
				a.status = fmt.Sprintf("force-deleted %s (#%d)", c.Name, c.ID)
			}
		}
		a.modal = modalNone
	case "n", "esc":
		a.modal = modalNone
	}
	return a, nil
}

func (a *App) handleConfirmResetKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y":
		a.modal = modalNone
		return a, a.resetCmd()
	case "n", "esc":
		a.modal = modalNone
	}
	return a, nil
}

// handleInputModalKey runs the text-entry modals (add name, rename, copy,
// option edit).
func (a *App) handleInputModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.closeInput()
		return a, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(a.input.Value())
		modal := a.modal
		a.closeInput()
		a.applyInput(modal, value)
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) applyInput(modal modalState, value string) {
	switch modal {
	case modalAddName:
		c, err := a.design.Add(a.pendingClass, value, nil)
		if err != nil {
			a.status = "error: " + err.Error()
			return
		}
		a.dirty = true
		a.compCursor = a.design.Len() - 1
		a.status = fmt.Sprintf("added %s (#%d)", c.Name, c.ID)
	case modalRename:
		c := a.selected()
		if c == nil {
			return
		}
		if err := a.design.Rename(c.ID, value); err != nil {
			a.status = "error: " + err.Error()
			return
		}
		a.dirty = true
		a.status = "renamed to " + value
	case modalCopy:
		c := a.selected()
		if c == nil {
			return
		}
		cp, err := a.design.Copy(c.ID, value, nil)
		if err != nil {
			a.status = "error: " + err.Error()
			return
		}
		a.dirty = true
		a.status = fmt.Sprintf("copied to %s (#%d)", cp.Name, cp.ID)
	case modalEditOption:
		a.applyOptionInput(value)
	}
}

func (a *App) applyOptionInput(value string) {
	c := a.selected()
	if c == nil {
		return
	}
	key := a.editingKey
	if key == "" {
		// "key=value" entry for a brand-new option.
		k, v, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(k) == "" {
			a.status = "error: expected key=value"
			return
		}
		key, value = strings.TrimSpace(k), strings.TrimSpace(v)
	}
	if err := a.design.SetOption(c.ID, key, value); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.dirty = true
	a.status = fmt.Sprintf("%s.%s = %s", c.Name, key, value)
}
