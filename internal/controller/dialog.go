package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// DialogMode names the dialog the view currently shows. Only one
// dialog can be open at a time; the mode plus the Submitting flag are
// the whole state machine:
//
//	Closed -> OpenForCreate -> Submitting -> Closed | OpenForCreate(err)
//	Closed -> OpenForEdit   -> Submitting -> Closed | OpenForEdit(err)
type DialogMode string

const (
	DialogClosed DialogMode = "closed"
	DialogCreate DialogMode = "create"
	DialogEdit   DialogMode = "edit"
)

// String returns the string representation of the mode.
func (m DialogMode) String() string {
	return string(m)
}

// Dialog is the bound form state of the open dialog. Form values live
// here, never in the rendered view, so saving reads tracked state
// rather than querying the screen.
type Dialog struct {
	Mode       DialogMode
	Submitting bool
	Record     collection.Record // edit target; nil for create
	Fields     map[string]string // bound form values by field name
	Err        string            // last submit failure, shown in the dialog
}

// IsOpen reports whether any dialog is showing.
func (d Dialog) IsOpen() bool {
	return d.Mode != DialogClosed
}

// Dialog returns a copy of the current dialog state.
func (c *Controller) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog.clone()
}

func (d Dialog) clone() Dialog {
	out := d
	out.Fields = make(map[string]string, len(d.Fields))
	for k, v := range d.Fields {
		out.Fields[k] = v
	}
	return out
}

// OpenCreate opens the create dialog with empty bound fields. A dialog
// already open is replaced, which keeps two dialogs unrepresentable.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fields := make(map[string]string, len(c.spec.Required))
	for _, f := range c.spec.Required {
		fields[f] = ""
	}
	c.dialog = Dialog{Mode: DialogCreate, Fields: fields}
}

// OpenEdit opens the edit dialog bound to an existing record. The form
// starts from the record's current field values.
func (c *Controller) OpenEdit(rec collection.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fields := make(map[string]string, len(rec))
	for name := range rec {
		if name == collection.FieldID {
			continue
		}
		if v, ok := rec.Str(name); ok {
			fields[name] = v
		}
	}
	c.dialog = Dialog{Mode: DialogEdit, Record: rec, Fields: fields}
}

// SetField updates one bound form value. Ignored when no dialog is
// open or a submit is in flight.
func (c *Controller) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialog.Mode == DialogClosed || c.dialog.Submitting {
		return
	}
	c.dialog.Fields[name] = value
}

// CloseDialog abandons the open dialog and its bound values.
func (c *Controller) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = Dialog{Mode: DialogClosed}
}

// Submit validates the bound form and executes the create or update it
// describes. On success the dialog closes; on failure it stays open
// with the bound values intact and Err set, so the operator can fix
// and resubmit.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.dialog.Mode == DialogClosed {
		c.mu.Unlock()
		return fmt.Errorf("no dialog open for %s", c.spec.ID)
	}
	if c.dialog.Submitting {
		c.mu.Unlock()
		return fmt.Errorf("submit already in flight for %s", c.spec.ID)
	}

	m, err := c.buildMutationLocked()
	if err != nil {
		c.dialog.Err = err.Error()
		c.mu.Unlock()
		return err
	}
	c.dialog.Submitting = true
	c.dialog.Err = ""
	c.mu.Unlock()

	execErr := c.execute(ctx, m)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return execErr
	}
	c.dialog.Submitting = false
	if execErr != nil {
		// Dialog stays open with bound values for correction.
		c.dialog.Err = execErr.Error()
		return execErr
	}
	c.dialog = Dialog{Mode: DialogClosed}
	return nil
}

// buildMutationLocked turns the bound dialog values into a mutation.
// Creates send every non-empty field; edits send only the fields whose
// bound value differs from the original record. Caller holds c.mu.
func (c *Controller) buildMutationLocked() (collection.Mutation, error) {
	switch c.dialog.Mode {
	case DialogCreate:
		var missing []string
		for _, f := range c.spec.Required {
			if strings.TrimSpace(c.dialog.Fields[f]) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return collection.Mutation{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
		}
		fields := make(map[string]any, len(c.dialog.Fields))
		for name, value := range c.dialog.Fields {
			if strings.TrimSpace(value) == "" {
				continue
			}
			fields[name] = coerceField(value)
		}
		return collection.NewCreate(fields), nil

	case DialogEdit:
		id := c.dialog.Record.ID()
		if id == "" {
			return collection.Mutation{}, fmt.Errorf("edit target has no id")
		}
		changed := make(map[string]any)
		for name, value := range c.dialog.Fields {
			orig, _ := c.dialog.Record.Str(name)
			if value != orig {
				changed[name] = coerceField(value)
			}
		}
		if len(changed) == 0 {
			return collection.Mutation{}, fmt.Errorf("no fields changed")
		}
		return collection.NewUpdate(id, changed), nil

	default:
		return collection.Mutation{}, fmt.Errorf("no dialog open")
	}
}
