package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/possoft/posadmin/internal/client/api"
	"github.com/possoft/posadmin/internal/client/forms"
	"github.com/possoft/posadmin/internal/client/models"
	"github.com/possoft/posadmin/internal/client/roster"
)

// List refreshes and prints the full roster of the kind.
func (a *App) List(ctx context.Context, kind models.EntityKind) error {
	c := a.controller(kind)
	if err := c.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		// stale data, when present, is still worth showing
		if len(c.All()) == 0 {
			return err
		}
	}
	a.printRecords(c.All())
	return nil
}

// Find refreshes the roster, applies the query, and prints the filtered
// view once the debounced filter pass has run.
func (a *App) Find(ctx context.Context, kind models.EntityKind, query string) error {
	c := a.controller(kind)
	if err := c.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		if len(c.All()) == 0 {
			return err
		}
	}

	c.SetQuery(query)
	// give the debounce timer time to fire before printing
	time.Sleep(a.config.FilterDebounce + 20*time.Millisecond)

	records := c.Filtered()
	if len(records) == 0 {
		fmt.Fprintf(a.out, "No %ss matching %q\n", kind, query)
		return nil
	}
	a.printRecords(records)
	return nil
}

// Add opens the create form for the kind and submits it.
func (a *App) Add(ctx context.Context, kind models.EntityKind) error {
	if !a.canManage(kind) {
		fmt.Fprintf(a.out, "Your role may not add %ss\n", kind)
		return nil
	}

	c := a.controller(kind)
	editor := forms.NewCreateEditor(c.Create)

	if err := a.fillAndSubmit(ctx, editor); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s created\n", kindTitle(kind))
	return nil
}

// Edit opens the edit form pre-filled with the record's current fields.
// When nothing is changed, no update call is made.
func (a *App) Edit(ctx context.Context, kind models.EntityKind, id string) error {
	if !a.canManage(kind) {
		fmt.Fprintf(a.out, "Your role may not edit %ss\n", kind)
		return nil
	}

	c := a.controller(kind)
	if err := c.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return err
	}

	record, ok := findRecord(c.All(), id)
	if !ok {
		fmt.Fprintf(a.out, "No %s with id %s\n", kind, id)
		return nil
	}

	editor := forms.NewEditEditor(record, c.Update)
	if err := a.fillAndSubmit(ctx, editor); err != nil {
		return err
	}
	if !editor.IsDirty() {
		fmt.Fprintln(a.out, "No changes")
		return nil
	}
	fmt.Fprintf(a.out, "%s updated\n", kindTitle(kind))
	return nil
}

// Toggle flips the record's status server-side and reports the status the
// server answered with.
func (a *App) Toggle(ctx context.Context, kind models.EntityKind, id string) error {
	if !a.canManage(kind) {
		fmt.Fprintf(a.out, "Your role may not change %s status\n", kind)
		return nil
	}

	status, err := a.controller(kind).ToggleStatus(ctx, id)
	if err != nil && !errors.Is(err, roster.ErrRefreshFailed) {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return err
	}
	// the toggle itself went through; a failed reload only means the
	// visible roster is stale until the next list
	if err != nil {
		fmt.Fprintln(a.out, "Status changed, but the roster could not be reloaded")
	}
	fmt.Fprintf(a.out, "%s %s is now %s\n", kindTitle(kind), id, status)
	return nil
}

// fillAndSubmit prompts for every form field, then submits. On validation
// failure the messages are shown and the form re-opens for correction;
// EOF abandons the form.
func (a *App) fillAndSubmit(ctx context.Context, editor *forms.Editor) error {
	for {
		draft := editor.Draft()

		fields := []struct {
			name    string
			label   string
			current string
		}{
			{forms.FieldName, "Name", draft.Name},
			{forms.FieldPhone, "Phone", draft.Phone},
			{forms.FieldEmail, "Email (optional)", draft.Email},
			{forms.FieldAddress, "Address", draft.Address},
		}
		for _, f := range fields {
			value, err := GetFieldText(a.reader, f.label, f.current, a.out)
			if err != nil {
				_ = editor.Close()
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(a.out, "Cancelled")
				}
				return err
			}
			editor.SetField(f.name, value)
		}

		err := editor.Submit(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, roster.ErrRefreshFailed) {
			// the record was saved; only the follow-up reload failed.
			// Close the form so a retry cannot create a duplicate.
			fmt.Fprintln(a.out, "Saved, but the roster could not be reloaded")
			return nil
		}
		if errors.Is(err, forms.ErrValidationFailed) {
			for field, msg := range editor.Errors() {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
			fmt.Fprintln(a.out, "Please correct the highlighted fields")
			continue
		}
		// service error: keep the form open with its values intact so the
		// user can correct and resubmit; EOF on the next prompt cancels
		fmt.Fprintln(a.out, api.UserMessage(err))
	}
}

func (a *App) printRecords(records []models.EntityRecord) {
	if len(records) == 0 {
		fmt.Fprintln(a.out, "(empty)")
		return
	}
	fmt.Fprintf(a.out, "%-12s %-24s %-18s %-10s %s\n", "ID", "NAME", "PHONE", "STATUS", "ADDRESS")
	for _, r := range records {
		fmt.Fprintf(a.out, "%-12s %-24s %-18s %-10s %s\n", r.ID, r.Name, r.Phone, r.Status, r.Address)
	}
}

func findRecord(records []models.EntityRecord, id string) (models.EntityRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return models.EntityRecord{}, false
}

func kindTitle(kind models.EntityKind) string {
	if kind == models.KindSupplier {
		return "Supplier"
	}
	return "Customer"
}
