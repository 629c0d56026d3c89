// Package forms implements the add/edit dialog logic: a draft with
// per-field validation, dirty tracking against a baseline record, and a
// submit path that is guarded against duplicate in-flight submissions.
package forms

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/possoft/posadmin/internal/client/models"
)

// Field names, matching the wire names of models.Draft.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldAddress = "address"
)

var (
	// ErrValidationFailed means Submit stopped before any service call;
	// the per-field messages are available via Errors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrSubmitInFlight rejects a second Submit or a Close while a
	// submission has not completed.
	ErrSubmitInFlight = errors.New("submission in flight")
)

// Mode selects the create or edit behavior of an editor.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// CreateFunc submits a new record. UpdateFunc submits changed fields of
// an existing one. Both are supplied by the roster layer.
type (
	CreateFunc func(ctx context.Context, draft models.Draft) error
	UpdateFunc func(ctx context.Context, id string, draft models.Draft) error
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)

// validate is shared by all editors. Field names in error reports come
// from the json tags so they match the Field* constants.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Editor is the state of one open add/edit dialog.
type Editor struct {
	mode     Mode
	recordID string
	baseline models.Draft

	draft    models.Draft
	errs     map[string]string
	dirty    bool
	inFlight bool

	create CreateFunc
	update UpdateFunc
}

// NewCreateEditor opens an empty dialog whose Submit calls create.
func NewCreateEditor(create CreateFunc) *Editor {
	return &Editor{mode: ModeCreate, errs: map[string]string{}, create: create}
}

// NewEditEditor opens a dialog pre-filled from record. The record's
// current fields become the baseline for dirty tracking; Submit calls
// update only when something actually changed.
func NewEditEditor(record models.EntityRecord, update UpdateFunc) *Editor {
	baseline := models.DraftFromRecord(record)
	return &Editor{
		mode:     ModeEdit,
		recordID: record.ID,
		baseline: baseline,
		draft:    baseline,
		errs:     map[string]string{},
		update:   update,
	}
}

// SetField updates one draft field, clears that field's error, and in
// edit mode recomputes the dirty flag against the baseline.
func (e *Editor) SetField(field, value string) {
	switch field {
	case FieldName:
		e.draft.Name = value
	case FieldPhone:
		e.draft.Phone = value
	case FieldEmail:
		e.draft.Email = value
	case FieldAddress:
		e.draft.Address = value
	default:
		return
	}
	delete(e.errs, field)

	if e.mode == ModeEdit {
		// Trimmed-equivalent comparison; a field edited to "same value
		// plus whitespace" is not a real change.
		e.dirty = e.draft.Trimmed() != e.baseline.Trimmed()
	}
}

// Validate runs every field rule and reports all failures at once.
// The returned map is empty iff the draft is valid; it is also retained
// for Errors.
func (e *Editor) Validate() map[string]string {
	out := map[string]string{}

	err := validate.Struct(e.draft.Trimmed())
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				out[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
			}
		}
	}

	e.errs = out
	return out
}

func fieldMessage(field, tag string) string {
	if tag == "required" {
		return field + " is required"
	}
	switch field {
	case FieldName:
		return "name must be at least 2 characters"
	case FieldPhone:
		return "phone may contain only digits, spaces, and + - ( )"
	case FieldEmail:
		return "email must look like name@example.com"
	case FieldAddress:
		return "address must be at least 5 characters"
	}
	return field + " is invalid"
}

// Submit validates and, when clean, sends the trimmed draft to the
// service. In edit mode a submit with no dirty fields succeeds without
// calling the service at all. The in-flight flag blocks duplicate
// submissions and is cleared on every outcome.
func (e *Editor) Submit(ctx context.Context) error {
	if e.inFlight {
		return ErrSubmitInFlight
	}
	if errs := e.Validate(); len(errs) > 0 {
		return ErrValidationFailed
	}

	if e.mode == ModeEdit && !e.dirty {
		return nil
	}

	e.inFlight = true
	defer func() { e.inFlight = false }()

	draft := e.draft.Trimmed()
	if e.mode == ModeEdit {
		return e.update(ctx, e.recordID, draft)
	}
	return e.create(ctx, draft)
}

// Close resets the dialog: the draft returns to empty (create) or the
// baseline (edit) and errors are cleared. Rejected while a submission
// is in flight.
func (e *Editor) Close() error {
	if e.inFlight {
		return ErrSubmitInFlight
	}
	if e.mode == ModeEdit {
		e.draft = e.baseline
	} else {
		e.draft = models.Draft{}
	}
	e.errs = map[string]string{}
	e.dirty = false
	return nil
}

// Draft returns the current field values.
func (e *Editor) Draft() models.Draft { return e.draft }

// Errors returns the field messages from the last Validate run.
func (e *Editor) Errors() map[string]string {
	out := make(map[string]string, len(e.errs))
	for k, v := range e.errs {
		out[k] = v
	}
	return out
}

// IsDirty reports whether an edit draft differs from its baseline.
// Always false in create mode.
func (e *Editor) IsDirty() bool { return e.dirty }

// InFlight reports whether a submission is currently running.
func (e *Editor) InFlight() bool { return e.inFlight }

// Mode reports whether this is a create or edit dialog.
func (e *Editor) Mode() Mode { return e.mode }
