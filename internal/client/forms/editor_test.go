package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/possoft/posadmin/internal/client/models"
)

func validDraftFields(e *Editor) {
	e.SetField(FieldName, "Acme Foods")
	e.SetField(FieldPhone, "+54 (11) 4000-1000")
	e.SetField(FieldAddress, "Av. Corrientes 1234")
}

func sampleRecord() models.EntityRecord {
	return models.EntityRecord{
		ID:      "c-1",
		Name:    "Acme Foods",
		Phone:   "555-0101",
		Email:   "sales@acme.test",
		Address: "Av. Corrientes 1234",
		Status:  models.StatusActive,
	}
}

func TestValidate_AllFailuresReportedAtOnce(t *testing.T) {
	e := NewCreateEditor(nil)
	e.SetField(FieldName, "A")
	e.SetField(FieldPhone, "abc")
	e.SetField(FieldEmail, "x")
	e.SetField(FieldAddress, "hi")

	errs := e.Validate()

	require.Len(t, errs, 4)
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldPhone)
	assert.Contains(t, errs, FieldEmail)
	assert.Contains(t, errs, FieldAddress)
	assert.Equal(t, errs, e.Errors())
}

func TestValidate_RequiredFields(t *testing.T) {
	e := NewCreateEditor(nil)

	errs := e.Validate()

	assert.Equal(t, "name is required", errs[FieldName])
	assert.Equal(t, "phone is required", errs[FieldPhone])
	assert.Equal(t, "address is required", errs[FieldAddress])
	// email is optional
	assert.NotContains(t, errs, FieldEmail)
}

func TestValidate_TrimsBeforeChecking(t *testing.T) {
	e := NewCreateEditor(nil)
	e.SetField(FieldName, "  A  ") // one char after trim
	e.SetField(FieldPhone, "555-0101")
	e.SetField(FieldAddress, "  hi  ") // four chars too few

	errs := e.Validate()
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldAddress)
	assert.NotContains(t, errs, FieldPhone)
}

func TestSetField_ClearsThatFieldsError(t *testing.T) {
	e := NewCreateEditor(nil)
	e.Validate()
	require.Contains(t, e.Errors(), FieldName)

	e.SetField(FieldName, "Acme Foods")

	assert.NotContains(t, e.Errors(), FieldName)
	assert.Contains(t, e.Errors(), FieldPhone)
}

func TestSubmit_InvalidDraftNeverCallsService(t *testing.T) {
	called := false
	e := NewCreateEditor(func(ctx context.Context, d models.Draft) error {
		called = true
		return nil
	})
	e.SetField(FieldName, "A")

	err := e.Submit(context.Background())

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, called)
	assert.NotEmpty(t, e.Errors())
}

func TestSubmit_CreateSendsTrimmedDraftWithoutBlankEmail(t *testing.T) {
	var got models.Draft
	e := NewCreateEditor(func(ctx context.Context, d models.Draft) error {
		got = d
		return nil
	})
	e.SetField(FieldName, "  Acme Foods  ")
	e.SetField(FieldPhone, " 555-0101 ")
	e.SetField(FieldEmail, "   ")
	e.SetField(FieldAddress, " Av. Corrientes 1234 ")

	require.NoError(t, e.Submit(context.Background()))

	assert.Equal(t, "Acme Foods", got.Name)
	assert.Equal(t, "555-0101", got.Phone)
	assert.Empty(t, got.Email)
	assert.Equal(t, "Av. Corrientes 1234", got.Address)
}

func TestSubmit_EditWithoutChangesSkipsService(t *testing.T) {
	called := false
	e := NewEditEditor(sampleRecord(), func(ctx context.Context, id string, d models.Draft) error {
		called = true
		return nil
	})

	require.NoError(t, e.Submit(context.Background()))
	assert.False(t, called)
	assert.False(t, e.IsDirty())
}

func TestSubmit_EditWithOneChangedFieldCallsUpdate(t *testing.T) {
	var gotID string
	var got models.Draft
	e := NewEditEditor(sampleRecord(), func(ctx context.Context, id string, d models.Draft) error {
		gotID = id
		got = d
		return nil
	})

	e.SetField(FieldPhone, "555-0199")
	require.True(t, e.IsDirty())

	require.NoError(t, e.Submit(context.Background()))
	assert.Equal(t, "c-1", gotID)
	assert.Equal(t, "555-0199", got.Phone)
	assert.Equal(t, "Acme Foods", got.Name)
}

func TestDirty_WhitespaceOnlyChangeIsNotDirty(t *testing.T) {
	e := NewEditEditor(sampleRecord(), nil)

	e.SetField(FieldName, "  Acme Foods  ")
	assert.False(t, e.IsDirty())

	e.SetField(FieldName, "Acme Foods SRL")
	assert.True(t, e.IsDirty())

	e.SetField(FieldName, "Acme Foods")
	assert.False(t, e.IsDirty())
}

func TestDirty_MissingBaselineEmailComparesAsEmpty(t *testing.T) {
	rec := sampleRecord()
	rec.Email = ""
	e := NewEditEditor(rec, nil)

	e.SetField(FieldEmail, "   ")
	assert.False(t, e.IsDirty())

	e.SetField(FieldEmail, "new@acme.test")
	assert.True(t, e.IsDirty())
}

func TestSubmit_InFlightGuard(t *testing.T) {
	e := NewCreateEditor(nil)
	var duringCall bool
	var second error
	e.create = func(ctx context.Context, d models.Draft) error {
		duringCall = e.InFlight()
		second = e.Submit(ctx)
		return nil
	}
	validDraftFields(e)

	require.NoError(t, e.Submit(context.Background()))

	assert.True(t, duringCall)
	assert.ErrorIs(t, second, ErrSubmitInFlight)
	// the flag clears once the call completes
	assert.False(t, e.InFlight())
}

func TestSubmit_FlagClearsOnFailureToo(t *testing.T) {
	boom := errors.New("duplicate phone")
	e := NewCreateEditor(func(ctx context.Context, d models.Draft) error { return boom })
	validDraftFields(e)

	err := e.Submit(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, e.InFlight())
}

func TestClose_ResetsDraftAndErrors(t *testing.T) {
	e := NewEditEditor(sampleRecord(), nil)
	e.SetField(FieldName, "Z")
	e.Validate()
	require.NotEmpty(t, e.Errors())

	require.NoError(t, e.Close())

	assert.Equal(t, "Acme Foods", e.Draft().Name)
	assert.Empty(t, e.Errors())
	assert.False(t, e.IsDirty())
}

func TestClose_BlockedWhileInFlight(t *testing.T) {
	e := NewCreateEditor(nil)
	var closeErr error
	e.create = func(ctx context.Context, d models.Draft) error {
		closeErr = e.Close()
		return nil
	}
	validDraftFields(e)

	require.NoError(t, e.Submit(context.Background()))
	assert.ErrorIs(t, closeErr, ErrSubmitInFlight)
}
