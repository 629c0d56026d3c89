package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraft_Trimmed(t *testing.T) {
	d := Draft{
		Name:    "  Acme Foods ",
		Phone:   " +54 11 4000-1000 ",
		Email:   " sales@acme.test ",
		Address: "  Av. Corrientes 1234 ",
	}
	got := d.Trimmed()
	assert.Equal(t, "Acme Foods", got.Name)
	assert.Equal(t, "+54 11 4000-1000", got.Phone)
	assert.Equal(t, "sales@acme.test", got.Email)
	assert.Equal(t, "Av. Corrientes 1234", got.Address)
}

func TestDraftFromRecord(t *testing.T) {
	r := EntityRecord{
		ID:      "c-1",
		Name:    "Acme Foods",
		Phone:   "555-0101",
		Address: "Av. Corrientes 1234",
		Status:  StatusActive,
	}
	d := DraftFromRecord(r)
	assert.Equal(t, r.Name, d.Name)
	assert.Equal(t, r.Phone, d.Phone)
	assert.Empty(t, d.Email)
	assert.Equal(t, r.Address, d.Address)
}

func TestUser_HasPermission(t *testing.T) {
	u := &User{Permissions: []string{"customers.manage", "reports.view"}}
	assert.True(t, u.HasPermission("customers.manage"))
	assert.False(t, u.HasPermission("suppliers.manage"))
}
