// Package models defines the data types shared by the client: roster
// entities, drafts, and session users.
package models

import (
	"strings"
	"time"
)

// EntityKind selects which roster an operation targets.
type EntityKind string

const (
	KindCustomer EntityKind = "customer"
	KindSupplier EntityKind = "supplier"
)

// Status is an entity's lifecycle flag. Records are never deleted,
// only deactivated.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// EntityRecord is the client's cached copy of a customer or supplier.
// The ID is opaque and server-assigned; the server owns the record and
// the cached copy may be stale until the next refresh.
type EntityRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft holds the writable fields of an entity for create/update calls.
// ID, status, and creation time are always server-owned.
type Draft struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone" validate:"required,phone"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address" validate:"required,min=5"`
}

// Trimmed returns a copy of the draft with every field trimmed of
// surrounding whitespace, the shape sent over the wire.
func (d Draft) Trimmed() Draft {
	return Draft{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.TrimSpace(d.Phone),
		Email:   strings.TrimSpace(d.Email),
		Address: strings.TrimSpace(d.Address),
	}
}

// DraftFromRecord builds the editable baseline for an existing record.
func DraftFromRecord(r EntityRecord) Draft {
	return Draft{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}
