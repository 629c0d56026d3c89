// Package api implements the client side of the remote entity service:
// a JSON-over-HTTP contract for listing, creating, updating, and
// status-toggling customers and suppliers.
package api

import (
	"context"

	"github.com/possoft/posadmin/internal/client/models"
)

// Service is the per-kind entity service contract the roster layer
// consumes. Implementations are stateless request/response adapters.
type Service interface {
	// ListAll fetches every record of the kind, in server order.
	ListAll(ctx context.Context) ([]models.EntityRecord, error)

	// Create submits a new record and returns the server's copy.
	Create(ctx context.Context, draft models.Draft) (*models.EntityRecord, error)

	// Update submits changed fields for an existing record.
	Update(ctx context.Context, id string, draft models.Draft) (*models.EntityRecord, error)

	// ToggleStatus flips active/inactive server-side and returns the
	// status the server decided on. The client never computes it locally.
	ToggleStatus(ctx context.Context, id string) (models.Status, error)
}

// envelope is the wire shape every endpoint answers with.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type listEnvelope struct {
	envelope
	Data []models.EntityRecord `json:"data"`
}

type recordEnvelope struct {
	envelope
	Data *models.EntityRecord `json:"data,omitempty"`
}

type statusEnvelope struct {
	envelope
	Data struct {
		Status models.Status `json:"status"`
	} `json:"data"`
}
