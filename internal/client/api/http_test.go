package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/possoft/posadmin/internal/client/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestHTTPService_ListAll(t *testing.T) {
	records := []models.EntityRecord{
		{ID: "c-1", Name: "Acme Foods", Phone: "555-0101", Address: "Av. Corrientes 1234", Status: models.StatusActive, CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "c-2", Name: "Bodega Sur", Phone: "555-0102", Address: "Calle Falsa 123", Status: models.StatusInactive},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": records})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, models.KindCustomer, staticToken("tok-123"))
	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[0].Name, got[0].Name)
	assert.Equal(t, models.StatusInactive, got[1].Status)
}

func TestHTTPService_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suppliers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft models.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Acme Foods", draft.Name)

		rec := models.EntityRecord{ID: "s-9", Name: draft.Name, Phone: draft.Phone, Address: draft.Address, Status: models.StatusActive}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": rec})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, models.KindSupplier, nil)
	rec, err := svc.Create(context.Background(), models.Draft{Name: "Acme Foods", Phone: "555-0101", Address: "Av. Corrientes 1234"})
	require.NoError(t, err)
	assert.Equal(t, "s-9", rec.ID)
	assert.Equal(t, models.StatusActive, rec.Status)
}

func TestHTTPService_Update_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/customers/c-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "phone already registered"})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, models.KindCustomer, nil)
	_, err := svc.Update(context.Background(), "c-1", models.Draft{Name: "Acme"})

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "phone already registered", se.Message)
	assert.Equal(t, "phone already registered", UserMessage(err))
}

func TestHTTPService_ToggleStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/suppliers/s-1/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]string{"status": "inactive"}})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, models.KindSupplier, nil)
	st, err := svc.ToggleStatus(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, st)
}

func TestHTTPService_TransportFailures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := NewHTTPService(srv.URL, models.KindCustomer, nil)
		_, err := svc.ListAll(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, "operation failed, please try again", UserMessage(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing is listening anymore

		svc := NewHTTPService(srv.URL, models.KindCustomer, nil)
		_, err := svc.ListAll(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("undecodable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		svc := NewHTTPService(srv.URL, models.KindCustomer, nil)
		_, err := svc.ListAll(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
