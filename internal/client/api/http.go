package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/possoft/posadmin/internal/client/models"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// HTTPService talks to one entity collection (customers or suppliers)
// of the remote API.
type HTTPService struct {
	baseURL string
	kind    models.EntityKind
	client  *http.Client
	tokens  TokenSource
}

// NewHTTPService builds a service client for the given kind. tokens may be
// nil for unauthenticated use (tests, health probes).
func NewHTTPService(baseURL string, kind models.EntityKind, tokens TokenSource) *HTTPService {
	return &HTTPService{
		baseURL: baseURL,
		kind:    kind,
		client:  &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

func (s *HTTPService) collectionPath() string {
	return fmt.Sprintf("%s/%ss", s.baseURL, s.kind)
}

func (s *HTTPService) ListAll(ctx context.Context) ([]models.EntityRecord, error) {
	var env listEnvelope
	if err := s.do(ctx, http.MethodGet, s.collectionPath(), nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &ServiceError{Message: env.Message}
	}
	return env.Data, nil
}

func (s *HTTPService) Create(ctx context.Context, draft models.Draft) (*models.EntityRecord, error) {
	var env recordEnvelope
	if err := s.do(ctx, http.MethodPost, s.collectionPath(), draft, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &ServiceError{Message: env.Message}
	}
	return env.Data, nil
}

func (s *HTTPService) Update(ctx context.Context, id string, draft models.Draft) (*models.EntityRecord, error) {
	url := fmt.Sprintf("%s/%s", s.collectionPath(), id)
	var env recordEnvelope
	if err := s.do(ctx, http.MethodPut, url, draft, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &ServiceError{Message: env.Message}
	}
	return env.Data, nil
}

func (s *HTTPService) ToggleStatus(ctx context.Context, id string) (models.Status, error) {
	url := fmt.Sprintf("%s/%s/status", s.collectionPath(), id)
	var env statusEnvelope
	if err := s.do(ctx, http.MethodPatch, url, nil, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", &ServiceError{Message: env.Message}
	}
	return env.Data.Status, nil
}

// do performs one request/response cycle. Transport failures, non-2xx
// statuses, and undecodable bodies all collapse into ErrUnavailable;
// application-level failure is left for the caller to read from out.
func (s *HTTPService) do(ctx context.Context, method, url string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.tokens != nil {
		if token := s.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}
