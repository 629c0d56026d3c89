// Package roster manages the client-side cache of one entity collection:
// fetch-all, live filtering with a debounced query, and create/update/
// status-toggle orchestration against the remote service.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/possoft/posadmin/internal/client/api"
	"github.com/possoft/posadmin/internal/client/models"
	"github.com/possoft/posadmin/internal/logging"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// filter pass runs.
const DefaultDebounce = 150 * time.Millisecond

// ErrRefreshFailed marks a roster reload failure after a mutation that
// itself succeeded. Callers must treat the mutation as done and must not
// resubmit; only the reload needs reporting.
var ErrRefreshFailed = errors.New("roster refresh failed")

// Controller owns the cached roster of a single entity kind. Each instance
// owns its all/filtered/query state exclusively; the mutex exists because
// the debounce timer fires on its own goroutine.
type Controller struct {
	kind     models.EntityKind
	svc      api.Service
	log      logging.Logger
	debounce time.Duration

	mu           sync.Mutex
	all          []models.EntityRecord
	filtered     []models.EntityRecord
	query        string
	loading      bool
	timer        *time.Timer
	timerGen     uint64
	filterPasses int
}

// Option adjusts a Controller at construction time.
type Option func(*Controller)

// WithDebounce overrides the filter debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func NewController(kind models.EntityKind, svc api.Service, log logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		kind:     kind,
		svc:      svc,
		log:      log.With("roster", string(kind)),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh reloads the full collection. On failure the previously cached
// all/filtered views are left untouched, so the caller can keep showing
// stale-but-available data.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	records, err := c.svc.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Warn(ctx, "refresh failed, keeping cached roster", "err", err)
		return fmt.Errorf("refreshing %s roster: %w", c.kind, err)
	}

	c.all = records
	c.recomputeLocked()
	c.log.Info(ctx, "roster refreshed", "count", len(records))
	return nil
}

// SetQuery records the query immediately and schedules a debounced filter
// pass. A newer keystroke cancels the pending timer, so at most one pass is
// pending per controller. A blank query bypasses the debounce and restores
// the unfiltered view synchronously.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = text

	// invalidate any pending pass; a callback that already fired and is
	// waiting on the mutex sees a stale generation and does nothing
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if strings.TrimSpace(text) == "" {
		c.filtered = c.all
		return
	}

	gen := c.timerGen
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.timerGen {
			return
		}
		c.timer = nil
		c.filterPasses++
		c.recomputeLocked()
	})
}

// recomputeLocked rebuilds filtered from the current all and query.
// Callers must hold mu.
func (c *Controller) recomputeLocked() {
	if strings.TrimSpace(c.query) == "" {
		c.filtered = c.all
		return
	}
	needle := strings.ToLower(c.query)
	out := make([]models.EntityRecord, 0, len(c.all))
	for _, r := range c.all {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	c.filtered = out
}

// Create submits a new record and refreshes the roster on success.
// Once the create succeeded, a failing refresh surfaces as
// ErrRefreshFailed so the caller never retries the create itself.
func (c *Controller) Create(ctx context.Context, draft models.Draft) error {
	if _, err := c.svc.Create(ctx, draft); err != nil {
		return fmt.Errorf("creating %s: %w", c.kind, err)
	}
	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// Update submits changed fields for an existing record and refreshes on
// success. Callers must not invoke it when nothing changed; the form
// editor enforces that gate. A failing refresh after a successful update
// surfaces as ErrRefreshFailed.
func (c *Controller) Update(ctx context.Context, id string, draft models.Draft) error {
	if _, err := c.svc.Update(ctx, id, draft); err != nil {
		return fmt.Errorf("updating %s %s: %w", c.kind, id, err)
	}
	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// ToggleStatus asks the server to flip the record's status and refreshes
// on success. The returned status is the server's answer; the client never
// computes the next status locally. A failing refresh after a successful
// toggle surfaces as ErrRefreshFailed alongside the new status.
func (c *Controller) ToggleStatus(ctx context.Context, id string) (models.Status, error) {
	status, err := c.svc.ToggleStatus(ctx, id)
	if err != nil {
		return "", fmt.Errorf("toggling %s %s: %w", c.kind, id, err)
	}
	if err := c.Refresh(ctx); err != nil {
		return status, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return status, nil
}

// Kind reports which entity collection this controller manages.
func (c *Controller) Kind() models.EntityKind {
	return c.kind
}

// All returns the full cached collection in server order.
func (c *Controller) All() []models.EntityRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.EntityRecord(nil), c.all...)
}

// Filtered returns the current filtered view.
func (c *Controller) Filtered() []models.EntityRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.EntityRecord(nil), c.filtered...)
}

// Query returns the most recently set query text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Loading reports whether a refresh is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) debouncedPasses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterPasses
}
