package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"

	"github.com/possoft/posadmin/internal/client/api"
	"github.com/possoft/posadmin/internal/client/config"
	"github.com/possoft/posadmin/internal/client/credentials"
	"github.com/possoft/posadmin/internal/client/models"
	"github.com/possoft/posadmin/internal/client/roster"
	"github.com/possoft/posadmin/internal/client/session"
	"github.com/possoft/posadmin/internal/client/storage"
	"github.com/possoft/posadmin/internal/logging"
)

// App wires the session manager and the two roster controllers behind the
// interactive command surface. All domain state mutations happen on the
// REPL goroutine.
type App struct {
	config    *config.Config
	session   *session.Manager
	customers *roster.Controller
	suppliers *roster.Controller
	db        *sql.DB
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the local session database, restores any persisted session,
// and builds the API clients and controllers.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewZerologLogger(
		zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	)

	db, err := storage.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	sess := session.NewManager(credentials.NewSeededStore(), db, []byte(cfg.SessionSigningKey), log)
	sess.Restore(ctx)

	customerSvc := api.NewHTTPService(cfg.APIBaseURL, models.KindCustomer, sess)
	supplierSvc := api.NewHTTPService(cfg.APIBaseURL, models.KindSupplier, sess)

	return &App{
		config:    cfg,
		session:   sess,
		customers: roster.NewController(models.KindCustomer, customerSvc, log, roster.WithDebounce(cfg.FilterDebounce)),
		suppliers: roster.NewController(models.KindSupplier, supplierSvc, log, roster.WithDebounce(cfg.FilterDebounce)),
		db:        db,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// controller maps a kind to its roster controller.
func (a *App) controller(kind models.EntityKind) *roster.Controller {
	if kind == models.KindSupplier {
		return a.suppliers
	}
	return a.customers
}

// canView decides which rosters the current role's command surface shows:
// admins see both, cashiers work with customers only, general users get a
// read-only view of both.
func (a *App) canView(kind models.EntityKind) bool {
	if !a.isLoggedIn() {
		return false
	}
	if a.session.IsCashier() {
		return kind == models.KindCustomer
	}
	return true
}

// canManage gates mutations behind the per-kind manage permission.
func (a *App) canManage(kind models.EntityKind) bool {
	if kind == models.KindSupplier {
		return a.session.HasPermission("suppliers.manage")
	}
	return a.session.HasPermission("customers.manage")
}

func (a *App) statusLine() string {
	user := a.session.Current()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Username, user.Role)
}
