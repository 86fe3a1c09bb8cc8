package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/repositories/session"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger

	db      *sql.DB
	store   client.Store
	auth    services.Authenticator
	bills   services.BillListService
	newBill services.BillSubmissionService

	session  *models.Session
	route    string
	lastList []models.DisplayBill

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database, picks the bills store from cfg and
// builds the services on top of them.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.SessionDBPath, "error", err)
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: cfg,
		log:    log,
		db:     db,
		store:  store,
		route:  services.RouteLogin,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.wire(session.NewSQLiteStore(db))

	if !client.IsConfigured(store) {
		a.mode = ModeDisabled
	}
	return a, nil
}

func (a *App) wire(sessions session.Store) {
	a.auth = services.NewAuthenticator(a.store, sessions, a, a.log)
	a.bills = services.NewBillListService(a.store, a.config.Locale, a.log)
	a.newBill = services.NewBillSubmissionService(a.store, sessions, a, a.log)
}

func newStore(cfg *config.Config) (client.Store, error) {
	switch {
	case cfg.Demo:
		return newDemoStore()
	case cfg.ServerEndpointAddr != "":
		return client.NewHTTPStore(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	default:
		return client.NotConfigured, nil
	}
}

// Navigate records the active view. The REPL has a single screen, so the
// route is only shown in the prompt.
func (a *App) Navigate(route string) {
	a.route = route
	a.log.Debug(context.Background(), "navigate", "route", route)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run resumes the persisted session (or asks for credentials), starts the
// connectivity watcher and blocks in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to Billed CLI (type 'help' for commands)")

	if s, err := a.auth.Current(ctx); err == nil {
		a.resume(ctx, s)
	} else {
		_ = a.Login(ctx)
	}

	if client.IsConfigured(a.store) {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// resume logs the persisted user in again so that a fresh store token is
// obtained. The persisted session is kept if that fails.
func (a *App) resume(ctx context.Context, s *models.Session) {
	submit := a.auth.SubmitEmployee
	if s.Type == models.UserTypeAdmin {
		submit = a.auth.SubmitAdmin
	}

	if err := submit(ctx, services.LoginForm{Email: s.Email, Password: s.Password}); err != nil {
		a.log.Warn(ctx, "cannot renew persisted session", "email", s.Email, "error", err)
		a.session = s
		a.Navigate(services.LandingRoute(s.Type))
	} else if cur, err := a.auth.Current(ctx); err == nil {
		a.session = cur
	} else {
		a.session = s
	}
	fmt.Fprintf(a.out, "Resumed session of %s\n", s.Email)
}

func (a *App) Close() {
	if client.IsConfigured(a.store) {
		_ = a.store.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// StartOnlineStatusWatcher pings the store every interval and switches the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.store.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
