package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/jotmail/jotmail/internal/http"
	"github.com/jotmail/jotmail/internal/notify"
	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/internal/store/drivers/sqlite"
	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions *jwtx.HS256
	notifier notify.Notifier

	// Services
	otpService  *service.OTPService
	authService *service.AuthService
	noteService *service.NoteService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "jotmail",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("service stopped")
	return nil
}

// Handler exposes the HTTP entrypoint for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions builds the HS256 signer. A missing secret gets replaced
// with a random one, so every restart logs everyone out.
func (app *Application) initSessions() error {
	secret := []byte(app.cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, jwtx.MinSecretBytes)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		app.logger.Warn("SESSION_SECRET not set, using an ephemeral secret; sessions will not survive restarts")
	}

	sessions, err := jwtx.NewHS256(secret, app.cfg.SessionIssuer, app.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("initialize session signer: %w", err)
	}
	app.sessions = sessions
	return nil
}

// initNotifier picks the email transport. No SMTP host means codes go
// to the log, which only makes sense in dev.
func (app *Application) initNotifier() error {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP_HOST not set, one-time codes will be written to the log")
		app.notifier = &notify.LogNotifier{Logger: app.logger}
		return nil
	}

	notifier, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:       app.cfg.SMTPHost,
		Port:       app.cfg.SMTPPort,
		Username:   app.cfg.SMTPUsername,
		Password:   app.cfg.SMTPPassword,
		From:       app.cfg.SMTPFrom,
		SiteName:   app.cfg.SiteName,
		DisableTLS: app.cfg.SMTPDisableTLS,
	})
	if err != nil {
		return fmt.Errorf("initialize smtp notifier: %w", err)
	}
	app.notifier = notifier
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.otpService = &service.OTPService{
		Store:        app.db,
		CodeLifetime: app.cfg.OTPLifetime,
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		OTP:      app.otpService,
		Notifier: app.notifier,
		Sessions: app.sessions,
		SiteName: app.cfg.SiteName,
	}

	app.noteService = &service.NoteService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.NoteService = app.noteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
