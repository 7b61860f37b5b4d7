package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/studyhall/studyhall/internal/platform/http"
	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/internal/platform/store/drivers/sqlite"
	"github.com/studyhall/studyhall/pkg/jwtx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

// BuildVersion is set at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application wires the platform together: storage, services, HTTP.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer jwtx.Signer
	keys   *jwtx.KeySet

	authService         *service.AuthService
	googleService       *service.GoogleOAuthService
	userService         *service.UserService
	courseService       *service.CourseService
	quizService         *service.QuizService
	attemptService      *service.AttemptService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "studyhall",
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, keys, err := initSigningKey(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.signer = signer
	app.keys = keys

	if err := app.initServices(); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("studyhall starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown stops the HTTP server, housekeeping, and the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down studyhall...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("studyhall stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied")
	return nil
}

func (app *Application) initServices() error {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	if app.cfg.GoogleClientID != "" {
		google, err := service.NewGoogleOAuthService(
			context.Background(),
			app.db,
			app.authService,
			app.cfg.GoogleClientID,
			app.cfg.GoogleClientSecret,
			app.cfg.GoogleRedirectURL,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize Google OAuth: %w", err)
		}
		app.googleService = google
		app.logger.Info("google sign-in enabled")
	}

	app.userService = &service.UserService{Store: app.db}
	app.courseService = &service.CourseService{Store: app.db}
	app.quizService = &service.QuizService{Store: app.db}
	app.attemptService = &service.AttemptService{Store: app.db}

	app.housekeepingService = &service.HousekeepingService{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
		Logger:   app.logger,
	}

	return nil
}

func (app *Application) initHTTP() {
	verifier := jwtx.NewCommonEdDSA(app.keys, app.cfg.Issuer)

	app.router = httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.cfg.SecureCookies,
		app.db,
		app.logger,
	)
	app.router.AuthService = app.authService
	app.router.GoogleService = app.googleService
	app.router.UserService = app.userService
	app.router.CourseService = app.courseService
	app.router.QuizService = app.quizService
	app.router.AttemptService = app.attemptService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
