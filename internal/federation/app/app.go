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
	"time"

	"github.com/aussiebroadwan/providerid/api/federation"
	httpapi "github.com/aussiebroadwan/providerid/internal/federation/http"
	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
	"github.com/aussiebroadwan/providerid/internal/federation/store/drivers/sqlite"
	"github.com/aussiebroadwan/providerid/pkg/cryptox"
	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/jwtx"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns the federation service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	sealer      *cryptox.Sealer
	client      *healthsdk.Client
	stateBinder *jwtx.StateBinder

	callbackService     *service.CallbackService
	sessionService      *service.SessionService
	identityService     *service.IdentityService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds an Application from cfg.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "provider-id-federation",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	federation.SwaggerInfo.Version = BuildVersion

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	if !cfg.HealthCredentials().Complete() || !cfg.ProviderCredentials().Complete() {
		app.logger.Warn("upstream credentials incomplete, callbacks will fail with missing_env")
	}

	return app, nil
}

// Handler exposes the configured router.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT or SIGTERM.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("federation service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"state_binding", app.stateBinder != nil,
		"debug_exchange", app.cfg.DebugExchange,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
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

// Shutdown drains in-flight requests, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down federation service...")

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

	app.logger.Info("federation service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	}

	db, err := sqlite.NewStore(dsn)
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

func (app *Application) initCrypto() error {
	sealer, err := cryptox.NewSealer(app.cfg.SessionSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize session sealer: %w", err)
	}
	app.sealer = sealer

	if app.cfg.StateBinding {
		binder, err := jwtx.NewStateBinder(app.cfg.SessionSecret, jwtx.DefaultStateTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize state binder: %w", err)
		}
		app.stateBinder = binder
	}

	return nil
}

func (app *Application) initServices() {
	app.client = healthsdk.NewClient(app.cfg.HealthBaseURL, app.cfg.ProviderBaseURL, app.cfg.UpstreamTimeout)

	app.identityService = &service.IdentityService{Store: app.db}

	app.callbackService = &service.CallbackService{
		Exchanger:  app.client,
		Sealer:     app.sealer,
		Health:     app.cfg.HealthCredentials(),
		Provider:   app.cfg.ProviderCredentials(),
		Identities: app.identityService,
	}
	if app.stateBinder != nil {
		app.callbackService.StateVerifier = app.stateBinder
	}

	app.sessionService = &service.SessionService{
		Unsealer: app.sealer,
		Store:    app.db,
		MaxAge:   app.cfg.SessionMaxAge,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.Options{
		BuildVersion:   BuildVersion,
		HealthClientID: app.cfg.HealthClientID,
		RedirectURI:    app.cfg.RedirectURI,
		LandingPath:    app.cfg.LandingPath,
		SecureCookies:  app.cfg.Secure(),
		SessionMaxAge:  app.cfg.SessionMaxAge,
		DebugExchange:  app.cfg.DebugExchange,
	}, app.db, app.logger)

	router.Client = app.client
	router.StateBinder = app.stateBinder
	router.CallbackService = app.callbackService
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
