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

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"meddash/internal/config"
	"meddash/internal/dataprocessing"
	apierrors "meddash/internal/errors"
	"meddash/internal/files"
	"meddash/internal/infrastructure"
	customMiddleware "meddash/internal/middleware"
	"meddash/internal/services"
	handlers "meddash/internal/transport/http"
	"meddash/internal/websocket"
)

// Application represents the main application
type Application struct {
	Config *config.Config
	Logger *slog.Logger

	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics

	Loader  *files.Loader
	Watcher *files.Watcher
	Hub     *websocket.Hub

	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	ErrorHandler     *apierrors.ErrorHandler

	Router chi.Router
	Server *http.Server
}

// NewApplication loads configuration and logging from the environment and
// builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apierrors.NewConfigError("failed to load config", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component for cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initializeTelemetry(); err != nil {
		return nil, err
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeTelemetry() error {
	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(a.Config.Telemetry), a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.OTelProviders = providers

	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}
	a.Metrics = metrics
	return nil
}

func (a *Application) initializeServices() {
	data := a.Config.Data

	a.Loader = files.NewLoader(data.CSVPath, a.Logger)
	if data.WatchFile {
		a.Watcher = files.NewWatcher(data.CSVPath, data.WatchDebounce, a.Logger)
	}

	a.DashboardService = services.NewDashboardService(a.Loader, services.DashboardOptions{
		Year:  data.StatsYear,
		Month: data.StatsMonth,
		Stats: dataprocessing.StatsOptions{
			DailyCountsMode: dataprocessing.DailyCountsMode(data.DailyCountsMode),
			Seed:            data.Seed,
		},
	}, a.Metrics, a.Logger)

	var clients services.ClientCounter
	if a.Config.WebSocket.Enabled {
		a.Hub = websocket.NewHub(a.Metrics, a.Logger)
		clients = a.Hub
	}

	a.HealthService = services.NewHealthService(services.BuildInfo{
		Version:   config.AppVersion,
		BuildTime: config.BuildTime,
		GitCommit: config.GitCommit,
	}, a.Loader, clients, a.Logger)

	a.ErrorHandler = handlers.RegisterErrorMappings(
		apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Level == "debug"))
}

// setupRouter configures the HTTP router
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Long-lived connections stay outside the timeout group.
	if a.Hub != nil {
		r.Handle(config.WebSocketEndpoint,
			websocket.NewHandler(a.Hub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger))
	}
	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}
		if rl := a.Config.Security.RateLimit; rl.Enabled {
			r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.Logger).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount(config.HealthEndpoint, healthHandler.Routes())
		r.Get(config.APIBasePath+"/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, a.ErrorHandler)
		r.Mount(config.APIBasePath, dashboardHandler.Routes())
	})

	a.Router = r
}

// getCORSConfig returns CORS configuration from the security section
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Export-Count",
			"X-Request-ID",
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	srv := a.Config.Server
	a.Server = &http.Server{
		Addr:           srv.Addr(),
		Handler:        a.Router,
		ReadTimeout:    srv.ReadTimeout,
		WriteTimeout:   srv.WriteTimeout,
		IdleTimeout:    srv.IdleTimeout,
		MaxHeaderBytes: srv.MaxHeaderBytes,
	}
}

// Run serves until ctx is done or a component fails, then shuts down.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", a.Server.Addr),
		slog.String("csv_path", a.Loader.Path()),
		slog.Bool("websocket", a.Hub != nil),
		slog.Bool("watch_file", a.Watcher != nil))

	g, gctx := errgroup.WithContext(ctx)

	if a.Hub != nil {
		g.Go(func() error {
			return a.Hub.Run(gctx)
		})
	}

	if a.Watcher != nil {
		g.Go(func() error {
			if err := a.Watcher.Run(gctx, a.onDataFileChange); err != nil {
				a.Logger.WarnContext(gctx, "File watching disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	if err := g.Wait(); err != nil {
		a.Logger.ErrorContext(ctx, "Application stopped with error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// RunWithSignals runs until SIGINT or SIGTERM.
func (a *Application) RunWithSignals() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}

func (a *Application) onDataFileChange(ctx context.Context, kind files.ChangeKind) {
	ctx = infrastructure.EnsureTraceID(ctx)
	a.Metrics.RecordFileChange(ctx, string(kind))
	if a.Hub == nil {
		return
	}
	if err := a.Hub.NotifyDocumentUpdate(ctx, string(kind), a.Loader.Path()); err != nil &&
		!errors.Is(err, websocket.ErrHubStopped) {
		a.Logger.WarnContext(ctx, "Failed to broadcast document update", slog.String("error", err.Error()))
	}
}

// Stop gracefully stops the server and flushes telemetry.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
