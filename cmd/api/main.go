package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"wayplan.openmobility.org/internal/app"
	"wayplan.openmobility.org/internal/appconf"
	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/logging"
	"wayplan.openmobility.org/internal/metrics"
	"wayplan.openmobility.org/internal/places"
	"wayplan.openmobility.org/internal/planner"
	"wayplan.openmobility.org/internal/restapi"
	"wayplan.openmobility.org/internal/routing"
	"wayplan.openmobility.org/internal/webui"
)

const dbStatsInterval = 15 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		port           = flag.Int("port", envInt("PORT", 4000), "API server port")
		envFlag        = flag.String("env", envString("ENV", "development"), "Environment (development|test|production)")
		apiKeys        = flag.String("api-keys", envString("API_KEYS", "test"), "Comma-separated list of valid API keys")
		rateLimit      = flag.Int("rate-limit", envInt("RATE_LIMIT", 100), "Requests per second per API key")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
		providerKey    = flag.String("provider-key", envString("PROVIDER_API_KEY", ""), "Routing/places provider API key")
		placeCachePath = flag.String("place-cache", envString("PLACE_CACHE_PATH", "wayplan_places.db"), "SQLite file for the place cache")
	)
	flag.Parse()

	cfg := appconf.Config{
		Port:           *port,
		Env:            appconf.EnvFlagToEnvironment(*envFlag),
		ApiKeys:        ParseAPIKeys(*apiKeys),
		Verbose:        *verbose,
		RateLimit:      *rateLimit,
		ProviderKey:    *providerKey,
		PlaceCachePath: *placeCachePath,
	}

	if err := Run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// ParseAPIKeys splits a comma-separated key list, trimming whitespace.
func ParseAPIKeys(raw string) []string {
	if raw == "" {
		return []string{}
	}
	keys := strings.Split(raw, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication assembles the application graph: provider clients,
// place cache, planner service, metrics.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	logger := logging.NewLogger(cfg.Env, cfg.Verbose)
	appClock := clock.RealClock{}
	appMetrics := metrics.NewWithLogger(logger)

	directionsClient, err := routing.NewClient(cfg.ProviderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build routing client: %w", err)
	}
	directions := routing.NewInstrumentedDirections(directionsClient, appMetrics)

	resolver, err := places.NewClient(cfg.ProviderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build places client: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.PlaceCachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open place cache: %w", err)
	}
	cache := places.NewCache(db)
	if err := cache.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize place cache: %w", err)
	}
	appMetrics.StartDBStatsCollector(db, dbStatsInterval)

	placeService := places.NewService(resolver, cache, appClock, logger)
	if err := placeService.WarmIndex(context.Background()); err != nil {
		logging.LogError(logger, "failed to warm place index", err)
	}

	planService := planner.NewService(
		planner.New(directions, appClock, logger, appMetrics),
		appMetrics,
	)

	return &app.Application{
		Config:  cfg,
		Logger:  logger,
		Clock:   appClock,
		Metrics: appMetrics,
		Planner: planService,
		Places:  placeService,
	}, nil
}

// CreateServer builds the HTTP server with the full route table and
// middleware stack.
func CreateServer(application *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(application)

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webui.NewWebUI(application).SetRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewHandler(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return srv, api
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func Run(cfg appconf.Config) error {
	application, err := BuildApplication(cfg)
	if err != nil {
		return err
	}
	defer application.Metrics.Shutdown()

	srv, api := CreateServer(application, cfg)
	defer api.Shutdown()

	errChan := make(chan error, 1)
	go func() {
		application.Logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-stop:
	}

	application.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func envString(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
