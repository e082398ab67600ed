package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/api"
	"smartwaste-backend/internal/db"
	"smartwaste-backend/internal/planner"
	"smartwaste-backend/internal/routing"
	"smartwaste-backend/internal/sim"
	"smartwaste-backend/internal/status"
	"smartwaste-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "smartwaste ", log.LstdFlags)

	// A local .env may supply CONFIG_PATH and friends.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Printf("warning: could not load .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		logger.Printf("no config file at %s, using defaults", configPath)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)

	policy := status.Policy{
		CriticalPercent: cfg.Bins.CriticalPercent,
		WarningPercent:  cfg.Bins.WarningPercent,
	}
	simulator := sim.New(cfg.Simulation)

	// With simulation on and an empty store, seed the simulated bin set.
	if simulator.Enabled() {
		count, err := appStore.CountBins(context.Background())
		if err != nil {
			logger.Fatalf("failed to count bins: %v", err)
		}
		if count == 0 {
			bins := simulator.SeedBins(cfg.Bins.DefaultCapacity, time.Now().UTC())
			for i := range bins {
				if err := appStore.CreateBin(context.Background(), &bins[i]); err != nil {
					logger.Fatalf("failed to seed bins: %v", err)
				}
			}
			logger.Printf("seeded %d simulated bins", len(bins))
		}
	}

	provider := routing.NewOSRMClient(cfg.Routing)
	assembler := planner.New(appStore, provider, cfg.Bins.CollectionThreshold)

	handler := api.NewHandler(appStore, simulator, assembler, policy, cfg.Bins.DefaultCapacity)
	router := api.NewRouter(handler, &cfg.Server)

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: cors.New(corsOptions).Handler(router),
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
