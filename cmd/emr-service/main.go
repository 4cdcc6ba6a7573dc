package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/clinicdesk/emr-core/pkg/common/clock"
	"github.com/clinicdesk/emr-core/pkg/common/config"
	"github.com/clinicdesk/emr-core/pkg/common/database"
	"github.com/clinicdesk/emr-core/pkg/common/logger"
	"github.com/clinicdesk/emr-core/pkg/emr"
	"github.com/clinicdesk/emr-core/pkg/gateway/middleware"
	"github.com/clinicdesk/emr-core/pkg/prefs"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()
	clk := clock.Real{}

	db, err := database.GetSQLite(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to open database")
	}

	ctx := context.Background()

	repo := emr.NewRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Log.WithError(err).Fatal("failed to create tables")
	}

	service := emr.NewService(repo, clk)

	fixture, err := emr.LoadSeed(cfg.SeedFile)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to load seed fixture, using built-in sample data")
	}
	if err := service.Seed(ctx, fixture); err != nil {
		logger.Log.WithError(err).Warn("sample data insertion failed")
	}

	prefStore := prefs.NewStore(db, clk)
	if err := prefStore.EnsureSchema(ctx); err != nil {
		logger.Log.WithError(err).Fatal("failed to create preference table")
	}
	if err := prefStore.SetDefault(ctx, "ui", "use_demo_data", strconv.FormatBool(cfg.UseDemoData)); err != nil {
		logger.Log.WithError(err).Warn("failed to write default preference")
	}

	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	emr.NewHandler(service).Register(api)
	prefs.NewHandler(prefStore).Register(api)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("EMR service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start emr service")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down EMR service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("EMR service forced to shutdown")
	}
	if err := database.CloseSQLite(); err != nil {
		logger.Log.WithError(err).Error("Error closing database")
	}
	logger.Log.Info("EMR service stopped")
}
