package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/config"
	"github.com/egguard/egguard-backend/internal/repository/mongodb"
	"github.com/egguard/egguard-backend/internal/repository/sheets"
	"github.com/egguard/egguard-backend/internal/scheduler"
	"github.com/egguard/egguard-backend/internal/server/handlers"
	"github.com/egguard/egguard-backend/internal/server/router"
	eggsvc "github.com/egguard/egguard-backend/internal/service/egg"
	statssvc "github.com/egguard/egguard-backend/internal/service/farmstats"
	notifsvc "github.com/egguard/egguard-backend/internal/service/notification"
	"github.com/egguard/egguard-backend/pkg/clients/alerts"
	"github.com/egguard/egguard-backend/pkg/clients/imagestore"
	"github.com/egguard/egguard-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var uploader imagestore.Uploader
	if cfg.ImageStore.Endpoint != "" {
		minioStore, err := imagestore.NewMinioStore(context.Background(), cfg.ImageStore, baseLogger.Named("imagestore"))
		if err != nil {
			baseLogger.Fatal("failed to init image store", zap.Error(err))
		}
		uploader = minioStore
	} else {
		baseLogger.Warn("image store not configured, notification images disabled")
	}

	var notifier alerts.Notifier
	if cfg.Alerts.WebhookURL != "" {
		notifier = alerts.NewWebhookClient(cfg.Alerts)
		baseLogger.Info("critical alert forwarding enabled")
	}

	eggService := eggsvc.NewService(store, store, store, cfg.Eggs.DuplicateDistanceThreshold, baseLogger.Named("svc.egg"))
	statsService := statssvc.NewService(store, store, baseLogger.Named("svc.farmstats"))
	notificationService := notifsvc.NewService(store, store, store, uploader, notifier, baseLogger.Named("svc.notification"))

	eggHandler := handlers.NewEggHandler(eggService, baseLogger.Named("handlers.egg"))
	farmHandler := handlers.NewFarmHandler(statsService, baseLogger.Named("handlers.farm"))
	notificationHandler := handlers.NewNotificationHandler(notificationService, baseLogger.Named("handlers.notification"))
	engine := router.New(eggHandler, farmHandler, notificationHandler, baseLogger.Named("router"))

	if cfg.Reporting.Enabled {
		var exporter sheets.StatsExporter
		if cfg.Sheets.SpreadsheetID != "" {
			exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
			if err != nil {
				baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
			}
		}

		sched := scheduler.NewScheduler(cfg.Reporting, store, statsService, exporter, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
