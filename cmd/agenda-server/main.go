package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/service"
	"github.com/tenrocafes/agenda/internal/agenda/store"
	"github.com/tenrocafes/agenda/internal/agenda/store/csvfile"
	"github.com/tenrocafes/agenda/internal/agenda/store/memory"
	"github.com/tenrocafes/agenda/internal/agenda/store/sqlite"
	"github.com/tenrocafes/agenda/internal/config"
	"github.com/tenrocafes/agenda/internal/db"
	"github.com/tenrocafes/agenda/internal/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Error().Err(err).Msg("config load failed")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recordStore   store.RecordStore
		supplierStore store.SupplierStore
	)

	switch cfg.Storage {
	case "memory":
		recordStore = memory.NewRecordStore(nil)
		supplierStore = memory.NewSupplierStore(nil)

	case "csv":
		recordStore = csvfile.NewRecordStore(cfg.RecordsCSVPath)
		supplierStore = csvfile.NewSupplierStore(cfg.SuppliersCSVPath)

	case "sqlite":
		sqlDB, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			logger.Error().Err(err).Msg("open database failed")
			os.Exit(1)
		}
		defer sqlDB.Close()

		if cfg.Env == "dev" {
			if err := db.SeedDev(ctx, sqlDB); err != nil {
				logger.Error().Err(err).Msg("dev seed failed")
				os.Exit(1)
			}
		}

		writer := db.NewWorker(sqlDB)
		defer writer.Close()

		recordStore = sqlite.NewRecordStore(sqlDB, writer)
		supplierStore = sqlite.NewSupplierStore(sqlDB, writer)
	}

	access := service.NewAccessService(service.AccessConfig{
		AdminPIN:  cfg.AdminPIN,
		StorePINs: cfg.StorePINs,
	})
	supplierSvc := service.NewSupplierService(supplierStore)
	scheduleSvc := service.NewScheduleService(recordStore, supplierSvc, access, logger)

	scanner := service.NewDueScanner(recordStore, service.ScannerConfig{
		LookaheadDays: cfg.DueLookaheadDays,
		IntervalHours: cfg.ScanIntervalHours,
	}, logger)
	scanner.Start(ctx)
	defer scanner.Stop()

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:    logger,
		Addr:      cfg.HTTPAddr,
		Access:    access,
		Schedule:  scheduleSvc,
		Suppliers: supplierSvc,
	})

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("storage", cfg.Storage).
			Int("stores", len(cfg.Tenants)).
			Msg("listening")
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if cfg.Env == "dev" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	return out.Level(level).With().Timestamp().Str("svc", "agenda-server").Logger()
}
