package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blynk_bridge/docs"
	"blynk_bridge/internal/blynk"
	"blynk_bridge/internal/config"
	"blynk_bridge/internal/handlers"
	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/notify"
	"blynk_bridge/internal/repository"
	"blynk_bridge/internal/repository/db"
	"blynk_bridge/internal/scheduler"
	"blynk_bridge/internal/server"
	"blynk_bridge/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Blynk API Bridge
// @version      1.0
// @description  Re-exposes Blynk virtual pins (doorbell, smoke alarm) as a small JSON API.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if cfg.Blynk.Token == "" {
		log.Warnw("blynk token is empty; every remote call will fail", "env", "BRIDGE_BLYNK_TOKEN")
	}

	// command journal (optional)
	var (
		journal repository.EventRepo
		sqlDB   *sql.DB
	)
	if cfg.Journal.Enabled {
		sqlDB, err = db.InitDB(cfg.Journal.Path)
		if err != nil {
			log.Fatalw("failed to init sqlite", "err", err, "path", cfg.Journal.Path)
		}
		journal = repository.NewRepository(sqlDB).EventRepo
	}

	// MQTT event publishing (optional); a broker outage does not stop the bridge
	var (
		publisher *notify.Publisher
		sinks     []service.EventSink
	)
	if cfg.MQTT.Enabled {
		publisher = notify.NewPublisher(cfg.MQTT, log)
		if err := publisher.Start(); err != nil {
			log.Errorw("mqtt_connect_failed", "err", err, "broker", cfg.MQTT.Broker)
		}
		sinks = append(sinks, publisher)
	}

	// wire dependencies
	tasks := scheduler.NewRegistry(log)
	pins := blynk.NewClient(cfg.Blynk.BaseURL, cfg.Blynk.Token)
	services := service.NewService(service.Deps{
		Config:  cfg,
		Pins:    pins,
		Tasks:   tasks,
		Journal: journal,
		Sinks:   sinks,
		Log:     log,
	})
	apiHandler := handlers.NewHandler(services, handlers.Options{
		ServerName:       cfg.Server.Name,
		Port:             cfg.Server.Port,
		BlynkURL:         cfg.Blynk.BaseURL,
		RedactedToken:    blynk.RedactToken(cfg.Blynk.Token),
		SharedSecretHash: cfg.Auth.SharedSecretHash,
		AllowOrigins:     cfg.CORS.AllowOrigins,
		StreamInterval:   cfg.Stream.Interval,
	}, log)

	srv := server.New(cfg.Server.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	logEndpoints(cfg, log)

	waitForShutdown(srv, tasks, cfg.Commands.FlushOnShutdown, log)

	if publisher != nil {
		publisher.Stop()
	}
	if sqlDB != nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err, "addr", srv.Addr())
		}
	}()
}

func logEndpoints(cfg *config.Config, log *logger.Logger) {
	base := "http://localhost:" + cfg.Server.Port
	log.Infow("server started",
		"name", cfg.Server.Name,
		"url", base,
		"blynk", cfg.Blynk.BaseURL,
		"token", blynk.RedactToken(cfg.Blynk.Token),
	)
	for _, ep := range []string{
		"GET  /api/status",
		"GET  /api/health",
		"GET  /api/test-blynk",
		"POST /api/trigger/doorbell",
		"POST /api/trigger/smoke",
		"POST /api/reset/smoke",
		"GET  /api/logs",
		"GET  /api/tasks",
		"GET  /ws",
	} {
		log.Infow("endpoint", "route", ep, "base", base)
	}
}

// waitForShutdown listens for termination signals, stops accepting requests and
// then settles the pending auto-resets.
func waitForShutdown(srv *server.Server, tasks *scheduler.Registry, flush bool, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := tasks.Shutdown(ctx, flush); err != nil {
		log.Errorw("pending tasks not settled", "err", err, "flush", flush)
	}
}
