package main

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/handler"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/notify"
	"github.com/MKhiriev/go-event-organizer/internal/server"
	"github.com/MKhiriev/go-event-organizer/internal/service"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/workers"
	"github.com/MKhiriev/go-event-organizer/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("event-organizer-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	notifier, err := notify.New(cfg.Notifier, log.WithComponent("notifier"))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}
	if closer, ok := notifier.(io.Closer); ok {
		defer closer.Close()
	}
	dispatcher := workers.NewNotificationDispatcher(notifier, cfg.Workers, cfg.Notifier.Timeout, log.WithComponent("dispatcher"))

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, dispatcher, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, db, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	workersDone := make(chan struct{})
	go func() {
		workers.NewWorkers(dispatcher).Run(workersCtx)
		close(workersDone)
	}()

	srv.RunServer()

	// deliver notifications queued by the last requests
	stopWorkers()
	<-workersDone
	log.Info().Msg("workers stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "dev"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
