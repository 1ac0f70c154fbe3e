package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"timesheet.service/internal/config"
	"timesheet.service/internal/core"
	"timesheet.service/internal/ports/repository"
	"timesheet.service/internal/worker"
	"timesheet.service/internal/worker/summary"
	"timesheet.service/pkg/aws"
	"timesheet.service/pkg/database"
	"timesheet.service/pkg/logger"
	"timesheet.service/pkg/telemetry"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	shutdownTracer, err := telemetry.InitTracer("timesheet-summary-worker", cfg.OTelExporterEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// DB connection
	db, err := database.NewInstrumentedConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()
	log.Info().Msg("Successfully connected to the database.")

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	// Initialize Dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)
	repo := repository.NewTimesheetRepository(db)
	emailService := core.NewSESEmailService(sesClient, cfg.SummaryEmailSender)
	processor := summary.NewProcessor(emailService, repo, cfg.SummaryEmailDomain)

	// Start Worker
	ctx, cancel := context.WithCancel(context.Background())
	app := worker.NewWorker(sqsClient, cfg.SummarySQSQueueURL, processor)
	if cfg.WorkerConcurrency > 0 {
		app.Concurrency = cfg.WorkerConcurrency
	}

	done := make(chan struct{})
	go func() {
		app.Start(ctx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down worker...")

	// Cancel the context to signal the worker to stop polling.
	cancel()
	<-done

	log.Info().Msg("Worker exited gracefully")
}
