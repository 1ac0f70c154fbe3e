// Entry point for REST API
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timesheet.service/internal/api"
	"timesheet.service/internal/config"
	"timesheet.service/internal/core"
	"timesheet.service/internal/holiday"
	"timesheet.service/internal/ports/messaging"
	"timesheet.service/internal/ports/repository"
	"timesheet.service/pkg/aws"
	"timesheet.service/pkg/database"
	"timesheet.service/pkg/logger"
	"timesheet.service/pkg/telemetry"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	shutdownTracer, err := telemetry.InitTracer("timesheet-api", cfg.OTelExporterEndpoint)
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

	repo := repository.NewTimesheetRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	holidays, err := holiday.NewClient(cfg.HolidayAPIURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create holiday client")
	}
	defer holidays.Close()

	sqsClient := sqs.NewFromConfig(awsCfg)
	producer := messaging.NewSQSProducer(sqsClient, cfg.SummarySQSQueueURL)
	service := core.NewTimesheetService(repo, producer, holidays, cfg.Policy(), cfg.DefaultTimeZone)

	router := api.NewRouter(service)

	// Middleware to inject logger with trace ID
	loggerMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.EnrichContextWithLogger(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	handler := otelhttp.NewHandler(loggerMiddleware(router), "api")

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("default_zone", cfg.DefaultTimeZone).Msg("API Service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// In-flight requests get 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
