package config

import (
	"errors"
	"fmt"

	"timesheet.service/internal/core/timesheet"

	"github.com/spf13/viper"
)

// ErrInvalidPolicy is returned when a classification policy setting is not
// a positive number of minutes.
var ErrInvalidPolicy = errors.New("invalid classification policy")

// The service runs as a container; everything is set through environment
// variables on the pod. Defaults target the local docker-compose stack.

type Config struct {
	DBHost               string `mapstructure:"DB_HOST"`
	DBPort               string `mapstructure:"DB_PORT"`
	DBUser               string `mapstructure:"DB_USER"`
	DBPassword           string `mapstructure:"DB_PASSWORD"`
	DBName               string `mapstructure:"DB_NAME"`
	ServerPort           string `mapstructure:"SERVER_PORT"`
	IsLocalDev           bool   `mapstructure:"IS_LOCAL_DEV"`
	AWSRegion            string `mapstructure:"AWS_REGION"`
	AWSEndpoint          string `mapstructure:"AWS_ENDPOINT"`
	SummarySQSQueueURL   string `mapstructure:"SUMMARY_SQS_QUEUE_URL"`
	SummaryEmailSender   string `mapstructure:"SUMMARY_EMAIL_SENDER"`
	SummaryEmailDomain   string `mapstructure:"SUMMARY_EMAIL_DOMAIN"`
	HolidayAPIURL        string `mapstructure:"HOLIDAY_API_URL"`
	OTelExporterEndpoint string `mapstructure:"OTEL_EXPORTER_ENDPOINT"`
	DefaultTimeZone      string `mapstructure:"DEFAULT_TIME_ZONE"`
	WorkerConcurrency    int    `mapstructure:"WORKER_CONCURRENCY"`

	LunchThresholdMinutes int `mapstructure:"LUNCH_THRESHOLD_MINUTES"`
	LunchDeductionMinutes int `mapstructure:"LUNCH_DEDUCTION_MINUTES"`
	StandardShiftMinutes  int `mapstructure:"STANDARD_SHIFT_MINUTES"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	v := viper.New()

	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "timesheet_db")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("IS_LOCAL_DEV", false)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	v.SetDefault("SUMMARY_SQS_QUEUE_URL", "http://localstack:4566/000000000000/summary-queue")
	v.SetDefault("SUMMARY_EMAIL_SENDER", "timesheet@timesheet-service.com")
	v.SetDefault("SUMMARY_EMAIL_DOMAIN", "company.com")
	v.SetDefault("HOLIDAY_API_URL", "https://brasilapi.com.br/api/feriados/v1/")
	v.SetDefault("OTEL_EXPORTER_ENDPOINT", "jaeger:4317")
	v.SetDefault("DEFAULT_TIME_ZONE", "America/Sao_Paulo")
	v.SetDefault("WORKER_CONCURRENCY", 10)
	v.SetDefault("LUNCH_THRESHOLD_MINUTES", timesheet.LunchThresholdMinutes)
	v.SetDefault("LUNCH_DEDUCTION_MINUTES", timesheet.LunchDeductionMinutes)
	v.SetDefault("STANDARD_SHIFT_MINUTES", timesheet.StandardShiftMinutes)

	// Read in environment variables that match the keys. An empty
	// OTEL_EXPORTER_ENDPOINT switches tracing to stdout.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.validatePolicy()
	return
}

func (c Config) validatePolicy() error {
	settings := []struct {
		key   string
		value int
	}{
		{"LUNCH_THRESHOLD_MINUTES", c.LunchThresholdMinutes},
		{"LUNCH_DEDUCTION_MINUTES", c.LunchDeductionMinutes},
		{"STANDARD_SHIFT_MINUTES", c.StandardShiftMinutes},
	}
	for _, s := range settings {
		if s.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidPolicy, s.key, s.value)
		}
	}
	return nil
}

// Policy is the hour classification policy configured for this deployment.
func (c Config) Policy() timesheet.Policy {
	return timesheet.Policy{
		LunchThresholdMinutes: c.LunchThresholdMinutes,
		LunchDeductionMinutes: c.LunchDeductionMinutes,
		StandardShiftMinutes:  c.StandardShiftMinutes,
	}
}
