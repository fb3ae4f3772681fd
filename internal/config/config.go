package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	HTTPAddress    string   `env:"HTTP_ADDRESS" envDefault:":8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	VapiAPIKey         string        `env:"VAPI_API_KEY"`
	VapiAPIURL         string        `env:"VAPI_API_URL" envDefault:"https://api.vapi.ai"`
	VapiAssistantID    string        `env:"VAPI_ASSISTANT_ID"`
	VapiPhoneNumberID  string        `env:"VAPI_PHONE_NUMBER_ID"`
	VapiRequestTimeout time.Duration `env:"VAPI_REQUEST_TIMEOUT" envDefault:"30s"`

	SchedulerInterval         time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"30s"`
	SchedulerLivenessLogEvery int           `env:"SCHEDULER_LIVENESS_LOG_EVERY" envDefault:"10"`

	CreateReminderRateLimitPerMinute uint16 `env:"CREATE_REMINDER_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
