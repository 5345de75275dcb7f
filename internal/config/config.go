package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceEnvironment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	HTTPAddr           string `envconfig:"HTTP_ADDR" default:":8080"`
	DatasetSource      string `envconfig:"DATASET_SOURCE" default:"excel"`
	DatasetPath        string `envconfig:"DATASET_PATH" default:"Clickstream Assignment.xlsx"`
	DatasetSheet       string `envconfig:"DATASET_SHEET" default:"Clickstream Data"`
	PostgresDSN        string `envconfig:"POSTGRES_DSN"`
	PostgresTable      string `envconfig:"POSTGRES_TABLE" default:"clickstream_events"`
	DefaultTopN        int    `envconfig:"DEFAULT_TOP_N" default:"20"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
