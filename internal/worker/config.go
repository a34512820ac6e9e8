// Package worker provides background job processing for CityAir.
package worker

import (
	"os"
	"time"
)

// AlertConfig holds configuration for the alert batch job.
type AlertConfig struct {
	// CityInterval is the pause between cities during a batch.
	// Default: 1 second
	CityInterval time.Duration

	// RunTimeout bounds a single batch run.
	// Default: 10 minutes
	RunTimeout time.Duration

	// RunInterval is the pause between scheduled batch runs when the
	// worker drives itself with a ticker instead of Pub/Sub.
	// Default: 24 hours
	RunInterval time.Duration
}

// DefaultAlertConfig returns the default alert job configuration.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		CityInterval: time.Second,
		RunTimeout:   10 * time.Minute,
		RunInterval:  24 * time.Hour,
	}
}

// AlertConfigFromEnv creates an AlertConfig from environment variables,
// falling back to defaults for anything unset or unparsable.
func AlertConfigFromEnv() AlertConfig {
	cfg := DefaultAlertConfig()

	if v, err := time.ParseDuration(os.Getenv("ALERT_CITY_INTERVAL")); err == nil && v > 0 {
		cfg.CityInterval = v
	}
	if v, err := time.ParseDuration(os.Getenv("ALERT_RUN_TIMEOUT")); err == nil && v > 0 {
		cfg.RunTimeout = v
	}
	if v, err := time.ParseDuration(os.Getenv("ALERT_RUN_INTERVAL")); err == nil && v > 0 {
		cfg.RunInterval = v
	}

	return cfg
}
