package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/alert"
)

// CitySource supplies the cities with active subscribers.
type CitySource interface {
	DistinctCities(ctx context.Context) ([]string, error)
}

// BatchRunner runs one alerting pass over a list of cities.
type BatchRunner interface {
	Run(ctx context.Context, cities []string) *alert.Report
}

// AlertJob drives the daily alert batch: load the subscribed cities, then
// hand them to the pipeline.
type AlertJob struct {
	config   AlertConfig
	cities   CitySource
	pipeline BatchRunner
	logger   zerolog.Logger

	metrics *AlertMetrics
}

// AlertMetrics tracks alert job statistics across runs.
type AlertMetrics struct {
	mu sync.RWMutex

	TotalRuns     int64
	CitiesChecked int64
	AlertsSent    int64
	Failures      int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// AlertJobConfig holds configuration for creating an AlertJob.
type AlertJobConfig struct {
	Config   AlertConfig
	Cities   CitySource
	Pipeline BatchRunner
	Logger   zerolog.Logger
}

// NewAlertJob creates a new alert job processor.
func NewAlertJob(cfg AlertJobConfig) *AlertJob {
	config := cfg.Config
	if config.RunTimeout == 0 {
		config = DefaultAlertConfig()
	}

	return &AlertJob{
		config:   config,
		cities:   cfg.Cities,
		pipeline: cfg.Pipeline,
		logger:   cfg.Logger,
		metrics:  &AlertMetrics{},
	}
}

// Run executes one alert batch. The city list is loaded fresh on every run
// so new subscriptions take effect without a restart.
func (j *AlertJob) Run(ctx context.Context) (*alert.Report, error) {
	runCtx, cancel := context.WithTimeout(ctx, j.config.RunTimeout)
	defer cancel()

	cities, err := j.cities.DistinctCities(runCtx)
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to load subscribed cities")
		return nil, err
	}

	if len(cities) == 0 {
		j.logger.Info().Msg("no subscribed cities, nothing to do")
		report := &alert.Report{StartedAt: time.Now()}
		j.updateMetrics(report)
		return report, nil
	}

	j.logger.Info().Int("cities", len(cities)).Msg("starting alert job")

	report := j.pipeline.Run(runCtx, cities)
	j.updateMetrics(report)

	return report, nil
}

func (j *AlertJob) updateMetrics(report *alert.Report) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.CitiesChecked += int64(len(report.Results))
	j.metrics.AlertsSent += int64(report.AlertsSent)
	j.metrics.Failures += int64(report.Failures)
	j.metrics.LastRunAt = report.StartedAt
	j.metrics.LastRunDuration = report.Duration
	j.metrics.TotalDuration += report.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *AlertJob) GetMetrics() AlertMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return AlertMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		CitiesChecked:   j.metrics.CitiesChecked,
		AlertsSent:      j.metrics.AlertsSent,
		Failures:        j.metrics.Failures,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *AlertJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"cities_checked":    m.CitiesChecked,
		"alerts_sent":       m.AlertsSent,
		"failures":          m.Failures,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}

// RunLoop runs the job on a fixed interval until the context is cancelled.
// Used when the worker is deployed without Pub/Sub scheduling.
func (j *AlertJob) RunLoop(ctx context.Context) {
	ticker := time.NewTicker(j.config.RunInterval)
	defer ticker.Stop()

	for {
		if _, err := j.Run(ctx); err != nil {
			j.logger.Error().Err(err).Msg("alert run failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
