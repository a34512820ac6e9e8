package alert

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityair/cityair/internal/airquality"
	"github.com/cityair/cityair/internal/geocode"
)

// Resolver resolves a city name to candidate locations.
type Resolver interface {
	Search(ctx context.Context, name string, count int) ([]geocode.Candidate, error)
}

// Fetcher retrieves current air quality values for coordinates.
type Fetcher interface {
	Current(ctx context.Context, lat, lon float64, variables []airquality.Variable) (airquality.Reading, error)
}

// SubscriberSource supplies the notification audience for a city.
type SubscriberSource interface {
	EmailsForCity(ctx context.Context, city string) ([]string, error)
}

// Notifier delivers an alert message to recipients.
type Notifier interface {
	Notify(ctx context.Context, subject, body string, recipients []string) error
}

// PipelineConfig holds dependencies for the alert pipeline.
type PipelineConfig struct {
	Resolver    Resolver
	Fetcher     Fetcher
	Subscribers SubscriberSource
	Notifier    Notifier

	// Logger for per-city diagnostics.
	Logger zerolog.Logger

	// CityInterval is the pause between cities, protecting upstream rate
	// limits (default: 1 second).
	CityInterval time.Duration

	// Clock drives the inter-city throttle (default: real time).
	Clock Clock
}

// Pipeline runs the alert batch. Cities are processed strictly sequentially
// with an enforced pause between them; one city's failure never aborts the
// batch.
type Pipeline struct {
	resolver    Resolver
	fetcher     Fetcher
	subscribers SubscriberSource
	notifier    Notifier
	logger      zerolog.Logger
	throttle    *Throttle
}

// NewPipeline creates a new alert pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	interval := cfg.CityInterval
	if interval == 0 {
		interval = time.Second
	}

	clock := cfg.Clock
	if clock == nil {
		clock = RealClock()
	}

	return &Pipeline{
		resolver:    cfg.Resolver,
		fetcher:     cfg.Fetcher,
		subscribers: cfg.Subscribers,
		notifier:    cfg.Notifier,
		logger:      cfg.Logger,
		throttle:    NewThrottle(interval, clock),
	}
}

// alertVariables are the fields the alerting path needs: the raw pm2.5
// concentration for the threshold and the AQI for message wording.
var alertVariables = []airquality.Variable{airquality.VariablePM25, airquality.VariableUSAQI}

// Run processes every city and returns the batch report. Cancellation is
// checked between cities: a cancelled context stops the batch cleanly and
// returns the partial report.
func (p *Pipeline) Run(ctx context.Context, cities []string) *Report {
	report := &Report{StartedAt: time.Now()}

	p.logger.Info().Int("cities", len(cities)).Msg("starting alert batch")

	for i, city := range cities {
		if ctx.Err() != nil {
			p.logger.Warn().
				Int("processed", i).
				Int("total", len(cities)).
				Msg("alert batch cancelled")
			break
		}

		result := p.checkCity(ctx, city)
		report.Results = append(report.Results, result)

		switch {
		case result.Status == StatusAlertSent:
			report.AlertsSent++
		case result.Failed():
			report.Failures++
			p.logger.Error().
				Err(result.Err).
				Str("city", city).
				Str("status", string(result.Status)).
				Msg("city check failed")
		}

		// Pause after every city regardless of outcome.
		if err := p.throttle.Wait(ctx); err != nil {
			break
		}
	}

	report.Duration = time.Since(report.StartedAt)

	p.logger.Info().
		Int("cities", len(report.Results)).
		Int("alerts_sent", report.AlertsSent).
		Int("failures", report.Failures).
		Dur("duration", report.Duration).
		Msg("alert batch completed")

	return report
}

// checkCity runs one city through resolve, fetch, evaluate, and notify.
// Every failure is captured in the result; nothing propagates to the batch.
func (p *Pipeline) checkCity(ctx context.Context, city string) CityResult {
	logger := p.logger.With().Str("city", city).Logger()
	logger.Debug().Msg("checking city")

	candidates, err := p.resolver.Search(ctx, city, 1)
	if err != nil {
		return CityResult{City: city, Status: StatusResolveFailed, Err: err}
	}
	if len(candidates) == 0 {
		logger.Info().Msg("city could not be geocoded")
		return CityResult{City: city, Status: StatusUnresolved}
	}

	loc := candidates[0]

	reading, err := p.fetcher.Current(ctx, loc.Lat, loc.Lon, alertVariables)
	if err != nil {
		return CityResult{City: city, Status: StatusFetchFailed, Err: err}
	}

	if reading.PM25 == nil || reading.USAQI == nil {
		logger.Info().Msg("insufficient data for city, skipping")
		return CityResult{City: city, Status: StatusNoData}
	}

	pm25 := *reading.PM25
	aqi := *reading.USAQI

	tier, advisory := airquality.Classify(aqi)
	decision := &Decision{
		City:         city,
		PM25:         pm25,
		AQI:          aqi,
		Tier:         tier,
		ShouldNotify: pm25 > PM25Threshold,
	}

	if !decision.ShouldNotify {
		logger.Info().
			Float64("pm25", pm25).
			Float64("aqi", aqi).
			Msg("air quality below alert threshold")
		return CityResult{City: city, Status: StatusNoAlert, Decision: decision}
	}

	recipients, err := p.subscribers.EmailsForCity(ctx, city)
	if err != nil {
		return CityResult{City: city, Status: StatusDeliveryFailed, Decision: decision, Err: err}
	}
	if len(recipients) == 0 {
		logger.Info().Msg("alert condition met but city has no subscribers")
		return CityResult{City: city, Status: StatusNoSubscribers, Decision: decision}
	}

	subject, body := BuildMessage(city, pm25, aqi, advisory)
	if err := p.notifier.Notify(ctx, subject, body, recipients); err != nil {
		return CityResult{City: city, Status: StatusDeliveryFailed, Decision: decision, Err: err}
	}

	logger.Info().
		Float64("pm25", pm25).
		Float64("aqi", aqi).
		Str("tier", tier.String()).
		Int("recipients", len(recipients)).
		Msg("alert sent")

	return CityResult{City: city, Status: StatusAlertSent, Decision: decision}
}
