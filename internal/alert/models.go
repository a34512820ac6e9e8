// Package alert drives the air quality alert batch: resolve each subscribed
// city, fetch current readings, classify severity, and notify subscribers
// when pollution crosses the alert threshold.
package alert

import (
	"time"

	"github.com/cityair/cityair/internal/airquality"
)

// PM25Threshold is the PM2.5 concentration in µg/m³ above which subscribers
// are alerted. Independent of the AQI severity tiers, which only affect
// message wording.
const PM25Threshold = 35.0

// CityStatus is the terminal state of one city's pass through the pipeline.
type CityStatus string

const (
	// StatusUnresolved means geocoding returned zero candidates.
	StatusUnresolved CityStatus = "unresolved"

	// StatusResolveFailed means the geocoding call itself failed.
	StatusResolveFailed CityStatus = "resolve_failed"

	// StatusFetchFailed means the air quality fetch failed after retries.
	StatusFetchFailed CityStatus = "fetch_failed"

	// StatusNoData means the reading lacked pm2.5 or AQI values.
	StatusNoData CityStatus = "no_data"

	// StatusNoAlert means air quality was below the alert threshold.
	StatusNoAlert CityStatus = "no_alert"

	// StatusNoSubscribers means an alert fired but nobody subscribes to
	// the city anymore.
	StatusNoSubscribers CityStatus = "no_subscribers"

	// StatusAlertSent means subscribers were notified.
	StatusAlertSent CityStatus = "alert_sent"

	// StatusDeliveryFailed means an alert fired but the notification sink
	// reported a failure.
	StatusDeliveryFailed CityStatus = "delivery_failed"
)

// Decision is the threshold evaluation for one city.
type Decision struct {
	City         string
	PM25         float64
	AQI          float64
	Tier         airquality.Tier
	ShouldNotify bool
}

// CityResult records the outcome for one city in a batch. Err is set for the
// failure statuses and nil otherwise.
type CityResult struct {
	City     string
	Status   CityStatus
	Decision *Decision
	Err      error
}

// Failed reports whether the city ended in a failure status.
func (r CityResult) Failed() bool {
	return r.Err != nil
}

// Report is the outcome of a whole batch run.
type Report struct {
	StartedAt  time.Time
	Duration   time.Duration
	Results    []CityResult
	AlertsSent int
	Failures   int
}

// ResultFor returns the result for a city, or false if the batch never
// reached it (e.g. it was cancelled).
func (r *Report) ResultFor(city string) (CityResult, bool) {
	for _, res := range r.Results {
		if res.City == city {
			return res, true
		}
	}
	return CityResult{}, false
}
