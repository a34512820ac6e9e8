// Package airquality provides air quality domain types, reading
// normalization, and AQI severity classification.
package airquality

import "errors"

// Provider errors.
var (
	// ErrNoData indicates a reading carried none of the requested fields.
	ErrNoData = errors.New("no usable air quality data")

	// ErrProviderUnavailable indicates the air quality provider could not
	// be reached after exhausting the retry budget.
	ErrProviderUnavailable = errors.New("air quality provider unavailable")

	// ErrBadResponse indicates the provider returned a response that could
	// not be decoded.
	ErrBadResponse = errors.New("malformed air quality response")
)

// Variable identifies a current-conditions variable requested from the
// provider. The values are the provider's wire names.
type Variable string

const (
	VariablePM25  Variable = "pm2_5"
	VariablePM10  Variable = "pm10"
	VariableUSAQI Variable = "us_aqi"
)

// Parameter returns the output-facing parameter name for the variable.
func (v Variable) Parameter() string {
	if v == VariablePM25 {
		return "pm25"
	}
	return string(v)
}

// Unit returns the measurement unit string for the variable. US AQI is a
// unitless composite index.
func (v Variable) Unit() string {
	if v == VariableUSAQI {
		return ""
	}
	return "µg/m³"
}

// Reading holds raw current pollutant values for one location. Any field may
// be nil: the provider omits variables under data gaps and that is not an
// error.
type Reading struct {
	PM25  *float64
	PM10  *float64
	USAQI *float64
}

// Empty reports whether the reading carries no values at all. An empty
// reading is meaningless and must not be reported as a measurement.
func (r Reading) Empty() bool {
	return r.PM25 == nil && r.PM10 == nil && r.USAQI == nil
}

// Measurement is one validated, rounded output value.
type Measurement struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
}
