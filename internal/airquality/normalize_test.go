package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityair/cityair/internal/airquality"
)

func f(v float64) *float64 { return &v }

func TestNormalize_AllPresent(t *testing.T) {
	measurements := airquality.Normalize(airquality.Reading{
		PM25:  f(40.234),
		PM10:  f(18.16),
		USAQI: f(212.7),
	})

	require.Len(t, measurements, 3)

	assert.Equal(t, airquality.Measurement{Parameter: "pm25", Value: 40.2, Unit: "µg/m³"}, measurements[0])
	assert.Equal(t, airquality.Measurement{Parameter: "pm10", Value: 18.2, Unit: "µg/m³"}, measurements[1])
	assert.Equal(t, airquality.Measurement{Parameter: "us_aqi", Value: 213, Unit: ""}, measurements[2])
}

func TestNormalize_AbsentFieldsOmitted(t *testing.T) {
	measurements := airquality.Normalize(airquality.Reading{USAQI: f(55)})

	require.Len(t, measurements, 1)
	assert.Equal(t, "us_aqi", measurements[0].Parameter)
}

func TestNormalize_AllAbsent(t *testing.T) {
	measurements := airquality.Normalize(airquality.Reading{})
	assert.Empty(t, measurements)
}

func TestNormalize_RoundingIdempotent(t *testing.T) {
	once := airquality.Normalize(airquality.Reading{PM25: f(40.2), USAQI: f(213)})
	again := airquality.Normalize(airquality.Reading{PM25: f(once[0].Value), USAQI: f(once[1].Value)})

	assert.Equal(t, once, again)
}

func TestReading_Empty(t *testing.T) {
	assert.True(t, airquality.Reading{}.Empty())
	assert.False(t, airquality.Reading{PM10: f(3)}.Empty())
}
