package airquality_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cityair/cityair/internal/airquality"
)

func TestClassify_Breakpoints(t *testing.T) {
	tests := []struct {
		name string
		aqi  float64
		tier airquality.Tier
	}{
		{"zero", 0, airquality.TierGood},
		{"boundary 50 inclusive", 50.0, airquality.TierGood},
		{"just above 50", 50.1, airquality.TierModerate},
		{"boundary 100 inclusive", 100.0, airquality.TierModerate},
		{"just above 100", 100.1, airquality.TierUnhealthySensitive},
		{"boundary 150 inclusive", 150.0, airquality.TierUnhealthySensitive},
		{"unhealthy", 155, airquality.TierUnhealthy},
		{"boundary 200 inclusive", 200.0, airquality.TierUnhealthy},
		{"very unhealthy", 212.7, airquality.TierVeryUnhealthy},
		{"boundary 300 inclusive", 300.0, airquality.TierVeryUnhealthy},
		{"hazardous", 301, airquality.TierHazardous},
		{"negative", -5, airquality.TierGood},
		{"NaN", math.NaN(), airquality.TierGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, advisory := airquality.Classify(tt.aqi)
			assert.Equal(t, tt.tier, tier)
			assert.NotEmpty(t, advisory)
		})
	}
}

func TestClassify_Advisories(t *testing.T) {
	_, advisory := airquality.Classify(155)
	assert.Equal(t, "Air quality is UNHEALTHY. Reduce outdoor activities.", advisory)

	_, advisory = airquality.Classify(212.7)
	assert.Equal(t, "Air quality is VERY UNHEALTHY. Wear a mask if going outside.", advisory)

	_, advisory = airquality.Classify(30)
	assert.Equal(t, "Air quality is GOOD. Great day to go outside!", advisory)
}

func TestTier_Ordering(t *testing.T) {
	assert.Less(t, airquality.TierGood, airquality.TierModerate)
	assert.Less(t, airquality.TierModerate, airquality.TierUnhealthySensitive)
	assert.Less(t, airquality.TierUnhealthySensitive, airquality.TierUnhealthy)
	assert.Less(t, airquality.TierUnhealthy, airquality.TierVeryUnhealthy)
	assert.Less(t, airquality.TierVeryUnhealthy, airquality.TierHazardous)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "GOOD", airquality.TierGood.String())
	assert.Equal(t, "HAZARDOUS", airquality.TierHazardous.String())
	assert.Equal(t, "UNKNOWN", airquality.Tier(99).String())
}
