package airquality

// Tier is an ordered air quality severity tier derived from the US AQI.
type Tier int

const (
	TierGood Tier = iota
	TierModerate
	TierUnhealthySensitive
	TierUnhealthy
	TierVeryUnhealthy
	TierHazardous
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierGood:
		return "GOOD"
	case TierModerate:
		return "MODERATE"
	case TierUnhealthySensitive:
		return "UNHEALTHY_SENSITIVE"
	case TierUnhealthy:
		return "UNHEALTHY"
	case TierVeryUnhealthy:
		return "VERY_UNHEALTHY"
	case TierHazardous:
		return "HAZARDOUS"
	default:
		return "UNKNOWN"
	}
}

// Classify maps a US AQI value to its severity tier and advisory message
// using the US AQI breakpoints, evaluated high to low. It is a pure function,
// total over all inputs: NaN and negative values fall through every
// comparison and land in the GOOD tier.
func Classify(aqi float64) (Tier, string) {
	switch {
	case aqi > 300:
		return TierHazardous, "Air quality is HAZARDOUS. Stay indoors and wear N95 mask if you must go out."
	case aqi > 200:
		return TierVeryUnhealthy, "Air quality is VERY UNHEALTHY. Wear a mask if going outside."
	case aqi > 150:
		return TierUnhealthy, "Air quality is UNHEALTHY. Reduce outdoor activities."
	case aqi > 100:
		return TierUnhealthySensitive, "Air quality is UNHEALTHY for Sensitive Groups."
	case aqi > 50:
		return TierModerate, "Air quality is MODERATE. Sensitive groups should be cautious."
	default:
		return TierGood, "Air quality is GOOD. Great day to go outside!"
	}
}
