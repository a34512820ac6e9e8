package airquality

import "math"

// Normalize converts a raw reading into the output measurement list.
// Concentrations are rounded to one decimal place, the AQI to the nearest
// integer. Absent fields are omitted entirely; a fully absent reading yields
// an empty slice, which callers treat as "no usable data", not an error.
// Output order is fixed: pm25, pm10, us_aqi.
func Normalize(r Reading) []Measurement {
	var measurements []Measurement

	if r.PM25 != nil {
		measurements = append(measurements, Measurement{
			Parameter: VariablePM25.Parameter(),
			Value:     roundTo1(*r.PM25),
			Unit:      VariablePM25.Unit(),
		})
	}
	if r.PM10 != nil {
		measurements = append(measurements, Measurement{
			Parameter: VariablePM10.Parameter(),
			Value:     roundTo1(*r.PM10),
			Unit:      VariablePM10.Unit(),
		})
	}
	if r.USAQI != nil {
		measurements = append(measurements, Measurement{
			Parameter: VariableUSAQI.Parameter(),
			Value:     math.Round(*r.USAQI),
			Unit:      VariableUSAQI.Unit(),
		})
	}

	return measurements
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
