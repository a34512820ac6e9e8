package alert

import (
	"fmt"
	"strings"
	"text/template"
)

var bodyTemplate = template.Must(template.New("alert").Parse(
	`Current Air Quality in {{.City}}:

• AQI: {{.AQI}} (US AQI)
• PM2.5: {{.PM25}} µg/m³

{{.Advisory}}
`))

type bodyData struct {
	City     string
	AQI      int
	PM25     string
	Advisory string
}

// BuildMessage renders the notification subject and body for an alert.
func BuildMessage(city string, pm25, aqi float64, advisory string) (subject, body string) {
	subject = "Daily Air Quality Update: " + city

	var buf strings.Builder
	// The template cannot fail on this data shape.
	_ = bodyTemplate.Execute(&buf, bodyData{
		City:     city,
		AQI:      int(aqi),
		PM25:     fmt.Sprintf("%.1f", pm25),
		Advisory: advisory,
	})

	return subject, buf.String()
}
