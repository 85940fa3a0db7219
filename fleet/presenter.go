package fleet

import (
	"fmt"
	"strings"
	"time"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// JustifyNeverPerformed is the justification for a service with no history
func JustifyNeverPerformed() string {
	return "never performed"
}

// JustifyDistance is the justification for a distance periodicity verdict
func JustifyDistance(lastMileage int) string {
	return fmt.Sprintf("last done at %d km", lastMileage)
}

// JustifyCalendar is the justification for a calendar periodicity verdict
func JustifyCalendar(lastDate time.Time) string {
	return fmt.Sprintf("last done on %s", lastDate.Format("2006-01-02"))
}

// DueAlerts filters to the alerts that are currently due, preserving order
func DueAlerts(alerts []models.ServiceAlert) []models.ServiceAlert {
	due := make([]models.ServiceAlert, 0, len(alerts))
	for _, a := range alerts {
		if a.Due {
			due = append(due, a)
		}
	}
	return due
}

// RenderAlertSummary renders a plain-text block listing a vehicle's due
// services, one per line, for emails and log output
func RenderAlertSummary(plate string, alerts []models.ServiceAlert) string {
	due := DueAlerts(alerts)
	if len(due) == 0 {
		return fmt.Sprintf("Vehicle %s has no maintenance due.", plate)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Vehicle %s has %d maintenance service(s) due:\n", plate, len(due))
	for _, a := range due {
		fmt.Fprintf(&b, "  - %s (%s)\n", a.ServiceName, a.Justification)
	}
	return b.String()
}
