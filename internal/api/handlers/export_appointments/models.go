package export_appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

const productID = "-//SMC Autoservis//Booking//SK"

// toCalendar собирает VCALENDAR из списка записей, время пишется в UTC
func toCalendar(list []models.AppointmentResponse, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, a := range list {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, a.EventID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, a.Start.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, a.End.UTC())
		event.Props.SetText(ical.PropSummary, summary(a))
		event.Props.SetText(ical.PropDescription, description(a))
		if status := icalStatus(a.Status); status != "" {
			event.Props.SetText(ical.PropStatus, status)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}

func summary(a models.AppointmentResponse) string {
	if a.ServiceType == "" {
		return fmt.Sprintf("Servis - %s", a.CustomerName)
	}
	return fmt.Sprintf("Servis - %s (%s)", a.CustomerName, a.ServiceType)
}

func description(a models.AppointmentResponse) string {
	lines := []string{
		"Zákazník: " + a.CustomerName,
		"Telefón: " + a.CustomerPhone,
	}
	if a.VehicleInfo != "" {
		lines = append(lines, "Vozidlo: "+a.VehicleInfo)
	}
	if a.Notes != "" {
		lines = append(lines, "Poznámky: "+a.Notes)
	}
	return strings.Join(lines, "\n")
}

func icalStatus(status string) string {
	switch status {
	case domain.StatusConfirmed:
		return "CONFIRMED"
	case domain.StatusTentative:
		return "TENTATIVE"
	case domain.StatusCancelled:
		return "CANCELLED"
	default:
		return ""
	}
}
