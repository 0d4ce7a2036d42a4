// Package alerts renders station events as human-readable admin alerts.
package alerts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/md-rashed-zaman/fuelstation/libs/events"
)

var ErrUnknownEvent = errors.New("unknown event type")

type Alert struct {
	Subject string
	Body    string
}

// Text joins subject and body for channels without a subject line.
func (a Alert) Text() string {
	return a.Subject + "\n\n" + a.Body
}

// Format decodes the payload of eventType and renders it. Station names the
// sender in every subject.
func Format(station, eventType string, payload []byte) (Alert, error) {
	prefix := ""
	if s := strings.TrimSpace(station); s != "" {
		prefix = "[" + s + "] "
	}

	switch eventType {
	case events.AppointmentBooked:
		var p events.AppointmentBookedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return Alert{}, fmt.Errorf("decode %s: %w", eventType, err)
		}
		return Alert{
			Subject: prefix + "New appointment " + p.CarNumber,
			Body: lines(
				"Vehicle: "+p.CarNumber+" ("+p.VehicleType+")",
				"When: "+p.Date+" "+p.Time,
				"Slot: "+p.SlotNumber,
				"Payment: "+p.PaymentMethod,
			),
		}, nil

	case events.AppointmentStatusChanged:
		var p events.AppointmentStatusChangedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return Alert{}, fmt.Errorf("decode %s: %w", eventType, err)
		}
		body := []string{
			"Vehicle: " + p.CarNumber,
			"When: " + p.Date + " " + p.Time,
			"Slot: " + p.SlotNumber,
			"Status: " + p.PreviousState + " -> " + p.Status,
		}
		if p.Price != nil {
			body = append(body, "Price: "+money(*p.Price))
		}
		return Alert{
			Subject: prefix + "Appointment " + p.CarNumber + " " + p.Status,
			Body:    lines(body...),
		}, nil

	case events.SaleRecorded:
		var p events.SaleRecordedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return Alert{}, fmt.Errorf("decode %s: %w", eventType, err)
		}
		product := p.ProductName
		if product == "" {
			product = p.ProductID
		}
		return Alert{
			Subject: prefix + "Sale " + money(p.TotalSalePrice),
			Body: lines(
				"Product: "+product,
				"Volume: "+strconv.Itoa(p.Volume),
				"Total: "+money(p.TotalSalePrice),
				"Payment: "+p.PaymentMethod,
				"Date: "+p.Date,
			),
		}, nil
	}
	return Alert{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventType)
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
