// Package events holds the payloads the station service publishes. The Kafka
// topic of each payload is its event type.
package events

import "time"

const (
	AppointmentBooked        = "station.appointment.booked.v1"
	AppointmentStatusChanged = "station.appointment.status_changed.v1"
	SaleRecorded             = "station.sale.recorded.v1"
)

// Topics lists every station event topic.
var Topics = []string{AppointmentBooked, AppointmentStatusChanged, SaleRecorded}

type AppointmentBookedPayload struct {
	AppointmentID string    `json:"appointment_id"`
	CarNumber     string    `json:"car_number"`
	VehicleType   string    `json:"vehicle_type"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	SlotNumber    string    `json:"slot_number"`
	PaymentMethod string    `json:"payment_method"`
	BookedAt      time.Time `json:"booked_at"`
}

type AppointmentStatusChangedPayload struct {
	AppointmentID string    `json:"appointment_id"`
	CarNumber     string    `json:"car_number"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	SlotNumber    string    `json:"slot_number"`
	PreviousState string    `json:"previous_status"`
	Status        string    `json:"status"`
	Price         *float64  `json:"price"`
	ChangedAt     time.Time `json:"changed_at"`
}

type SaleRecordedPayload struct {
	SaleID         string    `json:"sale_id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Volume         int       `json:"volume"`
	TotalSalePrice float64   `json:"total_sale_price"`
	PaymentMethod  string    `json:"payment_method"`
	Date           string    `json:"date"`
	RecordedAt     time.Time `json:"recorded_at"`
}
