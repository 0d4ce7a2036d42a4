package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/events"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/booking"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type appointmentPayload struct {
	CarNumber     validation.Field[string]  `json:"carNumber"`
	CarType       validation.Field[string]  `json:"carType"`
	VehicleType   validation.Field[string]  `json:"vehicleType"`
	ServiceType   validation.Field[string]  `json:"serviceType"`
	Date          validation.Field[string]  `json:"date"`
	Time          validation.Field[string]  `json:"time"`
	PaymentMethod validation.Field[string]  `json:"paymentMethod"`
	Price         validation.Field[float64] `json:"price"`
	Status        validation.Field[string]  `json:"status"`
	SlotNumber    validation.Field[string]  `json:"slotNumber"`

	slots []string
}

func (p *appointmentPayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "carNumber", p.CarNumber, validation.Length(1, 20))
	validation.Required(&v, partial, "carType", p.CarType, validation.Length(1, 50))
	validation.Required(&v, partial, "vehicleType", p.VehicleType, validation.Length(1, 50))
	validation.Optional(&v, "serviceType", p.ServiceType)
	validation.Required(&v, partial, "date", p.Date, validation.Date())
	validation.Required(&v, partial, "time", p.Time, validation.Clock())
	validation.Required(&v, partial, "paymentMethod", p.PaymentMethod, validation.OneOf(model.PaymentMethods...))
	validation.Optional(&v, "price", p.Price, validation.NonNegative[float64]())
	// Status may be omitted on create and update, but never cleared.
	validation.Required(&v, true, "status", p.Status, validation.OneOf(model.AppointmentStatuses...))
	validation.Required(&v, partial, "slotNumber", p.SlotNumber, validation.OneOf(p.slots...))
	return v
}

// build ignores any supplied status and price: new bookings start pending
// and are priced when accepted.
func (p *appointmentPayload) build(id string, now time.Time) (model.Appointment, error) {
	return model.Appointment{
		ID:            id,
		CarNumber:     p.CarNumber.Value,
		CarType:       p.CarType.Value,
		VehicleType:   p.VehicleType.Value,
		ServiceType:   p.ServiceType.Ptr(),
		Date:          normalizeDate(p.Date.Value),
		Time:          p.Time.Value,
		PaymentMethod: p.PaymentMethod.Value,
		Status:        model.StatusPending,
		SlotNumber:    p.SlotNumber.Value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *appointmentPayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "carNumber", p.CarNumber)
	set(patch, "carType", p.CarType)
	set(patch, "vehicleType", p.VehicleType)
	set(patch, "serviceType", p.ServiceType)
	setDate(patch, "date", p.Date)
	set(patch, "time", p.Time)
	set(patch, "paymentMethod", p.PaymentMethod)
	set(patch, "price", p.Price)
	set(patch, "status", p.Status)
	set(patch, "slotNumber", p.SlotNumber)
	return patch, nil
}

func (a *API) newAppointments() *resource[model.Appointment, *appointmentPayload] {
	return &resource[model.Appointment, *appointmentPayload]{
		entity:     "Appointment",
		noun:       "appointment",
		plural:     "appointments",
		conflict:   "Slot already booked",
		store:      a.stores.Appointments,
		newPayload: func() *appointmentPayload { return &appointmentPayload{slots: a.settings.Slots} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		afterCreate: func(ctx context.Context, appt model.Appointment) {
			a.emit(ctx, "appointment", appt.ID, events.AppointmentBooked, events.AppointmentBookedPayload{
				AppointmentID: appt.ID,
				CarNumber:     appt.CarNumber,
				VehicleType:   appt.VehicleType,
				Date:          appt.Date.String(),
				Time:          appt.Time,
				SlotNumber:    appt.SlotNumber,
				PaymentMethod: appt.PaymentMethod,
				BookedAt:      appt.CreatedAt,
			})
		},
		afterUpdate: func(ctx context.Context, before, after model.Appointment) {
			if before.Status == after.Status {
				return
			}
			a.emit(ctx, "appointment", after.ID, events.AppointmentStatusChanged, events.AppointmentStatusChangedPayload{
				AppointmentID: after.ID,
				CarNumber:     after.CarNumber,
				Date:          after.Date.String(),
				Time:          after.Time,
				SlotNumber:    after.SlotNumber,
				PreviousState: before.Status,
				Status:        after.Status,
				Price:         after.Price,
				ChangedAt:     after.UpdatedAt,
			})
		},
		report: reportLayout[model.Appointment]{
			title:    "Appointments Report",
			filename: "appointments_report",
			columns:  []string{"Car Number", "Car Type", "Vehicle Type", "Service Type", "Date", "Time", "Payment", "Price", "Status", "Slot"},
			rows: func(_ context.Context, docs []model.Appointment) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					service := "-"
					if d.ServiceType != nil {
						service = *d.ServiceType
					}
					rows = append(rows, []string{
						d.CarNumber, d.CarType, d.VehicleType, service, d.Date.String(), d.Time,
						d.PaymentMethod, reports.OptionalMoney(d.Price), d.Status, d.SlotNumber,
					})
				}
				return rows, nil
			},
		},
	}
}

type slotsResponse struct {
	Date  string   `json:"date"`
	Time  string   `json:"time"`
	Slots []string `json:"slots"`
}

func (a *API) availableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("date"))
	at := strings.TrimSpace(q.Get("time"))

	// An unparsable date is matched verbatim, which finds nothing.
	date := model.Date(raw)
	if d, err := model.ParseDate(raw); err == nil {
		date = d
	}

	var existing []model.Appointment
	if date != "" && at != "" {
		found, err := a.stores.Appointments.Find(r.Context(), docstore.Filter{"date": date, "time": at})
		if err != nil {
			a.logger.Error("slot lookup failed", "err", err, "request_id", httpx.RequestIDFromContext(r.Context()))
			httpx.Error(w, http.StatusInternalServerError, "Error fetching available slots")
			return
		}
		existing = found
	}

	httpx.JSON(w, http.StatusOK, slotsResponse{
		Date:  string(date),
		Time:  at,
		Slots: booking.AvailableSlots(a.settings.Slots, date, at, existing),
	})
}
