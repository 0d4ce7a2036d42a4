// Package handlers exposes the station REST API.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/outbox"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/settings"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/storage"
)

// Emitter records domain events for asynchronous delivery.
type Emitter interface {
	Insert(ctx context.Context, evt outbox.Event) error
}

type AuthConfig struct {
	Secret string
	TTL    time.Duration
	// Required protects every route except booking and login.
	Required bool
}

type Config struct {
	Logger   *slog.Logger
	Stores   *storage.Collections
	Settings settings.Settings
	Auth     AuthConfig
	// Events may be nil, in which case no events are recorded.
	Events Emitter
	Now    func() time.Time
}

type API struct {
	logger   *slog.Logger
	stores   *storage.Collections
	settings settings.Settings
	auth     AuthConfig
	events   Emitter
	now      func() time.Time

	appointments    *resource[model.Appointment, *appointmentPayload]
	employees       *resource[model.Employee, *employeePayload]
	attendance      *resource[model.Attendance, *attendancePayload]
	fuelUsers       *resource[model.FuelUser, *fuelUserPayload]
	products        *resource[model.Product, *productPayload]
	sales           *resource[model.Sale, *salePayload]
	salaries        *resource[model.Salary, *salaryPayload]
	serviceTypes    *resource[model.ServiceType, *serviceTypePayload]
	utilityExpenses *resource[model.UtilityExpense, *utilityExpensePayload]
}

func New(cfg Config) *API {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Auth.TTL <= 0 {
		cfg.Auth.TTL = 24 * time.Hour
	}
	if len(cfg.Settings.Slots) == 0 {
		cfg.Settings = settings.Default()
	}
	a := &API{
		logger:   cfg.Logger,
		stores:   cfg.Stores,
		settings: cfg.Settings,
		auth:     cfg.Auth,
		events:   cfg.Events,
		now:      cfg.Now,
	}
	a.appointments = a.newAppointments()
	a.employees = a.newEmployees()
	a.attendance = a.newAttendance()
	a.fuelUsers = a.newFuelUsers()
	a.products = a.newProducts()
	a.sales = a.newSales()
	a.salaries = a.newSalaries()
	a.serviceTypes = a.newServiceTypes()
	a.utilityExpenses = a.newUtilityExpenses()
	return a
}

// emit records an event after the document write. A failure is logged and
// does not fail the request.
func (a *API) emit(ctx context.Context, aggregateType, aggregateID, eventType string, payload any) {
	if a.events == nil {
		return
	}
	evt, err := outbox.NewEvent(aggregateType, aggregateID, eventType, payload)
	if err == nil {
		err = a.events.Insert(ctx, evt)
	}
	if err != nil {
		a.logger.Error("outbox insert failed", "event_type", eventType, "aggregate_id", aggregateID, "err", err)
	}
}
