// Package storage opens the station collections on the configured backend.
package storage

import (
	"context"
	"fmt"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
)

// Unique indexes mirror the expression indexes in the SQL migrations.
var (
	AppointmentsSchema = docstore.Schema{
		Name:   "appointments",
		Unique: []docstore.Index{{Name: "appointments_slot_unique", Fields: []string{"date", "time", "slotNumber"}}},
	}
	EmployeesSchema = docstore.Schema{
		Name: "employees",
		Unique: []docstore.Index{
			{Name: "employees_email_unique", Fields: []string{"email"}},
			{Name: "employees_nic_unique", Fields: []string{"nicNumber"}},
		},
	}
	AttendanceSchema = docstore.Schema{Name: "attendance"}
	FuelUsersSchema  = docstore.Schema{
		Name:   "fuel_users",
		Unique: []docstore.Index{{Name: "fuel_users_email_unique", Fields: []string{"email"}}},
	}
	ProductsSchema        = docstore.Schema{Name: "products"}
	SalesSchema           = docstore.Schema{Name: "sales"}
	SalariesSchema        = docstore.Schema{Name: "salaries"}
	ServiceTypesSchema    = docstore.Schema{Name: "service_types"}
	UtilityExpensesSchema = docstore.Schema{Name: "utility_expenses"}
)

type Collections struct {
	Appointments    docstore.Collection[model.Appointment]
	Employees       docstore.Collection[model.Employee]
	Attendance      docstore.Collection[model.Attendance]
	FuelUsers       docstore.Collection[model.FuelUser]
	Products        docstore.Collection[model.Product]
	Sales           docstore.Collection[model.Sale]
	Salaries        docstore.Collection[model.Salary]
	ServiceTypes    docstore.Collection[model.ServiceType]
	UtilityExpenses docstore.Collection[model.UtilityExpense]
}

func Open(ctx context.Context, b docstore.Backend) (*Collections, error) {
	var (
		c   Collections
		err error
	)
	if c.Appointments, err = docstore.Open[model.Appointment](ctx, b, AppointmentsSchema); err != nil {
		return nil, wrap(AppointmentsSchema, err)
	}
	if c.Employees, err = docstore.Open[model.Employee](ctx, b, EmployeesSchema); err != nil {
		return nil, wrap(EmployeesSchema, err)
	}
	if c.Attendance, err = docstore.Open[model.Attendance](ctx, b, AttendanceSchema); err != nil {
		return nil, wrap(AttendanceSchema, err)
	}
	if c.FuelUsers, err = docstore.Open[model.FuelUser](ctx, b, FuelUsersSchema); err != nil {
		return nil, wrap(FuelUsersSchema, err)
	}
	if c.Products, err = docstore.Open[model.Product](ctx, b, ProductsSchema); err != nil {
		return nil, wrap(ProductsSchema, err)
	}
	if c.Sales, err = docstore.Open[model.Sale](ctx, b, SalesSchema); err != nil {
		return nil, wrap(SalesSchema, err)
	}
	if c.Salaries, err = docstore.Open[model.Salary](ctx, b, SalariesSchema); err != nil {
		return nil, wrap(SalariesSchema, err)
	}
	if c.ServiceTypes, err = docstore.Open[model.ServiceType](ctx, b, ServiceTypesSchema); err != nil {
		return nil, wrap(ServiceTypesSchema, err)
	}
	if c.UtilityExpenses, err = docstore.Open[model.UtilityExpense](ctx, b, UtilityExpensesSchema); err != nil {
		return nil, wrap(UtilityExpensesSchema, err)
	}
	return &c, nil
}

// OpenMemory is Open on the in-memory backend.
func OpenMemory() *Collections {
	c, err := Open(context.Background(), docstore.Backend{Driver: docstore.DriverMemory})
	if err != nil {
		panic(err)
	}
	return c
}

func wrap(schema docstore.Schema, err error) error {
	return fmt.Errorf("open %s collection: %w", schema.Name, err)
}
