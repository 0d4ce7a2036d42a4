package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type employeePayload struct {
	Name      validation.Field[string] `json:"name"`
	Email     validation.Field[string] `json:"email"`
	Phone     validation.Field[string] `json:"phone"`
	Address   validation.Field[string] `json:"address"`
	NICNumber validation.Field[string] `json:"nicNumber"`
}

func (p *employeePayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "name", p.Name, validation.Length(2, 100))
	validation.Required(&v, partial, "email", p.Email, validation.Email())
	validation.Required(&v, partial, "phone", p.Phone, validation.Phone())
	validation.Required(&v, partial, "address", p.Address, validation.Length(5, 200))
	validation.Required(&v, partial, "nicNumber", p.NICNumber, validation.Length(10, 12))
	return v
}

func (p *employeePayload) build(id string, now time.Time) (model.Employee, error) {
	return model.Employee{
		ID:        id,
		Name:      p.Name.Value,
		Email:     strings.ToLower(p.Email.Value),
		Phone:     p.Phone.Value,
		Address:   p.Address.Value,
		NICNumber: p.NICNumber.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *employeePayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "name", p.Name)
	if p.Email.Present() {
		patch["email"] = strings.ToLower(p.Email.Value)
	}
	set(patch, "phone", p.Phone)
	set(patch, "address", p.Address)
	set(patch, "nicNumber", p.NICNumber)
	return patch, nil
}

func (a *API) newEmployees() *resource[model.Employee, *employeePayload] {
	return &resource[model.Employee, *employeePayload]{
		entity:     "Employee",
		noun:       "employee",
		plural:     "employees",
		conflict:   "Employee with this email or NIC number already exists",
		store:      a.stores.Employees,
		newPayload: func() *employeePayload { return &employeePayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		report: reportLayout[model.Employee]{
			title:    "Employee Report",
			filename: "employee_report",
			columns:  []string{"Name", "Email", "Phone", "Address", "NIC Number"},
			rows: func(_ context.Context, docs []model.Employee) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{d.Name, d.Email, d.Phone, d.Address, d.NICNumber})
				}
				return rows, nil
			},
		},
	}
}

// employeeExists adds a violation for field when id names no employee.
func (a *API) employeeExists(ctx context.Context, v *validation.Violations, field, id string) error {
	if _, err := a.stores.Employees.Get(ctx, id); err != nil {
		if isNotFound(err) {
			v.Add(field, "Employee not found")
			return nil
		}
		return err
	}
	return nil
}

// employeeNames maps employee ids to names for report rows.
func (a *API) employeeNames(ctx context.Context) (map[string]string, error) {
	all, err := a.stores.Employees.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, e := range all {
		names[e.ID] = e.Name
	}
	return names, nil
}
