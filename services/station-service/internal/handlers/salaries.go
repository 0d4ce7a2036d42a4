package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type salaryPayload struct {
	EmployeeID validation.Field[string]  `json:"employeeId"`
	Name       validation.Field[string]  `json:"name"`
	BasePay    validation.Field[float64] `json:"basePay"`
	Bonus      validation.Field[float64] `json:"bonus"`
	WorkDays   validation.Field[int]     `json:"workDays"`
	Date       validation.Field[string]  `json:"date"`
	Phone      validation.Field[string]  `json:"phone"`
}

func (p *salaryPayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Optional(&v, "employeeId", p.EmployeeID, validation.NotBlank())
	validation.Required(&v, partial, "name", p.Name, validation.Length(2, 50))
	validation.Required(&v, partial, "basePay", p.BasePay, validation.Positive[float64]())
	validation.Optional(&v, "bonus", p.Bonus, validation.NonNegative[float64]())
	validation.Required(&v, partial, "workDays", p.WorkDays, validation.Positive[int]())
	validation.Required(&v, partial, "date", p.Date, validation.Date())
	validation.Required(&v, partial, "phone", p.Phone, validation.Phone())
	return v
}

// build derives TotalPay; any client-supplied total is ignored.
func (p *salaryPayload) build(id string, _ time.Time) (model.Salary, error) {
	return model.Salary{
		ID:         id,
		EmployeeID: p.EmployeeID.Value,
		Name:       p.Name.Value,
		BasePay:    p.BasePay.Value,
		Bonus:      p.Bonus.Value,
		TotalPay:   p.BasePay.Value + p.Bonus.Value,
		WorkDays:   p.WorkDays.Value,
		Date:       normalizeDate(p.Date.Value),
		Phone:      p.Phone.Value,
	}, nil
}

func (p *salaryPayload) patch(time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{}
	set(patch, "employeeId", p.EmployeeID)
	set(patch, "name", p.Name)
	set(patch, "basePay", p.BasePay)
	if p.Bonus.Set {
		// A null bonus means no bonus.
		patch["bonus"] = p.Bonus.Value
	}
	set(patch, "workDays", p.WorkDays)
	setDate(patch, "date", p.Date)
	set(patch, "phone", p.Phone)
	return patch, nil
}

func (a *API) newSalaries() *resource[model.Salary, *salaryPayload] {
	return &resource[model.Salary, *salaryPayload]{
		entity:     "Salary",
		noun:       "salary",
		plural:     "salaries",
		store:      a.stores.Salaries,
		newPayload: func() *salaryPayload { return &salaryPayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		verify: func(ctx context.Context, p *salaryPayload) (validation.Violations, error) {
			var v validation.Violations
			if p.EmployeeID.Present() {
				if err := a.employeeExists(ctx, &v, "employeeId", p.EmployeeID.Value); err != nil {
					return nil, err
				}
			}
			return v, nil
		},
		amend: a.recomputeTotalPay,
		report: reportLayout[model.Salary]{
			title:    "Salary Report",
			filename: "salary_report",
			columns:  []string{"Name", "Base Pay", "Bonus", "Total Pay", "Work Days", "Date", "Phone"},
			rows: func(_ context.Context, docs []model.Salary) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{
						d.Name, reports.Money(d.BasePay), reports.Money(d.Bonus), reports.Money(d.TotalPay),
						strconv.Itoa(d.WorkDays), d.Date.String(), d.Phone,
					})
				}
				return rows, nil
			},
		},
	}
}

// recomputeTotalPay keeps totalPay equal to basePay + bonus when an update
// touches either of them.
func (a *API) recomputeTotalPay(ctx context.Context, id string, patch docstore.Patch) error {
	base, baseSet := patch["basePay"].(float64)
	bonus, bonusSet := patch["bonus"].(float64)
	if !baseSet && !bonusSet {
		return nil
	}
	current, err := a.stores.Salaries.Get(ctx, id)
	if err != nil {
		return err
	}
	if !baseSet {
		base = current.BasePay
	}
	if !bonusSet {
		bonus = current.Bonus
	}
	patch["totalPay"] = base + bonus
	return nil
}
