package handlers

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type utilityExpensePayload struct {
	Type        validation.Field[string]  `json:"type"`
	Amount      validation.Field[float64] `json:"amount"`
	Date        validation.Field[string]  `json:"date"`
	Description validation.Field[string]  `json:"description"`
}

func (p *utilityExpensePayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "type", p.Type, validation.Length(2, 50))
	validation.Required(&v, partial, "amount", p.Amount, validation.Positive[float64]())
	validation.Required(&v, partial, "date", p.Date, validation.Date())
	validation.Optional(&v, "description", p.Description, validation.MaxLength(500))
	return v
}

func (p *utilityExpensePayload) build(id string, now time.Time) (model.UtilityExpense, error) {
	return model.UtilityExpense{
		ID:          id,
		Type:        p.Type.Value,
		Amount:      p.Amount.Value,
		Date:        normalizeDate(p.Date.Value),
		Description: p.Description.Value,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *utilityExpensePayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "type", p.Type)
	set(patch, "amount", p.Amount)
	setDate(patch, "date", p.Date)
	if p.Description.Set {
		patch["description"] = p.Description.Value
	}
	return patch, nil
}

func (a *API) newUtilityExpenses() *resource[model.UtilityExpense, *utilityExpensePayload] {
	return &resource[model.UtilityExpense, *utilityExpensePayload]{
		entity:     "Utility expense",
		noun:       "utility expense",
		plural:     "utility expenses",
		store:      a.stores.UtilityExpenses,
		newPayload: func() *utilityExpensePayload { return &utilityExpensePayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		report: reportLayout[model.UtilityExpense]{
			title:    "Utility Expenses Report",
			filename: "utility_expenses_report",
			columns:  []string{"Type", "Amount", "Date", "Description"},
			rows: func(_ context.Context, docs []model.UtilityExpense) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{d.Type, reports.Money(d.Amount), d.Date.String(), d.Description})
				}
				return rows, nil
			},
		},
	}
}
