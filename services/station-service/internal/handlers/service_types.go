package handlers

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type serviceTypePayload struct {
	Name  validation.Field[string]  `json:"name"`
	Price validation.Field[float64] `json:"price"`
}

func (p *serviceTypePayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "name", p.Name, validation.Length(2, 50))
	validation.Required(&v, partial, "price", p.Price, validation.Positive[float64]())
	return v
}

func (p *serviceTypePayload) build(id string, now time.Time) (model.ServiceType, error) {
	return model.ServiceType{ID: id, Name: p.Name.Value, Price: p.Price.Value, CreatedAt: now, UpdatedAt: now}, nil
}

func (p *serviceTypePayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "name", p.Name)
	set(patch, "price", p.Price)
	return patch, nil
}

func (a *API) newServiceTypes() *resource[model.ServiceType, *serviceTypePayload] {
	return &resource[model.ServiceType, *serviceTypePayload]{
		entity:     "Service type",
		noun:       "service type",
		plural:     "service types",
		store:      a.stores.ServiceTypes,
		newPayload: func() *serviceTypePayload { return &serviceTypePayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		report: reportLayout[model.ServiceType]{
			title:    "Service Types Report",
			filename: "service_types_report",
			columns:  []string{"Name", "Price"},
			rows: func(_ context.Context, docs []model.ServiceType) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{d.Name, reports.Money(d.Price)})
				}
				return rows, nil
			},
		},
	}
}
