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

type productPayload struct {
	Name            validation.Field[string]  `json:"name"`
	Category        validation.Field[string]  `json:"category"`
	Quantity        validation.Field[int]     `json:"quantity"`
	PricePerUnit    validation.Field[float64] `json:"pricePerUnit"`
	LastRestockDate validation.Field[string]  `json:"lastRestockDate"`
}

func (p *productPayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "name", p.Name, validation.Length(2, 100))
	validation.Required(&v, partial, "category", p.Category, validation.Length(2, 50))
	validation.Required(&v, partial, "quantity", p.Quantity, validation.NonNegative[int]())
	validation.Required(&v, partial, "pricePerUnit", p.PricePerUnit, validation.Positive[float64]())
	validation.Required(&v, partial, "lastRestockDate", p.LastRestockDate, validation.Date())
	return v
}

func (p *productPayload) build(id string, now time.Time) (model.Product, error) {
	return model.Product{
		ID:              id,
		Name:            p.Name.Value,
		Category:        p.Category.Value,
		Quantity:        p.Quantity.Value,
		PricePerUnit:    p.PricePerUnit.Value,
		LastRestockDate: normalizeDate(p.LastRestockDate.Value),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (p *productPayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "name", p.Name)
	set(patch, "category", p.Category)
	set(patch, "quantity", p.Quantity)
	set(patch, "pricePerUnit", p.PricePerUnit)
	setDate(patch, "lastRestockDate", p.LastRestockDate)
	return patch, nil
}

func (a *API) newProducts() *resource[model.Product, *productPayload] {
	return &resource[model.Product, *productPayload]{
		entity:     "Product",
		noun:       "product",
		plural:     "products",
		store:      a.stores.Products,
		newPayload: func() *productPayload { return &productPayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		report: reportLayout[model.Product]{
			title:    "Product Report",
			filename: "product_report",
			columns:  []string{"Name", "Category", "Quantity", "Price Per Unit", "Last Restock"},
			rows: func(_ context.Context, docs []model.Product) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{
						d.Name, d.Category, strconv.Itoa(d.Quantity), reports.Money(d.PricePerUnit), d.LastRestockDate.String(),
					})
				}
				return rows, nil
			},
		},
	}
}

// productsByID loads every product keyed by id.
func (a *API) productsByID(ctx context.Context) (map[string]model.Product, error) {
	all, err := a.stores.Products.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	return byID, nil
}
