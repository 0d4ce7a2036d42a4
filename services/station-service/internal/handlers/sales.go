package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/events"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type salePayload struct {
	ProductID      validation.Field[string]  `json:"productId"`
	Volume         validation.Field[int]     `json:"volume"`
	TotalSalePrice validation.Field[float64] `json:"totalSalePrice"`
	PaymentMethod  validation.Field[string]  `json:"paymentMethod"`
	Date           validation.Field[string]  `json:"date"`
}

func (p *salePayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "productId", p.ProductID, validation.NotBlank())
	validation.Required(&v, partial, "volume", p.Volume, validation.Positive[int]())
	validation.Required(&v, partial, "totalSalePrice", p.TotalSalePrice, validation.Positive[float64]())
	validation.Required(&v, partial, "paymentMethod", p.PaymentMethod, validation.OneOf(model.PaymentMethods...))
	validation.Required(&v, partial, "date", p.Date, validation.Date())
	return v
}

func (p *salePayload) build(id string, now time.Time) (model.Sale, error) {
	return model.Sale{
		ID:             id,
		ProductID:      p.ProductID.Value,
		Volume:         p.Volume.Value,
		TotalSalePrice: p.TotalSalePrice.Value,
		PaymentMethod:  p.PaymentMethod.Value,
		Date:           normalizeDate(p.Date.Value),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (p *salePayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "productId", p.ProductID)
	set(patch, "volume", p.Volume)
	set(patch, "totalSalePrice", p.TotalSalePrice)
	set(patch, "paymentMethod", p.PaymentMethod)
	setDate(patch, "date", p.Date)
	return patch, nil
}

// saleView is a sale with its product resolved; Product is nil once the
// product has been deleted.
type saleView struct {
	model.Sale
	Product *model.Product `json:"product"`
}

func (a *API) newSales() *resource[model.Sale, *salePayload] {
	return &resource[model.Sale, *salePayload]{
		entity:     "Sale",
		noun:       "sale",
		plural:     "sales",
		store:      a.stores.Sales,
		newPayload: func() *salePayload { return &salePayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		verify: func(ctx context.Context, p *salePayload) (validation.Violations, error) {
			var v validation.Violations
			if !p.ProductID.Present() {
				return v, nil
			}
			if _, err := a.stores.Products.Get(ctx, p.ProductID.Value); err != nil {
				if !isNotFound(err) {
					return nil, err
				}
				v.Add("productId", "Product not found")
			}
			return v, nil
		},
		present: a.presentSale,
		presentAll: func(ctx context.Context, sales []model.Sale) (any, error) {
			products, err := a.productsByID(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]saleView, 0, len(sales))
			for _, s := range sales {
				view := saleView{Sale: s}
				if p, ok := products[s.ProductID]; ok {
					view.Product = &p
				}
				out = append(out, view)
			}
			return out, nil
		},
		afterCreate: func(ctx context.Context, s model.Sale) {
			payload := events.SaleRecordedPayload{
				SaleID:         s.ID,
				ProductID:      s.ProductID,
				Volume:         s.Volume,
				TotalSalePrice: s.TotalSalePrice,
				PaymentMethod:  s.PaymentMethod,
				Date:           s.Date.String(),
				RecordedAt:     s.CreatedAt,
			}
			if p, err := a.stores.Products.Get(ctx, s.ProductID); err == nil {
				payload.ProductName = p.Name
			}
			a.emit(ctx, "sale", s.ID, events.SaleRecorded, payload)
		},
		report: reportLayout[model.Sale]{
			title:    "Sales Report",
			filename: "sales_report",
			columns:  []string{"Product", "Volume", "Total Price", "Payment", "Date"},
			rows: func(ctx context.Context, docs []model.Sale) ([][]string, error) {
				products, err := a.productsByID(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					name := "-"
					if p, ok := products[d.ProductID]; ok {
						name = p.Name
					}
					rows = append(rows, []string{
						name, strconv.Itoa(d.Volume), reports.Money(d.TotalSalePrice), d.PaymentMethod, d.Date.String(),
					})
				}
				return rows, nil
			},
		},
	}
}

func (a *API) presentSale(ctx context.Context, s model.Sale) (any, error) {
	view := saleView{Sale: s}
	p, err := a.stores.Products.Get(ctx, s.ProductID)
	switch {
	case err == nil:
		view.Product = &p
	case !errors.Is(err, docstore.ErrNotFound):
		return nil, err
	}
	return view, nil
}
