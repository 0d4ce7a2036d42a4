package handlers

import (
	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

// set copies a supplied field into patch; a supplied null clears the field.
func set[T any](patch docstore.Patch, key string, f validation.Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		patch[key] = nil
		return
	}
	patch[key] = f.Value
}

func setDate(patch docstore.Patch, key string, f validation.Field[string]) {
	if f.Present() {
		patch[key] = normalizeDate(f.Value)
	}
}

// normalizeDate expects a value that passed validation.Date.
func normalizeDate(raw string) model.Date {
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date(raw)
	}
	return d
}
