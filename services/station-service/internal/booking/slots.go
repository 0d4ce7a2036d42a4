// Package booking computes slot availability for the service bay.
package booking

import "github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"

var DefaultSlots = []string{"Slot 1", "Slot 2", "Slot 3", "Slot 4", "Slot 5"}

// AvailableSlots returns the slots of universe, in order, that no existing
// appointment holds at exactly this date and time. Status is ignored: a
// rejected appointment still holds its slot. An empty date or time returns
// the whole universe.
func AvailableSlots(universe []string, date model.Date, at string, existing []model.Appointment) []string {
	out := make([]string, 0, len(universe))
	if date == "" || at == "" {
		return append(out, universe...)
	}

	taken := map[string]struct{}{}
	for _, a := range existing {
		if a.Date == date && a.Time == at {
			taken[a.SlotNumber] = struct{}{}
		}
	}
	for _, slot := range universe {
		if _, ok := taken[slot]; !ok {
			out = append(out, slot)
		}
	}
	return out
}
