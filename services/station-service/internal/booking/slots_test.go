package booking

import (
	"reflect"
	"testing"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
)

func TestAvailableSlots_Basic(t *testing.T) {
	existing := []model.Appointment{
		{Date: "2024-06-01", Time: "09:00", SlotNumber: "Slot 1", Status: model.StatusAccept},
		{Date: "2024-06-01", Time: "09:00", SlotNumber: "Slot 4", Status: model.StatusReject},
		{Date: "2024-06-01", Time: "10:00", SlotNumber: "Slot 2"},
		{Date: "2024-06-02", Time: "09:00", SlotNumber: "Slot 3"},
	}

	got := AvailableSlots(DefaultSlots, "2024-06-01", "09:00", existing)
	want := []string{"Slot 2", "Slot 3", "Slot 5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAvailableSlots_EmptyQuery(t *testing.T) {
	existing := []model.Appointment{{Date: "2024-06-01", Time: "09:00", SlotNumber: "Slot 1"}}

	for _, tc := range []struct {
		date model.Date
		at   string
	}{{"", "09:00"}, {"2024-06-01", ""}} {
		got := AvailableSlots(DefaultSlots, tc.date, tc.at, existing)
		if !reflect.DeepEqual(got, DefaultSlots) {
			t.Fatalf("expected full universe for %+v, got %v", tc, got)
		}
	}
}

func TestAvailableSlots_AllTaken(t *testing.T) {
	var existing []model.Appointment
	for _, s := range DefaultSlots {
		existing = append(existing, model.Appointment{Date: "2024-06-01", Time: "09:00", SlotNumber: s})
	}
	if got := AvailableSlots(DefaultSlots, "2024-06-01", "09:00", existing); len(got) != 0 {
		t.Fatalf("expected no slots, got %v", got)
	}
}

func TestAvailableSlots_DoesNotAliasUniverse(t *testing.T) {
	universe := []string{"A", "B"}
	got := AvailableSlots(universe, "", "", nil)
	got[0] = "changed"
	if universe[0] != "A" {
		t.Fatal("result must not share the universe backing array")
	}
}
