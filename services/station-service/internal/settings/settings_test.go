package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/booking"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "Fuel Station" || !reflect.DeepEqual(s.Slots, booking.DefaultSlots) {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.yaml")
	body := "name: Lanka Fuel\nslots:\n  - Bay A\n  - Bay B\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "Lanka Fuel" || !reflect.DeepEqual(s.Slots, []string{"Bay A", "Bay B"}) {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestParseKeepsDefaultSlots(t *testing.T) {
	s, err := Parse([]byte("name: Only Name\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(s.Slots) != len(booking.DefaultSlots) {
		t.Fatalf("expected default slots, got %v", s.Slots)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	if _, err := Parse([]byte("slots: [A, A]\n")); err == nil {
		t.Fatal("expected duplicate slot error")
	}
	if _, err := Parse([]byte("slots: [\"\"]\n")); err == nil {
		t.Fatal("expected empty slot error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
