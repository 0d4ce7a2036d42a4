// Package settings loads station-level options from an optional YAML file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/booking"
)

type Settings struct {
	// Name is printed as the heading of generated reports.
	Name  string   `yaml:"name"`
	Slots []string `yaml:"slots"`
}

func Default() Settings {
	return Settings{
		Name:  "Fuel Station",
		Slots: append([]string(nil), booking.DefaultSlots...),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if strings.TrimSpace(path) == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read station settings: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Settings, error) {
	s := Default()
	var file Settings
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Settings{}, fmt.Errorf("parse station settings: %w", err)
	}
	if name := strings.TrimSpace(file.Name); name != "" {
		s.Name = name
	}
	if len(file.Slots) > 0 {
		s.Slots = file.Slots
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	seen := map[string]struct{}{}
	for _, slot := range s.Slots {
		if strings.TrimSpace(slot) == "" {
			return errors.New("station settings: empty slot name")
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("station settings: duplicate slot %q", slot)
		}
		seen[slot] = struct{}{}
	}
	return nil
}
