// Package catalog provides the read-only product catalog the rules engine works on.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/teletec/intercom-configurator/internal/domain"
)

// AgnosticKey is the catalog bucket holding items shared by every technology
const AgnosticKey = "SystemAgnostic"

const (
	keyAccessories   = "Accessories"
	keyPowerSupplies = "PowerSupplies"
)

// Section groups the products of one technology and panel type
type Section struct {
	Modules   []domain.Product `json:"Modules,omitempty"`
	Receivers []domain.Product `json:"Receivers,omitempty"`
}

// System is the catalog bucket of one technology.
// Panel-type sections share the object with the technology-wide
// Accessories and PowerSupplies arrays.
type System struct {
	PanelTypes    map[domain.PanelType]Section
	Accessories   []domain.Product
	PowerSupplies []domain.Product
}

// UnmarshalJSON splits the technology object into panel-type sections and shared lists
func (s *System) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.PanelTypes = make(map[domain.PanelType]Section)
	for key, value := range raw {
		switch key {
		case keyAccessories:
			if err := json.Unmarshal(value, &s.Accessories); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
		case keyPowerSupplies:
			if err := json.Unmarshal(value, &s.PowerSupplies); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
		default:
			var section Section
			if err := json.Unmarshal(value, &section); err != nil {
				return fmt.Errorf("failed to decode panel type %s: %w", key, err)
			}
			s.PanelTypes[domain.PanelType(key)] = section
		}
	}
	return nil
}

// MarshalJSON writes the system back in the data file layout
func (s System) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.PanelTypes)+2)
	for pt, section := range s.PanelTypes {
		out[string(pt)] = section
	}
	if len(s.Accessories) > 0 {
		out[keyAccessories] = s.Accessories
	}
	if len(s.PowerSupplies) > 0 {
		out[keyPowerSupplies] = s.PowerSupplies
	}
	return json.Marshal(out)
}

// Agnostic is the cross-technology bucket
type Agnostic struct {
	PanelModules  []domain.Product `json:"PanelModules_General,omitempty"`
	Accessories   []domain.Product `json:"Accessories,omitempty"`
	PowerSupplies []domain.Product `json:"PowerSupplies,omitempty"`
}

// Info summarizes a loaded catalog
type Info struct {
	Source       string              `json:"source"`
	Technologies []domain.Technology `json:"technologies"`
	Products     int                 `json:"products"`
	LoadedAt     int64               `json:"loaded_at"`
}
