package session

import (
	"time"

	"github.com/teletec/intercom-configurator/internal/domain"
)

// Snapshot is a read-only copy of the session state and its derived lists
type Snapshot struct {
	Technology        domain.Technology       `json:"system_technology"`
	PanelType         domain.PanelType        `json:"panel_type"`
	InstallationType  domain.InstallationType `json:"installation_type"`
	IsVandalResistant bool                    `json:"is_vandal_resistant"`
	SameConfig        bool                    `json:"same_config"`
	Panels            []domain.Panel          `json:"panels"`
	Receivers         domain.Receivers        `json:"receivers"`
	Accessories       []domain.LineItem       `json:"accessories"`
	PowerSupplies     []domain.LineItem       `json:"power_supplies"`
	MaxPanels         int                     `json:"max_panels"`
	Version           uint64                  `json:"version"`
	Transition        string                  `json:"transition,omitempty"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// Observer is notified after every successful transition
type Observer interface {
	SessionChanged(snapshot Snapshot)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(snapshot Snapshot)

// SessionChanged calls f(snapshot)
func (f ObserverFunc) SessionChanged(snapshot Snapshot) {
	f(snapshot)
}
