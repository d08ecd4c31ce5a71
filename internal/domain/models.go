// Package domain provides core domain models and types.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultBudget is the starting budget of a panel whose main module does not override it.
const DefaultBudget = 12

// Technology represents the top-level system family
type Technology string

const (
	// TechnologyX1 is the bus-wire system
	TechnologyX1 Technology = "X1"
	// TechnologyIP is the IP-based system (PoE powered)
	TechnologyIP Technology = "IP"
	// Technology4G is the budget 4G system (calls a phone number, no receivers)
	Technology4G Technology = "4G"
)

// Valid reports whether t is one of the supported technologies
func (t Technology) Valid() bool {
	switch t {
	case TechnologyX1, TechnologyIP, Technology4G:
		return true
	}
	return false
}

// PanelType represents the panel variant within a technology
type PanelType string

const (
	PanelTypeVideo PanelType = "Video"
	PanelTypeAudio PanelType = "Audio"
)

// InstallationType represents how a panel is mounted
type InstallationType string

const (
	InstallationRecessed    InstallationType = "recessed"
	InstallationWallMounted InstallationType = "wall-mounted"
)

// Valid reports whether i is a known installation type
func (i InstallationType) Valid() bool {
	return i == InstallationRecessed || i == InstallationWallMounted
}

// ProductNumber identifies a catalog item.
// The placeholder value marks a line the installer has to specify.
type ProductNumber int

const (
	// PlaceholderProductNumber is used for synthetic lines (the IP PoE switch)
	PlaceholderProductNumber ProductNumber = -1
	// PlaceholderCode is the wire representation of PlaceholderProductNumber
	PlaceholderCode = "POE_SWITCH_TBD"
)

// IsPlaceholder reports whether pn is the "to be determined" sentinel
func (pn ProductNumber) IsPlaceholder() bool {
	return pn == PlaceholderProductNumber
}

// String returns the product number as printed in exports
func (pn ProductNumber) String() string {
	if pn.IsPlaceholder() {
		return PlaceholderCode
	}
	return strconv.Itoa(int(pn))
}

// MarshalJSON encodes the placeholder as its code and everything else as a number
func (pn ProductNumber) MarshalJSON() ([]byte, error) {
	if pn.IsPlaceholder() {
		return json.Marshal(PlaceholderCode)
	}
	return []byte(strconv.Itoa(int(pn))), nil
}

// UnmarshalJSON accepts numbers, numeric strings and the placeholder code
func (pn *ProductNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*pn = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseProductNumber(s)
		if err != nil {
			return err
		}
		*pn = parsed
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid product number %s: %w", string(data), err)
	}
	*pn = ProductNumber(n)
	return nil
}

// ParseProductNumber parses a product number as written by String
func ParseProductNumber(s string) (ProductNumber, error) {
	if s == PlaceholderCode {
		return PlaceholderProductNumber, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid product number %q: %w", s, err)
	}
	return ProductNumber(n), nil
}

// Flag is a catalog boolean stored as 0/1 in the data file
type Flag bool

// MarshalJSON writes the flag as 0 or 1
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0/1 as well as true/false
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*f = true
	case "0", "false", "null", "":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", string(data))
	}
	return nil
}

// Product is one row of the product catalog.
// Field names follow the catalog data file.
type Product struct {
	ProductNumber      ProductNumber    `json:"Product Number"`
	Name               string           `json:"Name"`
	System             string           `json:"System,omitempty"`
	Category           string           `json:"Category,omitempty"`
	Cost               int              `json:"Cost,omitempty"`
	BudgetContribution *int             `json:"Budget Contribution,omitempty"`
	IsRequiredInPanel  Flag             `json:"Is Required in Panel,omitempty"`
	MaxPerPanel        int              `json:"Max per Panel,omitempty"`
	ExclusiveWith      string           `json:"Exclusive With,omitempty"`
	FrontPlate         ProductNumber    `json:"Front Plate,omitempty"`
	VrFrontPlate       ProductNumber    `json:"VrfrontPlate,omitempty"`
	Image              string           `json:"Image,omitempty"`
	VrImage            string           `json:"VrImage,omitempty"`
	ModuleCapacity     int              `json:"module_capacity,omitempty"`
	InstallationType   InstallationType `json:"installation_type,omitempty"`
	Vr                 ProductNumber    `json:"Vr,omitempty"`
}
