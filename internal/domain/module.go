package domain

import "github.com/teletec/intercom-configurator/internal/utils"

// ModuleKind tells a panel's anchor module apart from everything else
type ModuleKind int

const (
	// KindAccessory is any module that consumes budget
	KindAccessory ModuleKind = iota
	// KindMain is the panel's anchor module; it contributes the budget
	KindMain
)

// String returns the kind name used in API payloads
func (k ModuleKind) String() string {
	if k == KindMain {
		return "main"
	}
	return "accessory"
}

// MarshalText encodes the kind as its name
func (k ModuleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; anything but "main" is an accessory
func (k *ModuleKind) UnmarshalText(text []byte) error {
	if string(text) == "main" {
		*k = KindMain
		return nil
	}
	*k = KindAccessory
	return nil
}

// Module is a catalog product placed (or about to be placed) in a panel.
// The kind is decided once, when the module is built from its catalog row.
type Module struct {
	Product
	Kind         ModuleKind `json:"kind"`
	Contribution int        `json:"-"`
}

// NewModule classifies a catalog row. A row is a main module when it is flagged
// as required in the panel and carries a budget contribution.
func NewModule(p Product) Module {
	m := Module{Product: p, Kind: KindAccessory}
	if bool(p.IsRequiredInPanel) && p.BudgetContribution != nil {
		m.Kind = KindMain
		m.Contribution = *p.BudgetContribution
	}
	return m
}

// IsMain reports whether the module anchors a panel
func (m Module) IsMain() bool {
	return m.Kind == KindMain
}

// StartingBudget returns the budget a panel gets from this main module.
// A zero contribution falls back to DefaultBudget.
func (m Module) StartingBudget() int {
	if m.Contribution == 0 {
		return DefaultBudget
	}
	return m.Contribution
}

// ExclusiveNames returns the module names this module cannot coexist with
func (m Module) ExclusiveNames() []string {
	return utils.ParseCSV(m.ExclusiveWith)
}

// FindMain returns the index of the main module in modules, or -1
func FindMain(modules []Module) int {
	for i, m := range modules {
		if m.IsMain() {
			return i
		}
	}
	return -1
}

// CountByName counts modules sharing name
func CountByName(modules []Module, name string) int {
	count := 0
	for _, m := range modules {
		if m.Name == name {
			count++
		}
	}
	return count
}
