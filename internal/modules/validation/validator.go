// Package validation decides whether a module may be placed in a panel.
package validation

import (
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/budget"
)

// MaxModulesPerPanel is the physical module capacity of one panel
const MaxModulesPerPanel = 8

// Category4GMain is the category of main modules accepted by 4G panels
// whatever panel type is selected
const Category4GMain = "Audio 4G"

// Validator checks module placements for one technology and panel type.
// Rules run in a fixed order and stop at the first failure, so a rejected
// placement reports exactly one message.
type Validator struct {
	technology domain.Technology
	panelType  domain.PanelType
	reporter   domain.Reporter
}

// New creates a validator. reporter may be nil.
func New(technology domain.Technology, panelType domain.PanelType, reporter domain.Reporter) *Validator {
	return &Validator{
		technology: technology,
		panelType:  panelType,
		reporter:   reporter,
	}
}

// CanAdd reports whether candidate may be added to a panel currently holding
// current, whose cached remaining budget is panelBudget. isReplacingMain marks
// a main module dropped onto a panel to take the place of its existing main.
func (v *Validator) CanAdd(current []domain.Module, candidate *domain.Module, panelBudget int, isReplacingMain bool) bool {
	if candidate == nil {
		return v.reject("No module selected.")
	}

	replacing := isReplacingMain && candidate.IsMain()

	if !v.checkAnchor(current, candidate, replacing) {
		return false
	}

	effective := v.effectiveBudget(current, candidate, panelBudget, replacing)
	if candidate.Cost > 0 && candidate.Cost > effective {
		if replacing {
			return v.reject("Budget exceeded for %q after replacing the main module.", candidate.Name)
		}
		return v.reject("Budget exceeded for %q.", candidate.Name)
	}

	if candidate.MaxPerPanel > 0 {
		count := 0
		if !replacing {
			count = domain.CountByName(current, candidate.Name)
		}
		if count >= candidate.MaxPerPanel {
			return v.reject("Limit reached for %q (max %d per panel).", candidate.Name, candidate.MaxPerPanel)
		}
	}

	if conflict, ok := exclusiveConflict(current, candidate, replacing); ok {
		return v.reject("%q cannot be combined with %q.", candidate.Name, conflict)
	}

	if !replacing && len(current) >= MaxModulesPerPanel {
		return v.reject("A panel holds at most %d modules.", MaxModulesPerPanel)
	}

	return true
}

// checkAnchor enforces the main-module rules
func (v *Validator) checkAnchor(current []domain.Module, candidate *domain.Module, replacing bool) bool {
	if len(current) == 0 {
		if !candidate.IsMain() {
			return v.reject("The first module in a panel must be a main module.")
		}
		if !v.matchesSystem(candidate) {
			return v.reject("%q is not a valid main module for %s %s.", candidate.Name, v.technology, v.panelType)
		}
		return true
	}

	hasMain := domain.FindMain(current) >= 0
	if !hasMain && !candidate.IsMain() {
		return v.reject("The panel needs a main module.")
	}
	if hasMain && candidate.IsMain() && !replacing {
		return v.reject("The panel already has a main module. Drop it on the main module to replace it.")
	}
	return true
}

func (v *Validator) matchesSystem(candidate *domain.Module) bool {
	if v.technology == domain.Technology4G && candidate.Category == Category4GMain {
		return true
	}
	return candidate.System == string(v.technology) && candidate.Category == string(v.panelType)
}

// effectiveBudget returns the budget the candidate's cost is checked against
func (v *Validator) effectiveBudget(current []domain.Module, candidate *domain.Module, panelBudget int, replacing bool) int {
	switch {
	case len(current) == 0:
		return candidate.StartingBudget() - candidate.Cost
	case replacing:
		return candidate.StartingBudget() - budget.CostExcludingMain(current)
	default:
		return panelBudget
	}
}

// exclusiveConflict returns the name of a present module the candidate excludes.
// The main module being replaced is ignored.
func exclusiveConflict(current []domain.Module, candidate *domain.Module, replacing bool) (string, bool) {
	for _, name := range candidate.ExclusiveNames() {
		for _, m := range current {
			if m.Name != name {
				continue
			}
			if replacing && m.IsMain() {
				continue
			}
			return name, true
		}
	}
	return "", false
}

func (v *Validator) reject(format string, args ...interface{}) bool {
	domain.Reportf(v.reporter, format, args...)
	return false
}
