// Package budget computes how many budget points a panel has left.
package budget

import "github.com/teletec/intercom-configurator/internal/domain"

// RemainingBudget returns the points left in a panel holding modules.
//
// An empty panel has the default budget. Otherwise the main module's
// contribution minus the cost of every other module; without a main module
// the default budget minus the cost of all modules.
func RemainingBudget(modules []domain.Module) int {
	if len(modules) == 0 {
		return domain.DefaultBudget
	}

	mainIdx := domain.FindMain(modules)
	if mainIdx < 0 {
		return domain.DefaultBudget - TotalCost(modules)
	}

	spent := 0
	for i, m := range modules {
		if i != mainIdx {
			spent += m.Cost
		}
	}
	return modules[mainIdx].StartingBudget() - spent
}

// TotalCost sums the cost of modules
func TotalCost(modules []domain.Module) int {
	total := 0
	for _, m := range modules {
		total += m.Cost
	}
	return total
}

// CostExcludingMain sums the cost of every non-main module
func CostExcludingMain(modules []domain.Module) int {
	total := 0
	for _, m := range modules {
		if !m.IsMain() {
			total += m.Cost
		}
	}
	return total
}
