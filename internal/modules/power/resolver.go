// Package power derives the power supplies a configuration needs.
// Each technology has its own algorithm.
package power

import (
	"fmt"

	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
)

// Rules names the catalog rows the algorithms use
type Rules struct {
	// SmallSupply powers one panel
	SmallSupply domain.ProductNumber
	// DistributionSupply feeds the X1 bus when it spans several panels
	DistributionSupply domain.ProductNumber
	// AuxiliarySupply powers X1 receivers
	AuxiliarySupply domain.ProductNumber
	// SharedFamily receivers can share the distribution supply
	SharedFamily []domain.ProductNumber
	// DedicatedFamily receivers need one auxiliary supply each
	DedicatedFamily []domain.ProductNumber
	// SharedCapacity is how many shared-family receivers the distribution supply carries
	SharedCapacity int
}

// DefaultRules returns the rules matching the bundled catalog
func DefaultRules() Rules {
	return Rules{
		SmallSupply:        116637,
		DistributionSupply: 116754,
		AuxiliarySupply:    116776,
		SharedFamily:       []domain.ProductNumber{120247},
		DedicatedFamily:    []domain.ProductNumber{117751, 118585},
		SharedCapacity:     14,
	}
}

// PoESwitchName is the name of the IP switch line for a given port count
func PoESwitchName(ports int) string {
	return fmt.Sprintf("You need a PoE switch with at least %d PoE ports", ports)
}

// Resolver computes power-supply line items
type Resolver struct {
	catalog *catalog.Catalog
	rules   Rules
}

// NewResolver creates a resolver over c
func NewResolver(c *catalog.Catalog, rules Rules) *Resolver {
	return &Resolver{catalog: c, rules: rules}
}

// Resolve returns the power supplies for panels and receivers under tech.
// Missing catalog rows and unknown technologies are reported; the lines
// that can be resolved are still returned.
func (r *Resolver) Resolve(
	panels []domain.Panel,
	tech domain.Technology,
	receivers domain.Receivers,
	reporter domain.Reporter,
) []domain.LineItem {
	list := domain.NewLineItemList()

	switch tech {
	case domain.TechnologyX1:
		r.resolveX1(list, panels, receivers, reporter)
	case domain.Technology4G:
		r.resolve4G(list, panels, reporter)
	case domain.TechnologyIP:
		r.resolveIP(list, panels, receivers)
	case "":
		// nothing selected yet
	default:
		domain.Reportf(reporter, "Unknown system technology %q; no power supplies calculated.", tech)
	}

	return list.Items()
}

func (r *Resolver) resolveX1(list *domain.LineItemList, panels []domain.Panel, receivers domain.Receivers, reporter domain.Reporter) {
	active := domain.ActivePanels(panels)
	distributionPresent := false

	if active > 0 {
		small, smallOK := r.lookup(domain.TechnologyX1, r.rules.SmallSupply, reporter)

		smallQty := 1
		if active >= 2 {
			if dist, ok := r.lookup(domain.TechnologyX1, r.rules.DistributionSupply, reporter); ok {
				list.Add(dist, 1)
				distributionPresent = true
			}
		}
		if active >= 3 {
			smallQty = 2
		}
		if smallOK {
			list.Add(small, smallQty)
		}
	}

	if len(receivers) == 0 {
		return
	}

	aux, ok := r.lookup(domain.TechnologyX1, r.rules.AuxiliarySupply, reporter)
	if !ok {
		return
	}

	quantity := 0
	shared := familyCount(receivers, r.rules.SharedFamily)
	if shared > 0 {
		switch {
		case !distributionPresent:
			quantity = shared
		case shared > r.rules.SharedCapacity:
			quantity = 1
		}
	}
	quantity += familyCount(receivers, r.rules.DedicatedFamily)

	list.Add(aux, quantity)
}

func (r *Resolver) resolve4G(list *domain.LineItemList, panels []domain.Panel, reporter domain.Reporter) {
	small, ok := r.lookup(domain.Technology4G, r.rules.SmallSupply, reporter)
	if !ok {
		return
	}
	list.Add(small, domain.ActivePanels(panels))
}

// resolveIP emits one placeholder switch line sized for every panel and receiver
func (r *Resolver) resolveIP(list *domain.LineItemList, panels []domain.Panel, receivers domain.Receivers) {
	devices := len(panels) + receivers.Total()
	if devices <= 0 {
		return
	}

	list.AddSynthetic(domain.Product{
		ProductNumber: domain.PlaceholderProductNumber,
		Name:          PoESwitchName(devices),
		System:        string(domain.TechnologyIP),
		Category:      "Powersupply",
	}, 1)
}

func (r *Resolver) lookup(tech domain.Technology, pn domain.ProductNumber, reporter domain.Reporter) (domain.Product, bool) {
	p, ok := r.catalog.PowerSupply(tech, pn)
	if !ok {
		domain.Reportf(reporter, "Power supply %s not found in the catalog for %s.", pn, tech)
	}
	return p, ok
}

func familyCount(receivers domain.Receivers, family []domain.ProductNumber) int {
	total := 0
	for _, pn := range family {
		total += receivers.Quantity(pn)
	}
	return total
}
