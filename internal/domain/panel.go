package domain

import "fmt"

// Panel is one door station of the configuration
type Panel struct {
	Modules           []Module         `json:"modules"`
	Label             string           `json:"label"`
	InstallationType  InstallationType `json:"installation_type"`
	ID                int              `json:"id"`
	Budget            int              `json:"budget"`
	IsVandalResistant bool             `json:"is_vandal_resistant"`
}

// Active reports whether the panel holds at least one module
func (p Panel) Active() bool {
	return len(p.Modules) > 0
}

// DisplayLabel returns the label, or "Panel <id>" when none is set
func (p Panel) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("Panel %d", p.ID)
}

// Clone returns a copy that does not share the module slice
func (p Panel) Clone() Panel {
	c := p
	c.Modules = append([]Module(nil), p.Modules...)
	return c
}

// ActivePanels counts panels holding at least one module
func ActivePanels(panels []Panel) int {
	n := 0
	for _, p := range panels {
		if p.Active() {
			n++
		}
	}
	return n
}

// ReceiverSelection is a selected receiver and how many of it
type ReceiverSelection struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Receivers is the ordered receiver selection of a session.
// A product appears at most once and never with a zero quantity.
type Receivers []ReceiverSelection

// Total returns the sum of all selected quantities
func (r Receivers) Total() int {
	total := 0
	for _, sel := range r {
		total += sel.Quantity
	}
	return total
}

// Quantity returns the selected quantity of pn (0 when absent)
func (r Receivers) Quantity(pn ProductNumber) int {
	for _, sel := range r {
		if sel.Product.ProductNumber == pn {
			return sel.Quantity
		}
	}
	return 0
}

// Set returns a new selection with pn set to quantity; quantity <= 0 removes it
func (r Receivers) Set(p Product, quantity int) Receivers {
	out := make(Receivers, 0, len(r)+1)
	found := false
	for _, sel := range r {
		if sel.Product.ProductNumber != p.ProductNumber {
			out = append(out, sel)
			continue
		}
		found = true
		if quantity > 0 {
			out = append(out, ReceiverSelection{Product: sel.Product, Quantity: quantity})
		}
	}
	if !found && quantity > 0 {
		out = append(out, ReceiverSelection{Product: p, Quantity: quantity})
	}
	return out
}
