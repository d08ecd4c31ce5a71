package order

import (
	"fmt"
	"strings"

	"github.com/teletec/intercom-configurator/internal/domain"
)

// frontPlateMarker identifies front-plate lines, which stay separate per panel
const frontPlateMarker = " Frontplate"

// FrontPlateName names the front plate of a module on a panel
func FrontPlateName(moduleName string, vandalResistant bool, panelLabel string) string {
	suffix := ""
	if vandalResistant {
		suffix = " (VR)"
	}
	return fmt.Sprintf("%s%s%s (for %s)", moduleName, frontPlateMarker, suffix, panelLabel)
}

// BuildOrder assembles the order of a configuration.
// Every module instance yields its own line, followed by its front plate when
// it declares one; accessories, receivers and power supplies follow with their
// quantities. The list is then consolidated.
func BuildOrder(in Input) Order {
	var lines []Line

	for _, panel := range in.Panels {
		label := panel.DisplayLabel()
		for _, m := range panel.Modules {
			lines = append(lines, Line{ProductNumber: m.ProductNumber, Name: m.Name, Quantity: 1})

			plate := m.FrontPlate
			vr := false
			if panel.IsVandalResistant && m.VrFrontPlate != 0 {
				plate = m.VrFrontPlate
				vr = true
			}
			if plate != 0 {
				lines = append(lines, Line{ProductNumber: plate, Name: FrontPlateName(m.Name, vr, label), Quantity: 1})
			}
		}
	}

	lines = appendItems(lines, in.Accessories)
	for _, sel := range in.Receivers {
		if sel.Quantity > 0 {
			lines = append(lines, Line{ProductNumber: sel.Product.ProductNumber, Name: sel.Product.Name, Quantity: sel.Quantity})
		}
	}
	lines = appendItems(lines, in.PowerSupplies)

	summaries := make([]PanelSummary, 0, len(in.Panels))
	for _, panel := range in.Panels {
		names := make([]string, 0, len(panel.Modules))
		for _, m := range panel.Modules {
			names = append(names, m.Name)
		}
		summaries = append(summaries, PanelSummary{
			ID:                panel.ID,
			Label:             panel.DisplayLabel(),
			Modules:           names,
			Budget:            panel.Budget,
			InstallationType:  panel.InstallationType,
			IsVandalResistant: panel.IsVandalResistant,
		})
	}

	return Order{
		Technology:        in.Technology,
		PanelType:         in.PanelType,
		InstallationType:  in.InstallationType,
		IsVandalResistant: in.IsVandalResistant,
		NumberOfPanels:    len(in.Panels),
		SameConfig:        in.SameConfig,
		Panels:            summaries,
		Products:          Consolidate(lines),
	}
}

func appendItems(lines []Line, items []domain.LineItem) []Line {
	for _, item := range items {
		if item.Quantity > 0 {
			lines = append(lines, Line{ProductNumber: item.Product.ProductNumber, Name: item.Product.Name, Quantity: item.Quantity})
		}
	}
	return lines
}

// Consolidate merges lines sharing a key and sums their quantities.
// Lines normally key on product number; placeholder and front-plate lines
// key on number and name. First-seen order is kept.
func Consolidate(lines []Line) []Line {
	index := make(map[domain.LineKey]int)
	out := make([]Line, 0, len(lines))

	for _, line := range lines {
		key := consolidationKey(line)
		if i, ok := index[key]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, line)
	}
	return out
}

func consolidationKey(line Line) domain.LineKey {
	if line.ProductNumber.IsPlaceholder() || isFrontPlate(line.Name) {
		return domain.LineKey{ProductNumber: line.ProductNumber, Name: line.Name}
	}
	return domain.LineKey{ProductNumber: line.ProductNumber}
}

func isFrontPlate(name string) bool {
	return strings.Contains(name, frontPlateMarker+" (for ") || strings.Contains(name, frontPlateMarker+" (VR) (for ")
}

// TotalQuantity sums the quantities of lines
func TotalQuantity(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
