package order

import (
	"fmt"
	"strings"
)

// QuoteSubject is the subject line of quote requests
const QuoteSubject = "Quote request: door-entry intercom configuration"

// QuoteText renders the plain-text quote request for an order.
// The product table is embedded so the request is complete on its own.
func QuoteText(o Order, reference string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reference: %s\n\n", reference)
	b.WriteString("--- CONFIGURATION OVERVIEW ---\n")
	fmt.Fprintf(&b, "System technology: %s\n", valueOr(string(o.Technology), "Not selected"))
	fmt.Fprintf(&b, "Panel type: %s\n", valueOr(string(o.PanelType), "Not selected"))
	fmt.Fprintf(&b, "Number of panels: %d\n", o.NumberOfPanels)
	fmt.Fprintf(&b, "Same configuration on all panels: %s\n", yesNo(o.SameConfig))
	fmt.Fprintf(&b, "Installation: %s\n", valueOr(string(o.InstallationType), "Not selected"))
	fmt.Fprintf(&b, "Vandal resistant: %s\n", yesNo(o.IsVandalResistant))

	if len(o.Panels) > 0 {
		b.WriteString("\n--- PANELS ---\n")
		for _, p := range o.Panels {
			fmt.Fprintf(&b, "%s: %s\n", p.Label, valueOr(strings.Join(p.Modules, ", "), "no modules"))
		}
	}

	b.WriteString("\n--- PRODUCT LIST ---\n")
	if len(o.Products) == 0 {
		b.WriteString("(empty)\n")
	} else {
		b.WriteString(FormatTSV(o.Products))
	}
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
