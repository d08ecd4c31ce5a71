package accessories

import (
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
	"github.com/teletec/intercom-configurator/internal/utils"
)

// Rules holds the catalog conventions the resolver relies on
type Rules struct {
	// FrameTerm and BoxTerm are matched case-insensitively against accessory names
	FrameTerm string
	BoxTerm   string
	// VideoDistributor is the X1 accessory splitting the video bus
	VideoDistributor domain.ProductNumber
	// DistributorThreshold is the receiver count above which a distributor is needed
	DistributorThreshold int
	// ReceiversPerDistributor sizes the distributor quantity
	ReceiversPerDistributor int
}

// DefaultRules returns the rules matching the bundled catalog
func DefaultRules() Rules {
	return Rules{
		FrameTerm:               "ramme",
		BoxTerm:                 "boks",
		VideoDistributor:        116648,
		DistributorThreshold:    2,
		ReceiversPerDistributor: 20,
	}
}

// Resolver computes accessory line items from a configuration
type Resolver struct {
	catalog *catalog.Catalog
	rules   Rules
}

// NewResolver creates a resolver over c
func NewResolver(c *catalog.Catalog, rules Rules) *Resolver {
	return &Resolver{catalog: c, rules: rules}
}

// Resolve returns the accessories needed by panels and receivers.
// Missing catalog rows are reported and the line is left out.
func (r *Resolver) Resolve(
	panels []domain.Panel,
	tech domain.Technology,
	pt domain.PanelType,
	receivers domain.Receivers,
	reporter domain.Reporter,
) []domain.LineItem {
	list := domain.NewLineItemList()
	accessories := r.catalog.AgnosticAccessories()

	for _, panel := range panels {
		capacities, overflow := Capacities(len(panel.Modules))
		if overflow {
			domain.Reportf(reporter, "Panel %d holds %d modules, more than 8. Using multiple %d-module accessories.",
				panel.ID, len(panel.Modules), BucketSize)
		}

		for _, capacity := range capacities {
			if frame, ok := r.frame(accessories, capacity, panel.IsVandalResistant); ok {
				list.Add(frame, 1)
			} else {
				domain.Reportf(reporter, "No frame for %d modules found for panel %d.", capacity, panel.ID)
			}

			if box, ok := findByTermAndCapacity(accessories, r.rules.BoxTerm, capacity, panel.InstallationType); ok {
				list.Add(box, 1)
			} else {
				domain.Reportf(reporter, "No %s box for %d modules found for panel %d.",
					installationLabel(panel.InstallationType), capacity, panel.ID)
			}
		}
	}

	r.addDistributor(list, tech, pt, receivers, reporter)
	return list.Items()
}

// frame picks the frame for capacity, switching to its VR variant on
// vandal-resistant panels. A variant without its own catalog row is
// synthesized from the standard frame.
func (r *Resolver) frame(accessories []domain.Product, capacity int, vandalResistant bool) (domain.Product, bool) {
	standard, ok := findByTermAndCapacity(accessories, r.rules.FrameTerm, capacity, "")
	if !ok {
		return domain.Product{}, false
	}
	if !vandalResistant || standard.Vr == 0 {
		return standard, true
	}

	for _, p := range accessories {
		if p.ProductNumber == standard.Vr {
			return p, true
		}
	}

	vr := standard
	vr.ProductNumber = standard.Vr
	vr.Name = standard.Name + " (VR)"
	vr.Vr = 0
	return vr, true
}

func (r *Resolver) addDistributor(
	list *domain.LineItemList,
	tech domain.Technology,
	pt domain.PanelType,
	receivers domain.Receivers,
	reporter domain.Reporter,
) {
	total := receivers.Total()
	if tech != domain.TechnologyX1 || pt != domain.PanelTypeVideo || total <= r.rules.DistributorThreshold {
		return
	}

	distributor, ok := r.catalog.Accessory(tech, r.rules.VideoDistributor)
	if !ok {
		domain.Reportf(reporter, "Video distributor %s not found in the catalog.", r.rules.VideoDistributor)
		return
	}

	per := r.rules.ReceiversPerDistributor
	if per <= 0 {
		per = 1
	}
	list.Add(distributor, (total+per-1)/per)
}

// findByTermAndCapacity returns the first accessory whose name contains term
// and whose capacity matches. A non-empty installation type must match too.
func findByTermAndCapacity(
	accessories []domain.Product,
	term string,
	capacity int,
	installation domain.InstallationType,
) (domain.Product, bool) {
	for _, p := range accessories {
		if p.ModuleCapacity != capacity || !utils.ContainsFold(p.Name, term) {
			continue
		}
		if installation != "" && p.InstallationType != installation {
			continue
		}
		return p, true
	}
	return domain.Product{}, false
}

func installationLabel(it domain.InstallationType) string {
	if it == "" {
		return "unknown"
	}
	return string(it)
}
