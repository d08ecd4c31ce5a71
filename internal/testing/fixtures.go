package testing

import (
	"testing"

	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/budget"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
)

// Product numbers of the bundled catalog used across tests
const (
	VideoMainX1       domain.ProductNumber = 116601
	VideoMainX1Wide   domain.ProductNumber = 116602
	AudioMainX1       domain.ProductNumber = 116610
	VideoMainIP       domain.ProductNumber = 119001
	AudioMain4G       domain.ProductNumber = 118801
	ButtonModule      domain.ProductNumber = 116630
	DoubleButton      domain.ProductNumber = 116631
	DisplayModule     domain.ProductNumber = 116633
	KeypadModule      domain.ProductNumber = 116634
	BlankModule       domain.ProductNumber = 116635
	PLXVWifi          domain.ProductNumber = 120247
	XTS7X1Wifi        domain.ProductNumber = 117751
	XTS7X1WifiWhite   domain.ProductNumber = 118585
	PLXAudio          domain.ProductNumber = 116720
	XTS7IPWifi        domain.ProductNumber = 119101
	VideoDistributor  domain.ProductNumber = 116648
	SmallSupply       domain.ProductNumber = 116637
	DistributionPSU   domain.ProductNumber = 116754
	AuxiliarySupply   domain.ProductNumber = 116776
	Frame2            domain.ProductNumber = 116662
	Frame3            domain.ProductNumber = 116663
	Frame3VR          domain.ProductNumber = 116673
	RecessedBox2      domain.ProductNumber = 116682
	RecessedBox3      domain.ProductNumber = 116683
	WallMountedBox2   domain.ProductNumber = 116686
	VideoFrontPlate   domain.ProductNumber = 116690
	VideoFrontPlateVR domain.ProductNumber = 116691
)

// NewCatalogFixture returns the catalog bundled into the binary
func NewCatalogFixture(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}
	return c
}

// NewModuleFixture returns the catalog module pn offered for tech and pt
func NewModuleFixture(t *testing.T, c *catalog.Catalog, tech domain.Technology, pt domain.PanelType, pn domain.ProductNumber) domain.Module {
	t.Helper()

	for _, m := range c.PanelModules(tech, pt) {
		if m.ProductNumber == pn {
			return m
		}
	}
	t.Fatalf("Module %s not offered for %s %s", pn, tech, pt)
	return domain.Module{}
}

// NewReceiverFixture returns the receiver pn offered for tech and pt
func NewReceiverFixture(t *testing.T, c *catalog.Catalog, tech domain.Technology, pt domain.PanelType, pn domain.ProductNumber) domain.Product {
	t.Helper()

	p, ok := c.FindReceiver(tech, pt, pn)
	if !ok {
		t.Fatalf("Receiver %s not offered for %s %s", pn, tech, pt)
	}
	return p
}

// NewPanelFixture builds a recessed panel holding modules, with its budget computed
func NewPanelFixture(id int, modules ...domain.Module) domain.Panel {
	return domain.Panel{
		ID:               id,
		Modules:          modules,
		Budget:           budget.RemainingBudget(modules),
		InstallationType: domain.InstallationRecessed,
	}
}

// NewReceiversFixture selects quantity units of each receiver, in order
func NewReceiversFixture(quantity int, products ...domain.Product) domain.Receivers {
	var r domain.Receivers
	for _, p := range products {
		r = r.Set(p, quantity)
	}
	return r
}
