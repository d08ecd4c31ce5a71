package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/pkg/embedded"
)

// Catalog is an immutable product table.
// Build it with Parse, Load, LoadFile, LoadDefault or New; never mutate it afterwards.
type Catalog struct {
	systems  map[domain.Technology]*System
	agnostic Agnostic
	source   string
	loadedAt time.Time
}

// New builds a catalog from already decoded buckets
func New(systems map[domain.Technology]*System, agnostic Agnostic) *Catalog {
	if systems == nil {
		systems = make(map[domain.Technology]*System)
	}
	return &Catalog{
		systems:  systems,
		agnostic: agnostic,
		source:   "memory",
		loadedAt: time.Now(),
	}
}

// Parse decodes a catalog data file
func Parse(data []byte, source string) (*Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := New(nil, Agnostic{})
	c.source = source
	for key, value := range raw {
		if key == AgnosticKey {
			if err := json.Unmarshal(value, &c.agnostic); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", AgnosticKey, err)
			}
			continue
		}
		system := &System{}
		if err := json.Unmarshal(value, system); err != nil {
			return nil, fmt.Errorf("failed to decode technology %s: %w", key, err)
		}
		c.systems[domain.Technology(key)] = system
	}

	if len(c.systems) == 0 {
		return nil, fmt.Errorf("catalog %s declares no technologies", source)
	}
	return c, nil
}

// Load reads and decodes a catalog from r
func Load(r io.Reader, source string) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data, source)
}

// LoadFile reads a catalog data file from disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

// LoadDefault decodes the catalog bundled into the binary
func LoadDefault() (*Catalog, error) {
	data, err := embedded.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return Parse(data, "embedded:"+embedded.CatalogFile)
}

// knownTechnologies fixes the presentation order of the supported technologies
var knownTechnologies = []domain.Technology{domain.TechnologyX1, domain.TechnologyIP, domain.Technology4G}

// Technologies returns the technologies present in the catalog
func (c *Catalog) Technologies() []domain.Technology {
	var out []domain.Technology
	for _, t := range knownTechnologies {
		if _, ok := c.systems[t]; ok {
			out = append(out, t)
		}
	}
	var extra []domain.Technology
	for t := range c.systems {
		if !t.Valid() {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// System returns the bucket of tech, or nil
func (c *Catalog) System(tech domain.Technology) *System {
	return c.systems[tech]
}

// Agnostic returns the cross-technology bucket
func (c *Catalog) Agnostic() Agnostic {
	return c.agnostic
}

// EffectivePanelType maps a requested panel type to the one used for lookups.
// 4G only ships audio panels.
func EffectivePanelType(tech domain.Technology, pt domain.PanelType) domain.PanelType {
	if tech == domain.Technology4G {
		return domain.PanelTypeAudio
	}
	return pt
}

// PanelTypes returns the panel types selectable for tech
func (c *Catalog) PanelTypes(tech domain.Technology) []domain.PanelType {
	system := c.systems[tech]
	if system == nil {
		return nil
	}
	if tech == domain.Technology4G {
		return []domain.PanelType{domain.PanelTypeAudio}
	}

	var out []domain.PanelType
	for _, pt := range []domain.PanelType{domain.PanelTypeVideo, domain.PanelTypeAudio} {
		if _, ok := system.PanelTypes[pt]; ok {
			out = append(out, pt)
		}
	}
	return out
}

func (c *Catalog) section(tech domain.Technology, pt domain.PanelType) Section {
	system := c.systems[tech]
	if system == nil {
		return Section{}
	}
	return system.PanelTypes[EffectivePanelType(tech, pt)]
}

// MainModules returns the technology-specific modules of a panel type
func (c *Catalog) MainModules(tech domain.Technology, pt domain.PanelType) []domain.Module {
	return toModules(c.section(tech, pt).Modules)
}

// AgnosticModules returns the modules usable in any panel
func (c *Catalog) AgnosticModules() []domain.Module {
	return toModules(c.agnostic.PanelModules)
}

// PanelModules returns every module offered for a panel: the technology's own
// modules followed by the system-agnostic ones
func (c *Catalog) PanelModules(tech domain.Technology, pt domain.PanelType) []domain.Module {
	return append(c.MainModules(tech, pt), c.AgnosticModules()...)
}

// FindModule looks a module up by product number and name among the modules
// offered for tech and pt
func (c *Catalog) FindModule(tech domain.Technology, pt domain.PanelType, pn domain.ProductNumber, name string) (domain.Module, bool) {
	for _, m := range c.PanelModules(tech, pt) {
		if m.ProductNumber == pn && m.Name == name {
			return m, true
		}
	}
	return domain.Module{}, false
}

// Receivers returns the receivers offered for tech and pt.
// Video panels can ring audio receivers too; 4G calls phones and has none.
func (c *Catalog) Receivers(tech domain.Technology, pt domain.PanelType) []domain.Product {
	if tech == domain.Technology4G {
		return nil
	}
	system := c.systems[tech]
	if system == nil {
		return nil
	}

	var out []domain.Product
	seen := make(map[domain.ProductNumber]bool)
	add := func(products []domain.Product) {
		for _, p := range products {
			if seen[p.ProductNumber] {
				continue
			}
			seen[p.ProductNumber] = true
			out = append(out, p)
		}
	}

	switch pt {
	case domain.PanelTypeVideo:
		add(system.PanelTypes[domain.PanelTypeVideo].Receivers)
		add(system.PanelTypes[domain.PanelTypeAudio].Receivers)
	default:
		add(system.PanelTypes[pt].Receivers)
	}
	return out
}

// FindReceiver looks a receiver up among those offered for tech and pt
func (c *Catalog) FindReceiver(tech domain.Technology, pt domain.PanelType, pn domain.ProductNumber) (domain.Product, bool) {
	return findProduct(c.Receivers(tech, pt), pn)
}

// AgnosticAccessories returns the shared frames and boxes
func (c *Catalog) AgnosticAccessories() []domain.Product {
	return c.agnostic.Accessories
}

// Accessory looks a technology-specific accessory up by product number
func (c *Catalog) Accessory(tech domain.Technology, pn domain.ProductNumber) (domain.Product, bool) {
	system := c.systems[tech]
	if system == nil {
		return domain.Product{}, false
	}
	return findProduct(system.Accessories, pn)
}

// PowerSupply looks a power supply up by product number, first in the
// technology's list and then in the system-agnostic list
func (c *Catalog) PowerSupply(tech domain.Technology, pn domain.ProductNumber) (domain.Product, bool) {
	if system := c.systems[tech]; system != nil {
		if p, ok := findProduct(system.PowerSupplies, pn); ok {
			return p, true
		}
	}
	return findProduct(c.agnostic.PowerSupplies, pn)
}

// Info summarizes the catalog
func (c *Catalog) Info() Info {
	products := len(c.agnostic.PanelModules) + len(c.agnostic.Accessories) + len(c.agnostic.PowerSupplies)
	for _, system := range c.systems {
		products += len(system.Accessories) + len(system.PowerSupplies)
		for _, section := range system.PanelTypes {
			products += len(section.Modules) + len(section.Receivers)
		}
	}
	return Info{
		Source:       c.source,
		Technologies: c.Technologies(),
		Products:     products,
		LoadedAt:     c.loadedAt.Unix(),
	}
}

func toModules(products []domain.Product) []domain.Module {
	out := make([]domain.Module, 0, len(products))
	for _, p := range products {
		out = append(out, domain.NewModule(p))
	}
	return out
}

func findProduct(products []domain.Product, pn domain.ProductNumber) (domain.Product, bool) {
	for _, p := range products {
		if p.ProductNumber == pn {
			return p, true
		}
	}
	return domain.Product{}, false
}
