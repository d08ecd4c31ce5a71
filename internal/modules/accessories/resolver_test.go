package accessories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teletec/intercom-configurator/internal/domain"
	testingpkg "github.com/teletec/intercom-configurator/internal/testing"
)

func TestCapacities(t *testing.T) {
	tests := []struct {
		count    int
		expected []int
		overflow bool
	}{
		{0, nil, false},
		{1, []int{1}, false},
		{2, []int{2}, false},
		{3, []int{3}, false},
		{4, []int{4}, false},
		{5, []int{2, 3}, false},
		{6, []int{3, 3}, false},
		{7, []int{3, 4}, false},
		{8, []int{4, 4}, false},
		{9, []int{4, 4, 1}, true},
		{12, []int{4, 4, 4}, true},
		{14, []int{4, 4, 4, 2}, true},
	}

	for _, tt := range tests {
		got, overflow := Capacities(tt.count)
		assert.Equal(t, tt.expected, got, "count %d", tt.count)
		assert.Equal(t, tt.overflow, overflow, "count %d", tt.count)
	}
}

func TestCapacities_DoesNotShareTable(t *testing.T) {
	got, _ := Capacities(5)
	got[0] = 99
	again, _ := Capacities(5)
	assert.Equal(t, []int{2, 3}, again)
}

func quantities(items []domain.LineItem) map[domain.ProductNumber]int {
	out := make(map[domain.ProductNumber]int)
	for _, item := range items {
		out[item.Product.ProductNumber] += item.Quantity
	}
	return out
}

func modules(t *testing.T, n int) []domain.Module {
	c := testingpkg.NewCatalogFixture(t)
	out := []domain.Module{testingpkg.NewModuleFixture(t, c, domain.TechnologyX1, domain.PanelTypeVideo, testingpkg.VideoMainX1)}
	blank := testingpkg.NewModuleFixture(t, c, domain.TechnologyX1, domain.PanelTypeVideo, testingpkg.BlankModule)
	for len(out) < n {
		out = append(out, blank)
	}
	return out
}

func TestResolve_FiveModulesUseTwoAndThree(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())

	panel := testingpkg.NewPanelFixture(1, modules(t, 5)...)
	var messages domain.Messages
	items := r.Resolve([]domain.Panel{panel}, domain.TechnologyX1, domain.PanelTypeVideo, nil, &messages)

	assert.Empty(t, messages)
	assert.Equal(t, map[domain.ProductNumber]int{
		testingpkg.Frame2:       1,
		testingpkg.RecessedBox2: 1,
		testingpkg.Frame3:       1,
		testingpkg.RecessedBox3: 1,
	}, quantities(items))
}

func TestResolve_AccumulatesAcrossPanels(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())

	panels := []domain.Panel{
		testingpkg.NewPanelFixture(1, modules(t, 2)...),
		testingpkg.NewPanelFixture(2, modules(t, 2)...),
		testingpkg.NewPanelFixture(3),
	}
	panels[1].InstallationType = domain.InstallationWallMounted

	items := r.Resolve(panels, domain.TechnologyX1, domain.PanelTypeVideo, nil, nil)
	assert.Equal(t, map[domain.ProductNumber]int{
		testingpkg.Frame2:          2,
		testingpkg.RecessedBox2:    1,
		testingpkg.WallMountedBox2: 1,
	}, quantities(items))
	require.Len(t, items, 3, "same frame accumulates into one line")
	assert.Equal(t, testingpkg.Frame2, items[0].Product.ProductNumber)
}

func TestResolve_VandalResistantFrames(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())

	t.Run("dedicated catalog row", func(t *testing.T) {
		panel := testingpkg.NewPanelFixture(1, modules(t, 2)...)
		panel.IsVandalResistant = true

		items := r.Resolve([]domain.Panel{panel}, domain.TechnologyX1, domain.PanelTypeVideo, nil, nil)
		require.Len(t, items, 2)
		assert.Equal(t, domain.ProductNumber(116672), items[0].Product.ProductNumber)
		assert.Equal(t, "Ramme 2 moduler VR", items[0].Product.Name)
	})

	t.Run("synthesized when the catalog has no row", func(t *testing.T) {
		panel := testingpkg.NewPanelFixture(1, modules(t, 3)...)
		panel.IsVandalResistant = true

		items := r.Resolve([]domain.Panel{panel}, domain.TechnologyX1, domain.PanelTypeVideo, nil, nil)
		require.Len(t, items, 2)
		assert.Equal(t, testingpkg.Frame3VR, items[0].Product.ProductNumber)
		assert.Equal(t, "Ramme 3 moduler (VR)", items[0].Product.Name)
	})

	t.Run("standard frame without a variant", func(t *testing.T) {
		panel := testingpkg.NewPanelFixture(1, modules(t, 4)...)
		panel.IsVandalResistant = true

		items := r.Resolve([]domain.Panel{panel}, domain.TechnologyX1, domain.PanelTypeVideo, nil, nil)
		require.Len(t, items, 2)
		assert.Equal(t, domain.ProductNumber(116664), items[0].Product.ProductNumber)
	})
}

func TestResolve_MissingRowsAreReported(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	rules := DefaultRules()
	rules.BoxTerm = "does-not-exist"
	r := NewResolver(c, rules)

	var messages domain.Messages
	items := r.Resolve([]domain.Panel{testingpkg.NewPanelFixture(7, modules(t, 1)...)}, domain.TechnologyX1, domain.PanelTypeVideo, nil, &messages)

	require.Len(t, items, 1, "frame still resolved")
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "recessed box for 1 modules")
	assert.Contains(t, messages[0], "panel 7")
}

func TestResolve_OverflowWarning(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())

	var messages domain.Messages
	items := r.Resolve([]domain.Panel{testingpkg.NewPanelFixture(1, modules(t, 9)...)}, domain.TechnologyX1, domain.PanelTypeVideo, nil, &messages)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "more than 8")
	q := quantities(items)
	assert.Equal(t, 2, q[116664])
	assert.Equal(t, 1, q[116661])
}

func TestResolve_VideoDistributor(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())
	rx := testingpkg.NewReceiverFixture(t, c, domain.TechnologyX1, domain.PanelTypeVideo, testingpkg.XTS7X1Wifi)

	tests := []struct {
		name      string
		tech      domain.Technology
		pt        domain.PanelType
		receivers int
		expected  int
	}{
		{"two receivers need none", domain.TechnologyX1, domain.PanelTypeVideo, 2, 0},
		{"three receivers need one", domain.TechnologyX1, domain.PanelTypeVideo, 3, 1},
		{"twenty receivers need one", domain.TechnologyX1, domain.PanelTypeVideo, 20, 1},
		{"twenty-one receivers need two", domain.TechnologyX1, domain.PanelTypeVideo, 21, 2},
		{"audio panels need none", domain.TechnologyX1, domain.PanelTypeAudio, 30, 0},
		{"other technologies need none", domain.TechnologyIP, domain.PanelTypeVideo, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receivers := testingpkg.NewReceiversFixture(tt.receivers, rx)
			items := r.Resolve(nil, tt.tech, tt.pt, receivers, nil)
			assert.Equal(t, tt.expected, quantities(items)[testingpkg.VideoDistributor])
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	c := testingpkg.NewCatalogFixture(t)
	r := NewResolver(c, DefaultRules())
	rx := testingpkg.NewReceiverFixture(t, c, domain.TechnologyX1, domain.PanelTypeVideo, testingpkg.PLXVWifi)

	panels := []domain.Panel{
		testingpkg.NewPanelFixture(1, modules(t, 6)...),
		testingpkg.NewPanelFixture(2, modules(t, 3)...),
	}
	receivers := testingpkg.NewReceiversFixture(5, rx)

	first := r.Resolve(panels, domain.TechnologyX1, domain.PanelTypeVideo, receivers, nil)
	second := r.Resolve(panels, domain.TechnologyX1, domain.PanelTypeVideo, receivers, nil)
	assert.Equal(t, first, second)
}
