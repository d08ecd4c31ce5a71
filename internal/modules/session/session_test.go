package session

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
	testingpkg "github.com/teletec/intercom-configurator/internal/testing"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	store := catalog.NewStore(testingpkg.NewCatalogFixture(t))
	return New(store, NewNoticeLog(DefaultNoticeTTL), DefaultOptions(), zerolog.Nop())
}

func newX1Video(t *testing.T) *Session {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeVideo))
	return s
}

func moduleNames(p domain.Panel) []string {
	var names []string
	for _, m := range p.Modules {
		names = append(names, m.Name)
	}
	return names
}

func TestSelectSystem(t *testing.T) {
	s := newSession(t)

	err := s.SelectSystem(domain.Technology("Z9"), domain.PanelTypeVideo)
	assert.ErrorIs(t, err, ErrUnknownSystem)

	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeVideo))
	snap := s.Snapshot()
	assert.Equal(t, domain.TechnologyX1, snap.Technology)
	require.Len(t, snap.Panels, 1)
	assert.Equal(t, 1, snap.Panels[0].ID)
	assert.Equal(t, domain.DefaultBudget, snap.Panels[0].Budget)
	assert.Equal(t, domain.InstallationRecessed, snap.Panels[0].InstallationType)
	assert.Empty(t, snap.Accessories)
	assert.Empty(t, snap.PowerSupplies)
}

func TestSelectSystem_4GForcesAudio(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectSystem(domain.Technology4G, domain.PanelTypeVideo))
	assert.Equal(t, domain.PanelTypeAudio, s.Snapshot().PanelType)

	receivers, err := s.ReceiverOptions()
	require.NoError(t, err)
	assert.Empty(t, receivers)

	require.NoError(t, s.AddModule(1, testingpkg.AudioMain4G, "4G Audiomodul"))
	snap := s.Snapshot()
	require.Len(t, snap.PowerSupplies, 1)
	assert.Equal(t, testingpkg.SmallSupply, snap.PowerSupplies[0].Product.ProductNumber)
}

func TestSelectSystem_ResetsState(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	_, err := s.AddPanel()
	require.NoError(t, err)
	require.NoError(t, s.SetReceiverQuantity(testingpkg.PLXVWifi, 2))
	require.NoError(t, s.SetSameConfig(true))

	require.NoError(t, s.SelectSystem(domain.TechnologyIP, domain.PanelTypeVideo))
	snap := s.Snapshot()
	require.Len(t, snap.Panels, 1)
	assert.Empty(t, snap.Panels[0].Modules)
	assert.Empty(t, snap.Receivers)
	assert.False(t, snap.SameConfig)
	assert.Equal(t, 3, snap.Panels[0].ID, "panel ids are never reused")
}

func TestPanels_AddAndRemove(t *testing.T) {
	s := newSession(t)

	_, err := s.AddPanel()
	assert.ErrorIs(t, err, ErrNoSystem)

	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeAudio))
	assert.ErrorIs(t, s.RemovePanel(), ErrMinPanels)

	p2, err := s.AddPanel()
	require.NoError(t, err)
	assert.Equal(t, 2, p2.ID)
	p3, err := s.AddPanel()
	require.NoError(t, err)
	assert.Equal(t, 3, p3.ID)

	_, err = s.AddPanel()
	assert.ErrorIs(t, err, ErrMaxPanels)
	assert.NotEmpty(t, s.Notices().Active())

	require.NoError(t, s.RemovePanel())
	snap := s.Snapshot()
	require.Len(t, snap.Panels, 2)
	assert.Equal(t, 2, snap.Panels[1].ID)

	p4, err := s.AddPanel()
	require.NoError(t, err)
	assert.Equal(t, 4, p4.ID, "removed ids are not reused")
}

func TestAddPanel_InheritsGlobalSettings(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.SetInstallation(domain.InstallationWallMounted))
	require.NoError(t, s.SetVandalResistant(true))

	snap := s.Snapshot()
	assert.Equal(t, domain.InstallationRecessed, snap.Panels[0].InstallationType, "existing panels keep their setting")

	p, err := s.AddPanel()
	require.NoError(t, err)
	assert.Equal(t, domain.InstallationWallMounted, p.InstallationType)
	assert.True(t, p.IsVandalResistant)
}

func TestAddModule(t *testing.T) {
	s := newX1Video(t)

	err := s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "main module")

	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))
	require.NoError(t, s.AddModule(1, testingpkg.DisplayModule, "Displaymodul"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"Videomodul X1", "Knappemodul 1 knapp", "Displaymodul"}, moduleNames(snap.Panels[0]))
	assert.Equal(t, 12-1-4, snap.Panels[0].Budget)

	err = s.AddModule(1, testingpkg.KeypadModule, "Kodelås")
	assert.ErrorIs(t, err, ErrRejected, "exclusive with the display")

	err = s.AddModule(1, testingpkg.VideoMainX1, "Wrong name")
	assert.ErrorIs(t, err, ErrUnknownModule)

	err = s.AddModule(42, testingpkg.ButtonModule, "Knappemodul 1 knapp")
	assert.ErrorIs(t, err, ErrPanelNotFound)

	assert.Equal(t, snap.Version, s.Snapshot().Version, "rejections leave the state untouched")
}

func TestAddModule_ReplacesMain(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))

	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1Wide, "Videomodul X1 Vidvinkel"))
	snap := s.Snapshot()
	assert.Equal(t, []string{"Videomodul X1 Vidvinkel", "Knappemodul 1 knapp"}, moduleNames(snap.Panels[0]))
	assert.Equal(t, 10-1, snap.Panels[0].Budget)
}

func TestAddModule_ReplaceMainOverBudget(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.AddModule(1, testingpkg.DisplayModule, "Displaymodul"))
	require.NoError(t, s.AddModule(1, testingpkg.DoubleButton, "Knappemodul 2 knapper"))
	require.NoError(t, s.AddModule(1, testingpkg.DoubleButton, "Knappemodul 2 knapper"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))

	// Accessories cost 4+2+2+1+1 = 10; the wide main contributes 10, leaving 0.
	// Replacing succeeds because a main module has no cost.
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1Wide, "Videomodul X1 Vidvinkel"))
	assert.Equal(t, 0, s.Snapshot().Panels[0].Budget)

	err := s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestRemoveModule(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))
	require.NoError(t, s.AddModule(1, testingpkg.BlankModule, "Blindmodul"))

	require.NoError(t, s.RemoveModule(1))
	assert.Equal(t, []string{"Videomodul X1", "Knappemodul 1 knapp"}, moduleNames(s.Snapshot().Panels[0]))

	require.NoError(t, s.RemoveModule(1))
	require.NoError(t, s.RemoveModule(1))
	require.NoError(t, s.RemoveModule(1), "empty panel is a no-op")

	snap := s.Snapshot()
	assert.Empty(t, snap.Panels[0].Modules)
	assert.Equal(t, domain.DefaultBudget, snap.Panels[0].Budget)
	assert.Empty(t, snap.Accessories)
	assert.Empty(t, snap.PowerSupplies)
}

func TestDerivedListsFollowChanges(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.AddModule(1, testingpkg.ButtonModule, "Knappemodul 1 knapp"))

	snap := s.Snapshot()
	assert.Len(t, snap.Accessories, 2, "one frame and one box")
	require.Len(t, snap.PowerSupplies, 1)
	assert.Equal(t, testingpkg.SmallSupply, snap.PowerSupplies[0].Product.ProductNumber)

	_, err := s.AddPanel()
	require.NoError(t, err)
	require.NoError(t, s.AddModule(2, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.SetReceiverQuantity(testingpkg.XTS7X1Wifi, 3))

	snap = s.Snapshot()
	supplies := map[domain.ProductNumber]int{}
	for _, l := range snap.PowerSupplies {
		supplies[l.Product.ProductNumber] = l.Quantity
	}
	assert.Equal(t, map[domain.ProductNumber]int{
		testingpkg.DistributionPSU: 1,
		testingpkg.SmallSupply:     1,
		testingpkg.AuxiliarySupply: 3,
	}, supplies)

	accessories := map[domain.ProductNumber]int{}
	for _, l := range snap.Accessories {
		accessories[l.Product.ProductNumber] = l.Quantity
	}
	assert.Equal(t, 1, accessories[testingpkg.VideoDistributor])
}

func TestSetReceiverQuantity(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, s.SetReceiverQuantity(testingpkg.PLXVWifi, 1), ErrNoSystem)

	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeAudio))
	assert.ErrorIs(t, s.SetReceiverQuantity(testingpkg.PLXVWifi, 1), ErrUnknownReceiver, "video receivers are not offered for audio")

	require.NoError(t, s.SetReceiverQuantity(testingpkg.PLXAudio, 2))
	require.NoError(t, s.SetReceiverQuantity(testingpkg.PLXAudio, 5))
	snap := s.Snapshot()
	require.Len(t, snap.Receivers, 1)
	assert.Equal(t, 5, snap.Receivers[0].Quantity)

	require.NoError(t, s.SetReceiverQuantity(testingpkg.PLXAudio, 0))
	assert.Empty(t, s.Snapshot().Receivers)

	require.NoError(t, s.SetReceiverQuantity(999, 0), "clearing an unknown receiver is harmless")
}

func TestSameConfig(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.NoError(t, s.UpdatePanelLabel(1, "Front"))
	require.NoError(t, s.SetPanelInstallation(1, domain.InstallationWallMounted))
	_, err := s.AddPanel()
	require.NoError(t, err)

	require.NoError(t, s.SetSameConfig(true))
	snap := s.Snapshot()
	assert.True(t, snap.SameConfig)
	assert.Equal(t, domain.InstallationWallMounted, snap.InstallationType, "global follows the master")
	require.Len(t, snap.Panels, 2)
	assert.Equal(t, 2, snap.Panels[1].ID)
	assert.Equal(t, "Front", snap.Panels[1].Label)
	assert.Equal(t, moduleNames(snap.Panels[0]), moduleNames(snap.Panels[1]))

	// Edits to any panel go to the master and are mirrored
	require.NoError(t, s.AddModule(2, testingpkg.ButtonModule, "Knappemodul 1 knapp"))
	require.NoError(t, s.SetPanelVandalResistant(2, true))
	snap = s.Snapshot()
	for _, p := range snap.Panels {
		assert.Equal(t, []string{"Videomodul X1", "Knappemodul 1 knapp"}, moduleNames(p))
		assert.True(t, p.IsVandalResistant)
		assert.Equal(t, 11, p.Budget)
	}
	assert.True(t, snap.IsVandalResistant)

	// New panels copy the master
	p3, err := s.AddPanel()
	require.NoError(t, err)
	assert.Equal(t, 3, p3.ID)
	assert.Len(t, p3.Modules, 2)

	require.NoError(t, s.SetInstallation(domain.InstallationRecessed))
	for _, p := range s.Snapshot().Panels {
		assert.Equal(t, domain.InstallationRecessed, p.InstallationType)
	}

	require.NoError(t, s.ToggleSameConfig())
	require.NoError(t, s.RemoveModule(3))
	snap = s.Snapshot()
	assert.Len(t, snap.Panels[0].Modules, 2, "independent again")
	assert.Len(t, snap.Panels[2].Modules, 1)
}

func TestSetInstallation_Invalid(t *testing.T) {
	s := newX1Video(t)
	assert.ErrorIs(t, s.SetInstallation("floating"), ErrInvalidInstallation)
	assert.ErrorIs(t, s.SetPanelInstallation(1, ""), ErrInvalidInstallation)
}

func TestOrder(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	_, err := s.AddPanel()
	require.NoError(t, err)
	require.NoError(t, s.AddModule(2, testingpkg.VideoMainX1, "Videomodul X1"))

	o := s.Order()
	assert.Equal(t, 2, o.NumberOfPanels)
	var names []string
	for _, l := range o.Products {
		names = append(names, l.Name)
	}
	assert.Contains(t, names, "Videomodul X1 Frontplate (for Panel 1)")
	assert.Contains(t, names, "Videomodul X1 Frontplate (for Panel 2)")
	assert.Equal(t, 2, o.Products[0].Quantity, "modules consolidate across panels")
}

func TestObserversAndVersion(t *testing.T) {
	s := newSession(t)

	var mu sync.Mutex
	var versions []uint64
	s.Subscribe(ObserverFunc(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, snap.Version)
	}))

	require.NoError(t, s.SelectSystem(domain.TechnologyIP, domain.PanelTypeAudio))
	_, err := s.AddPanel()
	require.NoError(t, err)
	_ = s.RemovePanel()
	assert.Error(t, s.RemovePanel())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{1, 2, 3}, versions)
}

func TestResolverWarningsBecomeNotices(t *testing.T) {
	opts := DefaultOptions()
	opts.AccessoryRules.FrameTerm = "missing"
	s := New(catalog.NewStore(testingpkg.NewCatalogFixture(t)), nil, opts, zerolog.Nop())

	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeVideo))
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))

	active := s.Notices().Active()
	require.NotEmpty(t, active)
	assert.Contains(t, active[len(active)-1].Message, "No frame")
}

func TestConcurrentTransitions(t *testing.T) {
	s := newX1Video(t)
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetReceiverQuantity(testingpkg.PLXVWifi, i+1)
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap.Receivers, 1)
	assert.Equal(t, uint64(22), snap.Version)
}

func TestRefresh_UsesReplacedCatalog(t *testing.T) {
	store := catalog.NewStore(testingpkg.NewCatalogFixture(t))
	s := New(store, NewNoticeLog(DefaultNoticeTTL), DefaultOptions(), zerolog.Nop())
	require.NoError(t, s.SelectSystem(domain.TechnologyX1, domain.PanelTypeVideo))
	require.NoError(t, s.AddModule(1, testingpkg.VideoMainX1, "Videomodul X1"))
	require.Len(t, s.Snapshot().Accessories, 2)
	before := s.Snapshot().Version

	store.Replace(catalog.New(nil, catalog.Agnostic{}))
	s.Notices().Clear()
	require.NoError(t, s.Refresh())

	snap := s.Snapshot()
	assert.Equal(t, before+1, snap.Version)
	assert.Empty(t, snap.Accessories)
	assert.Len(t, snap.Panels[0].Modules, 1, "placed modules survive a reload")
	assert.NotEmpty(t, s.Notices().Active())
}
