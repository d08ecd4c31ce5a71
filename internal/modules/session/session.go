// Package session holds the single in-memory configuration and its transitions.
//
// Every transition validates, mutates and then recomputes budgets, accessories
// and power supplies from scratch. A rejected transition leaves the state untouched.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/accessories"
	"github.com/teletec/intercom-configurator/internal/modules/budget"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
	"github.com/teletec/intercom-configurator/internal/modules/order"
	"github.com/teletec/intercom-configurator/internal/modules/power"
	"github.com/teletec/intercom-configurator/internal/modules/validation"
	"github.com/teletec/intercom-configurator/internal/utils"
)

// DefaultMaxPanels is the number of panels a configuration may hold
const DefaultMaxPanels = 3

// masterIndex is the panel mirrored to the others in same-configuration mode
const masterIndex = 0

// Options tunes a session
type Options struct {
	MaxPanels      int
	AccessoryRules accessories.Rules
	PowerRules     power.Rules
}

// DefaultOptions returns the options matching the bundled catalog
func DefaultOptions() Options {
	return Options{
		MaxPanels:      DefaultMaxPanels,
		AccessoryRules: accessories.DefaultRules(),
		PowerRules:     power.DefaultRules(),
	}
}

// Session is the configuration being assembled.
// All methods are safe for concurrent use; transitions are serialized.
type Session struct {
	mu        sync.Mutex
	store     *catalog.Store
	opts      Options
	notices   *NoticeLog
	observers []Observer
	log       zerolog.Logger

	technology       domain.Technology
	panelType        domain.PanelType
	panels           []domain.Panel
	nextPanelID      int
	receivers        domain.Receivers
	sameConfig       bool
	installationType domain.InstallationType
	vandalResistant  bool

	accessories   []domain.LineItem
	powerSupplies []domain.LineItem
	version       uint64
	lastChange    string
	updatedAt     time.Time
}

// New creates an empty session reading products from store
func New(store *catalog.Store, notices *NoticeLog, opts Options, log zerolog.Logger) *Session {
	if opts.MaxPanels <= 0 {
		opts.MaxPanels = DefaultMaxPanels
	}
	if notices == nil {
		notices = NewNoticeLog(DefaultNoticeTTL)
	}
	return &Session{
		store:            store,
		opts:             opts,
		notices:          notices,
		log:              log.With().Str("component", "session").Logger(),
		installationType: domain.InstallationRecessed,
		updatedAt:        time.Now(),
	}
}

// Notices returns the log receiving rejections and resolver warnings
func (s *Session) Notices() *NoticeLog {
	return s.notices
}

// Subscribe registers o for change notifications
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Selection returns the selected technology and panel type ("" before SelectSystem)
func (s *Session) Selection() (domain.Technology, domain.PanelType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.technology, s.panelType
}

// Order builds the consolidated order of the current state
func (s *Session) Order() order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return order.BuildOrder(order.Input{
		Technology:        s.technology,
		PanelType:         s.panelType,
		InstallationType:  s.installationType,
		IsVandalResistant: s.vandalResistant,
		SameConfig:        s.sameConfig,
		Panels:            clonePanels(s.panels),
		Accessories:       append([]domain.LineItem(nil), s.accessories...),
		Receivers:         append(domain.Receivers(nil), s.receivers...),
		PowerSupplies:     append([]domain.LineItem(nil), s.powerSupplies...),
	})
}

// ModuleOptions returns the modules offered for the current system
func (s *Session) ModuleOptions() ([]domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.technology == "" {
		return nil, ErrNoSystem
	}
	return s.store.Current().PanelModules(s.technology, s.panelType), nil
}

// ReceiverOptions returns the receivers offered for the current system
func (s *Session) ReceiverOptions() ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.technology == "" {
		return nil, ErrNoSystem
	}
	return s.store.Current().Receivers(s.technology, s.panelType), nil
}

// SelectSystem starts a new configuration for tech and pt with one empty panel.
// 4G always uses audio panels.
func (s *Session) SelectSystem(tech domain.Technology, pt domain.PanelType) error {
	return s.transition("select_system", func() error {
		c := s.store.Current()
		pt = catalog.EffectivePanelType(tech, pt)
		if !containsPanelType(c.PanelTypes(tech), pt) {
			return fmt.Errorf("%w: %s %s", ErrUnknownSystem, tech, pt)
		}

		s.technology = tech
		s.panelType = pt
		s.receivers = nil
		s.sameConfig = false
		s.installationType = domain.InstallationRecessed
		s.vandalResistant = false
		s.panels = []domain.Panel{s.newPanel()}
		return nil
	})
}

// AddPanel appends a panel. In same-configuration mode it copies the master
// panel; otherwise it starts empty with the global settings.
func (s *Session) AddPanel() (domain.Panel, error) {
	var added domain.Panel
	err := s.transition("add_panel", func() error {
		if s.technology == "" {
			return s.fail(ErrNoSystem, "Please select a system and panel type first.")
		}
		if len(s.panels) >= s.opts.MaxPanels {
			return s.fail(ErrMaxPanels, fmt.Sprintf("A configuration holds at most %d panels.", s.opts.MaxPanels))
		}

		panel := s.newPanel()
		if s.sameConfig && len(s.panels) > 0 {
			master := s.panels[masterIndex].Clone()
			master.ID = panel.ID
			panel = master
		}
		s.panels = append(s.panels, panel)
		added = panel.Clone()
		return nil
	})
	return added, err
}

// RemovePanel removes the last panel. The last remaining panel stays.
func (s *Session) RemovePanel() error {
	return s.transition("remove_panel", func() error {
		if s.technology == "" {
			return ErrNoSystem
		}
		if len(s.panels) <= 1 {
			return s.fail(ErrMinPanels, "At least one panel is required once a system is selected.")
		}
		s.panels = s.panels[:len(s.panels)-1]
		return nil
	})
}

// UpdatePanelLabel renames a panel
func (s *Session) UpdatePanelLabel(panelID int, label string) error {
	return s.transition("update_label", func() error {
		idx, err := s.targetPanel(panelID)
		if err != nil {
			return err
		}
		s.panels[idx].Label = label
		s.mirror()
		return nil
	})
}

// AddModule places the catalog module (pn, name) in a panel.
// A main module dropped on a panel that already has one replaces it and
// becomes the first module.
func (s *Session) AddModule(panelID int, pn domain.ProductNumber, name string) error {
	return s.transition("add_module", func() error {
		idx, err := s.targetPanel(panelID)
		if err != nil {
			return err
		}

		candidate, ok := s.store.Current().FindModule(s.technology, s.panelType, pn, name)
		if !ok {
			return s.fail(ErrUnknownModule, fmt.Sprintf("Module data for %q (%s) not found.", name, pn))
		}

		var rejection domain.Messages
		v := validation.New(s.technology, s.panelType, s.rejectionReporter(&rejection))

		panel := s.panels[idx]
		modules := panel.Modules
		if mainIdx := domain.FindMain(modules); candidate.IsMain() && mainIdx >= 0 {
			without := make([]domain.Module, 0, len(modules)-1)
			without = append(without, modules[:mainIdx]...)
			without = append(without, modules[mainIdx+1:]...)

			available := candidate.StartingBudget() - budget.TotalCost(without)
			if !v.CanAdd(without, &candidate, available, true) {
				return fmt.Errorf("%w: %s", ErrRejected, rejection.Last())
			}
			modules = append([]domain.Module{candidate}, without...)
		} else {
			if !v.CanAdd(modules, &candidate, panel.Budget, false) {
				return fmt.Errorf("%w: %s", ErrRejected, rejection.Last())
			}
			modules = append(append([]domain.Module(nil), modules...), candidate)
		}

		s.panels[idx].Modules = modules
		s.mirror()
		return nil
	})
}

// RemoveModule pops the last module of a panel. Removing from an empty panel is a no-op.
func (s *Session) RemoveModule(panelID int) error {
	return s.transition("remove_module", func() error {
		idx, err := s.targetPanel(panelID)
		if err != nil {
			return err
		}
		if n := len(s.panels[idx].Modules); n > 0 {
			s.panels[idx].Modules = append([]domain.Module(nil), s.panels[idx].Modules[:n-1]...)
		}
		s.mirror()
		return nil
	})
}

// SetSameConfig switches same-configuration mode. Turning it on copies the
// master panel to every panel and adopts its installation and VR settings
// as the global ones.
func (s *Session) SetSameConfig(on bool) error {
	return s.transition("same_config", func() error {
		return s.applySameConfig(on)
	})
}

// ToggleSameConfig flips same-configuration mode
func (s *Session) ToggleSameConfig() error {
	return s.transition("same_config", func() error {
		return s.applySameConfig(!s.sameConfig)
	})
}

func (s *Session) applySameConfig(on bool) error {
	if s.technology == "" {
		return ErrNoSystem
	}
	s.sameConfig = on
	if on && len(s.panels) > 0 {
		master := s.panels[masterIndex]
		s.installationType = master.InstallationType
		s.vandalResistant = master.IsVandalResistant
		s.mirror()
	}
	return nil
}

// SetReceiverQuantity selects quantity units of a receiver; zero or less removes it
func (s *Session) SetReceiverQuantity(pn domain.ProductNumber, quantity int) error {
	return s.transition("set_receiver", func() error {
		if s.technology == "" {
			return ErrNoSystem
		}

		product, ok := s.store.Current().FindReceiver(s.technology, s.panelType, pn)
		if !ok {
			if quantity <= 0 {
				s.receivers = s.receivers.Set(domain.Product{ProductNumber: pn}, 0)
				return nil
			}
			return s.fail(ErrUnknownReceiver, fmt.Sprintf("Receiver %s is not available for %s %s.", pn, s.technology, s.panelType))
		}

		s.receivers = s.receivers.Set(product, quantity)
		return nil
	})
}

// SetPanelInstallation sets how one panel is mounted
func (s *Session) SetPanelInstallation(panelID int, it domain.InstallationType) error {
	return s.transition("panel_installation", func() error {
		if !it.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidInstallation, it)
		}
		idx, err := s.targetPanel(panelID)
		if err != nil {
			return err
		}
		s.panels[idx].InstallationType = it
		if s.sameConfig {
			s.installationType = it
		}
		s.mirror()
		return nil
	})
}

// SetInstallation sets the global installation type used by new panels;
// in same-configuration mode every panel follows it
func (s *Session) SetInstallation(it domain.InstallationType) error {
	return s.transition("installation", func() error {
		if !it.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidInstallation, it)
		}
		s.installationType = it
		if s.sameConfig {
			for i := range s.panels {
				s.panels[i].InstallationType = it
			}
		}
		return nil
	})
}

// SetPanelVandalResistant sets the VR flag of one panel
func (s *Session) SetPanelVandalResistant(panelID int, on bool) error {
	return s.transition("panel_vandal", func() error {
		idx, err := s.targetPanel(panelID)
		if err != nil {
			return err
		}
		s.panels[idx].IsVandalResistant = on
		if s.sameConfig {
			s.vandalResistant = on
		}
		s.mirror()
		return nil
	})
}

// SetVandalResistant sets the global VR flag used by new panels;
// in same-configuration mode every panel follows it
func (s *Session) SetVandalResistant(on bool) error {
	return s.transition("vandal", func() error {
		s.vandalResistant = on
		if s.sameConfig {
			for i := range s.panels {
				s.panels[i].IsVandalResistant = on
			}
		}
		return nil
	})
}

// Refresh recomputes derived lines against the current catalog, e.g. after a reload
func (s *Session) Refresh() error {
	return s.transition("refresh", func() error { return nil })
}

// transition runs fn under the lock, recomputes on success and notifies observers
func (s *Session) transition(name string, fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		s.log.Debug().Str("transition", name).Err(err).Msg("Transition rejected")
		return err
	}

	s.recompute()
	s.version++
	s.lastChange = name
	s.updatedAt = time.Now()
	snapshot := s.snapshotLocked()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	s.log.Debug().
		Str("transition", name).
		Uint64("version", snapshot.Version).
		Int("panels", len(snapshot.Panels)).
		Msg("Session changed")

	for _, o := range observers {
		o.SessionChanged(snapshot)
	}
	return nil
}

// recompute refreshes every derived value from the current selections
func (s *Session) recompute() {
	defer utils.OperationTimer("recompute", s.log)()

	for i := range s.panels {
		s.panels[i].Budget = budget.RemainingBudget(s.panels[i].Modules)
	}

	c := s.store.Current()
	reporter := s.warningReporter()
	s.accessories = accessories.NewResolver(c, s.opts.AccessoryRules).
		Resolve(s.panels, s.technology, s.panelType, s.receivers, reporter)
	s.powerSupplies = power.NewResolver(c, s.opts.PowerRules).
		Resolve(s.panels, s.technology, s.receivers, reporter)
}

// targetPanel returns the index a panel edit applies to: the panel itself,
// or the master panel in same-configuration mode
func (s *Session) targetPanel(panelID int) (int, error) {
	if s.technology == "" {
		return -1, ErrNoSystem
	}
	for i, p := range s.panels {
		if p.ID == panelID {
			if s.sameConfig {
				return masterIndex, nil
			}
			return i, nil
		}
	}
	return -1, s.fail(ErrPanelNotFound, fmt.Sprintf("Panel %d not found.", panelID))
}

// mirror copies the master panel onto every other panel in same-configuration mode
func (s *Session) mirror() {
	if !s.sameConfig || len(s.panels) == 0 {
		return
	}
	master := s.panels[masterIndex]
	for i := range s.panels {
		if i == masterIndex {
			continue
		}
		copied := master.Clone()
		copied.ID = s.panels[i].ID
		s.panels[i] = copied
	}
}

func (s *Session) newPanel() domain.Panel {
	s.nextPanelID++
	return domain.Panel{
		ID:                s.nextPanelID,
		Budget:            domain.DefaultBudget,
		InstallationType:  s.installationType,
		IsVandalResistant: s.vandalResistant,
	}
}

// fail reports message as a notice and returns err wrapped with it
func (s *Session) fail(err error, message string) error {
	s.notices.Report(message)
	s.log.Warn().Str("notice", message).Msg("Transition refused")
	return fmt.Errorf("%w: %s", err, message)
}

// rejectionReporter forwards validator messages to the notice log and collects them
func (s *Session) rejectionReporter(collected *domain.Messages) domain.Reporter {
	return domain.ReporterFunc(func(message string) {
		collected.Report(message)
		s.notices.Report(message)
		s.log.Warn().Str("notice", message).Msg("Module rejected")
	})
}

// warningReporter forwards resolver warnings to the notice log
func (s *Session) warningReporter() domain.Reporter {
	return domain.ReporterFunc(func(message string) {
		s.notices.Report(message)
		s.log.Warn().Str("notice", message).Msg("Resolver warning")
	})
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Technology:        s.technology,
		PanelType:         s.panelType,
		InstallationType:  s.installationType,
		IsVandalResistant: s.vandalResistant,
		SameConfig:        s.sameConfig,
		Panels:            clonePanels(s.panels),
		Receivers:         append(domain.Receivers(nil), s.receivers...),
		Accessories:       append([]domain.LineItem(nil), s.accessories...),
		PowerSupplies:     append([]domain.LineItem(nil), s.powerSupplies...),
		MaxPanels:         s.opts.MaxPanels,
		Version:           s.version,
		Transition:        s.lastChange,
		UpdatedAt:         s.updatedAt,
	}
}

func clonePanels(panels []domain.Panel) []domain.Panel {
	out := make([]domain.Panel, len(panels))
	for i, p := range panels {
		out[i] = p.Clone()
	}
	return out
}

func containsPanelType(types []domain.PanelType, pt domain.PanelType) bool {
	for _, t := range types {
		if t == pt {
			return true
		}
	}
	return false
}
