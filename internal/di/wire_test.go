package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teletec/intercom-configurator/internal/config"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/quotes"
	"github.com/teletec/intercom-configurator/pkg/embedded"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:               t.TempDir(),
		CatalogReloadSchedule: "@every 1h",
		QuotePrefix:           "quotes/",
		Port:                  8001,
		MaxPanels:             3,
		NoticeTTL:             3 * time.Second,
	}
}

func wire(t *testing.T, cfg *config.Config) (*Container, *JobInstances) {
	t.Helper()
	container, jobs, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })
	return container, jobs
}

func TestWire(t *testing.T) {
	container, jobs := wire(t, testConfig(t))

	assert.NotNil(t, container.ConfigDB)
	assert.NotNil(t, container.EventBus)
	assert.NotNil(t, container.EventManager)
	assert.NotNil(t, container.SettingsRepo)
	assert.NotNil(t, container.SettingsService)
	assert.NotNil(t, container.CatalogStore.Current())
	assert.NotNil(t, container.Session)
	assert.NotNil(t, container.QuoteService)
	assert.IsType(t, &quotes.NopUploader{}, container.QuoteUploader)

	assert.NotNil(t, jobs.PruneNotices)
	assert.NotNil(t, jobs.CheckDatabase)
	assert.NotNil(t, jobs.VacuumDatabase)
	assert.Nil(t, jobs.ReloadCatalog, "bundled catalog is never reloaded")
	assert.Equal(t, 3, container.Scheduler.Jobs())
}

func TestWire_CatalogFile(t *testing.T) {
	data, err := embedded.Catalog()
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(cfg.CatalogPath, data, 0644))

	container, jobs := wire(t, cfg)
	assert.NotNil(t, jobs.ReloadCatalog)
	assert.Equal(t, 4, container.Scheduler.Jobs())
	assert.Equal(t, cfg.CatalogPath, container.CatalogStore.Current().Info().Source)
}

func TestWire_MissingCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")

	_, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestWire_SessionPublishesEvents(t *testing.T) {
	container, _ := wire(t, testConfig(t))

	var changed []*events.SessionChangedData
	var notices []*events.NoticeRaisedData
	container.EventBus.Subscribe(events.SessionChanged, func(e *events.Event) {
		if data, ok := e.GetTypedData().(*events.SessionChangedData); ok {
			changed = append(changed, data)
		}
	})
	container.EventBus.Subscribe(events.NoticeRaised, func(e *events.Event) {
		if data, ok := e.GetTypedData().(*events.NoticeRaisedData); ok {
			notices = append(notices, data)
		}
	})

	require.NoError(t, container.Session.SelectSystem(domain.TechnologyIP, domain.PanelTypeVideo))
	require.Len(t, changed, 1)
	assert.Equal(t, "select_system", changed[0].Transition)
	assert.Equal(t, "IP", changed[0].SystemTechnology)
	assert.Equal(t, uint64(1), changed[0].Version)

	// Removing the only panel is refused and surfaces as a notice
	assert.Error(t, container.Session.RemovePanel())
	require.NotEmpty(t, notices)
	assert.NotEmpty(t, notices[len(notices)-1].Message)
	assert.Len(t, changed, 1)
}
