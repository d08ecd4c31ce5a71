package scheduler

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
)

// ReloadCatalogJob swaps in the catalog file when it changed on disk.
// A file that fails to load leaves the current catalog in place.
// Runs are serialized so a manual trigger never overlaps a scheduled one.
type ReloadCatalogJob struct {
	JobBase
	mu           sync.Mutex
	path         string
	store        *catalog.Store
	session      SessionRefresher
	eventManager EventManagerInterface
	lastModTime  time.Time
	lastSize     int64
}

// ReloadCatalogConfig holds the dependencies of ReloadCatalogJob
type ReloadCatalogConfig struct {
	Path         string
	Store        *catalog.Store
	Session      SessionRefresher
	EventManager EventManagerInterface
}

// NewReloadCatalogJob creates a new ReloadCatalogJob
func NewReloadCatalogJob(cfg ReloadCatalogConfig) *ReloadCatalogJob {
	return &ReloadCatalogJob{
		JobBase:      JobBase{log: zerolog.Nop()},
		path:         cfg.Path,
		store:        cfg.Store,
		session:      cfg.Session,
		eventManager: cfg.EventManager,
	}
}

// Name returns the job name
func (j *ReloadCatalogJob) Name() string {
	return "catalog:reload"
}

// Run executes the reload catalog job
func (j *ReloadCatalogJob) Run() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	info, err := os.Stat(j.path)
	if err != nil {
		return j.failed(fmt.Errorf("failed to stat catalog %s: %w", j.path, err))
	}
	if info.ModTime().Equal(j.lastModTime) && info.Size() == j.lastSize {
		return nil
	}

	next, err := catalog.LoadFile(j.path)
	if err != nil {
		return j.failed(err)
	}

	j.lastModTime = info.ModTime()
	j.lastSize = info.Size()
	j.store.Replace(next)

	catalogInfo := next.Info()
	j.log.Info().
		Str("source", catalogInfo.Source).
		Int("technologies", len(catalogInfo.Technologies)).
		Int("products", catalogInfo.Products).
		Msg("Catalog reloaded")

	if j.eventManager != nil {
		j.eventManager.EmitTyped("scheduler", &events.CatalogReloadedData{
			Source:       catalogInfo.Source,
			Technologies: len(catalogInfo.Technologies),
			Products:     catalogInfo.Products,
		})
	}

	if j.session != nil {
		if err := j.session.Refresh(); err != nil {
			return fmt.Errorf("failed to refresh session after catalog reload: %w", err)
		}
	}
	return nil
}

func (j *ReloadCatalogJob) failed(err error) error {
	if j.eventManager != nil {
		j.eventManager.EmitError("scheduler", err, map[string]interface{}{
			"job":  j.Name(),
			"path": j.path,
		})
	}
	return err
}
