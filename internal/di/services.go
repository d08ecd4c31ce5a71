package di

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/config"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
	"github.com/teletec/intercom-configurator/internal/modules/quotes"
	"github.com/teletec/intercom-configurator/internal/modules/session"
	"github.com/teletec/intercom-configurator/internal/modules/settings"
)

// InitializeServices creates the catalog, the session and the services around them
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Events first: every other service may emit
	container.EventBus = events.NewBus(log)
	container.EventManager = events.NewManager(container.EventBus, log)

	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	container.CatalogStore = catalog.NewStore(c)
	info := c.Info()
	log.Info().
		Str("source", info.Source).
		Int("technologies", len(info.Technologies)).
		Int("products", info.Products).
		Msg("Catalog loaded")

	container.NoticeLog = session.NewNoticeLog(cfg.NoticeTTL)
	opts := session.DefaultOptions()
	opts.MaxPanels = cfg.MaxPanels
	container.Session = session.New(container.CatalogStore, container.NoticeLog, opts, log)
	publishSessionEvents(container.Session, container.NoticeLog, container.EventManager)

	container.SettingsService = settings.NewService(container.SettingsRepo, container.EventManager, log)

	if cfg.QuoteBucket != "" {
		uploader, err := quotes.NewS3Uploader(ctx, cfg.QuoteBucket, cfg.AWSRegion, log)
		if err != nil {
			return fmt.Errorf("failed to create quote uploader: %w", err)
		}
		container.QuoteUploader = uploader
	} else {
		container.QuoteUploader = quotes.NewNopUploader(log)
	}
	container.QuoteService = quotes.NewService(container.QuoteUploader, cfg.QuotePrefix, log)

	log.Info().Msg("Services initialized")
	return nil
}

// loadCatalog reads CATALOG_PATH, or the bundled catalog when none is configured
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		c, err := catalog.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled catalog: %w", err)
		}
		return c, nil
	}

	c, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogPath, err)
	}
	return c, nil
}

// publishSessionEvents forwards session transitions and notices to the event bus
func publishSessionEvents(s *session.Session, notices *session.NoticeLog, em *events.Manager) {
	s.Subscribe(session.ObserverFunc(func(snapshot session.Snapshot) {
		em.EmitTyped("session", &events.SessionChangedData{
			Transition:       snapshot.Transition,
			SystemTechnology: string(snapshot.Technology),
			PanelType:        string(snapshot.PanelType),
			Version:          snapshot.Version,
			Panels:           len(snapshot.Panels),
			ActivePanels:     domain.ActivePanels(snapshot.Panels),
			Receivers:        snapshot.Receivers.Total(),
		})
	}))

	notices.OnRaise(func(n session.Notice) {
		em.EmitTyped("session", &events.NoticeRaisedData{
			ID:      strconv.FormatUint(n.ID, 10),
			Message: n.Message,
		})
	})
}
