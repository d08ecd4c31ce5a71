package settings

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/events"
)

// Service manages the one-time instruction overlays on top of the repository
type Service struct {
	repo         *Repository
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewService creates a settings service. eventManager may be nil.
func NewService(repo *Repository, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		eventManager: eventManager,
		log:          log.With().Str("service", "settings").Logger(),
	}
}

// GetAll returns every stored setting
func (s *Service) GetAll() (map[string]string, error) {
	return s.repo.GetAll()
}

// InstructionsSeen reports whether the overlay of page was dismissed
func (s *Service) InstructionsSeen(page InstructionPage) (bool, error) {
	key, err := page.Key()
	if err != nil {
		return false, err
	}
	return s.repo.GetBool(key, false)
}

// Instructions returns the dismissal state of every page
func (s *Service) Instructions() (InstructionsStatus, error) {
	status := make(InstructionsStatus, len(Pages))
	for _, page := range Pages {
		seen, err := s.InstructionsSeen(page)
		if err != nil {
			return nil, err
		}
		status[page] = seen
	}
	return status, nil
}

// MarkInstructionsSeen records that the overlay of page was dismissed
func (s *Service) MarkInstructionsSeen(page InstructionPage) error {
	return s.SetInstructionsSeen(page, true)
}

// SetInstructionsSeen stores the dismissal state of page
func (s *Service) SetInstructionsSeen(page InstructionPage, seen bool) error {
	key, err := page.Key()
	if err != nil {
		return err
	}

	description := SettingDescriptions[key]
	if err := s.repo.Set(key, strconv.FormatBool(seen), &description); err != nil {
		return fmt.Errorf("failed to store instructions state for %s: %w", page, err)
	}

	s.log.Debug().Str("page", string(page)).Bool("seen", seen).Msg("Instructions state stored")
	s.emitChanged(key, strconv.FormatBool(seen))
	return nil
}

// ResetInstructions forgets every dismissal so all overlays show again
func (s *Service) ResetInstructions() error {
	keys := make([]string, 0, len(Pages))
	for _, page := range Pages {
		key, _ := page.Key()
		keys = append(keys, key)
	}

	if err := s.repo.DeleteAll(keys); err != nil {
		return fmt.Errorf("failed to reset instructions: %w", err)
	}

	s.log.Info().Msg("Instructions reset")
	for _, key := range keys {
		s.emitChanged(key, "false")
	}
	return nil
}

func (s *Service) emitChanged(key, value string) {
	if s.eventManager == nil {
		return
	}
	s.eventManager.EmitTyped("settings", &events.SettingsChangedData{Key: key, Value: value})
}
