package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
)

// SettingsService хранит настройки, которые подставляются в новые сессии.
// Подписчики получают каждое изменение после успешного сохранения.
type SettingsService interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
	EnsureDefaults(ctx context.Context) error
	Subscribe(observer func(models.Settings)) (unsubscribe func())
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	defaults     models.Settings
	logger       *slog.Logger

	mu        sync.RWMutex
	nextID    int
	observers map[int]func(models.Settings)
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, defaults models.Settings, logger *slog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
		logger:       logger,
		observers:    make(map[int]func(models.Settings)),
	}
}

func validateSettings(s models.Settings) error {
	if s.PointRate < 0 || s.BonusValue < 0 || s.ChipRate < 0 {
		return fmt.Errorf("%w: rates must not be negative", ErrInvalidSettings)
	}
	if !s.BonusRule.IsValid() {
		return fmt.Errorf("%w: unknown bonus rule %q", ErrInvalidSettings, s.BonusRule)
	}
	return nil
}

func (s *settingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return *stored, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := validateSettings(settings); err != nil {
		return models.Settings{}, err
	}
	if err := s.settingsRepo.Upsert(ctx, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	s.logger.Info("settings updated",
		slog.Int("point_rate", settings.PointRate),
		slog.Int("bonus_value", settings.BonusValue),
		slog.Int("chip_rate", settings.ChipRate),
		slog.String("bonus_rule", string(settings.BonusRule)),
	)
	s.publish(settings)
	return settings, nil
}

// EnsureDefaults записывает значения из конфигурации, если настройки ещё не сохранялись.
func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	_, err := s.settingsRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrSettingsNotFound) {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if err := validateSettings(s.defaults); err != nil {
		return err
	}
	defaults := s.defaults
	return s.settingsRepo.Upsert(ctx, &defaults)
}

func (s *settingsService) Subscribe(observer func(models.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = observer

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *settingsService) publish(settings models.Settings) {
	s.mu.RLock()
	observers := make([]func(models.Settings), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(settings)
	}
}
