package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/mahjong-scorebook/models"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository хранит единственную строку настроек по умолчанию.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type postgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

func (r *postgresSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `SELECT point_rate, bonus_value, chip_rate, bonus_rule FROM app_settings WHERE id = 1`

	s := &models.Settings{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.PointRate, &s.BonusValue, &s.ChipRate, &s.BonusRule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

func (r *postgresSettingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO app_settings (id, point_rate, bonus_value, chip_rate, bonus_rule)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET point_rate = EXCLUDED.point_rate,
			bonus_value = EXCLUDED.bonus_value,
			chip_rate = EXCLUDED.chip_rate,
			bonus_rule = EXCLUDED.bonus_rule,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, s.PointRate, s.BonusValue, s.ChipRate, s.BonusRule); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
