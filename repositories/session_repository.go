package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/lib/pq"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, session *models.Session) error
	Update(ctx context.Context, exec SQLExecutor, session *models.Session) error
	UpdateSummary(ctx context.Context, exec SQLExecutor, sessionID int, summary *models.SessionSummary) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Session, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Session, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSessionRepository) Create(ctx context.Context, exec SQLExecutor, s *models.Session) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO sessions (date, mode, point_rate, bonus_value, chip_rate, bonus_rule, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		s.Date, s.Mode, s.PointRate, s.BonusValue, s.ChipRate, s.BonusRule, s.Memo,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return r.insertRounds(ctx, executor, s)
}

// Update перезаписывает параметры сессии и заменяет все ханчаны целиком.
func (r *postgresSessionRepository) Update(ctx context.Context, exec SQLExecutor, s *models.Session) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE sessions
		SET date = $1, mode = $2, point_rate = $3, bonus_value = $4, chip_rate = $5,
			bonus_rule = $6, memo = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		s.Date, s.Mode, s.PointRate, s.BonusValue, s.ChipRate, s.BonusRule, s.Memo, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to update session %d: %w", s.ID, err)
	}

	// player_results удаляются каскадно
	if _, err = executor.ExecContext(ctx, `DELETE FROM rounds WHERE session_id = $1`, s.ID); err != nil {
		return fmt.Errorf("failed to clear rounds of session %d: %w", s.ID, err)
	}

	return r.insertRounds(ctx, executor, s)
}

func (r *postgresSessionRepository) insertRounds(ctx context.Context, executor SQLExecutor, s *models.Session) error {
	roundQuery := `
		INSERT INTO rounds (session_id, round_number, auto_calculated)
		VALUES ($1, $2, $3)
		RETURNING id`
	playerQuery := `
		INSERT INTO player_results (
			round_id, position, player_name, user_id, score, bonus_marker,
			chips, parlor_fee, is_spectator, bonus_marker_manual
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	for i := range s.Rounds {
		round := &s.Rounds[i]
		round.SessionID = s.ID
		err := executor.QueryRowContext(ctx, roundQuery, s.ID, round.RoundNumber, round.AutoCalculated).Scan(&round.ID)
		if err != nil {
			return fmt.Errorf("failed to insert round %d of session %d: %w", round.RoundNumber, s.ID, err)
		}

		for pos := range round.Players {
			p := &round.Players[pos]
			err = executor.QueryRowContext(ctx, playerQuery,
				round.ID, pos, p.PlayerName, p.UserID, p.Score, p.BonusMarker,
				p.Chips, p.ParlorFee, p.IsSpectator, p.BonusMarkerManual,
			).Scan(&p.ID)
			if err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) && pqErr.Code == "23503" {
					return fmt.Errorf("%w: player %q references unknown user", ErrUserNotFound, p.PlayerName)
				}
				return fmt.Errorf("failed to insert player result for round %d: %w", round.RoundNumber, err)
			}
		}
	}
	return nil
}

func (r *postgresSessionRepository) UpdateSummary(ctx context.Context, exec SQLExecutor, sessionID int, summary *models.SessionSummary) error {
	executor := r.getExecutor(exec)

	var payload interface{}
	if summary != nil {
		raw, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		payload = raw
	}

	result, err := executor.ExecContext(ctx, `UPDATE sessions SET summary = $1 WHERE id = $2`, payload, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update summary of session %d: %w", sessionID, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

const sessionColumns = `id, date, mode, point_rate, bonus_value, chip_rate, bonus_rule, memo, summary, created_at, updated_at`

func scanSession(rowScanner interface{ Scan(...interface{}) error }) (*models.Session, error) {
	s := &models.Session{}
	var memo sql.NullString
	var summary []byte

	err := rowScanner.Scan(
		&s.ID, &s.Date, &s.Mode, &s.PointRate, &s.BonusValue, &s.ChipRate, &s.BonusRule,
		&memo, &summary, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if memo.Valid {
		s.Memo = &memo.String
	}
	if len(summary) > 0 {
		var sum models.SessionSummary
		if err := json.Unmarshal(summary, &sum); err != nil {
			return nil, fmt.Errorf("failed to decode summary of session %d: %w", s.ID, err)
		}
		s.Summary = &sum
	}
	s.Rounds = []models.Round{}
	return s, nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Session, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}

	if err := r.loadRounds(ctx, executor, []*models.Session{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List возвращает все сессии вместе с ханчанами в порядке создания.
func (r *postgresSessionRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Session, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at ASC, id ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, errScan := scanSession(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan session: %w", errScan)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRounds(ctx, executor, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// loadRounds подгружает ханчаны и результаты игроков двумя запросами на весь набор сессий.
func (r *postgresSessionRepository) loadRounds(ctx context.Context, executor SQLExecutor, sessions []*models.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	sessionIDs := make([]int64, len(sessions))
	bySession := make(map[int]*models.Session, len(sessions))
	for i, s := range sessions {
		sessionIDs[i] = int64(s.ID)
		bySession[s.ID] = s
	}

	roundRows, err := executor.QueryContext(ctx, `
		SELECT id, session_id, round_number, auto_calculated
		FROM rounds
		WHERE session_id = ANY($1)
		ORDER BY session_id, round_number`, pq.Array(sessionIDs))
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	defer roundRows.Close()

	type roundRef struct {
		sessionID int
		index     int
	}
	refs := make(map[int]roundRef)
	for roundRows.Next() {
		var rd models.Round
		if err := roundRows.Scan(&rd.ID, &rd.SessionID, &rd.RoundNumber, &rd.AutoCalculated); err != nil {
			return fmt.Errorf("failed to scan round: %w", err)
		}
		rd.Players = []models.PlayerResult{}
		s := bySession[rd.SessionID]
		s.Rounds = append(s.Rounds, rd)
		refs[rd.ID] = roundRef{sessionID: rd.SessionID, index: len(s.Rounds) - 1}
	}
	if err := roundRows.Err(); err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	playerRows, err := executor.QueryContext(ctx, `
		SELECT pr.id, pr.round_id, pr.player_name, pr.user_id, pr.score, pr.bonus_marker,
			pr.chips, pr.parlor_fee, pr.is_spectator, pr.bonus_marker_manual
		FROM player_results pr
		JOIN rounds r ON r.id = pr.round_id
		WHERE r.session_id = ANY($1)
		ORDER BY pr.round_id, pr.position`, pq.Array(sessionIDs))
	if err != nil {
		return fmt.Errorf("failed to load player results: %w", err)
	}
	defer playerRows.Close()

	for playerRows.Next() {
		var p models.PlayerResult
		var roundID int
		var userID, score sql.NullInt64
		err := playerRows.Scan(
			&p.ID, &roundID, &p.PlayerName, &userID, &score, &p.BonusMarker,
			&p.Chips, &p.ParlorFee, &p.IsSpectator, &p.BonusMarkerManual,
		)
		if err != nil {
			return fmt.Errorf("failed to scan player result: %w", err)
		}
		if userID.Valid {
			v := int(userID.Int64)
			p.UserID = &v
		}
		if score.Valid {
			v := int(score.Int64)
			p.Score = &v
		}

		ref, ok := refs[roundID]
		if !ok {
			continue
		}
		rd := &bySession[ref.sessionID].Rounds[ref.index]
		rd.Players = append(rd.Players, p)
	}
	return playerRows.Err()
}

func (r *postgresSessionRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}
