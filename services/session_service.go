package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/realtime"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	"github.com/Dosada05/mahjong-scorebook/scoring"
)

type SessionService interface {
	SaveSessionWithSummary(ctx context.Context, input SaveSessionInput, userID int) (*models.Session, error)
	GetSession(ctx context.Context, id int) (*SessionDetails, error)
	ListSessions(ctx context.Context, filter ListSessionsFilter) ([]*models.Session, error)
	DeleteSession(ctx context.Context, id int) error
	ResolveRound(input ResolveRoundInput) (*ResolveRoundResult, error)
}

// SaveSessionInput - сессия в том виде, в каком её прислал клиент.
// ID == 0 создаёт новую сессию. Settings == nil берёт текущие настройки.
type SaveSessionInput struct {
	ID       int              `json:"-"`
	Date     time.Time        `json:"date"`
	Mode     models.GameMode  `json:"mode"`
	Settings *models.Settings `json:"settings,omitempty"`
	Memo     *string          `json:"memo,omitempty"`
	Rounds   []models.Round   `json:"rounds"`
}

type ListSessionsFilter struct {
	Period string
	Mode   string
}

// SessionDetails - сессия вместе с итогами каждой колонки игроков.
type SessionDetails struct {
	*models.Session
	Totals []models.PlayerTotals `json:"totals"`
}

type ResolveRoundInput struct {
	Mode      models.GameMode  `json:"mode"`
	BonusRule models.BonusRule `json:"bonus_rule"`
	Round     models.Round     `json:"round"`
}

type ResolveRoundResult struct {
	Round    models.Round `json:"round"`
	Ranks    map[int]int  `json:"ranks"`
	ScoreSum int          `json:"score_sum"`
	Complete bool         `json:"complete"`
}

// SessionEvent - полезная нагрузка событий SESSION_SAVED и SESSION_DELETED.
type SessionEvent struct {
	SessionID int                    `json:"session_id"`
	Summary   *models.SessionSummary `json:"summary,omitempty"`
}

type sessionService struct {
	sessionRepo     repositories.SessionRepository
	txRunner        repositories.TxRunner
	settingsService SettingsService
	notifier        realtime.Notifier
	logger          *slog.Logger
	now             func() time.Time
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	txRunner repositories.TxRunner,
	settingsService SettingsService,
	notifier realtime.Notifier,
	logger *slog.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:     sessionRepo,
		txRunner:        txRunner,
		settingsService: settingsService,
		notifier:        notifierOrNop(notifier),
		logger:          logger,
		now:             time.Now,
	}
}

// SaveSessionWithSummary валидирует сессию, удаляет пустые ханчаны,
// расставляет бонусные отметки и в одной транзакции сохраняет сессию
// вместе со сводкой для userID.
func (s *sessionService) SaveSessionWithSummary(ctx context.Context, input SaveSessionInput, userID int) (*models.Session, error) {
	settings := input.Settings
	if settings == nil {
		current, err := s.settingsService.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		settings = &current
	}

	session := &models.Session{
		ID:         input.ID,
		Date:       input.Date,
		Mode:       input.Mode,
		PointRate:  settings.PointRate,
		BonusValue: settings.BonusValue,
		ChipRate:   settings.ChipRate,
		BonusRule:  settings.BonusRule,
		Memo:       normalizeMemo(input.Memo),
		Rounds:     input.Rounds,
	}
	if session.Date.IsZero() {
		session.Date = s.now()
	}
	y, m, d := session.Date.Date()
	session.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if err := validateSettings(session.Settings()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	session.Rounds = scoring.CompactRounds(session.Rounds)
	if err := scoring.ValidateSession(*session); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	for i := range session.Rounds {
		scoring.ApplyBonusMarkers(&session.Rounds[i], session.Mode, session.BonusRule)
	}

	if summary, ok := scoring.SummarizeSession(*session, userID); ok {
		session.Summary = &summary
	}

	err := s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if session.ID == 0 {
			if err := s.sessionRepo.Create(ctx, exec, session); err != nil {
				return err
			}
		} else if err := s.sessionRepo.Update(ctx, exec, session); err != nil {
			return err
		}
		return s.sessionRepo.UpdateSummary(ctx, exec, session.ID, session.Summary)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		default:
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	s.logger.Info("session saved",
		slog.Int("session_id", session.ID),
		slog.Int("rounds", len(session.Rounds)),
		slog.Bool("has_summary", session.Summary != nil),
	)
	s.notifier.Notify(realtime.RoomSessions, realtime.EventSessionSaved, SessionEvent{
		SessionID: session.ID,
		Summary:   session.Summary,
	})
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, id int) (*SessionDetails, error) {
	session, err := s.sessionRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}

	details := &SessionDetails{Session: session, Totals: []models.PlayerTotals{}}
	slots := 0
	for _, r := range session.Rounds {
		if len(r.Players) > slots {
			slots = len(r.Players)
		}
	}
	for i := 0; i < slots; i++ {
		details.Totals = append(details.Totals, scoring.CalculatePlayerTotals(i, session.Rounds, session.Settings()))
	}
	return details, nil
}

// ListSessions возвращает сессии, новые первыми.
func (s *sessionService) ListSessions(ctx context.Context, filter ListSessionsFilter) ([]*models.Session, error) {
	period, err := scoring.ParsePeriod(filter.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	mode, err := parseModeFilter(filter.Mode)
	if err != nil {
		return nil, err
	}

	stored, err := s.sessionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	filtered := scoring.FilterSessions(derefSessions(stored), period, mode, s.now())
	result := make([]*models.Session, len(filtered))
	for i := range filtered {
		result[i] = &filtered[i]
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id int) error {
	if err := s.sessionRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}

	s.logger.Info("session deleted", slog.Int("session_id", id))
	s.notifier.Notify(realtime.RoomSessions, realtime.EventSessionDeleted, SessionEvent{SessionID: id})
	return nil
}

// ResolveRound пересчитывает черновик ханчана: автосчёт, отметки и места.
func (s *sessionService) ResolveRound(input ResolveRoundInput) (*ResolveRoundResult, error) {
	if !input.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, scoring.ErrInvalidMode)
	}
	if !input.BonusRule.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, scoring.ErrInvalidBonusRule)
	}
	if len(input.Round.Players) < input.Mode.PlayerCount() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, scoring.ErrPlayerCountMismatch)
	}

	round := input.Round
	round.Players = append([]models.PlayerResult(nil), input.Round.Players...)

	scoring.AutoFillRound(&round)
	scoring.ApplyBonusMarkers(&round, input.Mode, input.BonusRule)
	sum, complete := scoring.ScoreSum(round.Players)

	return &ResolveRoundResult{
		Round:    round,
		Ranks:    scoring.CalculateRanks(round.Players),
		ScoreSum: sum,
		Complete: complete,
	}, nil
}

func parseModeFilter(s string) (models.ModeFilter, error) {
	if s == "" {
		return models.ModeFilterAll, nil
	}
	mode := models.ModeFilter(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidQuery, s)
	}
	return mode, nil
}

func derefSessions(sessions []*models.Session) []models.Session {
	result := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s != nil {
			result = append(result, *s)
		}
	}
	return result
}
