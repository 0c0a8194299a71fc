package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	"github.com/Dosada05/mahjong-scorebook/scoring"
	"golang.org/x/sync/errgroup"
)

type StatisticsService interface {
	GetPlayerStatistics(ctx context.Context, userID int, query StatisticsQuery) (*models.PlayerStatistics, error)
	GetRanking(ctx context.Context, query StatisticsQuery) (*models.UserRanking, error)
	AvailableYears(ctx context.Context) ([]int, error)
}

// StatisticsQuery - параметры из строки запроса; пустые значения означают
// all-time, все режимы и все сессии.
type StatisticsQuery struct {
	Period string
	Mode   string
	Sample string
}

type parsedQuery struct {
	period models.Period
	mode   models.ModeFilter
	sample models.SampleFilter
}

func (q StatisticsQuery) parse() (parsedQuery, error) {
	period, err := scoring.ParsePeriod(q.Period)
	if err != nil {
		return parsedQuery{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	mode, err := parseModeFilter(q.Mode)
	if err != nil {
		return parsedQuery{}, err
	}
	sample := models.SampleAll
	if q.Sample != "" {
		sample = models.SampleFilter(q.Sample)
		if !sample.IsValid() {
			return parsedQuery{}, fmt.Errorf("%w: unknown sample %q", ErrInvalidQuery, q.Sample)
		}
	}
	return parsedQuery{period: period, mode: mode, sample: sample}, nil
}

type statisticsService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	now         func() time.Time
}

func NewStatisticsService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) StatisticsService {
	return &statisticsService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (s *statisticsService) GetPlayerStatistics(ctx context.Context, userID int, query StatisticsQuery) (*models.PlayerStatistics, error) {
	q, err := query.parse()
	if err != nil {
		return nil, err
	}

	var sessions []*models.Session
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.userRepo.GetByID(gctx, userID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load user %d: %w", userID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := scoring.FilterSessions(derefSessions(sessions), q.period, q.mode, s.now())
	rankStats := scoring.CalculateRankStatistics(scoring.RoundsOf(filtered), userID, q.mode)

	return &models.PlayerStatistics{
		UserID:  userID,
		Period:  q.period,
		Mode:    q.mode,
		Rank:    rankStats,
		All:     scoring.CalculateAllStatistics(filtered, userID, rankStats),
		Records: scoring.CalculateRecordStatistics(filtered, userID),
	}, nil
}

// GetRanking сравнивает активных (не архивных) пользователей.
func (s *statisticsService) GetRanking(ctx context.Context, query StatisticsQuery) (*models.UserRanking, error) {
	q, err := query.parse()
	if err != nil {
		return nil, err
	}

	var (
		users    []*models.User
		sessions []*models.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx, false)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make([]models.User, 0, len(users))
	for _, u := range users {
		if u != nil {
			active = append(active, *u)
		}
	}

	filtered := scoring.FilterSessions(derefSessions(sessions), q.period, q.mode, s.now())
	ranking := scoring.CalculateUserRanking(active, filtered, q.mode, q.sample)
	return &ranking, nil
}

func (s *statisticsService) AvailableYears(ctx context.Context) ([]int, error) {
	sessions, err := s.sessionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	return scoring.AvailableYears(derefSessions(sessions)), nil
}
