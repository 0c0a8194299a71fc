package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	now         func() time.Time
}

func NewDashboardService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var (
		users    []*models.User
		sessions []*models.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	stats := models.DashboardStats{UsersTotal: len(users), SessionsTotal: len(sessions)}
	mainUserID := 0
	for _, u := range users {
		if u.IsArchived {
			stats.ArchivedUsers++
		}
		if u.IsMainUser {
			mainUserID = u.ID
		}
	}

	now := s.now()
	for _, session := range sessions {
		stats.RoundsTotal += len(session.Rounds)
		if session.Date.Year() == now.Year() && session.Date.Month() == now.Month() {
			stats.SessionsThisMonth++
		}
		if stats.LastSessionDate == nil || session.Date.After(*stats.LastSessionDate) {
			date := session.Date
			stats.LastSessionDate = &date
		}
		if session.Summary != nil && session.Summary.UserID == mainUserID {
			stats.MainUserPayout += session.Summary.TotalPayout
		}
	}
	return stats, nil
}
