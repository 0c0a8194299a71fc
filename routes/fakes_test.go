package routes

import (
	"context"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/services"
)

type fakeUserService struct {
	err  error
	main *models.User
}

func (f *fakeUserService) CreateUser(ctx context.Context, input services.CreateUserInput) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 2, Name: input.Name}, nil
}

func (f *fakeUserService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return &models.User{ID: id}, f.err
}

func (f *fakeUserService) GetMainUser(ctx context.Context) (*models.User, error) {
	if f.main == nil {
		return nil, services.ErrMainUserNotFound
	}
	return f.main, nil
}

func (f *fakeUserService) ListUsers(ctx context.Context, includeArchived bool) ([]*models.User, error) {
	users := []*models.User{{ID: 1, Name: "Me", IsMainUser: true}}
	if includeArchived {
		users = append(users, &models.User{ID: 3, Name: "Carol", IsArchived: true})
	}
	return users, f.err
}

func (f *fakeUserService) RenameUser(ctx context.Context, id int, input services.UpdateUserInput) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, Name: input.Name}, nil
}

func (f *fakeUserService) ArchiveUser(ctx context.Context, id int) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, IsArchived: true}, nil
}

func (f *fakeUserService) UnarchiveUser(ctx context.Context, id int) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id}, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, id int) error { return f.err }

func (f *fakeUserService) EnsureMainUser(ctx context.Context, name string) (*models.User, error) {
	return f.main, f.err
}

type fakeSessionService struct {
	err       error
	lastInput services.SaveSessionInput
	lastUser  int
	lastList  services.ListSessionsFilter
}

func (f *fakeSessionService) SaveSessionWithSummary(ctx context.Context, input services.SaveSessionInput, userID int) (*models.Session, error) {
	f.lastInput, f.lastUser = input, userID
	if f.err != nil {
		return nil, f.err
	}
	id := input.ID
	if id == 0 {
		id = 11
	}
	return &models.Session{ID: id, Date: input.Date, Mode: input.Mode, Rounds: input.Rounds}, nil
}

func (f *fakeSessionService) GetSession(ctx context.Context, id int) (*services.SessionDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.SessionDetails{Session: &models.Session{ID: id}, Totals: []models.PlayerTotals{}}, nil
}

func (f *fakeSessionService) ListSessions(ctx context.Context, filter services.ListSessionsFilter) ([]*models.Session, error) {
	f.lastList = filter
	return []*models.Session{}, f.err
}

func (f *fakeSessionService) DeleteSession(ctx context.Context, id int) error { return f.err }

func (f *fakeSessionService) ResolveRound(input services.ResolveRoundInput) (*services.ResolveRoundResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ResolveRoundResult{Round: input.Round, Ranks: map[int]int{}}, nil
}

type fakeSettingsService struct {
	err      error
	settings models.Settings
}

func (f *fakeSettingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	return f.settings, f.err
}

func (f *fakeSettingsService) UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	if f.err != nil {
		return models.Settings{}, f.err
	}
	f.settings = s
	return s, nil
}

func (f *fakeSettingsService) EnsureDefaults(ctx context.Context) error { return f.err }

func (f *fakeSettingsService) Subscribe(observer func(models.Settings)) func() { return func() {} }

type fakeStatisticsService struct {
	err       error
	lastQuery services.StatisticsQuery
	lastUser  int
}

func (f *fakeStatisticsService) GetPlayerStatistics(ctx context.Context, userID int, q services.StatisticsQuery) (*models.PlayerStatistics, error) {
	f.lastUser, f.lastQuery = userID, q
	if f.err != nil {
		return nil, f.err
	}
	return &models.PlayerStatistics{UserID: userID}, nil
}

func (f *fakeStatisticsService) GetRanking(ctx context.Context, q services.StatisticsQuery) (*models.UserRanking, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserRanking{InsufficientUsers: true, Metrics: []models.MetricRanking{}}, nil
}

func (f *fakeStatisticsService) AvailableYears(ctx context.Context) ([]int, error) {
	return []int{2026, 2025}, f.err
}

type fakeExportService struct {
	err error
}

func (f *fakeExportService) Export(ctx context.Context, format services.ExportFormat) (*services.ExportResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ExportResult{Key: "exports/x." + string(format), Format: format}, nil
}

type fakeDashboardService struct {
	err error
}

func (f *fakeDashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	return models.DashboardStats{UsersTotal: 2, SessionsTotal: 1, RoundsTotal: 4}, f.err
}
