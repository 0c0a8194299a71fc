package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
)

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetMainUser(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context, includeArchived bool) ([]*models.User, error)
	RenameUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	ArchiveUser(ctx context.Context, id int) (*models.User, error)
	UnarchiveUser(ctx context.Context, id int) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	EnsureMainUser(ctx context.Context, name string) (*models.User, error)
}

type CreateUserInput struct {
	Name string `json:"name"`
}

type UpdateUserInput struct {
	Name string `json:"name"`
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrUserNameRequired
	}

	user := &models.User{Name: name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", slog.Int("user_id", user.ID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleUserRepoError(err, id)
	}
	return user, nil
}

func (s *userService) GetMainUser(ctx context.Context) (*models.User, error) {
	user, err := s.userRepo.GetMainUser(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrMainUserNotFound
		}
		return nil, fmt.Errorf("failed to get main user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, includeArchived bool) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []*models.User{}, nil
	}
	return users, nil
}

func (s *userService) RenameUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrUserNameRequired
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleUserRepoError(err, id)
	}
	user.Name = name

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, handleUserRepoError(err, id)
	}
	return user, nil
}

func (s *userService) ArchiveUser(ctx context.Context, id int) (*models.User, error) {
	return s.setArchived(ctx, id, true)
}

func (s *userService) UnarchiveUser(ctx context.Context, id int) (*models.User, error) {
	return s.setArchived(ctx, id, false)
}

func (s *userService) setArchived(ctx context.Context, id int, archived bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleUserRepoError(err, id)
	}
	if user.IsMainUser && archived {
		return nil, ErrMainUserProtected
	}
	if user.IsArchived == archived {
		return user, nil
	}

	user.IsArchived = archived
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, handleUserRepoError(err, id)
	}

	s.logger.Info("user archive state changed", slog.Int("user_id", id), slog.Bool("archived", archived))
	return user, nil
}

// DeleteUser удаляет пользователя. Его строки в прошлых сессиях остаются
// с именем, но без ссылки на пользователя.
func (s *userService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return handleUserRepoError(err, id)
	}
	if user.IsMainUser {
		return ErrMainUserProtected
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return handleUserRepoError(err, id)
	}

	s.logger.Info("user deleted", slog.Int("user_id", id))
	return nil
}

// EnsureMainUser создаёт основного пользователя при первом запуске.
func (s *userService) EnsureMainUser(ctx context.Context, name string) (*models.User, error) {
	user, err := s.userRepo.GetMainUser(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up main user: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameRequired
	}

	user = &models.User{Name: name, IsMainUser: true}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrMainUserExists) {
			// создан параллельно
			return s.GetMainUser(ctx)
		}
		return nil, fmt.Errorf("failed to create main user: %w", err)
	}

	s.logger.Info("main user created", slog.Int("user_id", user.ID), slog.String("name", user.Name))
	return user, nil
}

func handleUserRepoError(err error, id int) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("user %d: %w", id, err)
}
