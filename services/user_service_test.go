package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/mahjong-scorebook/models"
)

func TestUserService_CreateUser(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), discardLogger())

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"trimmed", "  Alice  ", "Alice", nil},
		{"empty", "", "", ErrUserNameRequired},
		{"whitespace only", "   ", "", ErrUserNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(context.Background(), CreateUserInput{Name: tt.input})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (user.Name != tt.want || user.IsMainUser) {
				t.Fatalf("unexpected user %+v", user)
			}
		})
	}
}

func TestUserService_MainUserIsProtected(t *testing.T) {
	repo := newMockUserRepo(
		models.User{ID: 1, Name: "Me", IsMainUser: true},
		models.User{ID: 2, Name: "Bob"},
	)
	svc := NewUserService(repo, discardLogger())
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, 1); !errors.Is(err, ErrMainUserProtected) {
		t.Fatalf("DeleteUser(main) error = %v, want ErrMainUserProtected", err)
	}
	if _, err := svc.ArchiveUser(ctx, 1); !errors.Is(err, ErrMainUserProtected) {
		t.Fatalf("ArchiveUser(main) error = %v, want ErrMainUserProtected", err)
	}

	renamed, err := svc.RenameUser(ctx, 1, UpdateUserInput{Name: "Myself"})
	if err != nil {
		t.Fatalf("RenameUser(main) error = %v", err)
	}
	if renamed.Name != "Myself" || !renamed.IsMainUser {
		t.Fatalf("unexpected renamed user %+v", renamed)
	}

	if err := svc.DeleteUser(ctx, 2); err != nil {
		t.Fatalf("DeleteUser(2) error = %v", err)
	}
	if err := svc.DeleteUser(ctx, 2); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second DeleteUser(2) error = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_ArchiveKeepsUserListed(t *testing.T) {
	repo := newMockUserRepo(
		models.User{ID: 1, Name: "Me", IsMainUser: true},
		models.User{ID: 2, Name: "Bob"},
	)
	svc := NewUserService(repo, discardLogger())
	ctx := context.Background()

	archived, err := svc.ArchiveUser(ctx, 2)
	if err != nil || !archived.IsArchived {
		t.Fatalf("ArchiveUser = %+v, %v", archived, err)
	}

	active, _ := svc.ListUsers(ctx, false)
	all, _ := svc.ListUsers(ctx, true)
	if len(active) != 1 || len(all) != 2 {
		t.Fatalf("active = %d users, all = %d users; want 1 and 2", len(active), len(all))
	}

	restored, err := svc.UnarchiveUser(ctx, 2)
	if err != nil || restored.IsArchived {
		t.Fatalf("UnarchiveUser = %+v, %v", restored, err)
	}
}

func TestUserService_EnsureMainUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, discardLogger())
	ctx := context.Background()

	first, err := svc.EnsureMainUser(ctx, "Me")
	if err != nil {
		t.Fatalf("EnsureMainUser error = %v", err)
	}
	if !first.IsMainUser {
		t.Fatal("created user must be the main user")
	}

	second, err := svc.EnsureMainUser(ctx, "Someone else")
	if err != nil {
		t.Fatalf("second EnsureMainUser error = %v", err)
	}
	if second.ID != first.ID || second.Name != "Me" {
		t.Fatalf("EnsureMainUser created a second main user: %+v", second)
	}

	users, _ := svc.ListUsers(ctx, true)
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
}

func TestUserService_RepositoryFailure(t *testing.T) {
	repo := newMockUserRepo()
	repo.err = errDatabaseDown
	svc := NewUserService(repo, discardLogger())

	if _, err := svc.GetMainUser(context.Background()); !errors.Is(err, errDatabaseDown) {
		t.Fatalf("GetMainUser error = %v, want wrapped errDatabaseDown", err)
	}
	if _, err := svc.GetUserByID(context.Background(), 3); !errors.Is(err, errDatabaseDown) {
		t.Fatalf("GetUserByID error = %v, want wrapped errDatabaseDown", err)
	}
}
