package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/repositories"
	"github.com/Dosada05/mahjong-scorebook/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

// mockUserRepo - хранилище пользователей в памяти.
type mockUserRepo struct {
	mu     sync.Mutex
	users  map[int]*models.User
	nextID int
	err    error
}

func newMockUserRepo(users ...models.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[int]*models.User), nextID: 1}
	for _, u := range users {
		u := u
		m.users[u.ID] = &u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if user.IsMainUser {
		for _, u := range m.users {
			if u.IsMainUser {
				return repositories.ErrMainUserExists
			}
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetMainUser(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.IsMainUser {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context, includeArchived bool) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		if u.IsArchived && !includeArchived {
			continue
		}
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// mockSessionRepo - хранилище сессий в памяти; exec игнорируется.
type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[int]*models.Session
	nextID   int
	clock    time.Time
	listErr  error
}

func newMockSessionRepo(sessions ...models.Session) *mockSessionRepo {
	m := &mockSessionRepo{
		sessions: make(map[int]*models.Session),
		nextID:   1,
		clock:    time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, s := range sessions {
		s := s
		m.sessions[s.ID] = &s
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
	}
	return m
}

func (m *mockSessionRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *mockSessionRepo) Create(ctx context.Context, exec repositories.SQLExecutor, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.nextID
	m.nextID++
	s.CreatedAt = m.tick()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	m.sessions[s.ID] = &stored
	return nil
}

func (m *mockSessionRepo) Update(ctx context.Context, exec repositories.SQLExecutor, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.sessions[s.ID]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	s.CreatedAt = old.CreatedAt
	s.UpdatedAt = m.tick()
	stored := *s
	m.sessions[s.ID] = &stored
	return nil
}

func (m *mockSessionRepo) UpdateSummary(ctx context.Context, exec repositories.SQLExecutor, id int, summary *models.SessionSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	s.Summary = summary
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	sessions := make([]*models.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		copied := *s
		sessions = append(sessions, &copied)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

type mockSettingsRepo struct {
	stored *models.Settings
	err    error
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stored == nil {
		return nil, repositories.ErrSettingsNotFound
	}
	copied := *m.stored
	return &copied, nil
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *models.Settings) error {
	if m.err != nil {
		return m.err
	}
	copied := *s
	m.stored = &copied
	return nil
}

// fakeTxRunner выполняет функцию без транзакции и считает вызовы.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type notification struct {
	room      string
	eventType string
	payload   interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (r *recordingNotifier) Notify(room, eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notification{room: room, eventType: eventType, payload: payload})
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.key, f.contentType, f.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

var errDatabaseDown = errors.New("database is down")
