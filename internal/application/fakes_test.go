package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	repo "github.com/oksasatya/go-link-saver/internal/domain/repository"
)

type fakeFetcher struct {
	body  string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	return f.body, f.err
}

type fakeRemote struct {
	summary string
	err     error
	panics  bool
	calls   []string
}

func (f *fakeRemote) Summarize(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if f.panics {
		panic("remote exploded")
	}
	return f.summary, f.err
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type memBookmarks struct {
	mu        sync.Mutex
	rows      []entity.Bookmark
	nextID    int64
	createErr error
}

func (m *memBookmarks) Create(_ context.Context, b *entity.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = baseTime.Add(time.Duration(b.ID) * time.Minute)
	m.rows = append(m.rows, *b)
	return nil
}

func (m *memBookmarks) ListByUserID(_ context.Context, userID int64) ([]entity.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Bookmark
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memBookmarks) GetByID(_ context.Context, id, userID int64) (*entity.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.ID == id && b.UserID == userID {
			b := b
			return &b, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memBookmarks) Delete(_ context.Context, id, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.rows {
		if b.ID == id && b.UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memUsers struct {
	mu     sync.Mutex
	rows   map[int64]entity.User
	nextID int64
}

func newMemUsers() *memUsers { return &memUsers{rows: map[int64]entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email {
			return repo.ErrAlreadyExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = baseTime
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

type fakeIndex struct {
	indexed   []int64
	deleted   []int64
	hits      []entity.Bookmark
	indexErr  error
	searchErr error
}

func (f *fakeIndex) Index(_ context.Context, b entity.Bookmark) error {
	f.indexed = append(f.indexed, b.ID)
	return f.indexErr
}

func (f *fakeIndex) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.indexErr
}

func (f *fakeIndex) Search(_ context.Context, _ int64, _ string, _ int) ([]entity.Bookmark, error) {
	return f.hits, f.searchErr
}

var errBoom = errors.New("boom")
