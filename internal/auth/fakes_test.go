package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// fakeUserStore is an in-memory UserStore used across the package tests.
type fakeUserStore struct {
	mu     sync.Mutex
	byID   map[uint64]*model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]*model.User{}}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.byID {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash string, role model.Role, active bool) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	f.nextID++
	f.byID[f.nextID] = &model.User{
		ID: f.nextID, Name: name, Email: email, PasswordHash: passwordHash,
		Role: role, IsActive: active,
	}
	return f.nextID, nil
}

func (f *fakeUserStore) Activate(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.IsActive = true
	}
	return nil
}

// memCache implements verification.Cache without Redis. Expiry is checked
// lazily on Get, which is all the store relies on.
type memCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value     string
	expiresAt time.Time
}

func newMemCache() *memCache { return &memCache{entries: map[string]memEntry{}} }

func (m *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *memCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// recordingDispatcher captures enqueued verification emails.
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	user model.User
	code string
}

func (d *recordingDispatcher) EnqueueVerificationEmail(_ context.Context, u model.User, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentMail{user: u, code: code})
	return nil
}

func (d *recordingDispatcher) last() (sentMail, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sent) == 0 {
		return sentMail{}, false
	}
	return d.sent[len(d.sent)-1], true
}
