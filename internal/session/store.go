package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gigaversity/gigaadmin/internal/platform/cache"
)

// Store persists the session between CLI runs.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// HealthChecker is implemented by stores that live on another server.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return Session{}, ErrNotLoggedIn
	}
	return *m.session, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// FileStore keeps the session as a JSON file readable only by its owner.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(context.Context) (Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decoding session file: %w", err)
	}
	if s.AccessToken == "" {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

func (f *FileStore) Save(_ context.Context, s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// RedisStore keeps the session under one Redis key.
type RedisStore struct {
	cache *cache.Cache
	key   string
}

// NewRedisStore creates a store that uses key in c.
func NewRedisStore(c *cache.Cache, key string) *RedisStore {
	return &RedisStore{cache: c, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	var s Session
	err := r.cache.GetJSON(ctx, r.key, &s)
	if errors.Is(err, cache.ErrMiss) {
		return Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	return r.cache.SetJSON(ctx, r.key, s, 0)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.cache.Delete(ctx, r.key)
}

// HealthCheck pings the Redis server holding the session.
func (r *RedisStore) HealthCheck(ctx context.Context) error {
	if err := r.cache.HealthCheck(ctx); err != nil {
		return fmt.Errorf("checking session store: %w", err)
	}
	return nil
}
