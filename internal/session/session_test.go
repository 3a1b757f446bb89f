package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gigaversity/gigaadmin/internal/api"
)

type fakeAuth struct {
	tokens api.Tokens
	err    error
	calls  int
}

func (f *fakeAuth) Login(_ context.Context, creds api.Credentials) (api.Tokens, error) {
	f.calls++
	return f.tokens, f.err
}

func TestManager_LoginLogout(t *testing.T) {
	ctx := t.Context()
	store := NewMemoryStore()
	m := NewManager(store)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	if _, err := m.Token(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Token() before login error = %v, want ErrNotLoggedIn", err)
	}

	auth := &fakeAuth{tokens: api.Tokens{Access: "acc", Refresh: "ref"}}
	s, err := m.Login(ctx, auth, " admin@giga.edu ", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.Email != "admin@giga.edu" || s.AccessToken != "acc" || s.RefreshToken != "ref" {
		t.Errorf("session = %+v", s)
	}
	if !s.CreatedAt.Equal(m.now()) {
		t.Errorf("CreatedAt = %v", s.CreatedAt)
	}

	token, err := m.Token(ctx)
	if err != nil || token != "acc" {
		t.Errorf("Token() = %q, %v; want acc", token, err)
	}
	if stored, _ := store.Load(ctx); stored.AccessToken != "acc" {
		t.Errorf("stored token = %q, want acc", stored.AccessToken)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := m.Token(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Token() after logout error = %v, want ErrNotLoggedIn", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestManager_LoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"blank email", "   ", "secret"},
		{"empty password", "admin@giga.edu", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{tokens: api.Tokens{Access: "acc"}}
			m := NewManager(NewMemoryStore())
			if _, err := m.Login(t.Context(), auth, tt.email, tt.password); err == nil {
				t.Fatal("Login() should fail")
			}
			if auth.calls != 0 {
				t.Errorf("auth called %d times, want 0", auth.calls)
			}
		})
	}
}

func TestManager_LoginFailureKeepsOldSession(t *testing.T) {
	ctx := t.Context()
	store := NewMemoryStore()
	_ = store.Save(ctx, Session{Email: "old@giga.edu", AccessToken: "old"})

	m := NewManager(store)
	auth := &fakeAuth{err: errors.New("invalid credentials")}
	if _, err := m.Login(ctx, auth, "admin@giga.edu", "wrong"); err == nil {
		t.Fatal("Login() should fail")
	}

	token, err := m.Token(ctx)
	if err != nil || token != "old" {
		t.Errorf("Token() = %q, %v; want old", token, err)
	}
}

func TestManager_AsTokenSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/super-admin/login/":
			w.Write([]byte(`{"access":"live-token","refresh":"r"}`))
		case "/api/institutions/":
			if r.Header.Get("Authorization") != "Bearer live-token" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
				return
			}
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	ctx := t.Context()
	m := NewManager(NewMemoryStore())
	client := api.New(server.URL, api.WithTokenSource(m))
	institutions := api.NewResource[map[string]any](client, api.InstitutionsPath)

	if _, err := institutions.List(ctx, nil); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("List() before login error = %v, want ErrNotLoggedIn", err)
	}
	if _, err := m.Login(ctx, client, "admin@giga.edu", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := institutions.List(ctx, nil); err != nil {
		t.Fatalf("List() after login error = %v", err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Load() on missing file error = %v, want ErrNotLoggedIn", err)
	}

	want := Session{Email: "admin@giga.edu", AccessToken: "acc", CreatedAt: time.Unix(1700000000, 0).UTC()}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Email != want.Email || got.AccessToken != want.AccessToken || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() after Clear error = %v, want ErrNotLoggedIn", err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path).Load(t.Context())
	if err == nil || errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() error = %v, want decode error", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestManager_TokenExpiry(t *testing.T) {
	ctx := t.Context()
	loginAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	exp := loginAt.Add(time.Hour)
	access := signedToken(t, exp)

	m := NewManager(NewMemoryStore())
	m.now = func() time.Time { return loginAt }

	s, err := m.Login(ctx, &fakeAuth{tokens: api.Tokens{Access: access}}, "admin@giga.edu", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", s.ExpiresAt, exp)
	}

	if token, err := m.Token(ctx); err != nil || token != access {
		t.Errorf("Token() = %q, %v; want the access token", token, err)
	}

	m.now = func() time.Time { return exp }
	_, err = m.Token(ctx)
	if !errors.Is(err, ErrExpired) || !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Token() after expiry error = %v, want ErrExpired wrapping ErrNotLoggedIn", err)
	}
}

func TestTokenExpiry_Opaque(t *testing.T) {
	if got := tokenExpiry("opaque-token"); !got.IsZero() {
		t.Errorf("tokenExpiry() = %v, want zero", got)
	}
	s := Session{AccessToken: "opaque-token"}
	if s.Expired(time.Now()) {
		t.Error("a token without expiry should not expire")
	}
}

type remoteStore struct {
	*MemoryStore
	err error
}

func (r remoteStore) HealthCheck(context.Context) error { return r.err }

func TestManager_CheckStore(t *testing.T) {
	down := errors.New("connection refused")
	tests := []struct {
		name       string
		store      Store
		wantRemote bool
		wantErr    error
	}{
		{"memory", NewMemoryStore(), false, nil},
		{"file", NewFileStore(filepath.Join(t.TempDir(), "session.json")), false, nil},
		{"remote up", remoteStore{MemoryStore: NewMemoryStore()}, true, nil},
		{"remote down", remoteStore{MemoryStore: NewMemoryStore(), err: down}, true, down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, err := NewManager(tt.store).CheckStore(t.Context())
			if remote != tt.wantRemote || !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckStore() = %v, %v; want %v, %v", remote, err, tt.wantRemote, tt.wantErr)
			}
		})
	}
}
