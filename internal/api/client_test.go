package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestResource_List(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`, 2},
		{"paginated", `{"count":1,"results":[{"id":1,"name":"a"}]}`, 1},
		{"empty page", `{"results":null}`, 0},
		{"empty body", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/institutions/" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.URL.Query().Get("city") != "Pune" {
					t.Errorf("city = %q, want Pune", r.URL.Query().Get("city"))
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			r := NewResource[item](New(server.URL), InstitutionsPath)
			items, err := r.List(context.Background(), url.Values{"city": {"Pune"}})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("len(items) = %d, want %d", len(items), tt.want)
			}
		})
	}
}

func TestClient_BearerAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if r.Method != http.MethodPost || r.URL.Path != "/api/curriculum/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "CP1" {
			t.Errorf("title = %v, want CP1", body["title"])
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item{ID: 7, Name: "CP1"})
	}))
	defer server.Close()

	c := New(server.URL+"/", WithTokenSource(StaticToken("test-token")))
	got, err := NewResource[item](c, CurriculumPath).Create(context.Background(), map[string]string{"title": "CP1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
}

func TestClient_ItemAndActionPaths(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx := context.Background()
	r := NewResource[item](New(server.URL), AdminsPath)

	if _, err := r.Update(ctx, "3", item{}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := r.Patch(ctx, "3", map[string]string{"username": "x"}); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if err := r.Delete(ctx, "3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := r.Action(ctx, "3", "deactivate", nil, nil); err != nil {
		t.Fatalf("Action() error = %v", err)
	}

	want := []string{
		"PUT /api/admin-management/3/",
		"PATCH /api/admin-management/3/",
		"DELETE /api/admin-management/3/",
		"POST /api/admin-management/3/deactivate/",
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestClient_FieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title":["Title already exists.","second"],"role":"Invalid role","detail":"Bad request"}`))
	}))
	defer server.Close()

	_, err := NewResource[item](New(server.URL), CurriculumPath).Create(context.Background(), struct{}{})
	if err == nil {
		t.Fatal("Create() should return error on 400")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Bad request" {
		t.Errorf("Message = %q, want Bad request", apiErr.Message)
	}
	if apiErr.Fields["title"] != "Title already exists." {
		t.Errorf("Fields[title] = %q, want first message", apiErr.Fields["title"])
	}
	if apiErr.Fields["role"] != "Invalid role" {
		t.Errorf("Fields[role] = %q", apiErr.Fields["role"])
	}
	if _, ok := apiErr.Fields["detail"]; ok {
		t.Error("detail should not be a field error")
	}
}

func TestClient_NestedFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"questions": [{}, {"marks": ["Ensure this value is less than or equal to 100."], "options": [[], ["Option too long."]]}],
			"content": {"modules": [{"topics": ["This field may not be blank."]}]},
			"modules": [{"non_field_errors": ["Duplicate module."]}]
		}`))
	}))
	defer server.Close()

	_, err := NewResource[item](New(server.URL), AssessmentsPath).Create(context.Background(), struct{}{})
	fields := FieldErrors(err)

	want := map[string]string{
		"questions.1.marks":        "Ensure this value is less than or equal to 100.",
		"questions.1.options.1":    "Option too long.",
		"content.modules.0.topics": "This field may not be blank.",
		"modules.0":                "Duplicate module.",
	}
	if len(fields) != len(want) {
		t.Errorf("FieldErrors() = %v, want %d entries", fields, len(want))
	}
	for path, msg := range want {
		if fields[path] != msg {
			t.Errorf("fields[%s] = %q, want %q", path, fields[path], msg)
		}
	}
}

func TestFieldErrors_OnlyClientErrors(t *testing.T) {
	tokenExpired := `{"detail":"Given token not valid for any token type","code":"token_not_valid",` +
		`"messages":[{"token_class":"AccessToken","token_type":"access","message":"Token is invalid or expired"}]}`

	tests := []struct {
		name       string
		status     int
		body       string
		wantFields bool
	}{
		{"validation", http.StatusBadRequest, `{"code":["Code already exists."]}`, true},
		{"expired token", http.StatusUnauthorized, tokenExpired, false},
		{"forbidden", http.StatusForbidden, `{"detail":"No permission.","code":"permission_denied"}`, false},
		{"server error", http.StatusInternalServerError, `{"code":"internal"}`, false},
		{"bad gateway", http.StatusBadGateway, `{"error":"upstream"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewResource[item](New(server.URL), InstitutionsPath).Create(context.Background(), struct{}{})
			if _, ok := AsError(err); !ok {
				t.Fatalf("error = %v, want *Error", err)
			}
			if got := FieldErrors(err) != nil; got != tt.wantFields {
				t.Errorf("FieldErrors() = %v, want fields %v", FieldErrors(err), tt.wantFields)
			}
		})
	}

	if FieldErrors(errors.New("connection reset")) != nil {
		t.Error("FieldErrors() of a transport error should be nil")
	}
}

func TestClient_ErrorWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`<html>nope</html>`))
	}))
	defer server.Close()

	err := NewResource[item](New(server.URL), StudentsPath).Delete(context.Background(), "1")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if !apiErr.Unauthorized() {
		t.Error("Unauthorized() = false, want true")
	}
	if len(FieldErrors(err)) != 0 {
		t.Errorf("FieldErrors() = %v, want none", FieldErrors(err))
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := NewResource[item](New(server.URL), StudentsPath).Delete(context.Background(), "1")
	if err == nil {
		t.Fatal("Delete() should fail against a closed server")
	}
	if _, ok := AsError(err); ok {
		t.Error("transport failure should not be an *Error")
	}
}

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) {
	return "", errors.New("not logged in")
}

func TestClient_TokenSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(failingTokens{}))
	if _, err := NewResource[item](c, StudentsPath).List(context.Background(), nil); err == nil {
		t.Fatal("List() should fail when the token source fails")
	}
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/super-admin/login/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login sent auth header %q", r.Header.Get("Authorization"))
		}
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "admin@giga.edu" {
			t.Errorf("email = %q", creds.Email)
		}
		w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(StaticToken("stale")))
	tokens, err := c.Login(context.Background(), Credentials{Email: "admin@giga.edu", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tokens.Access != "acc" || tokens.Refresh != "ref" {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestNotifications(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL).Notifications()
	if err := n.MarkRead(context.Background(), "12"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if err := n.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if paths[0] != "/api/profiles/12/mark_notification_read/" || paths[1] != "/api/profiles/mark_all_notifications_read/" {
		t.Errorf("paths = %v", paths)
	}
}
