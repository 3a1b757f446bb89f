package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Base paths of the REST resources.
const (
	InstitutionsPath = "/api/institutions/"
	CurriculumPath   = "/api/curriculum/"
	AssessmentsPath  = "/api/assessments/"
	AdminsPath       = "/api/admin-management/"
	StudentsPath     = "/api/student-management/"
	ProfilesPath     = "/api/profiles/"
)

// Resource is a typed view of one collection endpoint, e.g. /api/institutions/.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds T to the collection at path. path must end in "/".
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{client: c, path: path}
}

// Path returns the collection path.
func (r Resource[T]) Path() string { return r.path }

func (r Resource[T]) itemPath(id string) string {
	return r.path + url.PathEscape(id) + "/"
}

// ActionPath returns <resource>/<id>/<action>/.
func (r Resource[T]) ActionPath(id, action string) string {
	return r.itemPath(id) + action + "/"
}

// List calls GET <resource>/?<query>.
func (r Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodGet, r.path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Get calls GET <resource>/<id>/.
func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out)
	return out, err
}

// Create calls POST <resource>/ with payload.
func (r Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var out T
	err := r.client.Do(ctx, http.MethodPost, r.path, nil, payload, &out)
	return out, err
}

// Update calls PUT <resource>/<id>/ with the full payload.
func (r Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var out T
	err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, payload, &out)
	return out, err
}

// Patch calls PATCH <resource>/<id>/ with a partial payload.
func (r Resource[T]) Patch(ctx context.Context, id string, payload any) (T, error) {
	var out T
	err := r.client.Do(ctx, http.MethodPatch, r.itemPath(id), nil, payload, &out)
	return out, err
}

// Delete calls DELETE <resource>/<id>/.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// Action calls POST <resource>/<id>/<action>/ with a small JSON body.
// A nil body is sent as {}.
func (r Resource[T]) Action(ctx context.Context, id, action string, body, out any) error {
	return r.ActionWith(ctx, http.MethodPost, id, action, body, out)
}

// ActionWith is Action with an explicit method, for the few action endpoints
// that take PUT or DELETE.
func (r Resource[T]) ActionWith(ctx context.Context, method, id, action string, body, out any) error {
	if body == nil && method == http.MethodPost {
		body = struct{}{}
	}
	return r.client.Do(ctx, method, r.ActionPath(id, action), nil, body, out)
}

// CollectionAction calls POST <resource>/<action>/ (no id).
func (r Resource[T]) CollectionAction(ctx context.Context, action string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	return r.client.Do(ctx, http.MethodPost, r.path+action+"/", nil, body, out)
}
