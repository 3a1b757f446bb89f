package api

import (
	"context"
	"fmt"
	"net/http"
)

const loginPath = "/api/auth/super-admin/login/"

// Credentials are the login form inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens is the login response.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Login exchanges credentials for an access token. It never sends an
// Authorization header.
func (c *Client) Login(ctx context.Context, creds Credentials) (Tokens, error) {
	anon := *c
	anon.tokens = nil

	var out Tokens
	if err := anon.Do(ctx, http.MethodPost, loginPath, nil, creds, &out); err != nil {
		return Tokens{}, err
	}
	if out.Access == "" {
		return Tokens{}, fmt.Errorf("login response has no access token")
	}
	return out, nil
}

// Notifications covers the notification actions of the profiles endpoint.
type Notifications struct {
	r Resource[struct{}]
}

// Notifications returns the notification action endpoints.
func (c *Client) Notifications() Notifications {
	return Notifications{r: NewResource[struct{}](c, ProfilesPath)}
}

// MarkRead calls POST /api/profiles/<id>/mark_notification_read/.
func (n Notifications) MarkRead(ctx context.Context, id string) error {
	return n.r.Action(ctx, id, "mark_notification_read", nil, nil)
}

// MarkAllRead calls POST /api/profiles/mark_all_notifications_read/.
func (n Notifications) MarkAllRead(ctx context.Context) error {
	return n.r.CollectionAction(ctx, "mark_all_notifications_read", nil, nil)
}
