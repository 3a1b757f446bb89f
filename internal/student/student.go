// Package student manages student accounts: creation, activation, deletion
// and the profile-update window.
package student

import (
	"github.com/gigaversity/gigaadmin/internal/form"
	"github.com/gigaversity/gigaadmin/internal/institution"
)

// DefaultProfileWindow is the number of hours a granted profile request
// stays open.
const DefaultProfileWindow = 24

// Student is a stored student as returned by the API.
type Student struct {
	ID               int             `json:"id"`
	Email            string          `json:"email"`
	Username         string          `json:"username"`
	Institution      institution.Ref `json:"institution"`
	Department       string          `json:"department,omitempty"`
	IsActive         bool            `json:"is_active"`
	ProfileCompleted bool            `json:"profile_completed"`
	CanUpdateProfile bool            `json:"can_update_profile"`
}

// Draft is the new-student form.
type Draft struct {
	Email       string `json:"email" yaml:"email"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	Institution string `json:"institution" yaml:"institution"`
}

// Payload is the body of a create request.
type Payload struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Institution any    `json:"institution"`
}

// NewPayload builds the request body of a validated draft.
func NewPayload(d Draft) Payload {
	return Payload{
		Email:       d.Email,
		Username:    d.Username,
		Password:    d.Password,
		Institution: form.IntOrRaw(d.Institution),
	}
}

// ProfileRequest grants a student a window to update their profile.
type ProfileRequest struct {
	DurationHours int    `json:"duration_hours"`
	Reason        string `json:"reason"`
}
