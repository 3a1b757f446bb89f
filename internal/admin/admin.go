// Package admin manages college and department admins: the create and
// edit form, activation, and the permission sets attached to each admin.
package admin

import (
	"strings"

	"github.com/gigaversity/gigaadmin/internal/form"
	"github.com/gigaversity/gigaadmin/internal/institution"
)

// Admin types as chosen in the form.
const (
	TypeCollege    = "college"
	TypeDepartment = "department"
)

// Roles as reported by the API.
const (
	RoleCollege    = "college_admin"
	RoleDepartment = "department_admin"
)

// InstitutionRef is the institution of an admin.
type InstitutionRef = institution.Ref

// Admin is a stored admin as returned by the API.
type Admin struct {
	ID          int             `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	Role        string          `json:"role"`
	AdminType   string          `json:"admin_type,omitempty"`
	Department  string          `json:"department,omitempty"`
	Institution InstitutionRef  `json:"institution"`
	IsActive    bool            `json:"is_active"`
	Permissions PermissionNames `json:"permissions,omitempty"`
}

// Type returns college or department, from admin_type or else from role.
func (a Admin) Type() string {
	if a.AdminType != "" {
		return a.AdminType
	}
	return strings.TrimSuffix(a.Role, "_admin")
}

// Draft is the admin form. Password is write-only and never read back.
type Draft struct {
	Email       string `json:"email" yaml:"email"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	AdminType   string `json:"admin_type" yaml:"admin_type"`
	Institution string `json:"institution" yaml:"institution"`
	Department  string `json:"department" yaml:"department"`
}

// Payload is the body of a create or update request.
type Payload struct {
	AdminType          string   `json:"admin_type"`
	Email              string   `json:"email"`
	Username           string   `json:"username"`
	Institution        any      `json:"institution"`
	Department         string   `json:"department,omitempty"`
	Password           string   `json:"password,omitempty"`
	DefaultPermissions []string `json:"default_permissions,omitempty"`
}

// NewPayload builds the request body. A new admin gets the default
// permissions of its type. An edit only sends a password when one was typed.
func NewPayload(d Draft, editing bool) Payload {
	p := Payload{
		AdminType:   d.AdminType,
		Email:       d.Email,
		Username:    d.Username,
		Institution: form.IntOrRaw(d.Institution),
	}
	if d.AdminType == TypeDepartment {
		p.Department = d.Department
	}
	if !editing || d.Password != "" {
		p.Password = d.Password
	}
	if !editing {
		p.DefaultPermissions = DefaultPermissions(d.AdminType)
	}
	return p
}
