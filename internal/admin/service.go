package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/authoring"
	"github.com/gigaversity/gigaadmin/internal/form"
)

// ErrLastDepartmentAdmin is returned when deactivating would leave a
// department of an institution without an active admin.
var ErrLastDepartmentAdmin = errors.New("cannot deactivate the only active admin of a department")

// Service calls the /api/admin-management/ endpoints.
type Service struct {
	r api.Resource[Admin]
}

// NewService creates an admin service on c.
func NewService(c *api.Client) *Service {
	return &Service{r: api.NewResource[Admin](c, api.AdminsPath)}
}

// List returns admins matching query (role, department, is_active,
// institution_name).
func (s *Service) List(ctx context.Context, query url.Values) ([]Admin, error) {
	items, err := s.r.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	return items, nil
}

// Get fetches one admin.
func (s *Service) Get(ctx context.Context, id int) (Admin, error) {
	return s.r.Get(ctx, strconv.Itoa(id))
}

// Create posts a new admin with the default permissions of its type.
func (s *Service) Create(ctx context.Context, d Draft) (Admin, error) {
	return s.r.Create(ctx, NewPayload(d, false))
}

// Update replaces admin id. The password is only sent when set.
func (s *Service) Update(ctx context.Context, id int, d Draft) (Admin, error) {
	return s.r.Update(ctx, strconv.Itoa(id), NewPayload(d, true))
}

// Rename changes only the username of admin id.
func (s *Service) Rename(ctx context.Context, id int, username string) (Admin, error) {
	return s.r.Patch(ctx, strconv.Itoa(id), map[string]string{"username": username})
}

// Delete removes admin id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.r.Delete(ctx, strconv.Itoa(id))
}

// Activate enables admin id.
func (s *Service) Activate(ctx context.Context, id int) error {
	return s.r.Action(ctx, strconv.Itoa(id), "activate", nil, nil)
}

// Deactivate disables a. An active department admin is only deactivated
// when another active admin of the same department and institution exists.
func (s *Service) Deactivate(ctx context.Context, a Admin) error {
	if a.IsActive && a.Type() == TypeDepartment {
		peers, err := s.List(ctx, url.Values{
			"role":       {RoleDepartment},
			"department": {a.Department},
			"is_active":  {"true"},
		})
		if err != nil {
			return err
		}
		if err := CanDeactivate(a, peers); err != nil {
			return err
		}
	}
	return s.r.Action(ctx, strconv.Itoa(a.ID), "deactivate", nil, nil)
}

// SetActive activates or deactivates a.
func (s *Service) SetActive(ctx context.Context, a Admin, active bool) error {
	if active {
		return s.Activate(ctx, a.ID)
	}
	return s.Deactivate(ctx, a)
}

// CanDeactivate checks a against the admins currently known.
func CanDeactivate(a Admin, admins []Admin) error {
	if !a.IsActive || a.Type() != TypeDepartment {
		return nil
	}
	for _, other := range admins {
		if other.ID != a.ID &&
			other.IsActive &&
			other.Type() == TypeDepartment &&
			other.Department == a.Department &&
			other.Institution.ID == a.Institution.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLastDepartmentAdmin, a.Department)
}

// Permissions returns the permissions assigned to admin id.
func (s *Service) Permissions(ctx context.Context, id int) ([]string, error) {
	var out struct {
		Permissions PermissionNames `json:"permissions"`
	}
	if err := s.r.ActionWith(ctx, http.MethodGet, strconv.Itoa(id), "permissions", nil, &out); err != nil {
		return nil, err
	}
	return out.Permissions, nil
}

// ManagePermissions replaces the permission set of admin id. ok reports
// whether the response carried the resulting list.
func (s *Service) ManagePermissions(ctx context.Context, id int, perms []string) (confirmed []string, ok bool, err error) {
	var out struct {
		Message     string          `json:"message"`
		Permissions PermissionNames `json:"permissions"`
	}
	body := map[string][]string{"permissions": perms}
	if err := s.r.Action(ctx, strconv.Itoa(id), "manage_permissions", body, &out); err != nil {
		return nil, false, err
	}
	return out.Permissions, out.Permissions != nil, nil
}

// NewSession opens an authoring session that creates an admin, or edits
// admin id when id is non-zero.
func (s *Service) NewSession(id int) *authoring.Session[Draft, Admin] {
	if id == 0 {
		return authoring.New("admin", func(d Draft) form.ErrorMap { return Validate(d, false) }, s.Create)
	}
	return authoring.New("admin "+strconv.Itoa(id),
		func(d Draft) form.ErrorMap { return Validate(d, true) },
		func(ctx context.Context, d Draft) (Admin, error) { return s.Update(ctx, id, d) },
	)
}
