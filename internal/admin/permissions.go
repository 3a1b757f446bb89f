package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Permission catalog per admin type.
var (
	collegeDefault     = []string{"view_college_analytics", "manage_college_settings"}
	collegeOptional    = []string{"manage_career_paths", "manage_assessments"}
	departmentDefault  = []string{"view_department_analytics", "manage_department_students"}
	departmentOptional = []string{"edit_career_paths", "edit_assessments"}
)

// ErrFixedPermission is returned when toggling a default permission.
var ErrFixedPermission = errors.New("default permissions cannot be changed")

// DefaultPermissions returns the always-on permissions of an admin type.
func DefaultPermissions(adminType string) []string {
	switch adminType {
	case TypeCollege:
		return slices.Clone(collegeDefault)
	case TypeDepartment:
		return slices.Clone(departmentDefault)
	}
	return nil
}

// OptionalPermissions returns the toggleable permissions of an admin type.
func OptionalPermissions(adminType string) []string {
	switch adminType {
	case TypeCollege:
		return slices.Clone(collegeOptional)
	case TypeDepartment:
		return slices.Clone(departmentOptional)
	}
	return nil
}

// PermissionEntry is one row of the permissions endpoint.
type PermissionEntry struct {
	Permission string `json:"permission"`
	IsAssigned bool   `json:"is_assigned"`
}

// PermissionNames is a permission list that decodes from either plain
// strings or PermissionEntry objects. Unassigned entries are dropped.
type PermissionNames []string

func (p *PermissionNames) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding permissions: %w", err)
	}
	names := make(PermissionNames, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			names = append(names, name)
			continue
		}
		entry := PermissionEntry{IsAssigned: true}
		if err := json.Unmarshal(item, &entry); err != nil {
			return fmt.Errorf("decoding permission: %w", err)
		}
		if entry.IsAssigned && entry.Permission != "" {
			names = append(names, entry.Permission)
		}
	}
	*p = names
	return nil
}

// permissionAPI is the part of Service the editor needs.
type permissionAPI interface {
	Permissions(ctx context.Context, id int) ([]string, error)
	ManagePermissions(ctx context.Context, id int, perms []string) ([]string, bool, error)
}

// PermissionEditor toggles the optional permissions of one admin. A toggle
// shows up locally at once, is rolled back if the server refuses it, and
// is replaced by the server's own list once it answers.
type PermissionEditor struct {
	api       permissionAPI
	adminID   int
	adminType string

	mu       sync.Mutex
	assigned map[string]bool
}

// NewPermissionEditor loads the current permissions of admin a.
func NewPermissionEditor(ctx context.Context, api permissionAPI, a Admin) (*PermissionEditor, error) {
	e := &PermissionEditor{
		api:       api,
		adminID:   a.ID,
		adminType: a.Type(),
		assigned:  map[string]bool{},
	}
	if err := e.Refresh(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Refresh replaces the local view with the server's.
func (e *PermissionEditor) Refresh(ctx context.Context) error {
	perms, err := e.api.Permissions(ctx, e.adminID)
	if err != nil {
		return fmt.Errorf("fetching permissions of admin %d: %w", e.adminID, err)
	}
	e.mu.Lock()
	e.reconcile(perms)
	e.mu.Unlock()
	return nil
}

// Assigned returns the defaults followed by the enabled optional
// permissions, in catalog order.
func (e *PermissionEditor) Assigned() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.list()
}

// Enabled reports whether perm is currently on.
func (e *PermissionEditor) Enabled(perm string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assigned[perm]
}

// Toggle flips one optional permission and saves the whole set.
func (e *PermissionEditor) Toggle(ctx context.Context, perm string) error {
	if slices.Contains(DefaultPermissions(e.adminType), perm) {
		return ErrFixedPermission
	}
	if !slices.Contains(OptionalPermissions(e.adminType), perm) {
		return fmt.Errorf("permission %q does not apply to %s admins", perm, e.adminType)
	}

	e.mu.Lock()
	previous := maps.Clone(e.assigned)
	e.assigned[perm] = !e.assigned[perm]
	wanted := e.list()
	e.mu.Unlock()

	confirmed, ok, err := e.api.ManagePermissions(ctx, e.adminID, wanted)
	if err != nil {
		e.mu.Lock()
		e.assigned = previous
		e.mu.Unlock()
		slog.Warn("permission change rolled back", "admin_id", e.adminID, "permission", perm, "error", err)
		return fmt.Errorf("updating permissions of admin %d: %w", e.adminID, err)
	}

	if !ok {
		return e.Refresh(ctx)
	}
	e.mu.Lock()
	e.reconcile(confirmed)
	e.mu.Unlock()
	return nil
}

// reconcile trusts the server list, with the defaults always on.
func (e *PermissionEditor) reconcile(perms []string) {
	e.assigned = map[string]bool{}
	for _, p := range DefaultPermissions(e.adminType) {
		e.assigned[p] = true
	}
	for _, p := range perms {
		if slices.Contains(OptionalPermissions(e.adminType), p) {
			e.assigned[p] = true
		}
	}
}

func (e *PermissionEditor) list() []string {
	out := DefaultPermissions(e.adminType)
	for _, p := range OptionalPermissions(e.adminType) {
		if e.assigned[p] {
			out = append(out, p)
		}
	}
	return out
}
