package student

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/authoring"
)

// Service calls the /api/student-management/ endpoints.
type Service struct {
	r api.Resource[Student]
}

// NewService creates a student service on c.
func NewService(c *api.Client) *Service {
	return &Service{r: api.NewResource[Student](c, api.StudentsPath)}
}

// List returns students matching query (department, institution_name,
// is_active, profile_completed, can_update_profile).
func (s *Service) List(ctx context.Context, query url.Values) ([]Student, error) {
	items, err := s.r.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	return items, nil
}

// Create posts a new student.
func (s *Service) Create(ctx context.Context, d Draft) (Student, error) {
	return s.r.Create(ctx, NewPayload(d))
}

// SetActive sets the active flag of student id.
func (s *Service) SetActive(ctx context.Context, id int, active bool) error {
	body := map[string]bool{"is_active": active}
	if err := s.r.ActionWith(ctx, http.MethodPut, strconv.Itoa(id), "update_status", body, nil); err != nil {
		return fmt.Errorf("updating status of student %d: %w", id, err)
	}
	return nil
}

// Delete removes student id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.r.ActionWith(ctx, http.MethodDelete, strconv.Itoa(id), "delete_student", nil, nil); err != nil {
		return fmt.Errorf("deleting student %d: %w", id, err)
	}
	return nil
}

// GrantProfileUpdate opens a profile-update window for student id. A
// non-positive duration falls back to DefaultProfileWindow.
func (s *Service) GrantProfileUpdate(ctx context.Context, id int, req ProfileRequest) error {
	if req.DurationHours <= 0 {
		req.DurationHours = DefaultProfileWindow
	}
	if err := s.r.Action(ctx, strconv.Itoa(id), "handle_profile_request", req, nil); err != nil {
		return fmt.Errorf("granting profile update to student %d: %w", id, err)
	}
	return nil
}

// DisableProfileUpdate closes the profile-update window of student id.
func (s *Service) DisableProfileUpdate(ctx context.Context, id int, reason string) error {
	body := map[string]string{"reason": reason}
	if err := s.r.Action(ctx, strconv.Itoa(id), "disable_profile_update", body, nil); err != nil {
		return fmt.Errorf("disabling profile update of student %d: %w", id, err)
	}
	return nil
}

// NewSession opens an authoring session that creates a student.
func (s *Service) NewSession() *authoring.Session[Draft, Student] {
	return authoring.New("student", Validate, s.Create)
}
