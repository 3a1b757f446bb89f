package institution

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/authoring"
	"github.com/gigaversity/gigaadmin/internal/form"
)

// Service calls the /api/institutions/ endpoints.
type Service struct {
	r   api.Resource[Institution]
	now func() time.Time
}

// NewService creates an institution service on c.
func NewService(c *api.Client) *Service {
	return &Service{r: api.NewResource[Institution](c, api.InstitutionsPath), now: time.Now}
}

// List returns institutions matching query (city, state, is_active).
func (s *Service) List(ctx context.Context, query url.Values) ([]Institution, error) {
	items, err := s.r.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing institutions: %w", err)
	}
	return items, nil
}

// Get fetches one institution.
func (s *Service) Get(ctx context.Context, id int) (Institution, error) {
	return s.r.Get(ctx, strconv.Itoa(id))
}

// Create posts a new institution.
func (s *Service) Create(ctx context.Context, d Draft) (Institution, error) {
	return s.r.Create(ctx, NewPayload(d))
}

// Update replaces institution id.
func (s *Service) Update(ctx context.Context, id int, d Draft) (Institution, error) {
	return s.r.Update(ctx, strconv.Itoa(id), NewPayload(d))
}

// Delete removes institution id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.r.Delete(ctx, strconv.Itoa(id))
}

// SetActive activates or deactivates institution id.
func (s *Service) SetActive(ctx context.Context, id int, active bool) error {
	action := "deactivate"
	if active {
		action = "activate"
	}
	return s.r.Action(ctx, strconv.Itoa(id), action, nil, nil)
}

// NewSession opens an authoring session that creates an institution.
func (s *Service) NewSession() *authoring.Session[Draft, Institution] {
	return authoring.New("institution", s.validate, s.Create)
}

// EditSession opens an authoring session on inst. Inactive institutions
// cannot be edited.
func (s *Service) EditSession(inst Institution) (*authoring.Session[Draft, Institution], error) {
	if !inst.IsActive {
		return nil, ErrInactive
	}
	return authoring.New("institution "+strconv.Itoa(inst.ID), s.validate,
		func(ctx context.Context, d Draft) (Institution, error) { return s.Update(ctx, inst.ID, d) },
	), nil
}

func (s *Service) validate(d Draft) form.ErrorMap {
	return Validate(d, s.now())
}
