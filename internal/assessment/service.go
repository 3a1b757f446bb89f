package assessment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/authoring"
)

// Service calls the /api/assessments/ endpoints.
type Service struct {
	r api.Resource[Assessment]
}

// NewService creates an assessment service on c.
func NewService(c *api.Client) *Service {
	return &Service{r: api.NewResource[Assessment](c, api.AssessmentsPath)}
}

// List returns assessments matching query (role, institution).
func (s *Service) List(ctx context.Context, query url.Values) ([]Assessment, error) {
	items, err := s.r.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	return items, nil
}

// Get fetches one assessment.
func (s *Service) Get(ctx context.Context, id int) (Assessment, error) {
	return s.r.Get(ctx, strconv.Itoa(id))
}

// Create posts a new assessment built from d.
func (s *Service) Create(ctx context.Context, d Draft) (Assessment, error) {
	return s.r.Create(ctx, NewPayload(d))
}

// Update replaces assessment id with d.
func (s *Service) Update(ctx context.Context, id int, d Draft) (Assessment, error) {
	return s.r.Update(ctx, strconv.Itoa(id), NewPayload(d))
}

// Delete removes assessment id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.r.Delete(ctx, strconv.Itoa(id))
}

// NewSession opens an authoring session that creates an assessment, or
// updates assessment id when id is non-zero.
func (s *Service) NewSession(id int) *authoring.Session[Draft, Assessment] {
	submit := s.Create
	name := "assessment"
	if id != 0 {
		submit = func(ctx context.Context, d Draft) (Assessment, error) {
			return s.Update(ctx, id, d)
		}
		name = "assessment " + strconv.Itoa(id)
	}
	return authoring.New(name, Validate, submit)
}
