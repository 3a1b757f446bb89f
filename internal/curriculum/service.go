package curriculum

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/authoring"
)

// Service calls the /api/curriculum/ endpoints.
type Service struct {
	r api.Resource[Curriculum]
}

// NewService creates a curriculum service on c.
func NewService(c *api.Client) *Service {
	return &Service{r: api.NewResource[Curriculum](c, api.CurriculumPath)}
}

// List returns curricula matching query (role, institution).
func (s *Service) List(ctx context.Context, query url.Values) ([]Curriculum, error) {
	items, err := s.r.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing curricula: %w", err)
	}
	return items, nil
}

// Get fetches one curriculum.
func (s *Service) Get(ctx context.Context, id int) (Curriculum, error) {
	return s.r.Get(ctx, strconv.Itoa(id))
}

// Create posts a new curriculum built from d.
func (s *Service) Create(ctx context.Context, d Draft) (Curriculum, error) {
	return s.r.Create(ctx, NewPayload(d))
}

// Update replaces curriculum id with d.
func (s *Service) Update(ctx context.Context, id int, d Draft) (Curriculum, error) {
	return s.r.Update(ctx, strconv.Itoa(id), NewPayload(d))
}

// Delete removes curriculum id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.r.Delete(ctx, strconv.Itoa(id))
}

// NewSession opens an authoring session that creates a curriculum, or
// updates curriculum id when id is non-zero.
func (s *Service) NewSession(id int) *authoring.Session[Draft, Curriculum] {
	submit := s.Create
	name := "curriculum"
	if id != 0 {
		submit = func(ctx context.Context, d Draft) (Curriculum, error) {
			return s.Update(ctx, id, d)
		}
		name = "curriculum " + strconv.Itoa(id)
	}
	return authoring.New(name, Validate, submit)
}
