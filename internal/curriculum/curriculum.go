// Package curriculum authors career-path curricula: a draft of modules,
// each owning its topics, plus a list of recommended projects.
package curriculum

import (
	"strconv"
	"strings"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// Roles offered by the authoring screens.
var Roles = []string{"student", "software_developer", "data_scientist", "network_engineer", "computer_science"}

// Module is one ordered unit of a curriculum.
type Module struct {
	Name   string   `json:"name" yaml:"name" validate:"notblank"`
	Topics []string `json:"topics" yaml:"topics" validate:"min=1,dive,notblank"`
}

// Draft is the editable form of a curriculum. Institution holds the raw
// form input and is converted when the payload is built.
type Draft struct {
	Role                string   `json:"role" yaml:"role" validate:"required"`
	Title               string   `json:"title" yaml:"title" validate:"required"`
	Description         string   `json:"description" yaml:"description" validate:"required"`
	Modules             []Module `json:"modules" yaml:"modules" validate:"min=1,dive"`
	RecommendedProjects []string `json:"recommended_projects" yaml:"recommended_projects"`
	FileURL             string   `json:"file_url" yaml:"file_url"`
	Institution         string   `json:"institution" yaml:"institution" validate:"required"`
}

// Content is the nested part of the curriculum wire format.
type Content struct {
	Modules             []Module `json:"modules"`
	RecommendedProjects []string `json:"recommended_projects"`
}

// Curriculum is a stored curriculum as returned by the API.
type Curriculum struct {
	ID              int     `json:"id"`
	Role            string  `json:"role"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Content         Content `json:"content"`
	FileURL         string  `json:"file_url"`
	Institution     int     `json:"institution"`
	InstitutionName string  `json:"institution_name,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// Payload is the body of a create or update request.
type Payload struct {
	Role        string  `json:"role"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     Content `json:"content"`
	FileURL     string  `json:"file_url"`
	Institution any     `json:"institution"`
}

// NewPayload normalizes a valid draft for submission. Blank topics and
// blank projects are dropped.
func NewPayload(d Draft) Payload {
	modules := make([]Module, len(d.Modules))
	for i, m := range d.Modules {
		modules[i] = Module{Name: m.Name, Topics: nonBlank(m.Topics)}
	}
	return Payload{
		Role:        d.Role,
		Title:       d.Title,
		Description: d.Description,
		Content: Content{
			Modules:             modules,
			RecommendedProjects: nonBlank(d.RecommendedProjects),
		},
		FileURL:     d.FileURL,
		Institution: form.IntOrRaw(d.Institution),
	}
}

// DraftOf turns a stored curriculum back into an editable draft.
func DraftOf(c Curriculum) Draft {
	modules := make([]Module, len(c.Content.Modules))
	for i, m := range c.Content.Modules {
		modules[i] = Module{Name: m.Name, Topics: append([]string(nil), m.Topics...)}
	}
	d := Draft{
		Role:                c.Role,
		Title:               c.Title,
		Description:         c.Description,
		Modules:             modules,
		RecommendedProjects: append([]string(nil), c.Content.RecommendedProjects...),
		FileURL:             c.FileURL,
	}
	if c.Institution != 0 {
		d.Institution = strconv.Itoa(c.Institution)
	}
	return d
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
