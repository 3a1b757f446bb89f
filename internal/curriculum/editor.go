package curriculum

import (
	"fmt"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// Cardinality floors of the curriculum form.
const (
	MinModules  = 1
	MinTopics   = 1
	MinProjects = 1
)

// Editor holds one curriculum draft while it is being edited. Modules and
// projects are kept in id-keyed collections, so removing or moving one
// record never changes which record another index edit lands on.
type Editor struct {
	role        string
	title       string
	description string
	fileURL     string
	institution string

	modules  *form.Tree[string, string]
	projects *form.List[string]
}

func blank() string { return "" }

// NewEditor starts editing d. A zero Draft gives one blank module with one
// blank topic and one blank project.
func NewEditor(d Draft) *Editor {
	nodes := make([]form.Node[string, string], len(d.Modules))
	for i, m := range d.Modules {
		nodes[i] = form.Node[string, string]{Value: m.Name, Children: m.Topics}
	}
	return &Editor{
		role:        d.Role,
		title:       d.Title,
		description: d.Description,
		fileURL:     d.FileURL,
		institution: d.Institution,
		modules: form.NewTree(form.TreeConfig[string, string]{
			Min:        MinModules,
			Blank:      blank,
			ChildMin:   MinTopics,
			BlankChild: blank,
		}, nodes...),
		projects: form.NewList(MinProjects, blank, d.RecommendedProjects...),
	}
}

// SetField sets one scalar field by its json name.
func (e *Editor) SetField(name, value string) error {
	switch name {
	case "role":
		e.role = value
	case "title":
		e.title = value
	case "description":
		e.description = value
	case "file_url":
		e.fileURL = value
	case "institution":
		e.institution = value
	default:
		return fmt.Errorf("unknown curriculum field %q", name)
	}
	return nil
}

// ModuleCount returns the number of modules.
func (e *Editor) ModuleCount() int { return e.modules.Len() }

// TopicCount returns the number of topics of module mi, or -1.
func (e *Editor) TopicCount(mi int) int { return e.modules.ChildLen(mi) }

// ProjectCount returns the number of recommended projects.
func (e *Editor) ProjectCount() int { return e.projects.Len() }

// AddModule appends a blank module with one blank topic.
func (e *Editor) AddModule() { e.modules.Add() }

// RemoveModule deletes module mi unless it is the last one.
func (e *Editor) RemoveModule(mi int) bool { return e.modules.Remove(mi) }

// MoveModule swaps module mi with its neighbour.
func (e *Editor) MoveModule(mi int, d form.Direction) bool { return e.modules.Move(mi, d) }

// SetModuleName renames module mi.
func (e *Editor) SetModuleName(mi int, name string) bool {
	return e.modules.Update(mi, func(string) string { return name })
}

// AddTopic appends a blank topic to module mi.
func (e *Editor) AddTopic(mi int) bool { return e.modules.AddChild(mi) }

// RemoveTopic deletes topic ti of module mi unless it is the module's only topic.
func (e *Editor) RemoveTopic(mi, ti int) bool { return e.modules.RemoveChild(mi, ti) }

// SetTopic replaces topic ti of module mi.
func (e *Editor) SetTopic(mi, ti int, topic string) bool {
	return e.modules.SetChild(mi, ti, topic)
}

// AddProject appends a blank recommended project.
func (e *Editor) AddProject() { e.projects.Add() }

// RemoveProject deletes project pi unless it is the only one.
func (e *Editor) RemoveProject(pi int) bool { return e.projects.Remove(pi) }

// SetProject replaces project pi.
func (e *Editor) SetProject(pi int, project string) bool { return e.projects.Set(pi, project) }

// Draft returns a snapshot of the form. Later edits do not change it.
func (e *Editor) Draft() Draft {
	nodes := e.modules.Nodes()
	modules := make([]Module, len(nodes))
	for i, n := range nodes {
		modules[i] = Module{Name: n.Value, Topics: n.Children}
	}
	return Draft{
		Role:                e.role,
		Title:               e.title,
		Description:         e.description,
		Modules:             modules,
		RecommendedProjects: e.projects.Items(),
		FileURL:             e.fileURL,
		Institution:         e.institution,
	}
}
