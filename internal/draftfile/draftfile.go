// Package draftfile reads authoring drafts from YAML files so that forms can
// be prepared offline and submitted from the command line.
//
// A draft file names its kind, optionally the id of the record it edits, and
// the form values:
//
//	kind: curriculum
//	id: 12
//	draft:
//	  role: software_developer
//	  title: Backend track
//	  modules:
//	    - name: Go basics
//	      topics: [syntax, testing]
//
// The document shape is checked against an embedded JSON schema before it is
// decoded. The schema only checks keys and types. Business rules stay with
// each package's Validate.
package draftfile

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/gigaversity/gigaadmin/internal/admin"
	"github.com/gigaversity/gigaadmin/internal/assessment"
	"github.com/gigaversity/gigaadmin/internal/curriculum"
	"github.com/gigaversity/gigaadmin/internal/form"
	"github.com/gigaversity/gigaadmin/internal/institution"
	"github.com/gigaversity/gigaadmin/internal/student"
)

// Kind names the form a draft file fills.
type Kind string

const (
	KindCurriculum  Kind = "curriculum"
	KindAssessment  Kind = "assessment"
	KindInstitution Kind = "institution"
	KindAdmin       Kind = "admin"
	KindStudent     Kind = "student"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindCurriculum, KindAssessment, KindInstitution, KindAdmin, KindStudent}

// ErrUnknownKind is returned for a missing or unsupported kind.
var ErrUnknownKind = errors.New("unknown draft kind")

//go:embed schemas/*.json
var schemaFS embed.FS

// ShapeError lists the keys of a draft file that have the wrong type or are
// not part of the form. Paths are relative to the draft, as in ErrorMap.
type ShapeError struct {
	Path   string
	Fields form.ErrorMap
}

func (e *ShapeError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, p := range e.Fields.Paths() {
		parts = append(parts, p+": "+e.Fields[p])
	}
	name := e.Path
	if name == "" {
		name = "draft file"
	}
	return fmt.Sprintf("%s: %s", name, strings.Join(parts, "; "))
}

// File is one decoded draft file. Exactly one of the draft pointers is set,
// matching Kind.
type File struct {
	Path string
	Kind Kind
	ID   int

	Curriculum  *curriculum.Draft
	Assessment  *assessment.Draft
	Institution *institution.Draft
	Admin       *admin.Draft
	Student     *student.Draft
}

var schemas = sync.OnceValues(func() (map[Kind]*gojsonschema.Schema, error) {
	out := make(map[Kind]*gojsonschema.Schema, len(Kinds))
	for _, k := range Kinds {
		data, err := schemaFS.ReadFile("schemas/" + string(k) + ".json")
		if err != nil {
			return nil, fmt.Errorf("reading %s schema: %w", k, err)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
})

// Parse decodes a draft file from data.
func Parse(data []byte) (File, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return File{}, fmt.Errorf("parsing draft file: %w", err)
	}
	if doc == nil {
		return File{}, fmt.Errorf("%w: empty document", ErrUnknownKind)
	}

	kind, _ := doc["kind"].(string)
	all, err := schemas()
	if err != nil {
		return File{}, err
	}
	schema, ok := all[Kind(kind)]
	if !ok {
		return File{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}

	if err := checkShape(schema, doc); err != nil {
		return File{}, err
	}

	f := File{Kind: Kind(kind)}
	switch f.Kind {
	case KindCurriculum:
		f.ID, f.Curriculum, err = decode[curriculum.Draft](data)
	case KindAssessment:
		f.ID, f.Assessment, err = decode[assessment.Draft](data)
	case KindInstitution:
		f.ID, f.Institution, err = decode[institution.Draft](data)
	case KindAdmin:
		f.ID, f.Admin, err = decode[admin.Draft](data)
	case KindStudent:
		f.ID, f.Student, err = decode[student.Draft](data)
	}
	if err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and decodes the draft file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading draft file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		var shape *ShapeError
		if errors.As(err, &shape) {
			shape.Path = path
			return File{}, shape
		}
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// LoadDir loads every .yaml and .yml file under dir, sorted by path. Files
// that fail to parse are logged and skipped.
func LoadDir(dir string) ([]File, error) {
	var files []File
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		f, err := Load(path)
		if err != nil {
			slog.Warn("skipping invalid draft file", "path", path, "error", err)
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading drafts from %s: %w", dir, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	slog.Debug("draft files loaded", "dir", dir, "count", len(files))
	return files, nil
}

func checkShape(schema *gojsonschema.Schema, doc map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("checking draft file: %w", err)
	}
	if result.Valid() {
		return nil
	}
	fields := form.ErrorMap{}
	for _, re := range result.Errors() {
		fields.Add(shapePath(re), re.Description())
	}
	return &ShapeError{Fields: fields}
}

// shapePath turns a schema error location into a draft-relative path.
// Missing and unexpected keys are reported on the key itself.
func shapePath(re gojsonschema.ResultError) string {
	field := re.Field()
	if prop, ok := re.Details()["property"].(string); ok && prop != "" {
		if field == "(root)" {
			field = prop
		} else {
			field += "." + prop
		}
	}
	return strings.TrimPrefix(field, "draft.")
}

func decode[D any](data []byte) (int, *D, error) {
	var env struct {
		ID    int `yaml:"id"`
		Draft D   `yaml:"draft"`
	}
	if err := yaml.Unmarshal(data, &env); err != nil {
		return 0, nil, fmt.Errorf("decoding draft: %w", err)
	}
	return env.ID, &env.Draft, nil
}
