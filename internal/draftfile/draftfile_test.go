package draftfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gigaversity/gigaadmin/internal/assessment"
	"github.com/gigaversity/gigaadmin/internal/curriculum"
	"github.com/gigaversity/gigaadmin/internal/draftfile"
)

const curriculumYAML = `
kind: curriculum
id: 12
draft:
  role: software_developer
  title: Backend track
  description: Server-side Go
  institution: 3
  modules:
    - name: Go basics
      topics: [syntax, testing]
  recommended_projects:
    - URL shortener
`

const assessmentYAML = `
kind: assessment
draft:
  role: software_developer
  title: Go quiz
  duration_minutes: 30
  institution: "3"
  questions:
    - question_text: What does defer do?
      type: mcq
      marks: 5
      options: [delays a call, spawns a goroutine]
      correct_answer: delays a call
`

func TestParse_Curriculum(t *testing.T) {
	f, err := draftfile.Parse([]byte(curriculumYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Kind != draftfile.KindCurriculum || f.ID != 12 {
		t.Errorf("Kind, ID = %q, %d", f.Kind, f.ID)
	}
	if f.Curriculum == nil || f.Assessment != nil {
		t.Fatalf("wrong draft set: %+v", f)
	}
	d := *f.Curriculum
	if d.Institution != "3" {
		t.Errorf("Institution = %q, want 3", d.Institution)
	}
	if len(d.Modules) != 1 || len(d.Modules[0].Topics) != 2 {
		t.Errorf("Modules = %+v", d.Modules)
	}
	if errs := curriculum.Validate(d); !errs.Valid() {
		t.Errorf("Validate() = %v, want valid", errs)
	}
}

func TestParse_AssessmentNumbersBecomeText(t *testing.T) {
	f, err := draftfile.Parse([]byte(assessmentYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.ID != 0 {
		t.Errorf("ID = %d, want 0 for a new record", f.ID)
	}
	d := *f.Assessment
	if d.DurationMinutes != "30" || d.Questions[0].Marks != "5" {
		t.Errorf("numbers = %q, %q", d.DurationMinutes, d.Questions[0].Marks)
	}
	if errs := assessment.Validate(d); !errs.Valid() {
		t.Errorf("Validate() = %v, want valid", errs)
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"misspelled key", "kind: curriculum\ndraft:\n  titel: x\n", "titel"},
		{"topics not a list", "kind: curriculum\ndraft:\n  modules:\n    - name: a\n      topics: intro\n", "modules.0.topics"},
		{"marks as a list", "kind: assessment\ndraft:\n  questions:\n    - marks: [1]\n", "questions.0.marks"},
		{"missing draft", "kind: student\n", "draft"},
		{"draft not an object", "kind: admin\ndraft: nope\n", "draft"},
		{"unknown top-level key", "kind: institution\ndraft: {}\nextra: 1\n", "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := draftfile.Parse([]byte(tt.doc))
			var shape *draftfile.ShapeError
			if !errors.As(err, &shape) {
				t.Fatalf("Parse() error = %v, want *ShapeError", err)
			}
			if _, ok := shape.Fields[tt.wantPath]; !ok {
				t.Errorf("Fields = %v, want an entry for %q", shape.Fields, tt.wantPath)
			}
		})
	}
}

func TestParse_UnknownKind(t *testing.T) {
	for _, doc := range []string{"kind: quiz\ndraft: {}\n", "draft: {}\n", ""} {
		if _, err := draftfile.Parse([]byte(doc)); !errors.Is(err, draftfile.ErrUnknownKind) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownKind", doc, err)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := draftfile.Parse([]byte("kind: [unclosed")); err == nil {
		t.Error("Parse() should fail on invalid YAML")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "assessments")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "backend.yaml"), curriculumYAML)
	write(filepath.Join(sub, "quiz.yml"), assessmentYAML)
	write(filepath.Join(dir, "broken.yaml"), "kind: curriculum\ndraft:\n  titel: x\n")
	write(filepath.Join(dir, "notes.md"), "# not a draft")

	files, err := draftfile.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Kind != draftfile.KindAssessment || files[1].Kind != draftfile.KindCurriculum {
		t.Errorf("kinds = %q, %q", files[0].Kind, files[1].Kind)
	}
	if files[1].Path != filepath.Join(dir, "backend.yaml") {
		t.Errorf("Path = %q", files[1].Path)
	}
}

func TestLoad_ShapeErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("kind: student\ndraft:\n  email: [a]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := draftfile.Load(path)
	var shape *draftfile.ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("Load() error = %v, want *ShapeError", err)
	}
	if shape.Path != path {
		t.Errorf("Path = %q, want %q", shape.Path, path)
	}
}

func TestParse_EmptyValuesReachValidate(t *testing.T) {
	doc := `
kind: curriculum
draft:
  role:
  title:
  description:
  institution: 3
  modules:
    - name: Go basics
      topics: [syntax]
`
	f, err := draftfile.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v, want keys without values accepted", err)
	}

	errs := curriculum.Validate(*f.Curriculum)
	want := map[string]string{
		"role":        "Role is required",
		"title":       "Title is required",
		"description": "Description is required",
	}
	for path, msg := range want {
		if errs[path] != msg {
			t.Errorf("errors[%s] = %q, want %q", path, errs[path], msg)
		}
	}
}
