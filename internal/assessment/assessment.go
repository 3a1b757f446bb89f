// Package assessment authors assessments: an ordered list of questions,
// each owning its answer options. The total is always derived from the
// question marks.
package assessment

import (
	"strconv"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// TypeMCQ is the only question type the authoring screens enable.
const TypeMCQ = "mcq"

// Question is one editable question. Marks holds the raw form input.
type Question struct {
	QuestionText  string   `json:"question_text" yaml:"question_text" validate:"notblank"`
	Type          string   `json:"type" yaml:"type" validate:"required,oneof=mcq"`
	Marks         string   `json:"marks" yaml:"marks" validate:"required,posint"`
	Options       []string `json:"options" yaml:"options" validate:"min=2,dive,notblank"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer" validate:"required"`
}

// Draft is the editable form of an assessment. TotalMarks is whatever the
// form last displayed. It is never validated and never submitted as is.
type Draft struct {
	Role            string     `json:"role" yaml:"role" validate:"required"`
	Title           string     `json:"title" yaml:"title" validate:"required"`
	Description     string     `json:"description" yaml:"description"`
	Questions       []Question `json:"questions" yaml:"questions" validate:"min=1,dive"`
	TotalMarks      string     `json:"total_marks,omitempty" yaml:"total_marks,omitempty"`
	DurationMinutes string     `json:"duration_minutes" yaml:"duration_minutes" validate:"required"`
	Institution     string     `json:"institution" yaml:"institution" validate:"required"`
}

// StoredQuestion is a question as returned by the API.
type StoredQuestion struct {
	QuestionText  string   `json:"question_text"`
	Type          string   `json:"type"`
	Marks         int      `json:"marks"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Assessment is a stored assessment as returned by the API.
type Assessment struct {
	ID              int              `json:"id"`
	Role            string           `json:"role"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Questions       []StoredQuestion `json:"questions"`
	TotalMarks      int              `json:"total_marks"`
	DurationMinutes int              `json:"duration_minutes"`
	Institution     int              `json:"institution"`
	InstitutionName string           `json:"institution_name,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// QuestionPayload is one question of a create or update request.
type QuestionPayload struct {
	QuestionText  string   `json:"question_text"`
	Type          string   `json:"type"`
	Marks         any      `json:"marks"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Payload is the body of a create or update request.
type Payload struct {
	Role            string            `json:"role"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Questions       []QuestionPayload `json:"questions"`
	TotalMarks      int               `json:"total_marks"`
	DurationMinutes any               `json:"duration_minutes"`
	Institution     any               `json:"institution"`
}

// TotalMarks sums the marks of every question. Marks that are not a
// positive integer count as zero.
func TotalMarks(questions []Question) int {
	total := 0
	for _, q := range questions {
		if n, ok := form.ParsePositiveInt(q.Marks); ok {
			total += n
		}
	}
	return total
}

// NewPayload builds the request body. total_marks is recomputed here and
// any value the draft carried is discarded.
func NewPayload(d Draft) Payload {
	questions := make([]QuestionPayload, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = QuestionPayload{
			QuestionText:  q.QuestionText,
			Type:          q.Type,
			Marks:         form.IntOrRaw(q.Marks),
			Options:       append([]string{}, q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return Payload{
		Role:            d.Role,
		Title:           d.Title,
		Description:     d.Description,
		Questions:       questions,
		TotalMarks:      TotalMarks(d.Questions),
		DurationMinutes: form.IntOrRaw(d.DurationMinutes),
		Institution:     form.IntOrRaw(d.Institution),
	}
}

// DraftOf turns a stored assessment back into an editable draft.
func DraftOf(a Assessment) Draft {
	questions := make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		questions[i] = Question{
			QuestionText:  q.QuestionText,
			Type:          q.Type,
			Marks:         itoa(q.Marks),
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return Draft{
		Role:            a.Role,
		Title:           a.Title,
		Description:     a.Description,
		Questions:       questions,
		TotalMarks:      itoa(a.TotalMarks),
		DurationMinutes: itoa(a.DurationMinutes),
		Institution:     itoa(a.Institution),
	}
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
