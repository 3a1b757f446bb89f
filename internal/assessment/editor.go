package assessment

import (
	"fmt"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// Cardinality floors of the assessment form.
const (
	MinQuestions = 1
	MinOptions   = 2
)

// head is the scalar part of a question. Its options live in the tree.
type head struct {
	text          string
	typ           string
	marks         string
	correctAnswer string
}

func blankHead() head { return head{typ: TypeMCQ} }

func blankOption() string { return "" }

// Editor holds one assessment draft while it is being edited.
type Editor struct {
	role            string
	title           string
	description     string
	durationMinutes string
	institution     string

	questions *form.Tree[head, string]
}

// NewEditor starts editing d. A zero Draft gives one blank MCQ question
// with two blank options.
func NewEditor(d Draft) *Editor {
	nodes := make([]form.Node[head, string], len(d.Questions))
	for i, q := range d.Questions {
		nodes[i] = form.Node[head, string]{
			Value: head{
				text:          q.QuestionText,
				typ:           q.Type,
				marks:         q.Marks,
				correctAnswer: q.CorrectAnswer,
			},
			Children: q.Options,
		}
	}
	return &Editor{
		role:            d.Role,
		title:           d.Title,
		description:     d.Description,
		durationMinutes: d.DurationMinutes,
		institution:     d.Institution,
		questions: form.NewTree(form.TreeConfig[head, string]{
			Min:        MinQuestions,
			Blank:      blankHead,
			ChildMin:   MinOptions,
			BlankChild: blankOption,
		}, nodes...),
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
	case "duration_minutes":
		e.durationMinutes = value
	case "institution":
		e.institution = value
	default:
		return fmt.Errorf("unknown assessment field %q", name)
	}
	return nil
}

// QuestionCount returns the number of questions.
func (e *Editor) QuestionCount() int { return e.questions.Len() }

// OptionCount returns the number of options of question qi, or -1.
func (e *Editor) OptionCount(qi int) int { return e.questions.ChildLen(qi) }

// AddQuestion appends a blank MCQ question with two blank options.
func (e *Editor) AddQuestion() { e.questions.Add() }

// RemoveQuestion deletes question qi unless it is the last one.
func (e *Editor) RemoveQuestion(qi int) bool { return e.questions.Remove(qi) }

// MoveQuestion swaps question qi with its neighbour.
func (e *Editor) MoveQuestion(qi int, d form.Direction) bool { return e.questions.Move(qi, d) }

// SetQuestionField sets question_text, type, marks or correct_answer of
// question qi.
func (e *Editor) SetQuestionField(qi int, name, value string) error {
	var set func(h head) head
	switch name {
	case "question_text":
		set = func(h head) head {
			h.text = value
			return h
		}
	case "type":
		set = func(h head) head {
			h.typ = value
			return h
		}
	case "marks":
		set = func(h head) head {
			h.marks = value
			return h
		}
	case "correct_answer":
		set = func(h head) head {
			h.correctAnswer = value
			return h
		}
	default:
		return fmt.Errorf("unknown question field %q", name)
	}
	if !e.questions.Update(qi, set) {
		return fmt.Errorf("question %d out of range", qi)
	}
	return nil
}

// AddOption appends a blank option to question qi.
func (e *Editor) AddOption(qi int) bool { return e.questions.AddChild(qi) }

// RemoveOption deletes option oi of question qi unless the question is
// down to two options.
func (e *Editor) RemoveOption(qi, oi int) bool { return e.questions.RemoveChild(qi, oi) }

// SetOption replaces option oi of question qi.
func (e *Editor) SetOption(qi, oi int, option string) bool {
	return e.questions.SetChild(qi, oi, option)
}

// TotalMarks is the display value of the read-only total field.
func (e *Editor) TotalMarks() int {
	return TotalMarks(e.Draft().Questions)
}

// Draft returns a snapshot of the form with a freshly derived total.
func (e *Editor) Draft() Draft {
	nodes := e.questions.Nodes()
	questions := make([]Question, len(nodes))
	for i, n := range nodes {
		questions[i] = Question{
			QuestionText:  n.Value.text,
			Type:          n.Value.typ,
			Marks:         n.Value.marks,
			Options:       n.Children,
			CorrectAnswer: n.Value.correctAnswer,
		}
	}
	d := Draft{
		Role:            e.role,
		Title:           e.title,
		Description:     e.description,
		Questions:       questions,
		DurationMinutes: e.durationMinutes,
		Institution:     e.institution,
	}
	if total := TotalMarks(questions); total > 0 {
		d.TotalMarks = fmt.Sprint(total)
	}
	return d
}
