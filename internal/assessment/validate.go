package assessment

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/gigaversity/gigaadmin/internal/form"
)

const answerInOptionsTag = "answerinoptions"

var checker = newChecker()

func newChecker() *form.Validator {
	v := form.NewValidator()
	v.RegisterStructValidation(questionStructLevelValidation, Question{})
	return v
}

var messages = form.Messages{
	"role":                                "Role is required",
	"title":                               "Title is required",
	"duration_minutes":                    "Duration is required",
	"institution":                         "Institution ID is required",
	"questions":                           "At least one question is required",
	"questions.*.question_text":           "Question text is required",
	"questions.*.type":                    "Question type must be mcq",
	"questions.*.marks|required":          "Marks are required",
	"questions.*.marks|posint":            "Marks must be a positive number",
	"questions.*.options|min":             "At least 2 options are required",
	"questions.*.options.*":               "Option cannot be empty",
	"questions.*.correct_answer|required": "Correct answer is required",
	"questions.*.correct_answer|answerinoptions": "Correct answer must be one of the options",
}

// Validate reports every invalid field of d in one pass.
func Validate(d Draft) form.ErrorMap {
	return checker.Check(d, messages)
}

// questionStructLevelValidation checks that an MCQ answer is one of the
// question's options.
func questionStructLevelValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.Type != TypeMCQ || q.CorrectAnswer == "" {
		return
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		sl.ReportError(q.CorrectAnswer, "correct_answer", "CorrectAnswer", answerInOptionsTag, "")
	}
}
