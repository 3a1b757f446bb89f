package curriculum

import "github.com/gigaversity/gigaadmin/internal/form"

var validator = form.NewValidator()

var messages = form.Messages{
	"role":                 "Role is required",
	"title":                "Title is required",
	"description":          "Description is required",
	"institution":          "Institution ID is required",
	"modules":              "At least one module is required",
	"modules.*.name":       "Module name is required",
	"modules.*.topics|min": "At least one topic is required",
	"modules.*.topics.*":   "Topic cannot be empty",
}

// Validate reports every invalid field of d in one pass.
func Validate(d Draft) form.ErrorMap {
	return validator.Check(d, messages)
}
