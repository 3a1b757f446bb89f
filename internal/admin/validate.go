package admin

import "github.com/gigaversity/gigaadmin/internal/form"

var checker = form.NewValidator()

// createForm carries the rules of a new admin.
type createForm struct {
	Email       string `json:"email" validate:"required,emailaddr"`
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=8"`
	AdminType   string `json:"admin_type" validate:"required,oneof=college department"`
	Institution string `json:"institution" validate:"required"`
	Department  string `json:"department" validate:"required_if=AdminType department"`
}

// editForm carries the rules of an edit, where only a typed password and
// the department are checked.
type editForm struct {
	Password   string `json:"password" validate:"omitempty,min=8"`
	AdminType  string `json:"admin_type"`
	Department string `json:"department" validate:"required_if=AdminType department"`
}

var messages = form.Messages{
	"email|required":       "Email is required",
	"email|emailaddr":      "Please enter a valid email address",
	"username|required":    "Username is required",
	"username|min":         "Username must be at least 3 characters long",
	"password|required":    "Password is required",
	"password|min":         "Password must be at least 8 characters long",
	"admin_type|required":  "Admin type is required",
	"admin_type|oneof":     "Admin type must be college or department",
	"institution|required": "Institution is required",
	"department":           "Department is required for department admin",
}

// Validate reports every invalid field of d. When editing, email, username,
// admin type and institution are not re-checked.
func Validate(d Draft, editing bool) form.ErrorMap {
	if editing {
		return checker.Check(editForm{
			Password:   d.Password,
			AdminType:  d.AdminType,
			Department: d.Department,
		}, messages)
	}
	return checker.Check(createForm(d), messages)
}
