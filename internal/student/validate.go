package student

import "github.com/gigaversity/gigaadmin/internal/form"

var checker = form.NewValidator()

type rules struct {
	Email       string `json:"email" validate:"required,emailaddr"`
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=8"`
	Institution string `json:"institution" validate:"required"`
}

var messages = form.Messages{
	"email|required":    "Email is required",
	"email|emailaddr":   "Please enter a valid email address",
	"username|required": "Username is required",
	"username|min":      "Username must be at least 3 characters long",
	"password|required": "Password is required",
	"password|min":      "Password must be at least 8 characters long",
	"institution":       "Institution is required",
}

// Validate reports every invalid field of d.
func Validate(d Draft) form.ErrorMap {
	return checker.Check(rules(d), messages)
}
