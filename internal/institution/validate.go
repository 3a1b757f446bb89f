package institution

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// FirstYear is the earliest accepted establishment year.
const FirstYear = 1800

const yearRangeTag = "yearrange"

var checker = newChecker()

func newChecker() *form.Validator {
	v := form.NewValidator()
	v.RegisterValidation(yearRangeTag, yearRangeValidation, "{0} must be a year between 1800 and this year")
	return v
}

type rules struct {
	Name            string `json:"name" validate:"required"`
	Code            string `json:"code" validate:"required"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	State           string `json:"state" validate:"required"`
	ContactEmail    string `json:"contact_email" validate:"required,emailaddr"`
	ContactPhone    string `json:"contact_phone" validate:"required"`
	Website         string `json:"website"`
	EstablishedYear string `json:"established_year" validate:"required,yearrange=CurrentYear"`
	CurrentYear     int    `json:"-"`
}

var messages = form.Messages{
	"name":                       "Name is required",
	"code":                       "Code is required",
	"address":                    "Address is required",
	"city":                       "City is required",
	"state":                      "State is required",
	"contact_email|required":     "Email is required",
	"contact_email|emailaddr":    "Invalid email format",
	"contact_phone":              "Phone number is required",
	"established_year|required":  "Established year is required",
	"established_year|yearrange": "Invalid year",
}

// Validate reports every invalid field of d. The establishment year must lie
// between FirstYear and the year of now.
func Validate(d Draft, now time.Time) form.ErrorMap {
	return checker.Check(rules{
		Name:            d.Name,
		Code:            d.Code,
		Address:         d.Address,
		City:            d.City,
		State:           d.State,
		ContactEmail:    d.ContactEmail,
		ContactPhone:    d.ContactPhone,
		Website:         d.Website,
		EstablishedYear: d.EstablishedYear,
		CurrentYear:     now.Year(),
	}, messages)
}

// yearRangeValidation accepts an integer year from FirstYear up to the
// sibling field named by the tag parameter.
func yearRangeValidation(fl validator.FieldLevel) bool {
	year, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	if err != nil || year < FirstYear {
		return false
	}
	last := reflect.Indirect(fl.Parent()).FieldByName(fl.Param())
	if !last.IsValid() || !last.CanInt() {
		return true
	}
	return int64(year) <= last.Int()
}
