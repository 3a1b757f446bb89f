// Package institution manages the colleges that admins and students belong
// to.
package institution

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInactive is returned when editing an inactive institution.
var ErrInactive = errors.New("cannot edit an inactive institution, activate it first")

// Institution is a stored institution as returned by the API.
type Institution struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Website         string `json:"website,omitempty"`
	EstablishedYear int    `json:"established_year,omitempty"`
	IsActive        bool   `json:"is_active"`
}

// Draft is the institution form. EstablishedYear is kept as typed.
type Draft struct {
	Name            string `json:"name" yaml:"name"`
	Code            string `json:"code" yaml:"code"`
	Address         string `json:"address" yaml:"address"`
	City            string `json:"city" yaml:"city"`
	State           string `json:"state" yaml:"state"`
	ContactEmail    string `json:"contact_email" yaml:"contact_email"`
	ContactPhone    string `json:"contact_phone" yaml:"contact_phone"`
	Website         string `json:"website" yaml:"website"`
	EstablishedYear string `json:"established_year" yaml:"established_year"`
}

// DraftOf fills a form from a stored institution.
func DraftOf(i Institution) Draft {
	d := Draft{
		Name:         i.Name,
		Code:         i.Code,
		Address:      i.Address,
		City:         i.City,
		State:        i.State,
		ContactEmail: i.ContactEmail,
		ContactPhone: i.ContactPhone,
		Website:      i.Website,
	}
	if i.EstablishedYear != 0 {
		d.EstablishedYear = strconv.Itoa(i.EstablishedYear)
	}
	return d
}

// Payload is the body of a create or update request.
type Payload struct {
	Name            string `json:"name"`
	Code            string `json:"code"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Website         string `json:"website"`
	EstablishedYear int    `json:"established_year"`
}

// NewPayload builds the request body of a validated draft.
func NewPayload(d Draft) Payload {
	year, _ := strconv.Atoi(strings.TrimSpace(d.EstablishedYear))
	return Payload{
		Name:            d.Name,
		Code:            d.Code,
		Address:         d.Address,
		City:            d.City,
		State:           d.State,
		ContactEmail:    d.ContactEmail,
		ContactPhone:    d.ContactPhone,
		Website:         d.Website,
		EstablishedYear: year,
	}
}
