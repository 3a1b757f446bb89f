// Package filter builds the query parameters of the list screens and keeps
// track of which filters are applied.
package filter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind decides how a filter value is checked and labelled.
type Kind int

const (
	// Text values are sent and shown as typed.
	Text Kind = iota
	// Enum values are snake_case identifiers shown in title case.
	Enum
	// Bool values are "true" or "false" and shown with the field's labels.
	Bool
)

// Field declares one filterable query parameter.
type Field struct {
	Key   string // query parameter
	Name  string // chip prefix
	Kind  Kind
	True  string // Bool label for true
	False string // Bool label for false
}

// Fields is the ordered set of filters a list screen offers.
type Fields []Field

func (fs Fields) lookup(key string) (Field, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func status() Field {
	return Field{Key: "is_active", Name: "status", Kind: Bool, True: "Active", False: "Inactive"}
}

// Declared filter sets of the list screens.
var (
	InstitutionFields = Fields{
		{Key: "city", Name: "city"},
		{Key: "state", Name: "state"},
		status(),
	}
	AdminFields = Fields{
		{Key: "role", Name: "role", Kind: Enum},
		{Key: "department", Name: "department"},
		status(),
		{Key: "institution_name", Name: "institution"},
	}
	StudentFields = Fields{
		{Key: "department", Name: "department"},
		{Key: "institution_name", Name: "institution"},
		status(),
		{Key: "profile_completed", Name: "profile", Kind: Bool, True: "Completed", False: "Incomplete"},
		{Key: "can_update_profile", Name: "profile update", Kind: Bool, True: "Allowed", False: "Locked"},
	}
	AssessmentFields = Fields{
		{Key: "role", Name: "role", Kind: Enum},
		{Key: "institution", Name: "institution"},
	}
	CurriculumFields = AssessmentFields
)

// Chip is one applied filter as shown to the operator.
type Chip struct {
	Key   string
	Name  string
	Value string
}

// Label renders the chip the way the list screens do, e.g. "status: Active".
func (c Chip) Label() string {
	return c.Name + ": " + c.Value
}

// FetchFunc loads one list page for a query.
type FetchFunc[T any] func(ctx context.Context, query url.Values) ([]T, error)

// Builder collects filter values, fetches the list with them and exposes
// the applied ones as removable chips. Values that are set but not yet
// applied do not show up as chips.
type Builder[T any] struct {
	fields  Fields
	fetch   FetchFunc[T]
	pending map[string]string
	applied map[string]string
}

// New creates a builder over fields that loads lists with fetch.
func New[T any](fields Fields, fetch FetchFunc[T]) *Builder[T] {
	return &Builder[T]{
		fields:  fields,
		fetch:   fetch,
		pending: map[string]string{},
		applied: map[string]string{},
	}
}

// Set records value for key. An empty value unsets the key. Bool fields
// accept anything strconv.ParseBool does.
func (b *Builder[T]) Set(key, value string) error {
	f, ok := b.fields.lookup(key)
	if !ok {
		return fmt.Errorf("unknown filter %q", key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(b.pending, key)
		return nil
	}
	if f.Kind == Bool {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("filter %s must be true or false, got %q", key, value)
		}
		value = strconv.FormatBool(v)
	}
	b.pending[key] = value
	return nil
}

// Query returns the pending values as query parameters. Empty values are
// never included.
func (b *Builder[T]) Query() url.Values {
	return toQuery(b.pending)
}

// Apply fetches the list with the pending values and marks them applied.
func (b *Builder[T]) Apply(ctx context.Context) ([]T, error) {
	b.applied = copyValues(b.pending)
	return b.fetch(ctx, toQuery(b.applied))
}

// Clear drops every filter and fetches the unfiltered list.
func (b *Builder[T]) Clear(ctx context.Context) ([]T, error) {
	b.pending = map[string]string{}
	b.applied = map[string]string{}
	return b.fetch(ctx, url.Values{})
}

// Remove drops one applied filter, keeps the others and refetches.
func (b *Builder[T]) Remove(ctx context.Context, key string) ([]T, error) {
	if _, ok := b.fields.lookup(key); !ok {
		return nil, fmt.Errorf("unknown filter %q", key)
	}
	delete(b.pending, key)
	delete(b.applied, key)
	return b.fetch(ctx, toQuery(b.applied))
}

// Chips returns the applied filters in declaration order.
func (b *Builder[T]) Chips() []Chip {
	var chips []Chip
	for _, f := range b.fields {
		v, ok := b.applied[f.Key]
		if !ok {
			continue
		}
		chips = append(chips, Chip{Key: f.Key, Name: f.Name, Value: label(f, v)})
	}
	return chips
}

func label(f Field, v string) string {
	switch f.Kind {
	case Bool:
		if v == "true" {
			return f.True
		}
		return f.False
	case Enum:
		return cases.Title(language.English).String(strings.ReplaceAll(v, "_", " "))
	}
	return v
}

func toQuery(values map[string]string) url.Values {
	q := url.Values{}
	for k, v := range values {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

func copyValues(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
