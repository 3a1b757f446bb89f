package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gigaversity/gigaadmin/internal/form"
)

// Error is returned when the API responds with a non-2xx status.
// Fields holds the first message of every field-keyed entry of the body,
// keyed by dotted path ("questions.0.marks") when the body is nested.
type Error struct {
	Status  int
	Message string
	Fields  form.ErrorMap
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Unauthorized reports whether the token was missing, expired or rejected.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// FieldErrors returns the server's field errors carried by err, if any.
// Only client errors other than 401 and 403 carry field errors. Auth and
// server failures are reported as a whole, whatever keys their body has.
func FieldErrors(err error) form.ErrorMap {
	apiErr, ok := AsError(err)
	if !ok || apiErr.Unauthorized() || apiErr.Status < 400 || apiErr.Status >= 500 {
		return nil
	}
	if len(apiErr.Fields) == 0 {
		return nil
	}
	return apiErr.Fields
}

// keys that carry a banner message instead of a field error
var messageKeys = []string{"message", "detail", "error"}

func decodeError(status int, body []byte) error {
	apiErr := &Error{Status: status, Fields: form.ErrorMap{}}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	for _, key := range messageKeys {
		if v, ok := raw[key]; ok {
			if msg := firstMessage(v); msg != "" && apiErr.Message == "" {
				apiErr.Message = msg
			}
			delete(raw, key)
		}
	}

	for field, v := range raw {
		collectFields(apiErr.Fields, field, v)
	}

	if apiErr.Message == "" {
		if msg, ok := apiErr.Fields["non_field_errors"]; ok {
			apiErr.Message = msg
			delete(apiErr.Fields, "non_field_errors")
		} else {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

// firstMessage takes a string or the first string of an array.
func firstMessage(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
		return firstMessage(list[0])
	}
	return ""
}

// collectFields records the first message found under path. Lists of
// messages give one entry, lists of objects and objects are walked with
// their indexes and keys appended to path. A nested non_field_errors entry
// belongs to the object that holds it.
func collectFields(out form.ErrorMap, path string, v json.RawMessage) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s != "" {
			out.Add(path, s)
		}
		return
	}

	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil {
		for i, item := range list {
			if err := json.Unmarshal(item, &s); err == nil {
				if s != "" {
					out.Add(path, s)
				}
				continue
			}
			collectFields(out, form.Path(path, i), item)
		}
		return
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		for key, item := range obj {
			if key == "non_field_errors" {
				collectFields(out, path, item)
				continue
			}
			collectFields(out, form.Path(path, key), item)
		}
	}
}
