package institution

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref points at an institution from another entity. The API returns either
// a bare id or an {id, name} object.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		type plain Ref
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decoding institution: %w", err)
		}
		*r = Ref(p)
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("decoding institution id: %w", err)
	}
	*r = Ref{ID: id}
	return nil
}

// String returns the name when known, else the id.
func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	if r.ID == 0 {
		return ""
	}
	return fmt.Sprint(r.ID)
}
