package shared

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ref identifies a related entity in a write payload. It accepts either a
// bare id ("…") or an object carrying an id field ({"id": "…"}).
type Ref struct {
	ID uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		r.ID = uuid.Nil
		return nil
	}

	if len(data) > 0 && data[0] == '{' {
		var nested struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return fmt.Errorf("invalid nested reference: %w", err)
		}
		r.ID = nested.ID
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid reference id: %w", err)
	}
	r.ID = id
	return nil
}

// MarshalJSON writes the reference as a bare id
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// IsZero reports whether no id was supplied
func (r Ref) IsZero() bool {
	return r.ID == uuid.Nil
}
