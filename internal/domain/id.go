package domain

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// ID identifies a record within its collection.
// Generated ids are random UUIDs; ids read from older documents may be plain numbers.
type ID string

// NewID returns a fresh collision-resistant identifier
func NewID() ID {
	return ID(uuid.NewString())
}

// String returns the raw identifier
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
