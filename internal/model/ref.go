package model

import (
	"encoding/json"
	"fmt"
)

// Ref is a denormalized reference to another entity: its id and a cached
// copy of its title. A Ref can drift from the entity it points to.
type Ref struct {
	ID    int
	Title string
}

// MarshalJSON encodes a Ref as a two-element array: [id, "title"].
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.ID, r.Title})
}

// UnmarshalJSON decodes a two-element [id, "title"] array.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("reference must have 2 elements, got %d", len(pair))
	}

	var id int
	if err := json.Unmarshal(pair[0], &id); err != nil {
		return fmt.Errorf("reference id: %w", err)
	}
	var title string
	if err := json.Unmarshal(pair[1], &title); err != nil {
		return fmt.Errorf("reference title: %w", err)
	}

	r.ID = id
	r.Title = title
	return nil
}

// AppendRef appends ref to refs unless a reference with the same id is
// already present. Order of first appearance is preserved.
func AppendRef(refs []Ref, ref Ref) []Ref {
	for _, existing := range refs {
		if existing.ID == ref.ID {
			return refs
		}
	}
	return append(refs, ref)
}
