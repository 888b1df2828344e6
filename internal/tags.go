package internal

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrTagExists = errors.New("tag already exists")

// TagID identifies a tag within a single registry. IDs are dense, assigned
// in creation order starting from 0. They are renumbered by GCTagNames, so
// only tag names are a stable identity across snapshots.
type TagID uint32

// Tags is a bidirectional mapping between tag names and TagIDs.
//
// Serialized as a plain array of names; the index of a name in the array is
// its ID. The zero value is an empty, usable registry.
type Tags struct {
	ids   map[string]TagID
	names []string
}

// Insert registers a new tag name and returns its ID.
//
// Returns ErrTagExists if the name is already registered.
func (t *Tags) Insert(name string) (TagID, error) {
	if _, ok := t.ids[name]; ok {
		return 0, ErrTagExists
	}
	if t.ids == nil {
		t.ids = make(map[string]TagID)
	}
	id := TagID(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	return id, nil
}

// GetID returns the ID of the tag with the given name, if it exists.
func (t *Tags) GetID(name string) (TagID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// GetName returns the name of the tag with the given ID, if it exists.
func (t *Tags) GetName(id TagID) (string, bool) {
	if int(id) >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

// GetIDOrInsert returns the ID of the named tag, registering it first if it
// does not yet exist.
func (t *Tags) GetIDOrInsert(name string) TagID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id, _ := t.Insert(name)
	return id
}

// Len returns the number of registered tags.
func (t *Tags) Len() int {
	return len(t.names)
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.names)
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	ids := make(map[string]TagID, len(names))
	for i, name := range names {
		if _, ok := ids[name]; ok {
			return fmt.Errorf("tag %q: %w", name, ErrTagExists)
		}
		ids[name] = TagID(i)
	}

	t.ids = ids
	t.names = names
	return nil
}
