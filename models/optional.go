package models

import (
	"bytes"
	"encoding/json"
)

// OptionalID is a nullable foreign key in a partial update body. It keeps
// three states apart: the field was absent (Set == false), explicitly null
// (Set && Null) or carried a value.
type OptionalID struct {
	Set   bool
	Null  bool
	Value int64
}

// SomeID returns an OptionalID holding id.
func SomeID(id int64) OptionalID {
	return OptionalID{Set: true, Value: id}
}

// NullID returns an OptionalID explicitly set to null.
func NullID() OptionalID {
	return OptionalID{Set: true, Null: true}
}

// Ptr converts a set value into the pointer form stored on entities.
// Callers must check Set first.
func (o OptionalID) Ptr() *int64 {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		o.Value = 0
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptionalIDFromPtr maps a nullable id to an explicitly set OptionalID.
func OptionalIDFromPtr(p *int64) OptionalID {
	if p == nil {
		return NullID()
	}
	return SomeID(*p)
}
