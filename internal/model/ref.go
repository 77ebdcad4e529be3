package model

import (
	"bytes"
	"encoding/json"
)

// Keyed is implemented by records addressed through a Ref.
type Keyed interface {
	Key() string
}

// Index maps ids to hydrated records. Build it once per session with IndexOf.
type Index[T Keyed] map[string]T

// IndexOf indexes items by key. Later duplicates do not replace earlier ones.
func IndexOf[T Keyed](items []T) Index[T] {
	idx := make(Index[T], len(items))
	for _, it := range items {
		if _, ok := idx[it.Key()]; !ok {
			idx[it.Key()] = it
		}
	}
	return idx
}

// Ref is a relationship that is absent, known only by id, or hydrated with
// the full record. ID() is the same in the by-id and hydrated forms.
// JSON always carries the id alone (or null when absent).
type Ref[T Keyed] struct {
	id  string
	val *T
}

// RefID returns an unresolved reference. An empty id yields an absent Ref.
func RefID[T Keyed](id string) Ref[T] {
	return Ref[T]{id: id}
}

// RefTo returns a hydrated reference.
func RefTo[T Keyed](v T) Ref[T] {
	return Ref[T]{id: v.Key(), val: &v}
}

// ID returns the referenced id, or "" when absent.
func (r Ref[T]) ID() string { return r.id }

// IsZero reports whether the reference is absent.
func (r Ref[T]) IsZero() bool { return r.id == "" }

// Hydrated reports whether the full record is held.
func (r Ref[T]) Hydrated() bool { return r.val != nil }

// Value returns the hydrated record.
func (r Ref[T]) Value() (T, bool) {
	if r.val == nil {
		var zero T
		return zero, false
	}
	return *r.val, true
}

// Resolve hydrates the reference from idx and memoizes the result. It does
// nothing when the reference is already hydrated or absent, and reports
// whether a record is held afterwards.
func (r *Ref[T]) Resolve(idx Index[T]) bool {
	if r.val != nil {
		return true
	}
	if r.id == "" {
		return false
	}
	v, ok := idx[r.id]
	if !ok {
		return false
	}
	r.val = &v
	return true
}

// Unresolved drops the hydrated record, keeping the id.
func (r Ref[T]) Unresolved() Ref[T] {
	return Ref[T]{id: r.id}
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	*r = Ref[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	r.id = id
	return nil
}
