package sched

import "github.com/google/go-cmp/cmp"

// copyable constrains sub-object types to values that can produce an
// independent deep copy of themselves. Handlers always work on copies
// and commit through Update; the stored instance is never mutated in
// place.
type copyable[T any] interface {
	Copy() T
}

// Shared is a copy-on-write slot for one snapshot sub-object. Cloning a
// ScheduleState copies the slot struct, so adjacent snapshots share the
// stored instance until an Update with actually-changed content
// installs a new one. The equality gate keeps a timeline with thousands
// of steps and mostly-unchanged sub-objects cheap.
type Shared[T copyable[T]] struct {
	v *T
}

// NewShared builds a slot holding v.
func NewShared[T copyable[T]](v T) Shared[T] {
	return Shared[T]{v: &v}
}

// Get returns an independent copy of the stored value for modification.
func (s Shared[T]) Get() T {
	return (*s.v).Copy()
}

// Read returns the shared instance. Callers must treat it as read-only;
// mutation goes through Get/Update.
func (s Shared[T]) Read() *T {
	return s.v
}

// Update installs v as the slot's value and reports whether anything
// changed. Structurally equal values leave the existing shared instance
// in place.
func (s *Shared[T]) Update(v T) bool {
	if s.v != nil && cmp.Equal(*s.v, v) {
		return false
	}
	s.v = &v
	return true
}
