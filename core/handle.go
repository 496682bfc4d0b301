package core

// Managed is implemented by objects whose lifetime is owned by the
// surrounding application rather than by the registry that references them.
// A managed object reports itself dead after Destroy has been called on it,
// no matter who called it.
type Managed interface {
	// Alive reports whether the object has not been destroyed yet.
	Alive() bool
}

// Handle is a non-owning reference to a managed object. It tracks the
// referent without extending its lifetime: the referent may be destroyed
// externally between any two operations, so callers must go through Resolve
// before every use and treat a dead referent as absent rather than as an
// error.
type Handle[T Managed] struct {
	ref T
	set bool
}

// NewHandle wraps a managed object in a weak handle.
func NewHandle[T Managed](ref T) Handle[T] {
	return Handle[T]{ref: ref, set: true}
}

// NilHandle returns the absent handle.
func NilHandle[T Managed]() Handle[T] { return Handle[T]{} }

// Resolve returns the referent if it is still alive. An absent or stale
// handle yields ok == false.
func (h Handle[T]) Resolve() (T, bool) {
	var zero T
	if !h.set {
		return zero, false
	}
	if any(h.ref) == nil || !h.ref.Alive() {
		return zero, false
	}
	return h.ref, true
}
