package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManaged is a minimal Managed implementation for handle tests.
type fakeManaged struct {
	alive bool
}

func (f *fakeManaged) Alive() bool { return f.alive }

func TestHandle_ResolveLive(t *testing.T) {
	obj := &fakeManaged{alive: true}
	h := NewHandle[Managed](obj)

	got, ok := h.Resolve()
	require.True(t, ok)
	assert.Same(t, obj, got)
}

func TestHandle_ResolveStale(t *testing.T) {
	obj := &fakeManaged{alive: true}
	h := NewHandle[Managed](obj)

	// Destroying the referent externally must turn the handle stale without
	// touching the handle itself.
	obj.alive = false

	got, ok := h.Resolve()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestHandle_NilHandle(t *testing.T) {
	h := NilHandle[Managed]()

	got, ok := h.Resolve()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestHandle_TypedNilReferent(t *testing.T) {
	// A handle wrapped around a nil interface value must resolve as absent,
	// not dereference it.
	var obj Managed
	h := NewHandle(obj)

	_, ok := h.Resolve()
	assert.False(t, ok)
}

func TestHandle_StaleThenAliveAgain(t *testing.T) {
	obj := &fakeManaged{alive: false}
	h := NewHandle[Managed](obj)

	_, ok := h.Resolve()
	assert.False(t, ok)

	// Resolve re-checks liveness on every call.
	obj.alive = true
	_, ok = h.Resolve()
	assert.True(t, ok)
}
