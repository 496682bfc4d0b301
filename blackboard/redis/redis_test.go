package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
)

// Interface compliance (compile-time assertion)
var _ core.Blackboard = (*Store)(nil)

// setupTestStore creates a miniredis server and a Store connected to it.
func setupTestStore(t *testing.T, name string) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := New(context.Background(), &goredis.Options{Addr: mr.Addr()}, name)
	require.NoError(t, err)
	t.Cleanup(store.Destroy)
	return mr, store
}

func testSchema() *core.Schema {
	return &core.Schema{
		Name: "patrol_schema",
		Keys: []core.KeyDefinition{
			{Name: "waypoint", Type: core.KeyTypeInt},
			{Name: "state", Type: core.KeyTypeString},
			{Name: "alerted", Type: core.KeyTypeBool},
		},
	}
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New(context.Background(), &goredis.Options{}, "")
	assert.Error(t, err)
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, "behaviormesh:patrol:key:waypoint", ValueKey("patrol", "waypoint"))
}

func TestStore_InitializeFromSchema(t *testing.T) {
	mr, store := setupTestStore(t, "patrol")

	// Stale value from a previous instance with the same name must be
	// cleared during initialization.
	require.NoError(t, mr.Set(ValueKey("patrol", "waypoint"), "99"))

	assert.False(t, store.InitializeFromSchema(nil))
	assert.True(t, store.InitializeFromSchema(testSchema()))

	assert.False(t, mr.Exists(ValueKey("patrol", "waypoint")))
}

func TestStore_InitializeUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := New(context.Background(), &goredis.Options{Addr: mr.Addr()}, "patrol")
	require.NoError(t, err)

	mr.Close()

	assert.False(t, store.InitializeFromSchema(testSchema()))
}

func TestStore_SetGetRoundtrip(t *testing.T) {
	_, store := setupTestStore(t, "patrol")
	require.True(t, store.InitializeFromSchema(testSchema()))

	store.SetValue("waypoint", 3)
	store.SetValue("state", "patrolling")
	store.SetValue("alerted", true)

	// Integer keys decode back to int despite the JSON float64 round trip.
	v, ok := store.GetValue("waypoint")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = store.GetValue("state")
	require.True(t, ok)
	assert.Equal(t, "patrolling", v)

	v, ok = store.GetValue("alerted")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestStore_GetMissingKey(t *testing.T) {
	_, store := setupTestStore(t, "patrol")
	require.True(t, store.InitializeFromSchema(testSchema()))

	_, ok := store.GetValue("waypoint")
	assert.False(t, ok)
}

func TestStore_SchemaValidation(t *testing.T) {
	mr, store := setupTestStore(t, "patrol")
	require.True(t, store.InitializeFromSchema(testSchema()))

	store.SetValue("not_in_schema", 7)
	store.SetValue("waypoint", "three")

	assert.False(t, mr.Exists(ValueKey("patrol", "not_in_schema")))
	assert.False(t, mr.Exists(ValueKey("patrol", "waypoint")))
}

func TestStore_KeysAreNamespaced(t *testing.T) {
	mr, storeA := setupTestStore(t, "agent_a")
	require.True(t, storeA.InitializeFromSchema(testSchema()))

	storeB, err := New(context.Background(), &goredis.Options{Addr: mr.Addr()}, "agent_b")
	require.NoError(t, err)
	t.Cleanup(storeB.Destroy)
	require.True(t, storeB.InitializeFromSchema(testSchema()))

	storeA.SetValue("waypoint", 1)
	storeB.SetValue("waypoint", 2)

	v, ok := storeA.GetValue("waypoint")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = storeB.GetValue("waypoint")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestStore_Destroy(t *testing.T) {
	mr, store := setupTestStore(t, "patrol")
	require.True(t, store.InitializeFromSchema(testSchema()))
	store.SetValue("waypoint", 3)

	store.Destroy()
	assert.False(t, store.Alive())

	// The instance's keys are gone and the dead store reads absent.
	assert.False(t, mr.Exists(ValueKey("patrol", "waypoint")))
	_, ok := store.GetValue("waypoint")
	assert.False(t, ok)

	// Idempotent.
	store.Destroy()
	assert.False(t, store.Alive())
}

func TestFactory(t *testing.T) {
	mr := miniredis.RunT(t)

	factory := Factory(context.Background(), &goredis.Options{Addr: mr.Addr()}, logging.NoOpLogger{})
	bb := factory("patrol")
	require.NotNil(t, bb)
	t.Cleanup(bb.Destroy)
	assert.Equal(t, "patrol", bb.Name())

	// Construction failure (empty name) degrades to a nil store.
	assert.Nil(t, factory(""))
}
