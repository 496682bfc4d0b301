package behaviormesh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/executor"
	"github.com/behaviormesh/behaviormesh/internal/testutil"
)

func TestNew_Defaults(t *testing.T) {
	mesh := New()
	require.NotNil(t, mesh)
	assert.False(t, mesh.Active())
	assert.Zero(t, mesh.Registry().Size())
}

func TestMesh_Lifecycle(t *testing.T) {
	def := testutil.NewDefinitionBuilder("combat").
		ObjectKey(core.SelfKey).
		Key("count", core.KeyTypeInt).
		Program(testutil.CountingProgram("count")).
		Build()

	mesh := New(func(o *Options) {
		o.NewExecutor = executor.Factory(func(o *executor.Options) { o.TickInterval = 2 * time.Millisecond })
		o.DefaultTrees = []core.InstanceSetup{{ID: "combat", Definition: def}}
	})

	mesh.Activate()
	require.True(t, mesh.Active())
	require.Equal(t, 1, mesh.Registry().Size())

	exec, found := mesh.GetTree("combat")
	require.True(t, found)
	assert.True(t, exec.Alive())

	bb, ok := mesh.Registry().Instances()[0].Blackboard.Resolve()
	require.True(t, ok)
	require.Eventually(t, func() bool {
		v, ok := bb.GetValue("count")
		return ok && v.(int) >= 1
	}, time.Second, 2*time.Millisecond)

	mesh.Deactivate()
	assert.False(t, mesh.Active())
	assert.Zero(t, mesh.Registry().Size())
	assert.False(t, bb.Alive())
}
