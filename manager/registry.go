package manager

import (
	"fmt"

	"github.com/behaviormesh/behaviormesh/blackboard"
	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/executor"
	"github.com/behaviormesh/behaviormesh/internal/util"
	"github.com/behaviormesh/behaviormesh/logging"
)

// RunningInstance is the runtime record for one parallel tree. Records are
// owned exclusively by the registry; the executor and blackboard they point
// at are owned by the surrounding application, which is why both handles are
// weak.
type RunningInstance struct {
	// ID is the identifier the instance was added under. Intended unique,
	// not enforced: single-target operations act on the first match,
	// RemoveTree on every match.
	ID string

	// Executor is a weak handle to the tree's runtime. Live at creation;
	// may go stale afterwards.
	Executor core.Handle[core.Executor]

	// Blackboard is a weak handle to the tree's working memory. Absent when
	// the definition declares no schema or its initialization failed.
	Blackboard core.Handle[core.Blackboard]
}

// RegistryOptions holds dependency overrides passed to NewRegistry.
type RegistryOptions struct {
	// Logger receives warning and info diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// NewExecutor constructs executors for added instances. Defaults to the
	// built-in tick-loop executor.
	NewExecutor core.ExecutorFactory
	// NewBlackboard constructs blackboard stores for definitions that
	// declare a schema. Defaults to the in-memory store.
	NewBlackboard core.BlackboardFactory
	// PawnResolver returns the owning agent's controlled pawn reference (or
	// nil) used to seed each blackboard's self key. Defaults to nil.
	PawnResolver func() any
}

// Registry is the ordered collection of running tree instances. It is not
// internally synchronized: it is designed for single-threaded, synchronous
// use from the execution context that owns the agent. Every operation
// re-resolves weak handles because executors advance asynchronously and may
// have been destroyed externally since the previous call.
type Registry struct {
	instances     []RunningInstance
	newExecutor   core.ExecutorFactory
	newBlackboard core.BlackboardFactory
	resolvePawn   func() any
	logger        logging.Logger
}

// NewRegistry constructs an empty registry with optional overrides.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Logger:        logging.NoOpLogger{},
		NewExecutor:   executor.Factory(),
		NewBlackboard: blackboard.Factory(logging.NoOpLogger{}),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		newExecutor:   opts.NewExecutor,
		newBlackboard: opts.NewBlackboard,
		resolvePawn:   opts.PawnResolver,
		logger:        opts.Logger,
	}
}

// AddTree constructs, starts and registers a new tree instance from the
// given setup. It fails (false, with a diagnostic) when the setup's
// definition is unresolved or the executor cannot be constructed; a missing
// or failing blackboard schema is degraded-but-successful — the tree still
// runs, without working memory. The executor is always started in looped
// mode.
func (r *Registry) AddTree(setup core.InstanceSetup) bool {
	if setup.Definition == nil {
		r.logger.Warn("AddTree: unable to run nil tree definition", "id", setup.ID)
		return false
	}
	def := setup.Definition
	display := displayID(setup.ID)

	bbHandle := core.NilHandle[core.Blackboard]()
	if def.Schema == nil {
		r.logger.Warn("AddTree: tree definition declares no blackboard schema, running without one", "id", setup.ID, "tree", def.Name)
	} else {
		bb := r.newBlackboard(fmt.Sprintf("%s_blackboard", display))
		switch {
		case bb == nil:
			r.logger.Warn("AddTree: blackboard construction failed, running without one", "id", setup.ID, "tree", def.Name)
		case !bb.InitializeFromSchema(def.Schema):
			r.logger.Warn("AddTree: blackboard schema initialization failed, running without one", "id", setup.ID, "tree", def.Name, "schema", def.Schema.Name)
			bb.Destroy()
		default:
			if def.Schema.HasKey(core.SelfKey) {
				bb.SetValue(core.SelfKey, r.pawn())
			}
			bbHandle = core.NewHandle[core.Blackboard](bb)
		}
	}

	var bb core.Blackboard
	if live, ok := bbHandle.Resolve(); ok {
		bb = live
	}
	exec := r.newExecutor(fmt.Sprintf("%s_executor", display), bb)
	if exec == nil {
		r.logger.Warn("AddTree: executor construction failed", "id", setup.ID, "tree", def.Name)
		if live, ok := bbHandle.Resolve(); ok {
			live.Destroy()
		}
		return false
	}
	exec.Start(def, core.ModeLooped)

	r.instances = append(r.instances, RunningInstance{
		ID:         setup.ID,
		Executor:   core.NewHandle(exec),
		Blackboard: bbHandle,
	})

	r.logger.Info("AddTree: started tree", "id", setup.ID, "tree", def.Name, "blackboard", bb != nil)
	return true
}

// GetTree returns the first live executor registered under id. A missing id
// (or one whose every handle went stale) yields absent with a diagnostic.
func (r *Registry) GetTree(id string) (core.Executor, bool) {
	if exec, ok := r.findLive(id); ok {
		return exec, true
	}
	r.logger.Warn("GetTree: failed to find running tree", "id", id)
	return nil, false
}

// StopTree gracefully stops the first live executor registered under id.
// The record is retained and the blackboard untouched. No-op when the id is
// unknown or stale; idempotent.
func (r *Registry) StopTree(id string) {
	if exec, ok := r.findLive(id); ok {
		exec.Stop(core.StopGraceful)
	}
}

// RestartTree re-enters the first live tree registered under id from its
// root. Blackboard contents are unaffected by the registry; any reset is
// the executor's own concern. No-op when the id is unknown or stale.
func (r *Registry) RestartTree(id string) {
	if exec, ok := r.findLive(id); ok {
		exec.Restart()
	}
}

// RemoveTree stops, destroys and unregisters every instance registered
// under id, scanning in reverse insertion order so removal never
// invalidates the indices still being visited. Reports whether at least one
// record was removed; safe to call with an unknown id.
func (r *Registry) RemoveTree(id string) bool {
	removed := false
	for i := len(r.instances) - 1; i >= 0; i-- {
		if r.instances[i].ID != id {
			continue
		}
		r.destroyInstance(r.instances[i])
		r.instances = append(r.instances[:i], r.instances[i+1:]...)
		removed = true
	}
	if removed {
		r.logger.Info("RemoveTree: removed tree", "id", id)
	}
	return removed
}

// RemoveAllTrees stops and destroys every registered executor and
// blackboard, then clears the registry. Safe to call repeatedly and on an
// empty registry.
func (r *Registry) RemoveAllTrees() {
	for i := len(r.instances) - 1; i >= 0; i-- {
		r.destroyInstance(r.instances[i])
	}
	r.instances = nil
}

// Size returns the number of registered instances, live or stale.
func (r *Registry) Size() int { return len(r.instances) }

// Instances returns a snapshot of the registry in insertion order, for
// debugging and introspection.
func (r *Registry) Instances() []RunningInstance {
	out := make([]RunningInstance, len(r.instances))
	copy(out, r.instances)
	return out
}

// findLive scans in insertion order for the first record under id whose
// executor handle still resolves. Stale handles are skipped silently.
func (r *Registry) findLive(id string) (core.Executor, bool) {
	for _, inst := range r.instances {
		if inst.ID != id {
			continue
		}
		if exec, ok := inst.Executor.Resolve(); ok {
			return exec, true
		}
	}
	return nil, false
}

// destroyInstance gracefully stops and destroys whatever of the instance's
// referents are still alive. Stale handles are skipped.
func (r *Registry) destroyInstance(inst RunningInstance) {
	if exec, ok := inst.Executor.Resolve(); ok {
		exec.Stop(core.StopGraceful)
		exec.Destroy()
	}
	if bb, ok := inst.Blackboard.Resolve(); ok {
		bb.Destroy()
	}
}

func (r *Registry) pawn() any {
	if r.resolvePawn == nil {
		return nil
	}
	return r.resolvePawn()
}

// displayID returns the identifier used in constructed object display
// names, generating a short one for instances added without an id.
func displayID(id string) string {
	if id != "" {
		return id
	}
	return util.ShortID()
}
