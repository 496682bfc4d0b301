package manager

import (
	"errors"
	"time"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
)

// ErrNotAuthoritative is returned by mutating Manager entry points when the
// current process instance is not authoritative for the owning agent.
var ErrNotAuthoritative = errors.New("behaviormesh: caller is not authoritative for this agent")

// PawnProvider is implemented by owners that control a pawn on behalf of the
// agent — typically a controller the manager is attached to instead of the
// pawn itself. The default pawn resolution goes through it.
type PawnProvider interface {
	Pawn() any
}

// Options holds dependency and configuration overrides passed to New.
type Options struct {
	// Logger receives lifecycle diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Authority reports whether this process instance may mutate the
	// agent's trees. Consulted before the default-tree bootstrap and at
	// the top of every mutating entry point. Defaults to always true
	// (standalone deployments are their own authority).
	Authority func() bool
	// Defaults is the configured set of trees started automatically on
	// activation, in declaration order.
	Defaults []core.InstanceSetup
	// Owner is the object the manager is attached to. Only used by the
	// default pawn resolution: an owner implementing PawnProvider supplies
	// the self reference seeded into each blackboard.
	Owner any
	// PawnResolver overrides the default owner-based pawn resolution.
	PawnResolver func() any
	// NewExecutor and NewBlackboard are forwarded to the registry.
	NewExecutor   core.ExecutorFactory
	NewBlackboard core.BlackboardFactory
}

// Manager binds the instance registry to the owning agent's lifecycle and
// to the authority check. Activation bootstraps the configured default trees
// when authoritative; deactivation unconditionally tears everything down so
// no executor or blackboard outlives the agent.
//
// Like the registry it wraps, the manager is designed for single-threaded,
// synchronous use from the agent's own execution context.
type Manager struct {
	registry    *Registry
	authority   func() bool
	defaults    []core.InstanceSetup
	owner       any
	resolvePawn func() any
	logger      logging.Logger
	active      bool
}

// New constructs a Manager with optional overrides.
func New(optFns ...func(o *Options)) *Manager {
	opts := Options{
		Logger:    logging.NoOpLogger{},
		Authority: func() bool { return true },
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	m := &Manager{
		authority:   opts.Authority,
		defaults:    opts.Defaults,
		owner:       opts.Owner,
		resolvePawn: opts.PawnResolver,
		logger:      opts.Logger,
	}
	m.registry = NewRegistry(func(o *RegistryOptions) {
		o.Logger = opts.Logger
		o.PawnResolver = m.ResolvePawn
		if opts.NewExecutor != nil {
			o.NewExecutor = opts.NewExecutor
		}
		if opts.NewBlackboard != nil {
			o.NewBlackboard = opts.NewBlackboard
		}
	})
	return m
}

// Activate transitions the manager to active and, when this process
// instance is authoritative, starts the configured default trees in
// declaration order. Each default is independent: a failure is logged and
// the remaining defaults still start. Re-activation while active is a
// no-op.
func (m *Manager) Activate() {
	if m.active {
		return
	}
	m.active = true
	if !m.authority() {
		m.logger.Info("activate: not authoritative, skipping default trees")
		return
	}
	m.runDefaultTrees()
}

// Deactivate tears down every running instance — unconditionally, regardless
// of authority — and transitions the manager to inactive. Idempotent.
func (m *Manager) Deactivate() {
	start := time.Now()
	count := m.registry.Size()
	m.registry.RemoveAllTrees()
	m.active = false
	if count > 0 {
		m.logger.Info("deactivate: tore down running trees", "count", count, "duration", time.Since(start))
	}
}

// Active reports whether the manager is between Activate and Deactivate.
func (m *Manager) Active() bool { return m.active }

// runDefaultTrees starts every configured default setup in order.
func (m *Manager) runDefaultTrees() {
	for _, setup := range m.defaults {
		if !m.registry.AddTree(setup) {
			m.logger.Warn("activate: failed to start default tree", "id", setup.ID)
		}
	}
}

// AddTree adds and starts a new tree instance. Returns ErrNotAuthoritative
// without mutating anything when the authority check fails; otherwise the
// boolean carries the registry's add result.
func (m *Manager) AddTree(setup core.InstanceSetup) (bool, error) {
	if !m.authority() {
		return false, ErrNotAuthoritative
	}
	return m.registry.AddTree(setup), nil
}

// GetTree returns the first live executor registered under id.
func (m *Manager) GetTree(id string) (core.Executor, bool) {
	return m.registry.GetTree(id)
}

// StopTree gracefully stops the first live tree registered under id.
// Returns ErrNotAuthoritative when the authority check fails.
func (m *Manager) StopTree(id string) error {
	if !m.authority() {
		return ErrNotAuthoritative
	}
	m.registry.StopTree(id)
	return nil
}

// RestartTree re-enters the first live tree registered under id from its
// root. Returns ErrNotAuthoritative when the authority check fails.
func (m *Manager) RestartTree(id string) error {
	if !m.authority() {
		return ErrNotAuthoritative
	}
	m.registry.RestartTree(id)
	return nil
}

// RemoveTree stops, destroys and unregisters every instance under id.
// Removal is cleanup and is deliberately not authority-gated, so teardown
// remains possible on every process instance.
func (m *Manager) RemoveTree(id string) bool {
	return m.registry.RemoveTree(id)
}

// RemoveAllTrees tears down every running instance. Not authority-gated for
// the same reason as RemoveTree.
func (m *Manager) RemoveAllTrees() {
	m.registry.RemoveAllTrees()
}

// Registry exposes the underlying instance registry for debugging and
// introspection. Mutations must still go through the manager.
func (m *Manager) Registry() *Registry { return m.registry }

// ResolvePawn returns the owning agent's controlled pawn reference, or nil.
// A configured PawnResolver takes precedence; otherwise the owner is
// consulted when it implements PawnProvider. Used only to seed each
// blackboard's self key.
func (m *Manager) ResolvePawn() any {
	if m.resolvePawn != nil {
		return m.resolvePawn()
	}
	if p, ok := m.owner.(PawnProvider); ok {
		return p.Pawn()
	}
	return nil
}
