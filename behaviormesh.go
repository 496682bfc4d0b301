// Package behaviormesh provides a high-level façade over the parallel
// behavior instance manager and its supporting services (blackboards,
// executors & logging) enabling concurrent behavior tree execution for a
// single agent. Most applications interact with this package by:
//  1. Creating a Mesh via New() (optionally overriding default in-memory services)
//  2. Adding one or more tree instances under caller-chosen identifiers
//  3. Querying, stopping, restarting or removing instances by identifier
//
// The façade delegates lifecycle coordination to manager.Manager while
// keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply a
// durable blackboard implementation and a structured logger.
package behaviormesh

import (
	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
	"github.com/behaviormesh/behaviormesh/manager"
)

// Options configures the Mesh instance.
type Options struct {
	// Logger receives lifecycle and diagnostic output. Defaults to NoOpLogger.
	Logger logging.Logger

	// Authority reports whether this process instance may mutate the agent's
	// tree set. Defaults to always true for standalone deployments.
	Authority func() bool

	// DefaultTrees is the instance set started automatically on Activate, in
	// declaration order.
	DefaultTrees []core.InstanceSetup

	// Owner is the object the mesh acts on behalf of. An owner implementing
	// manager.PawnProvider supplies the self reference seeded into each
	// blackboard.
	Owner any

	// PawnResolver overrides owner-based pawn resolution.
	PawnResolver func() any

	// NewExecutor overrides the built-in tick-loop executor factory.
	NewExecutor core.ExecutorFactory

	// NewBlackboard overrides the built-in in-memory blackboard factory.
	NewBlackboard core.BlackboardFactory
}

// Mesh is the top-level entry point: a lifecycle-managed collection of
// concurrently running behavior tree instances for one agent.
type Mesh struct {
	*manager.Manager
}

// New creates a Mesh with sensible defaults, applying any option overrides.
func New(optFns ...func(o *Options)) *Mesh {
	opts := Options{
		Logger:    logging.NoOpLogger{},
		Authority: func() bool { return true },
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	m := manager.New(func(o *manager.Options) {
		o.Logger = opts.Logger
		o.Authority = opts.Authority
		o.Defaults = opts.DefaultTrees
		o.Owner = opts.Owner
		o.PawnResolver = opts.PawnResolver
		o.NewExecutor = opts.NewExecutor
		o.NewBlackboard = opts.NewBlackboard
	})
	return &Mesh{Manager: m}
}
