package core

// ExecutionMode selects how an executor proceeds after a full pass of the
// tree completes.
type ExecutionMode int

const (
	// ModeLooped re-enters the tree from its root indefinitely. The manager
	// always starts instances in this mode.
	ModeLooped ExecutionMode = iota
	// ModeSingleRun stops the executor after the first completed pass.
	ModeSingleRun
)

// String returns the string representation of the execution mode.
func (m ExecutionMode) String() string {
	if m == ModeSingleRun {
		return "single"
	}
	return "looped"
}

// StopMode selects how an executor winds down a running tree.
type StopMode int

const (
	// StopGraceful lets the in-flight tick finish before the loop exits.
	StopGraceful StopMode = iota
	// StopForced cancels the execution context immediately.
	StopForced
)

// String returns the string representation of the stop mode.
func (m StopMode) String() string {
	if m == StopForced {
		return "forced"
	}
	return "graceful"
}

// Executor is a runtime instance that advances one tree definition against
// one blackboard on its own update cadence, independent of the registry that
// references it. Stop and Restart are fire-and-forget requests: completion
// is asynchronous and never awaited by callers.
type Executor interface {
	Managed

	// Name returns the display name assigned at construction.
	Name() string

	// Start begins advancing the given definition in the given mode. A nil
	// definition or a second Start while running is ignored with a
	// diagnostic.
	Start(def *TreeDefinition, mode ExecutionMode)

	// Stop requests the running tree to wind down.
	Stop(mode StopMode)

	// Restart re-enters the tree from its root. Blackboard contents are not
	// touched; any reset is the program's own concern.
	Restart()

	// Destroy force-stops the tree and releases the executor. Safe to call
	// more than once.
	Destroy()
}

// ExecutorFactory constructs an executor with the given display name bound
// to the given blackboard (nil when the definition declares no schema). The
// registry calls it once per added instance and fails the add when it
// returns nil.
type ExecutorFactory func(name string, bb Blackboard) Executor
