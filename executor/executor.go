// Package executor provides the built-in core.Executor implementation: a
// per-instance goroutine that advances a tree program on its own update
// cadence, independent of the registry referencing it.
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
)

// DefaultTickInterval is the update cadence used when none is configured.
const DefaultTickInterval = 50 * time.Millisecond

// Options holds overrides passed to New.
type Options struct {
	// Logger used for start/stop and tick failure diagnostics.
	Logger logging.Logger
	// TickInterval is the cadence at which the program is advanced.
	TickInterval time.Duration
}

// TreeExecutor runs one tree definition against one blackboard. The tick
// loop owns its cadence; the registry only requests starts, stops and
// restarts and never awaits their completion. All exported methods are safe
// for concurrent use.
type TreeExecutor struct {
	name     string
	bb       core.Blackboard
	logger   logging.Logger
	interval time.Duration

	mu      sync.Mutex
	alive   bool
	running bool
	def     *core.TreeDefinition
	mode    core.ExecutionMode
	cancel  context.CancelFunc
	stopCh  chan struct{}
	restart chan struct{}
	done    chan struct{}
}

// New constructs an executor with the given display name bound to the given
// blackboard (nil is allowed: the tree then runs without working memory).
func New(name string, bb core.Blackboard, optFns ...func(o *Options)) *TreeExecutor {
	opts := Options{Logger: logging.NoOpLogger{}, TickInterval: DefaultTickInterval}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &TreeExecutor{
		name:     name,
		bb:       bb,
		logger:   opts.Logger,
		interval: opts.TickInterval,
		alive:    true,
	}
}

// Factory returns a core.ExecutorFactory producing tree executors that share
// the given options.
func Factory(optFns ...func(o *Options)) core.ExecutorFactory {
	return func(name string, bb core.Blackboard) core.Executor {
		return New(name, bb, optFns...)
	}
}

// Name returns the display name assigned at construction.
func (e *TreeExecutor) Name() string { return e.name }

// Alive reports whether the executor has not been destroyed.
func (e *TreeExecutor) Alive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alive
}

// Running reports whether the tick loop is currently advancing a tree.
func (e *TreeExecutor) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start begins advancing the given definition in the given mode. A nil
// definition, a destroyed executor or a second Start while running are
// ignored with a diagnostic.
func (e *TreeExecutor) Start(def *core.TreeDefinition, mode core.ExecutionMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.alive {
		e.logger.Warn("start ignored, executor destroyed", "executor", e.name)
		return
	}
	if def == nil || def.Program == nil {
		e.logger.Warn("start ignored, nil tree definition or program", "executor", e.name)
		return
	}
	if e.running {
		e.logger.Warn("start ignored, tree already running", "executor", e.name, "tree", e.def.Name)
		return
	}
	e.def = def
	e.mode = mode
	e.startLocked()
	e.logger.Debug("tree started", "executor", e.name, "tree", def.Name, "mode", mode.String())
}

// startLocked launches the tick loop; caller must hold the mutex and have
// set def and mode.
func (e *TreeExecutor) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.stopCh = make(chan struct{})
	e.restart = make(chan struct{}, 1)
	e.done = make(chan struct{})
	e.running = true
	go e.loop(ctx, e.def, e.mode, e.stopCh, e.restart, e.done)
}

func (e *TreeExecutor) loop(
	ctx context.Context,
	def *core.TreeDefinition,
	mode core.ExecutionMode,
	stopCh <-chan struct{},
	restart <-chan struct{},
	done chan<- struct{},
) {
	defer close(done)
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			// Graceful stop: any in-flight tick already finished because
			// ticks run synchronously inside this loop.
			return
		case <-restart:
			if r, ok := def.Program.(interface{ Reset() }); ok {
				r.Reset()
			}
			e.logger.Debug("tree re-entering from root", "executor", e.name, "tree", def.Name)
		case <-ticker.C:
			passDone, err := def.Program.Tick(ctx, e.bb)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				e.logger.Warn("tree program tick failed", "executor", e.name, "tree", def.Name, "error", err.Error())
				continue
			}
			if passDone && mode == core.ModeSingleRun {
				e.logger.Debug("single-run tree completed", "executor", e.name, "tree", def.Name)
				return
			}
		}
	}
}

// Stop requests the running tree to wind down. Graceful lets the in-flight
// tick finish; forced cancels the execution context. Fire-and-forget: the
// loop exits asynchronously. Idempotent and a no-op when not running.
func (e *TreeExecutor) Stop(mode core.StopMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	if mode == core.StopForced {
		e.cancel()
		return
	}
	select {
	case <-e.stopCh:
		// already stopping
	default:
		close(e.stopCh)
	}
}

// Restart re-enters the tree from its root. When the loop is running the
// request is signalled to it (programs that keep per-pass state may
// implement Reset to observe it); when the loop has stopped but the
// executor is alive, the last definition is started again. The blackboard
// is never touched.
func (e *TreeExecutor) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.alive {
		e.logger.Warn("restart ignored, executor destroyed", "executor", e.name)
		return
	}
	if e.running {
		select {
		case e.restart <- struct{}{}:
		default:
			// a restart is already pending
		}
		return
	}
	if e.def == nil {
		e.logger.Warn("restart ignored, no tree was ever started", "executor", e.name)
		return
	}
	e.startLocked()
	e.logger.Debug("tree restarted", "executor", e.name, "tree", e.def.Name)
}

// Destroy force-stops the tree and marks the executor dead. The loop
// unwinds asynchronously; nothing is awaited. Safe to call more than once.
func (e *TreeExecutor) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.alive {
		return
	}
	e.alive = false
	if e.running && e.cancel != nil {
		e.cancel()
	}
}
