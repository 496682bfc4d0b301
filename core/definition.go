package core

import "context"

// Program is the executable body of a tree definition. How a program
// organizes its internal nodes, tasks and decorators is outside this
// module's concern; the manager only starts, stops and restarts it through
// an executor.
type Program interface {
	// Tick advances the program by one step against the instance blackboard
	// (nil when the definition declares no schema). done reports that the
	// program completed a full pass from its root; in looped mode the
	// executor re-enters, in single-run mode it stops.
	//
	// Tick must respect ctx cancellation: a forced stop cancels the context
	// mid-tick.
	Tick(ctx context.Context, bb Blackboard) (done bool, err error)
}

// ProgramFunc adapts a plain function to the Program interface.
type ProgramFunc func(ctx context.Context, bb Blackboard) (bool, error)

// Tick implements Program.
func (f ProgramFunc) Tick(ctx context.Context, bb Blackboard) (bool, error) {
	return f(ctx, bb)
}

// TreeDefinition is a compiled, reusable behavior tree resource. Definitions
// are read-only once handed to the manager; every running instance spawned
// from one gets its own executor and its own blackboard.
type TreeDefinition struct {
	// Name identifies the resource in diagnostics.
	Name string

	// Schema is the optional blackboard schema this tree executes against.
	// Nil means the tree runs without a blackboard.
	Schema *Schema

	// Program is the executable body advanced by the executor.
	Program Program
}
