// Package manager implements the parallel behavior instance manager, the
// coordination core of BehaviorMesh.
//
// Two pieces make it up:
//
//   - Registry: an ordered collection of running tree instances, each pairing
//     an identifier with weak handles to its executor and blackboard. It
//     provides the keyed lifecycle operations (AddTree, GetTree, StopTree,
//     RestartTree, RemoveTree, RemoveAllTrees) and owns the collection
//     exclusively — no other component appends to or removes from it.
//
//   - Manager: binds the registry to the owning agent's lifecycle
//     (Activate/Deactivate), to an authority predicate gating mutation in
//     replicated deployments, and to the pawn resolution hook that seeds each
//     blackboard's self key.
//
// The registry holds non-owning weak handles: executors and blackboards may
// be destroyed externally at any point between two operations, so every
// operation re-resolves its handles and treats a stale referent as absent,
// never as an error. The registry itself is designed for single-threaded,
// synchronous use from whichever execution context owns the agent; the
// executors it references advance asynchronously on their own cadence.
package manager
