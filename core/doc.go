// Package core provides the foundational domain types and interfaces used by
// BehaviorMesh. It defines the core abstractions for:
//
//   - Tree definitions (reusable, read-only behavior resources)
//   - Blackboards (per-instance schema-typed key/value working memory)
//   - Executors (runtime instances advancing one tree on their own cadence)
//   - Weak handles over externally owned objects
//   - Instance setup records consumed by the manager
//
// The package intentionally keeps implementation concerns (storage backends,
// tick loops, the instance registry) out of scope, exposing small interfaces
// so that backends and executors can be swapped without touching the manager.
package core
