// Package blackboard houses concrete implementations of the core.Blackboard
// contract. The interface itself (and the Schema type) live in the core
// package to centralize domain contracts. Keeping only implementations here
// prevents higher level packages (manager, executor) from depending on
// concrete storage.
//
// Add additional backends (Redis, Postgres, etc.) in sub‑packages without
// changing any calling code – only the wiring layer needs to decide which
// factory to hand to the manager.
package blackboard
