package blackboard

import (
	"sync"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
)

// InMemory is a volatile core.Blackboard implementation storing values in a
// process local map. It is safe for concurrent access: the executor advances
// on its own goroutine while the registry seeds and destroys the store from
// the agent's update context. Best suited for tests, examples and
// single-process agents; a durable backend lives in the redis sub-package.
type InMemory struct {
	mu     sync.RWMutex
	name   string
	schema *core.Schema
	values map[string]any
	alive  bool
	logger logging.Logger
}

// Options holds overrides passed to NewInMemory.
type Options struct {
	// Logger used for dropped-write diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// NewInMemory constructs an empty in-memory blackboard with the given
// display name. The store is alive but holds no keys until
// InitializeFromSchema succeeds.
func NewInMemory(name string, optFns ...func(o *Options)) *InMemory {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemory{name: name, alive: true, logger: opts.Logger}
}

// Factory returns a core.BlackboardFactory producing in-memory stores that
// share the given logger.
func Factory(logger logging.Logger) core.BlackboardFactory {
	return func(name string) core.Blackboard {
		return NewInMemory(name, func(o *Options) { o.Logger = logger })
	}
}

// Name returns the display name assigned at construction.
func (b *InMemory) Name() string { return b.name }

// Alive reports whether the store has not been destroyed.
func (b *InMemory) Alive() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.alive
}

// InitializeFromSchema prepares the store for the given schema. A nil schema
// reports false.
func (b *InMemory) InitializeFromSchema(schema *core.Schema) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive || schema == nil {
		return false
	}
	b.schema = schema
	b.values = make(map[string]any, len(schema.Keys))
	return true
}

// SetValue stores a value under a declared key. Writes to undeclared keys,
// type-mismatched values, or a destroyed store are dropped with a diagnostic.
func (b *InMemory) SetValue(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive || b.schema == nil {
		b.logger.Warn("blackboard write dropped, store not initialized", "blackboard", b.name, "key", key)
		return
	}
	def, ok := b.schema.Key(key)
	if !ok {
		b.logger.Warn("blackboard write dropped, key not in schema", "blackboard", b.name, "key", key)
		return
	}
	if !def.Type.Accepts(value) {
		b.logger.Warn("blackboard write dropped, value type not accepted", "blackboard", b.name, "key", key, "key_type", def.Type.String())
		return
	}
	b.values[key] = value
}

// GetValue returns the stored value for key, if any.
func (b *InMemory) GetValue(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.alive || b.values == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Destroy marks the store dead and drops its contents. Safe to call more
// than once.
func (b *InMemory) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alive = false
	b.values = nil
	b.schema = nil
}
