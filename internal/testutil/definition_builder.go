package testutil

import (
	"context"

	"github.com/behaviormesh/behaviormesh/core"
)

// DefinitionBuilder helps construct tree definitions with fluent chaining for tests.
// Example:
//
//	def := NewDefinitionBuilder("combat").ObjectKey(core.SelfKey).Program(prog).Build()
type DefinitionBuilder struct {
	name    string
	keys    []core.KeyDefinition
	program core.Program
}

// NewDefinitionBuilder creates a new builder for a tree definition with the
// given resource name. Use chainable methods then call Build.
func NewDefinitionBuilder(name string) *DefinitionBuilder {
	return &DefinitionBuilder{name: name}
}

// Key declares a schema key of the given type on the resulting definition (chainable).
func (b *DefinitionBuilder) Key(name string, typ core.KeyType) *DefinitionBuilder {
	b.keys = append(b.keys, core.KeyDefinition{Name: name, Type: typ})
	return b
}

// ObjectKey declares an object-typed schema key (chainable).
func (b *DefinitionBuilder) ObjectKey(name string) *DefinitionBuilder {
	return b.Key(name, core.KeyTypeObject)
}

// Program sets the executable body of the definition (chainable).
func (b *DefinitionBuilder) Program(p core.Program) *DefinitionBuilder {
	b.program = p
	return b
}

// Build returns a *core.TreeDefinition. When no keys were declared the schema
// is nil; when no program was set an idle program that never completes a pass
// is used.
func (b *DefinitionBuilder) Build() *core.TreeDefinition {
	def := &core.TreeDefinition{Name: b.name, Program: b.program}
	if def.Program == nil {
		def.Program = IdleProgram()
	}
	if len(b.keys) > 0 {
		def.Schema = &core.Schema{Name: b.name + "_schema", Keys: b.keys}
	}
	return def
}

// IdleProgram returns a program that ticks forever without completing a pass.
func IdleProgram() core.Program {
	return core.ProgramFunc(func(ctx context.Context, bb core.Blackboard) (bool, error) {
		return false, nil
	})
}

// CountingProgram returns a program that increments the given int key on
// every tick and reports a completed pass each time.
func CountingProgram(key string) core.Program {
	return core.ProgramFunc(func(ctx context.Context, bb core.Blackboard) (bool, error) {
		if bb != nil {
			n := 0
			if v, ok := bb.GetValue(key); ok {
				if i, ok := v.(int); ok {
					n = i
				}
			}
			bb.SetValue(key, n+1)
		}
		return true, nil
	})
}
