package core

// SelfKey is the well-known schema key that receives the owning agent's
// controlled pawn reference when a tree instance is added.
const SelfKey = "SelfActor"

// KeyType enumerates the value types a blackboard schema can declare.
type KeyType int

const (
	// KeyTypeObject accepts any value, including nil. Used for references to
	// actors, pawns and other engine-side objects.
	KeyTypeObject KeyType = iota
	// KeyTypeBool accepts boolean values.
	KeyTypeBool
	// KeyTypeInt accepts integer values.
	KeyTypeInt
	// KeyTypeFloat accepts floating point values.
	KeyTypeFloat
	// KeyTypeString accepts string values.
	KeyTypeString
)

// String returns the string representation of the key type.
func (k KeyType) String() string {
	switch k {
	case KeyTypeObject:
		return "object"
	case KeyTypeBool:
		return "bool"
	case KeyTypeInt:
		return "int"
	case KeyTypeFloat:
		return "float"
	case KeyTypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Accepts reports whether v may be stored under a key of this type.
func (k KeyType) Accepts(v any) bool {
	switch k {
	case KeyTypeObject:
		return true
	case KeyTypeBool:
		_, ok := v.(bool)
		return ok
	case KeyTypeInt:
		switch v.(type) {
		case int, int8, int16, int32, int64:
			return true
		}
		return false
	case KeyTypeFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
		return false
	case KeyTypeString:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// KeyDefinition declares a single typed key in a blackboard schema.
type KeyDefinition struct {
	Name string
	Type KeyType
}

// Schema describes the keys a blackboard exposes. Schemas are read-only
// resources shared by every instance spawned from the same tree definition;
// each instance gets its own store initialized from the schema.
type Schema struct {
	Name string
	Keys []KeyDefinition
}

// Key returns the definition for name, if declared.
func (s *Schema) Key(name string) (KeyDefinition, bool) {
	for _, k := range s.Keys {
		if k.Name == name {
			return k, true
		}
	}
	return KeyDefinition{}, false
}

// HasKey reports whether the schema declares a key with the given name.
func (s *Schema) HasKey(name string) bool {
	_, ok := s.Key(name)
	return ok
}

// Blackboard is the per-instance key/value working memory a tree executes
// against. Implementations must be safe for concurrent use: the executor
// advances on its own goroutine while the registry seeds and tears down the
// store from the agent's update context.
//
// Mutating a destroyed blackboard is a silent no-op; reads return absent.
type Blackboard interface {
	Managed

	// Name returns the display name assigned at construction, used in
	// diagnostics only.
	Name() string

	// InitializeFromSchema prepares the store for the given schema. It
	// reports false when the schema is nil or the backing storage could not
	// be prepared; the caller treats that as degraded, not fatal.
	InitializeFromSchema(schema *Schema) bool

	// SetValue stores a value under a declared key. Writes to undeclared
	// keys or with values the key type does not accept are dropped with a
	// diagnostic.
	SetValue(key string, value any)

	// GetValue returns the stored value for key, if any.
	GetValue(key string) (any, bool)

	// Destroy releases the store. Safe to call more than once.
	Destroy()
}

// BlackboardFactory constructs a blackboard store with the given display
// name. The registry calls it once per added instance whose definition
// declares a schema. A nil return is treated like a failed schema
// initialization: the instance still starts, without a blackboard.
type BlackboardFactory func(name string) Blackboard
