package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyType_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		typ   KeyType
		value any
		want  bool
	}{
		{"object accepts anything", KeyTypeObject, struct{}{}, true},
		{"object accepts nil", KeyTypeObject, nil, true},
		{"bool accepts bool", KeyTypeBool, true, true},
		{"bool rejects int", KeyTypeBool, 1, false},
		{"int accepts int", KeyTypeInt, 42, true},
		{"int accepts int64", KeyTypeInt, int64(42), true},
		{"int rejects float", KeyTypeInt, 42.0, false},
		{"float accepts float64", KeyTypeFloat, 3.5, true},
		{"float accepts float32", KeyTypeFloat, float32(3.5), true},
		{"float rejects int", KeyTypeFloat, 3, false},
		{"string accepts string", KeyTypeString, "hello", true},
		{"string rejects bool", KeyTypeString, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Accepts(tt.value))
		})
	}
}

func TestSchema_Key(t *testing.T) {
	schema := &Schema{
		Name: "combat_schema",
		Keys: []KeyDefinition{
			{Name: SelfKey, Type: KeyTypeObject},
			{Name: "shots_fired", Type: KeyTypeInt},
		},
	}

	def, ok := schema.Key("shots_fired")
	assert.True(t, ok)
	assert.Equal(t, KeyTypeInt, def.Type)

	_, ok = schema.Key("unknown")
	assert.False(t, ok)

	assert.True(t, schema.HasKey(SelfKey))
	assert.False(t, schema.HasKey("unknown"))
}
