package instantiate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKwargs_Clone_IsDeep(t *testing.T) {
	original := Kwargs{
		"map":     map[string]any{"k": "v"},
		"strings": map[string]string{"a": "b"},
		"list":    []any{map[string]any{"inner": 1}},
		"ports":   map[any]any{80: map[string]any{"name": "web"}},
		"scalar":  7,
	}

	clone := original.Clone()
	clone["map"].(map[string]any)["k"] = "changed"
	clone["strings"].(map[string]string)["a"] = "changed"
	clone["list"].([]any)[0].(map[string]any)["inner"] = 2
	clone["ports"].(map[any]any)[80].(map[string]any)["name"] = "changed"
	clone["scalar"] = 8

	assert.Equal(t, "v", original["map"].(map[string]any)["k"])
	assert.Equal(t, "b", original["strings"].(map[string]string)["a"])
	assert.Equal(t, 1, original["list"].([]any)[0].(map[string]any)["inner"])
	assert.Equal(t, "web", original["ports"].(map[any]any)[80].(map[string]any)["name"])
	assert.Equal(t, 7, original["scalar"])
}

func TestKwargs_Clone_Nil(t *testing.T) {
	var k Kwargs
	clone := k.Clone()
	require.NotNil(t, clone)
	assert.Empty(t, clone)
}

func TestKwargs_Only(t *testing.T) {
	k := Kwargs{"a": 1, "z": 2, "b": 3}

	require.NoError(t, k.Only("a", "b", "z"))

	err := k.Only("a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstructorMismatch)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestMerge_ShallowOverride(t *testing.T) {
	defaults := Kwargs{"nested": map[string]any{"a": 1, "b": 1}}
	config := Kwargs{"nested": map[string]any{"b": 2}}

	merged := merge(defaults, config, nil)

	assert.Equal(t, map[string]any{"b": 2}, merged["nested"])
}

func TestFormatKwargs(t *testing.T) {
	assert.Equal(t, "a\t\t1\n\tb\t\tx", FormatKwargs(Kwargs{"b": "x", "a": 1}))
	assert.Empty(t, FormatKwargs(nil))
}
