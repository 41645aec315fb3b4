package instantiate

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Reserved configuration keys naming the target of an instantiation.
const (
	ModuleNameKey = "module_name"
	ClassNameKey  = "class_name"
)

// Kwargs is a string-keyed configuration record. Values are arbitrary:
// scalars, nested maps and sequences as produced by a YAML or JSON decoder.
type Kwargs map[string]any

// Clone returns a deep copy of k. Nested map[string]any, map[any]any, Kwargs,
// map[string]string and slice values are copied; other values are shared.
// A nil receiver yields an empty, non-nil map.
func (k Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(k))
	for key, v := range k {
		out[key] = cloneValue(v)
	}
	return out
}

// Keys returns the keys of k in sorted order.
func (k Kwargs) Keys() []string {
	return slices.Sorted(maps.Keys(k))
}

// Only reports an [ErrConstructorMismatch] naming the first (in sorted
// order) key of k that is not listed in allowed. Untyped factories use it to
// reject unexpected keyword arguments.
func (k Kwargs) Only(allowed ...string) error {
	for _, key := range k.Keys() {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("%w: got an unexpected keyword argument %q", ErrConstructorMismatch, key)
		}
	}
	return nil
}

// pop removes key from k and returns its value.
func (k Kwargs) pop(key string) (any, bool) {
	v, ok := k[key]
	if ok {
		delete(k, key)
	}
	return v, ok
}

// merge returns a new record holding the entries of every source, where a
// later source overwrites same-key entries of earlier ones. The merge is
// shallow: nested maps are replaced, not combined.
func merge(sources ...Kwargs) Kwargs {
	size := 0
	for _, src := range sources {
		size += len(src)
	}

	out := make(Kwargs, size)
	for _, src := range sources {
		maps.Copy(out, src)
	}
	return out
}

// FormatKwargs renders k for error messages: one "key\t\tvalue" line per
// entry, sorted by key, joined by "\n\t".
func FormatKwargs(k Kwargs) string {
	lines := make([]string, 0, len(k))
	for _, key := range k.Keys() {
		lines = append(lines, key+"\t\t"+fmt.Sprint(k[key]))
	}
	return strings.Join(lines, "\n\t")
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Kwargs:
		return t.Clone()
	case map[string]any:
		return map[string]any(Kwargs(t).Clone())
	case map[string]string:
		return maps.Clone(t)
	case map[any]any:
		out := make(map[any]any, len(t))
		for key, item := range t {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
