// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package substitute

import (
	"os"
	"reflect"
	"regexp"
)

var (
	bracedReference = regexp.MustCompile(`^\$\{(.*?)\}\n?$`)
	bareReference   = regexp.MustCompile(`(?i)^\$([_a-z][_a-z0-9]*)\n?$`)
)

// EnvLookup reports the value of an environment variable and whether it is
// set. os.LookupEnv satisfies it.
type EnvLookup func(key string) (string, bool)

// Substitutor resolves config variable references against an environment
// and a caller-supplied table. The zero value is not usable; use [New].
type Substitutor struct {
	lookupEnv EnvLookup
}

// Option configures a [Substitutor].
type Option func(*Substitutor)

// WithEnvLookup replaces the process environment as the first lookup source.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(s *Substitutor) {
		if lookup != nil {
			s.lookupEnv = lookup
		}
	}
}

// New returns a Substitutor reading the process environment unless
// configured otherwise.
func New(opts ...Option) *Substitutor {
	s := &Substitutor{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Variable substitutes a single value.
//
// If value is a string of the form ${NAME} or $NAME, optionally followed by
// a single trailing newline as left by YAML block scalars, the environment value
// of NAME is returned when non-empty, then vars[NAME] when truthy (as
// stored, not converted to a string), and otherwise value itself. Any other
// value, including nil, booleans and numbers, is returned unchanged.
func (s *Substitutor) Variable(value any, vars map[string]any) any {
	template, ok := value.(string)
	if !ok {
		return value
	}

	name, ok := referenceName(template)
	if !ok {
		return template
	}

	if envValue, found := s.lookupEnv(name); found && envValue != "" {
		return envValue
	}

	if tableValue, found := vars[name]; found && truthy(tableValue) {
		return tableValue
	}

	return template
}

// All substitutes every string leaf of data and returns a structurally
// identical copy. Maps (map[string]any, map[string]string, and map[any]any
// as decoded by yaml.v3 for mappings with non-string keys) and sequences
// ([]any, []string) are walked recursively; every other value goes through
// [Substitutor.Variable]. data itself is never modified.
//
// Typed string containers come back as map[string]any and []any because a
// table value need not be a string.
func (s *Substitutor) All(data any, vars map[string]any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = s.All(item, vars)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = s.Variable(item, vars)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for key, item := range v {
			out[key] = s.All(item, vars)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.All(item, vars)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.Variable(item, vars)
		}
		return out
	default:
		return s.Variable(data, vars)
	}
}

func referenceName(template string) (string, bool) {
	if m := bracedReference.FindStringSubmatch(template); m != nil {
		return m[1], true
	}
	if m := bareReference.FindStringSubmatch(template); m != nil {
		return m[1], true
	}
	return "", false
}

// truthy mirrors the usual notion of an "empty" config value: nil, false,
// zero numbers, empty strings and empty collections are not usable
// substitutions.
func truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}

var processSubstitutor = New()

// SubstituteConfigVariable substitutes a single value using the process
// environment. See [Substitutor.Variable].
func SubstituteConfigVariable(value any, vars map[string]any) any {
	return processSubstitutor.Variable(value, vars)
}

// SubstituteAllConfigVariables substitutes every string leaf of data using
// the process environment. See [Substitutor.All].
func SubstituteAllConfigVariables(data any, vars map[string]any) any {
	return processSubstitutor.All(data, vars)
}
