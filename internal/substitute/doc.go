// Package substitute replaces config variable references in configuration
// values.
//
// A reference is a whole string of the form ${NAME} or $NAME. It resolves to
// the environment variable NAME when that is set and non-empty, otherwise to
// the entry NAME of a config-variables table when that is truthy, otherwise
// the reference is left as is. Strings that are not references and
// non-string values are returned unchanged.
//
// The config-variables table is usually loaded from a YAML file with
// [LoadVariables].
package substitute
