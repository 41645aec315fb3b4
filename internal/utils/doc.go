// Package utils provides general-purpose helpers used across the module:
// directory creation, the resty-based HTTP client and identifier
// generation.
package utils
