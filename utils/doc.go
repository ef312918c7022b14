// Package utils provides the shared lexical formatting filters used across
// OpenADR message rendering.
//
// It contains:
//   - Canonical date-time formatting (UTC RFC 3339 with Z)
//   - Canonical ISO-8601 duration formatting (PT15M, P1DT2H, ...)
//
// Both filters are pure functions and are reusable by every message type
// that carries xcal timestamps or durations.
package utils
