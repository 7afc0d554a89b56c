// Package redact masks credentials inside decoded JSON trees before they are
// logged or echoed back to a client for debugging.
package redact

import (
	"fmt"
)

// Mask replaces secret-like values entirely.
const Mask = "***"

const (
	keepPrefix = 12
	keepSuffix = 6
)

// tokenKeys hold bearer credentials; their values are shortened, not removed,
// so two payloads can still be correlated by eye.
var tokenKeys = map[string]struct{}{
	"access_token":  {},
	"refresh_token": {},
	"id_token":      {},
	"token":         {},
}

// secretKeys hold client credentials and are always fully masked.
var secretKeys = map[string]struct{}{
	"client_secret": {},
	"secret_key":    {},
	"secret-key":    {},
}

// Value returns a redacted copy of v. Objects are rebuilt key by key, arrays
// element-wise, and scalars are returned unchanged. The input is never mutated.
func Value(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if _, ok := secretKeys[k]; ok {
				out[k] = Mask
				continue
			}
			if _, ok := tokenKeys[k]; ok {
				if s, isString := child.(string); isString {
					out[k] = Token(s)
					continue
				}
				out[k] = child
				continue
			}
			out[k] = Value(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Value(child)
		}
		return out
	default:
		return v
	}
}

// Token shortens a bearer token to its first 12 and last 6 characters and
// appends the original length, e.g. "abcdefghijkl…uvwxyz (len=26)".
func Token(s string) string {
	r := []rune(s)
	start := r[:min(keepPrefix, len(r))]
	end := r[max(len(r)-keepSuffix, 0):]
	return fmt.Sprintf("%s…%s (len=%d)", string(start), string(end), len(r))
}
