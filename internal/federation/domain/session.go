package domain

import "time"

// ConsumedSession marks a sealed profile cookie as already read. Only the
// fingerprint of the cookie value is kept, never the value itself.
type ConsumedSession struct {
	Fingerprint string
	ConsumedAt  time.Time
	ExpiresAt   time.Time // after this the cookie cannot be presented anyway
}
