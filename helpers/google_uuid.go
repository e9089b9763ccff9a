// Package helpers provides small general-purpose utilities shared across the
// SDK.
package helpers

import "github.com/google/uuid"

// CreateUUID returns a new random UUID string.
func CreateUUID() string {
	return uuid.New().String()
}

// ParseUUID reports whether s is a valid UUID.
func ParseUUID(s string) error {
	_, err := uuid.Parse(s)
	return err
}

// IdempotencyKey returns a key for deduplicating mutating API requests. The
// transport attaches one per logical call, so every retry attempt of that
// call carries the same key.
func IdempotencyKey() string {
	return "hnode-" + uuid.New().String()
}
