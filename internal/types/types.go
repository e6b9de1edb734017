// README: Shared value types used across modules.
package types

import (
	"crypto/rand"
	"encoding/hex"
)

// ID is an opaque identifier (32 hex chars).
type ID string

// NewID generates a random 32-character hex identifier.
func NewID() ID {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return ID(hex.EncodeToString(b))
}
