// Package ident derives stable record identifiers from record content.
package ident

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ID joins parts with ':', trims and lower-cases the result, and returns the
// hex SHA-1 digest. Equal normalized content always yields the same id, so ids
// double as dedup keys across repeated imports.
func ID(parts ...string) string {
	joined := strings.ToLower(strings.TrimSpace(strings.Join(parts, ":")))
	sum := sha1.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}
