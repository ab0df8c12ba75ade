// Package id generates URL-safe unique identifiers.
package id

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// NewID generates a URL-safe identifier using UUIDv4 bytes encoded as base32.
// The identifier is 26 characters long, lowercase, and contains no padding.
func NewID() string {
	var raw [16]byte
	// crypto/rand.Read always succeeds; it crashes the program when the
	// random source is broken.
	_, _ = rand.Read(raw[:])

	// RFC 4122 variant and version bits for a v4 UUID.
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded)
}
