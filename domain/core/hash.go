package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is a SHA-256 content hash, hex-encoded.
type Hash string

// NewHash hashes data.
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation.
func (h Hash) String() string { return string(h) }

// IsEmpty reports whether the hash was never computed.
func (h Hash) IsEmpty() bool { return h == "" }

// Equals reports whether two hashes are equal.
func (h Hash) Equals(other Hash) bool { return h == other }

// BaselineHash fingerprints a baseline file's raw bytes. No export or other
// package in this repository records it.
type BaselineHash Hash

// NewBaselineHash hashes the raw bytes of a baseline CSV file.
func NewBaselineHash(data []byte) BaselineHash { return BaselineHash(NewHash(data)) }

func (h BaselineHash) String() string { return Hash(h).String() }
