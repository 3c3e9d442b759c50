// Package core holds the small identifier, hashing and timestamp primitives
// shared by every pilot package.
package core

import (
	"github.com/google/uuid"
)

// ID is a unique, opaque, time-ordered identifier.
type ID string

// NewID creates a new time-ordered identifier.
func NewID() ID {
	// UUID v7 gives sortable, time-ordered IDs; fall back to v4 if
	// generation ever fails (e.g. exhausted entropy source).
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation.
func (id ID) String() string { return string(id) }

// IsEmpty reports whether the ID has never been assigned.
func (id ID) IsEmpty() bool { return id == "" }

// Domain-specific ID kinds.
type (
	// WorkloadID identifies a workload created by create(name).
	WorkloadID ID
	// SessionRunID identifies a single run_workload invocation.
	SessionRunID ID
)

func (id WorkloadID) String() string   { return ID(id).String() }
func (id SessionRunID) String() string { return ID(id).String() }

// NewWorkloadID creates a new workload identifier.
func NewWorkloadID() WorkloadID { return WorkloadID(NewID()) }

// NewSessionRunID creates a new session-run identifier.
func NewSessionRunID() SessionRunID { return SessionRunID(NewID()) }

// PIID is the zero-based index of a performance index within a workload.
type PIID int

// RoundID is a strictly monotonic round sequence number, starting at 0.
type RoundID uint64
