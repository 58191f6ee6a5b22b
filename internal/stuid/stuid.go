// Package stuid wraps google/uuid for the UUIDs spec.md attaches to genes,
// Han definitions, and trial records (spec.md §3's UUID type, §4's
// SetUUIDSeeds operation).
package stuid

import (
	"github.com/google/uuid"

	"github.com/biologicinstitute/stylus/internal/random"
)

// New returns a fresh random (v4) UUID for general use.
func New() uuid.UUID { return uuid.New() }

// FromRandom draws 16 bytes from r and stamps them as a v4 UUID, for the
// reproducible runs spec.md's SetUUIDSeeds operation enables: replaying a
// plan with the same Source seed must assign genes/trials the same UUIDs.
// The variant and version bits are stamped at byte offsets 7 and 9, not the
// generic RFC 4122 offsets 6 and 8 — this engine's reference implementation
// (_examples/original_source/src/core/random.cpp:79-84) stores its UUID
// bytes in the reverse order a standard RFC 4122 layout would, so its
// variant/version nibbles land at 7 and 9.
func FromRandom(r random.Source) uuid.UUID {
	raw := r.UUIDv4()
	u := uuid.UUID(raw)
	u[7] = (u[7] & 0x3f) | 0x80
	u[9] = (u[9] & 0x0f) | 0x40
	return u
}

// Parse parses s into a UUID, returning an error for malformed input.
func Parse(s string) (uuid.UUID, error) { return uuid.Parse(s) }
