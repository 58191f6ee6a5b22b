// Package random provides the seeded random-number abstraction spec.md
// §4/§6 requires: every stochastic decision a plan makes (which mutation
// to propose, which candidate to sample) draws from one seeded source so a
// run is exactly reproducible from its seed.
package random

import "math/rand/v2"

// Source is the seeded random abstraction every plan-execution decision
// draws from (spec.md's IRandom: UniformInt, UniformReal, UUIDv4). A single
// Source instance is shared by a genome's whole execution so a run is
// reproducible end to end from its seed.
type Source interface {
	// Intn returns a pseudo-random int in [0, n).
	Intn(n int) int
	// Float64 returns a pseudo-random float in [0.0, 1.0).
	Float64() float64
	// Seed reports the seed this Source was constructed with.
	Seed() uint64
	// UUIDv4 draws 16 raw pseudo-random bytes for a v4 UUID. The caller
	// (internal/stuid) is responsible for the variant/version stamp; this
	// just contributes deterministic entropy from the same stream as every
	// other draw.
	UUIDv4() [16]byte
}

// Lockstep is the reference Source implementation: a PCG generator seeded
// from a single uint64, so two Lockstep values built from the same seed
// produce identical draw sequences.
type Lockstep struct {
	seed uint64
	rng  *rand.Rand
}

// NewLockstep builds a Source seeded deterministically from seed.
func NewLockstep(seed uint64) *Lockstep {
	return &Lockstep{seed: seed, rng: rand.New(rand.NewPCG(seed, seed))}
}

func (l *Lockstep) Intn(n int) int   { return l.rng.IntN(n) }
func (l *Lockstep) Float64() float64 { return l.rng.Float64() }
func (l *Lockstep) Seed() uint64     { return l.seed }

// UUIDv4 draws 16 bytes from the same PCG stream backing Intn/Float64, two
// uint64s at a time.
func (l *Lockstep) UUIDv4() [16]byte {
	var b [16]byte
	hi := l.rng.Uint64()
	lo := l.rng.Uint64()
	for i := 0; i < 8; i++ {
		b[i] = byte(hi >> (8 * i))
		b[i+8] = byte(lo >> (8 * i))
	}
	return b
}

var _ Source = (*Lockstep)(nil)
