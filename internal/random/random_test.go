package random

import "testing"

import "github.com/stretchr/testify/assert"

func TestLockstep_DeterministicFromSeed(t *testing.T) {
	a := NewLockstep(42)
	b := NewLockstep(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestLockstep_DifferentSeedsDiverge(t *testing.T) {
	a := NewLockstep(1)
	b := NewLockstep(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestLockstep_UUIDv4DeterministicFromSeed(t *testing.T) {
	a := NewLockstep(7)
	b := NewLockstep(7)
	assert.Equal(t, a.UUIDv4(), b.UUIDv4())

	c := NewLockstep(8)
	assert.NotEqual(t, a.UUIDv4(), c.UUIDv4())
}
