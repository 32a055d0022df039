package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_SpawnExclusion(t *testing.T) {
	r := NewRegistry(8)
	assert.False(t, r.IsClear(0, 0, 1))
	assert.False(t, r.IsClear(8.5, 0, 1), "circle reaches into spawn area")
	assert.True(t, r.IsClear(9.5, 0, 1))
}

func TestRegistry_Overlap(t *testing.T) {
	r := NewRegistry(8)
	r.MarkOccupied(20, 20, 2)

	assert.False(t, r.IsClear(22, 20, 1), "overlapping circle")
	assert.True(t, r.IsClear(23.5, 20, 1), "separated circle")
	// Touching exactly is allowed: the test is strict distance < r1 + r2.
	assert.True(t, r.IsClear(23, 20, 1))
}

func TestRegistry_ClaimAndClear(t *testing.T) {
	r := NewRegistry(8)
	assert.True(t, r.Claim(30, 30, 2))
	assert.False(t, r.Claim(31, 30, 2))
	assert.Equal(t, 1, r.Len())

	fp := r.Footprints()
	fp[0].Radius = 99
	assert.Equal(t, float32(2), r.Footprints()[0].Radius, "Footprints returns a copy")

	r.Clear()
	assert.Zero(t, r.Len())
	assert.True(t, r.IsClear(31, 30, 2))
}
