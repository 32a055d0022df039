package collision

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildmere/pkg/math"
)

func TestResolvePushesOutOfCircle(t *testing.T) {
	r := NewResolver()
	res := r.Resolve(math.Vec3{X: 0.2}, 0.3, List{Circle(math.Vec2{}, 1)})

	require.True(t, res.Collided)
	assert.InDelta(t, 1.31, res.Position.XZ().Length(), 1e-4)
	assert.InDelta(t, 0, res.Position.Z, 1e-6)
}

func TestResolveKeepsHeight(t *testing.T) {
	res := NewResolver().Resolve(math.Vec3{X: 0.2, Y: 3}, 0.3, List{Circle(math.Vec2{}, 1)})
	assert.Equal(t, float32(3), res.Position.Y)
}

func TestResolveNoContact(t *testing.T) {
	pos := math.Vec3{X: 5, Z: 5}
	res := NewResolver().Resolve(pos, 0.3, List{Circle(math.Vec2{}, 1)})

	assert.False(t, res.Collided)
	assert.Equal(t, pos, res.Position)
}

func TestResolveSkipsCoincidentCenters(t *testing.T) {
	res := NewResolver().Resolve(math.Vec3{}, 0.3, List{Circle(math.Vec2{}, 1)})

	assert.False(t, res.Collided)
	assert.Equal(t, math.Vec3{}, res.Position)
}

func TestResolveWedgeBetweenPosts(t *testing.T) {
	posts := List{
		Circle(math.Vec2{X: -0.55}, 0.3),
		Circle(math.Vec2{X: 0.55}, 0.3),
	}
	res := NewResolver().Resolve(math.Vec3{Z: 0.2}, 0.3, posts)

	require.True(t, res.Collided)
	for _, c := range posts {
		assert.LessOrEqual(t, c.Overlap(res.Position.XZ(), 0.3), float32(1e-3), "post %v", c.Center)
	}
}

func TestResolveBoxCorner(t *testing.T) {
	box := List{Box(math.Vec2{}, math.Vec2{X: 1, Y: 1})}
	res := NewResolver().Resolve(math.Vec3{X: 1.1, Z: 1.1}, 0.3, box)

	require.True(t, res.Collided)
	got := res.Position.XZ().Sub(math.Vec2{X: 1, Y: 1}).Length()
	assert.InDelta(t, 0.31, got, 1e-4)
}

func TestResolveCenterInsideBoxExitsNearestFace(t *testing.T) {
	box := List{Box(math.Vec2{}, math.Vec2{X: 1, Y: 1})}
	res := NewResolver().Resolve(math.Vec3{X: 0.9, Z: 0.95}, 0.3, box)

	require.True(t, res.Collided)
	assert.InDelta(t, 0.9, res.Position.X, 1e-5)
	assert.InDelta(t, 1.31, res.Position.Z, 1e-5)
}

func TestResolveRotatedBox(t *testing.T) {
	c := Box(math.Vec2{X: 10, Y: 10}, math.Vec2{X: 2, Y: 0.5})
	c.Rotation = 0.7
	start := math.Vec2{X: 10.2, Y: 10.1}
	require.Greater(t, c.Overlap(start, 0.3), float32(0))

	res := NewResolver().Resolve(start.XZ(0), 0.3, List{c})
	require.True(t, res.Collided)
	assert.LessOrEqual(t, c.Overlap(res.Position.XZ(), 0.3), float32(0))
}

func TestResolveClimbable(t *testing.T) {
	rock := List{Climbable(math.Vec2{}, 1, 1.2, 0)}
	r := NewResolver()

	below := r.Resolve(math.Vec3{X: 0.5}, 0.3, rock)
	assert.True(t, below.Collided)

	onTop := r.Resolve(math.Vec3{X: 0.5, Y: 1.2}, 0.3, rock)
	assert.False(t, onTop.Collided)

	// Within step height of the top also passes.
	stepping := r.Resolve(math.Vec3{X: 0.5, Y: 1.0}, 0.3, rock)
	assert.False(t, stepping.Collided)
}

func TestResolveNilSource(t *testing.T) {
	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, pos, NewResolver().Resolve(pos, 0.3, nil).Position)
}

func TestClampBounds(t *testing.T) {
	got := ClampBounds(math.Vec3{X: 120, Y: 4, Z: -130}, 98)
	assert.Equal(t, math.Vec3{X: 98, Y: 4, Z: -98}, got)
}

func TestSetValidation(t *testing.T) {
	s := NewSet()
	assert.ErrorIs(t, s.Add(Circle(math.Vec2{}, 0)), ErrInvalidCollider)
	assert.ErrorIs(t, s.Add(Box(math.Vec2{}, math.Vec2{X: 1})), ErrInvalidCollider)
	assert.ErrorIs(t, s.Add(Climbable(math.Vec2{}, 1, 0, 0)), ErrInvalidCollider)
	require.NoError(t, s.Add(Circle(math.Vec2{}, 1)))

	s.Freeze()
	assert.True(t, s.Frozen())
	assert.ErrorIs(t, s.Add(Circle(math.Vec2{}, 1)), ErrFrozen)
	assert.Equal(t, 1, s.Len())
}

func TestSetCandidatesMatchBruteForce(t *testing.T) {
	s := NewSet()
	for i := -10; i <= 10; i++ {
		for j := -10; j <= 10; j += 3 {
			c := math.Vec2{X: float32(i) * 4.5, Y: float32(j) * 5.5}
			if (i+j)%2 == 0 {
				require.NoError(t, s.Add(Circle(c, 0.8)))
			} else {
				require.NoError(t, s.Add(Box(c, math.Vec2{X: 1.5, Y: 0.7})))
			}
		}
	}
	all := s.All()
	s.Freeze()

	for _, q := range []math.Vec2{{}, {X: 13, Y: -7}, {X: -44, Y: 50}, {X: 3.9, Y: 8.1}} {
		got := s.Candidates(q, 1, nil)
		for _, c := range all {
			if c.Overlap(q, 1) > 0 {
				assert.Contains(t, got, c, "query %v", q)
			}
		}
		again := s.Candidates(q, 1, nil)
		assert.Equal(t, got, again)
	}
}

func TestGroundHeight(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(Climbable(math.Vec2{X: 5}, 1.5, 1.0, 0.2)))
	require.NoError(t, s.Add(Circle(math.Vec2{X: -5}, 1)))
	s.Freeze()

	assert.InDelta(t, 1.2, s.GroundHeight(math.Vec2{X: 5.5}, 1.1, 0.3, DefaultStepHeight), 1e-6)
	assert.Equal(t, float32(0.3), s.GroundHeight(math.Vec2{X: 5.5}, 0.3, 0.3, DefaultStepHeight), "too low to step up")
	assert.Equal(t, float32(0.3), s.GroundHeight(math.Vec2{X: 9}, 1.2, 0.3, DefaultStepHeight), "outside footprint")
	assert.Equal(t, float32(0.3), s.GroundHeight(math.Vec2{X: -5}, 1.2, 0.3, DefaultStepHeight), "plain circles are not standable")
}

func TestCountByKind(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(Circle(math.Vec2{}, 1)))
	require.NoError(t, s.Add(Circle(math.Vec2{X: 3}, 1)))
	require.NoError(t, s.Add(Box(math.Vec2{}, math.Vec2{X: 1, Y: 1})))
	assert.Equal(t, map[Kind]int{KindCircle: 2, KindBox: 1}, s.CountByKind())
	assert.Equal(t, "climbable", KindClimbable.String())
}

func TestSetConcurrentReaders(t *testing.T) {
	s := NewSet()
	for i := -8; i <= 8; i++ {
		require.NoError(t, s.Add(Circle(math.Vec2{X: float32(i) * 3, Y: float32(i%3) * 4}, 1)))
		require.NoError(t, s.Add(Box(math.Vec2{X: float32(i) * 5, Y: -6}, math.Vec2{X: 1, Y: 2})))
	}
	s.Freeze()

	queries := []math.Vec2{{}, {X: 9, Y: 4}, {X: -20, Y: -6}, {X: 15, Y: 0}}
	want := make([][]Collider, len(queries))
	for i, q := range queries {
		want[i] = s.Candidates(q, 12, nil)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				i := n % len(queries)
				assert.Equal(t, want[i], s.Candidates(queries[i], 12, nil))
			}
		}()
	}
	wg.Wait()
}
