package collision

import (
	"github.com/Faultbox/wildmere/pkg/math"
)

// Resolver defaults.
const (
	DefaultPasses     = 3
	DefaultBuffer     = 0.01
	DefaultEpsilon    = 1e-4
	DefaultStepHeight = 0.3
)

// Resolver pushes a circular actor out of static colliders. Each pass
// visits every candidate once; contacts found in one pass are corrected
// before the next.
type Resolver struct {
	Passes     int
	Buffer     float32
	Epsilon    float32
	StepHeight float32

	buf []Collider
}

// Result reports the outcome of Resolve.
type Result struct {
	Position math.Vec3
	Collided bool
	Pushes   int
}

// NewResolver returns a resolver with the default tuning.
func NewResolver() *Resolver {
	return &Resolver{
		Passes:     DefaultPasses,
		Buffer:     DefaultBuffer,
		Epsilon:    DefaultEpsilon,
		StepHeight: DefaultStepHeight,
	}
}

// Resolve moves pos horizontally until a circle of radius r no longer
// overlaps any collider from src, or the pass budget runs out. The Y
// component is only used to let actors pass over climbables they stand on.
func (r *Resolver) Resolve(pos math.Vec3, radius float32, src Source) Result {
	res := Result{Position: pos}
	if src == nil {
		return res
	}
	p := pos.XZ()
	for pass := 0; pass < r.Passes; pass++ {
		moved := false
		r.buf = src.Candidates(p, radius+r.Buffer, r.buf[:0])
		for i := range r.buf {
			c := &r.buf[i]
			var ok bool
			switch c.Kind {
			case KindClimbable:
				if pos.Y >= c.Top()-r.StepHeight {
					continue
				}
				p, ok = r.pushCircle(p, radius, c.Center, c.Radius)
			case KindCircle:
				p, ok = r.pushCircle(p, radius, c.Center, c.Radius)
			case KindBox:
				p, ok = r.pushBox(p, radius, c)
			}
			if ok {
				moved = true
				res.Pushes++
			}
		}
		if !moved {
			break
		}
	}
	res.Collided = res.Pushes > 0
	res.Position = p.XZ(pos.Y)
	return res
}

func (r *Resolver) pushCircle(p math.Vec2, radius float32, center math.Vec2, cr float32) (math.Vec2, bool) {
	d := p.Sub(center)
	dist := d.Length()
	minDist := radius + cr
	if dist >= minDist || dist < r.Epsilon {
		return p, false
	}
	return p.Add(d.Scale((minDist - dist + r.Buffer) / dist)), true
}

func (r *Resolver) pushBox(p math.Vec2, radius float32, c *Collider) (math.Vec2, bool) {
	half := c.HalfExtents
	local := p.Sub(c.Center).Rotate(-c.Rotation)
	closest := math.Vec2{
		X: math.Clamp(local.X, -half.X, half.X),
		Y: math.Clamp(local.Y, -half.Y, half.Y),
	}
	diff := local.Sub(closest)
	dist := diff.Length()
	if dist >= radius {
		return p, false
	}
	if dist < r.Epsilon {
		local = r.exitNearestFace(local, half, radius)
	} else {
		local = local.Add(diff.Scale((radius - dist + r.Buffer) / dist))
	}
	return c.Center.Add(local.Rotate(c.Rotation)), true
}

// exitNearestFace places a center lying inside the box just outside the
// face it is closest to.
func (r *Resolver) exitNearestFace(local, half math.Vec2, radius float32) math.Vec2 {
	out := radius + r.Buffer
	px := half.X - local.X
	nx := local.X + half.X
	pz := half.Y - local.Y
	nz := local.Y + half.Y
	switch min(px, nx, pz, nz) {
	case px:
		local.X = half.X + out
	case nx:
		local.X = -half.X - out
	case pz:
		local.Y = half.Y + out
	default:
		local.Y = -half.Y - out
	}
	return local
}

// ClampBounds keeps p inside the square [-half, half] on X and Z.
func ClampBounds(p math.Vec3, half float32) math.Vec3 {
	p.X = math.Clamp(p.X, -half, half)
	p.Z = math.Clamp(p.Z, -half, half)
	return p
}
