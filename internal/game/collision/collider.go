// Package collision holds the static collider set gathered from world
// generation and the push-out resolver that keeps actors out of it.
package collision

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// Kind selects which fields of a Collider are meaningful.
type Kind uint8

const (
	// KindCircle uses Center and Radius.
	KindCircle Kind = iota
	// KindBox uses Center, HalfExtents and Rotation.
	KindBox
	// KindClimbable pushes out like a circle and has a standable top at
	// Base+Height.
	KindClimbable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	case KindClimbable:
		return "climbable"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ErrInvalidCollider is returned for colliders with non-positive sizes.
var ErrInvalidCollider = errors.New("invalid collider")

// Collider is a static obstacle on the XZ plane.
type Collider struct {
	Kind        Kind      `yaml:"kind" json:"kind"`
	Center      math.Vec2 `yaml:"center" json:"center"`
	Radius      float32   `yaml:"radius,omitempty" json:"radius,omitempty"`
	HalfExtents math.Vec2 `yaml:"half_extents,omitempty" json:"half_extents,omitempty"`
	Rotation    float32   `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Height      float32   `yaml:"height,omitempty" json:"height,omitempty"`
	Base        float32   `yaml:"base,omitempty" json:"base,omitempty"`
}

// Circle returns a circle collider.
func Circle(center math.Vec2, radius float32) Collider {
	return Collider{Kind: KindCircle, Center: center, Radius: radius}
}

// Box returns an axis-aligned box collider.
func Box(center, half math.Vec2) Collider {
	return Collider{Kind: KindBox, Center: center, HalfExtents: half}
}

// Climbable returns a climbable collider standing on base.
func Climbable(center math.Vec2, radius, height, base float32) Collider {
	return Collider{Kind: KindClimbable, Center: center, Radius: radius, Height: height, Base: base}
}

// Validate checks the size invariants for the collider's kind.
func (c Collider) Validate() error {
	switch c.Kind {
	case KindCircle:
		if !(c.Radius > 0) {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidCollider, c.Radius)
		}
	case KindBox:
		if !(c.HalfExtents.X > 0) || !(c.HalfExtents.Y > 0) {
			return fmt.Errorf("%w: box half extents %v", ErrInvalidCollider, c.HalfExtents)
		}
	case KindClimbable:
		if !(c.Radius > 0) || !(c.Height > 0) {
			return fmt.Errorf("%w: climbable radius %v height %v", ErrInvalidCollider, c.Radius, c.Height)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidCollider, c.Kind)
	}
	return nil
}

// Top returns the standable height of a climbable collider.
func (c Collider) Top() float32 {
	return c.Base + c.Height
}

// BoundingRadius returns the radius of a circle enclosing the collider.
func (c Collider) BoundingRadius() float32 {
	if c.Kind == KindBox {
		return float32(gomath.Hypot(float64(c.HalfExtents.X), float64(c.HalfExtents.Y)))
	}
	return c.Radius
}

// Overlap returns how far a circle at p with radius r penetrates c; zero or
// negative means no contact.
func (c Collider) Overlap(p math.Vec2, r float32) float32 {
	if c.Kind == KindBox {
		local := p.Sub(c.Center).Rotate(-c.Rotation)
		closest := math.Vec2{
			X: math.Clamp(local.X, -c.HalfExtents.X, c.HalfExtents.X),
			Y: math.Clamp(local.Y, -c.HalfExtents.Y, c.HalfExtents.Y),
		}
		d := local.Sub(closest).Length()
		if d == 0 {
			// Center inside: depth to the nearest face plus the radius.
			inside := min(c.HalfExtents.X-math.Abs(local.X), c.HalfExtents.Y-math.Abs(local.Y))
			return inside + r
		}
		return r - d
	}
	return r + c.Radius - p.Distance(c.Center)
}
