package lighting

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Palette is the base colour per material.
type Palette [geom.MaterialCount]math.Vec3

func rgb(r, g, b uint8) math.Vec3 {
	return math.Vec3{X: float32(r) / 255, Y: float32(g) / 255, Z: float32(b) / 255}
}

// DefaultPalette returns the standard material colours.
func DefaultPalette() Palette {
	var p Palette
	p[geom.MaterialGrass] = rgb(92, 138, 60)
	p[geom.MaterialDirt] = rgb(139, 111, 78)
	p[geom.MaterialBark] = rgb(94, 68, 46)
	p[geom.MaterialBirchBark] = rgb(214, 208, 196)
	p[geom.MaterialLeaves] = rgb(70, 120, 48)
	p[geom.MaterialNeedles] = rgb(38, 82, 52)
	p[geom.MaterialRock] = rgb(128, 126, 120)
	p[geom.MaterialStone] = rgb(152, 146, 134)
	p[geom.MaterialWood] = rgb(128, 92, 58)
	p[geom.MaterialPlaster] = rgb(226, 216, 190)
	p[geom.MaterialRoof] = rgb(140, 58, 42)
	p[geom.MaterialMetal] = rgb(168, 172, 178)
	p[geom.MaterialSkin] = rgb(226, 184, 150)
	p[geom.MaterialHair] = rgb(72, 48, 30)
	p[geom.MaterialTunic] = rgb(46, 86, 140)
	p[geom.MaterialMail] = rgb(150, 154, 160)
	p[geom.MaterialTrousers] = rgb(84, 70, 56)
	p[geom.MaterialBoots] = rgb(58, 40, 28)
	return p
}

// Flat returns the palette as packed RGB floats for a uniform array.
func (p Palette) Flat() []float32 {
	out := make([]float32, 0, len(p)*3)
	for _, c := range p {
		out = append(out, c.X, c.Y, c.Z)
	}
	return out
}
