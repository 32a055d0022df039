package lighting

import (
	"github.com/Faultbox/wildmere/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 16

// PointLight is a point light source for GPU upload.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3 // RGB in [0, 1]
	Range     float32
	Intensity float32
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Count returns the number of lights.
func (b *PointLightBuffer) Count() int {
	return len(b.Lights)
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a point light to the buffer, clamping its colour and
// defaulting a non-positive range. Returns false if the buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	light.Color = math.Vec3{
		X: math.Clamp(light.Color.X, 0, 1),
		Y: math.Clamp(light.Color.Y, 0, 1),
		Z: math.Clamp(light.Color.Z, 0, 1),
	}
	if light.Range <= 0 {
		light.Range = 10
	}
	if light.Intensity <= 0 {
		light.Intensity = 1
	}
	b.Lights = append(b.Lights, light)
	return true
}

// Positions returns positions padded to MaxPointLights as flat floats.
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position.X
		result[i*3+1] = light.Position.Y
		result[i*3+2] = light.Position.Z
	}
	return result
}

// Colors returns colours premultiplied by intensity as flat floats.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		c := light.Color.Scale(light.Intensity)
		result[i*3+0] = c.X
		result[i*3+1] = c.Y
		result[i*3+2] = c.Z
	}
	return result
}

// Ranges returns ranges padded to MaxPointLights.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}
