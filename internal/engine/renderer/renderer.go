// Package renderer draws triangle-list meshes with the world shader.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/lighting"
	"github.com/Faultbox/wildmere/internal/engine/shader"
	"github.com/Faultbox/wildmere/internal/logger"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width    int
	Height   int
	Sky      math.Vec3
	FogStart float32
	FogEnd   float32
}

// DefaultConfig returns a hazy daylight setup for a w by h framebuffer.
func DefaultConfig(w, h int) Config {
	return Config{
		Width:    w,
		Height:   h,
		Sky:      math.Vec3{X: 0.62, Y: 0.74, Z: 0.86},
		FogStart: 60,
		FogEnd:   180,
	}
}

// Batch is a mesh uploaded to the GPU.
type Batch struct {
	vao      uint32
	vbo      uint32
	count    int32
	capacity int // floats allocated in vbo
	usage    uint32
}

// Vertices returns the number of vertices drawn.
func (b *Batch) Vertices() int {
	return int(b.count)
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	palette []float32
	sun     lighting.Sun
	lights  *lighting.PointLightBuffer
	batches []*Batch
	log     *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		palette: lighting.DefaultPalette().Flat(),
		sun:     lighting.DefaultSun(),
		lights:  lighting.NewPointLightBuffer(),
		log:     logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(cfg.Sky.X, cfg.Sky.Y, cfg.Sky.Z, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(worldVertexShader, fragmentSource())
	if err != nil {
		return nil, fmt.Errorf("failed to create world shader: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("batches", len(r.batches)))
	for _, b := range r.batches {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
	}
	r.batches = nil
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetSun replaces the directional light.
func (r *Renderer) SetSun(s lighting.Sun) {
	r.sun = s
}

// Lights returns the point light buffer uploaded each frame.
func (r *Renderer) Lights() *lighting.PointLightBuffer {
	return r.lights
}

func (r *Renderer) newBatch(usage uint32) *Batch {
	b := &Batch{usage: usage}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(geom.VertexStride * 4)
	attribs := []struct {
		size   int32
		offset int
	}{
		{3, 0},  // position
		{3, 3},  // normal
		{3, 6},  // tangent
		{2, 9},  // uv
		{1, 11}, // material
	}
	for i, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, uintptr(a.offset*4))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.batches = append(r.batches, b)
	return b
}

// Upload creates a static batch from m.
func (r *Renderer) Upload(m *geom.Mesh) *Batch {
	b := r.newBatch(gl.STATIC_DRAW)
	r.Update(b, m)
	return b
}

// NewDynamic creates an empty batch meant to be refilled every frame.
func (r *Renderer) NewDynamic() *Batch {
	return r.newBatch(gl.DYNAMIC_DRAW)
}

// Update replaces the contents of b with m, growing the buffer if needed.
func (r *Renderer) Update(b *Batch, m *geom.Mesh) {
	data := m.Interleave()
	b.count = int32(m.Len())
	if len(data) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), b.usage)
		b.capacity = len(data)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Begin clears the frame and uploads per-frame uniforms.
func (r *Renderer) Begin(view, proj mgl32.Mat4, eye math.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProj", proj)
	p.SetVec3("uEye", eye)
	p.SetVec3("uSky", r.config.Sky)
	p.SetFloat("uFogStart", r.config.FogStart)
	p.SetFloat("uFogEnd", r.config.FogEnd)
	p.SetVec3Array("uPalette", r.palette)
	p.SetVec3("uSunDir", r.sun.Direction())
	p.SetVec3("uSunColor", r.sun.Color)
	p.SetVec3("uAmbient", r.sun.Ambient)
	p.SetInt("uLightCount", int32(r.lights.Count()))
	p.SetVec3Array("uLightPos", r.lights.Positions())
	p.SetVec3Array("uLightColor", r.lights.Colors())
	p.SetFloatArray("uLightRange", r.lights.Ranges())
}

// Draw draws b with the current frame state.
func (r *Renderer) Draw(b *Batch) {
	if b == nil || b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
