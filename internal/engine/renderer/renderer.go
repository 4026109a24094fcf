// Package renderer provides the OpenGL draw-command layer: a lit
// terrain pipeline, a flat-color pipeline for lines and quads, and
// the pulsing marker sphere. All mesh data is uploaded once; per
// frame only uniforms and draw calls change.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/trailforge/terravista/internal/logger"
	"github.com/trailforge/terravista/pkg/math"
)

// Sky color behind the terrain.
var clearColor = [3]float32{0.53, 0.81, 0.92}

// Light holds the directional light parameters shared by the main
// view and the minimap.
type Light struct {
	Dir     math.Vec3
	Ambient float32
	Diffuse float32
}

// DefaultLight lights the terrain from high in the southwest.
func DefaultLight() Light {
	return Light{
		Dir:     math.Vec3{X: -0.4, Y: -0.3, Z: 0.85}.Normalize(),
		Ambient: 0.35,
		Diffuse: 0.75,
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	terrain *terrainPipeline
	flat    *flatPipeline
	marker  *markerPipeline

	fbWidth  int
	fbHeight int
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(fbWidth, fbHeight int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	card := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", card),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)

	r := &Renderer{
		fbWidth:  fbWidth,
		fbHeight: fbHeight,
	}

	var err error
	if r.terrain, err = newTerrainPipeline(); err != nil {
		return nil, fmt.Errorf("terrain pipeline: %w", err)
	}
	if r.flat, err = newFlatPipeline(); err != nil {
		return nil, fmt.Errorf("flat pipeline: %w", err)
	}
	if r.marker, err = newMarkerPipeline(); err != nil {
		return nil, fmt.Errorf("marker pipeline: %w", err)
	}

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.terrain.destroy()
	r.flat.destroy()
	r.marker.destroy()
}

// Resize updates the framebuffer size used for full-frame viewports.
func (r *Renderer) Resize(fbWidth, fbHeight int) {
	r.fbWidth = fbWidth
	r.fbHeight = fbHeight
	logger.Debug("renderer resized",
		zap.Int("width", fbWidth),
		zap.Int("height", fbHeight),
	)
}

// BeginFrame clears the framebuffer and restores the full viewport.
func (r *Renderer) BeginFrame() {
	gl.Viewport(0, 0, int32(r.fbWidth), int32(r.fbHeight))
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// BeginSubView restricts rendering to a framebuffer rectangle and
// clears it to the given color. Used for the minimap inset; y is
// measured from the top edge.
func (r *Renderer) BeginSubView(x, y, w, h int, bg [3]float32) {
	// GL rectangles are measured from the bottom edge.
	glY := int32(r.fbHeight - y - h)

	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), glY, int32(w), int32(h))
	gl.Viewport(int32(x), glY, int32(w), int32(h))
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// EndSubView restores the full-frame viewport.
func (r *Renderer) EndSubView() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(r.fbWidth), int32(r.fbHeight))
}
