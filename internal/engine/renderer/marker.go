package renderer

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/trailforge/terravista/internal/engine/shader"
	"github.com/trailforge/terravista/pkg/math"
)

const (
	sphereStacks = 16
	sphereSlices = 16
)

// markerPipeline draws the current-position sphere: an opaque core
// plus an alpha-blended glow pass at twice the radius.
type markerPipeline struct {
	program uint32

	locViewProj int32
	locModel    int32
	locColor    int32
	locLightDir int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func newMarkerPipeline() (*markerPipeline, error) {
	program, err := shader.CompileProgram(markerVertexShader, markerFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("marker shader: %w", err)
	}

	mp := &markerPipeline{
		program:     program,
		locViewProj: shader.GetUniform(program, "uViewProj"),
		locModel:    shader.GetUniform(program, "uModel"),
		locColor:    shader.GetUniform(program, "uColor"),
		locLightDir: shader.GetUniform(program, "uLightDir"),
	}
	mp.buildSphere()
	return mp, nil
}

// buildSphere uploads a unit UV sphere. Positions double as normals.
func (mp *markerPipeline) buildSphere() {
	var vertices []float32
	for stack := 0; stack <= sphereStacks; stack++ {
		phi := math32.Pi * float32(stack) / sphereStacks
		for slice := 0; slice <= sphereSlices; slice++ {
			theta := 2 * math32.Pi * float32(slice) / sphereSlices
			x := math32.Sin(phi) * math32.Cos(theta)
			y := math32.Sin(phi) * math32.Sin(theta)
			z := math32.Cos(phi)
			vertices = append(vertices, x, y, z)
		}
	}

	var indices []uint32
	cols := uint32(sphereSlices + 1)
	for stack := uint32(0); stack < sphereStacks; stack++ {
		for slice := uint32(0); slice < sphereSlices; slice++ {
			p00 := stack*cols + slice
			p01 := p00 + 1
			p10 := p00 + cols
			p11 := p10 + 1
			indices = append(indices, p00, p10, p01, p10, p11, p01)
		}
	}

	gl.GenVertexArrays(1, &mp.vao)
	gl.BindVertexArray(mp.vao)

	gl.GenBuffers(1, &mp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mp.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &mp.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mp.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	mp.indexCount = int32(len(indices))
}

// DrawMarker renders the position sphere with its glow halo.
func (r *Renderer) DrawMarker(viewProj math.Mat4, center math.Vec3, radius float32, light Light) {
	mp := r.marker

	gl.UseProgram(mp.program)
	gl.UniformMatrix4fv(mp.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(mp.locLightDir, light.Dir.X, light.Dir.Y, light.Dir.Z)
	gl.BindVertexArray(mp.vao)

	model := math.Translate(center.X, center.Y, center.Z).Mul(math.Scale(radius, radius, radius))
	gl.UniformMatrix4fv(mp.locModel, 1, false, &model[0])
	gl.Uniform4f(mp.locColor, 0.2, 0.4, 1.0, 1.0)
	gl.DrawElements(gl.TRIANGLES, mp.indexCount, gl.UNSIGNED_INT, nil)

	// Glow pass: twice the radius, alpha-blended, no depth writes so
	// the halo does not occlude the path behind it.
	glow := math.Translate(center.X, center.Y, center.Z).Mul(math.Scale(2*radius, 2*radius, 2*radius))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.UniformMatrix4fv(mp.locModel, 1, false, &glow[0])
	gl.Uniform4f(mp.locColor, 0.3, 0.5, 1.0, 0.25)
	gl.DrawElements(gl.TRIANGLES, mp.indexCount, gl.UNSIGNED_INT, nil)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

func (mp *markerPipeline) destroy() {
	if mp.vao != 0 {
		gl.DeleteVertexArrays(1, &mp.vao)
		mp.vao = 0
	}
	if mp.vbo != 0 {
		gl.DeleteBuffers(1, &mp.vbo)
		mp.vbo = 0
	}
	if mp.ebo != 0 {
		gl.DeleteBuffers(1, &mp.ebo)
		mp.ebo = 0
	}
	if mp.program != 0 {
		gl.DeleteProgram(mp.program)
		mp.program = 0
	}
}
