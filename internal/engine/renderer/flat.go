package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/trailforge/terravista/internal/engine/shader"
	"github.com/trailforge/terravista/pkg/math"
)

// flatPipeline draws position-only geometry with a uniform color
// through one dynamic VBO: the path polyline, the minimap road and
// the UI rectangles.
type flatPipeline struct {
	program uint32

	locViewProj int32
	locColor    int32

	vao uint32
	vbo uint32

	uiProj  math.Mat4
	scratch []float32
}

func newFlatPipeline() (*flatPipeline, error) {
	program, err := shader.CompileProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("flat shader: %w", err)
	}

	fp := &flatPipeline{
		program:     program,
		locViewProj: shader.GetUniform(program, "uViewProj"),
		locColor:    shader.GetUniform(program, "uColor"),
	}

	gl.GenVertexArrays(1, &fp.vao)
	gl.BindVertexArray(fp.vao)

	gl.GenBuffers(1, &fp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, fp.vbo)

	// Position (location 0), tightly packed
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return fp, nil
}

// upload streams points into the dynamic VBO and leaves the VAO bound.
func (fp *flatPipeline) upload(points []math.Vec3) {
	fp.scratch = fp.scratch[:0]
	for _, p := range points {
		fp.scratch = append(fp.scratch, p.X, p.Y, p.Z)
	}

	gl.BindVertexArray(fp.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fp.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(fp.scratch)*4, unsafe.Pointer(&fp.scratch[0]), gl.DYNAMIC_DRAW)
}

func (fp *flatPipeline) use(viewProj math.Mat4, color [4]float32) {
	gl.UseProgram(fp.program)
	gl.UniformMatrix4fv(fp.locViewProj, 1, false, &viewProj[0])
	gl.Uniform4f(fp.locColor, color[0], color[1], color[2], color[3])
}

// DrawLineStrip renders a connected polyline in world space.
func (r *Renderer) DrawLineStrip(viewProj math.Mat4, points []math.Vec3, color [4]float32, width float32) {
	if len(points) < 2 {
		return
	}
	fp := r.flat

	fp.use(viewProj, color)
	fp.upload(points)
	gl.LineWidth(width)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(points)))
	gl.LineWidth(1)
	gl.BindVertexArray(0)
}

// DrawPoint renders a single world-space point at the given pixel size.
func (r *Renderer) DrawPoint(viewProj math.Mat4, p math.Vec3, color [4]float32, size float32) {
	fp := r.flat

	fp.use(viewProj, color)
	fp.upload([]math.Vec3{p})
	gl.PointSize(size)
	gl.DrawArrays(gl.POINTS, 0, 1)
	gl.PointSize(1)
	gl.BindVertexArray(0)
}

// BeginUI switches to a pixel-space orthographic projection with the
// origin at the top left and depth testing off. Logical window
// coordinates map 1:1 onto the projection regardless of the physical
// framebuffer size.
func (r *Renderer) BeginUI(logicalW, logicalH int) {
	r.flat.uiProj = math.Ortho(0, float32(logicalW), float32(logicalH), 0, -1, 1)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// EndUI restores 3D rendering state.
func (r *Renderer) EndUI() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// DrawUIRect renders a filled rectangle in logical window coordinates.
// Only valid between BeginUI and EndUI.
func (r *Renderer) DrawUIRect(x, y, w, h float32, color [4]float32) {
	fp := r.flat

	fp.use(fp.uiProj, color)
	fp.upload([]math.Vec3{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x, Y: y + h},
		{X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
	})
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// DrawUIRectOutline renders a one-pixel rectangle border in logical
// window coordinates. Only valid between BeginUI and EndUI.
func (r *Renderer) DrawUIRectOutline(x, y, w, h float32, color [4]float32) {
	fp := r.flat

	fp.use(fp.uiProj, color)
	fp.upload([]math.Vec3{
		{X: x, Y: y}, {X: x + w, Y: y},
		{X: x + w, Y: y + h}, {X: x, Y: y + h},
	})
	gl.DrawArrays(gl.LINE_LOOP, 0, 4)
	gl.BindVertexArray(0)
}

func (fp *flatPipeline) destroy() {
	if fp.vao != 0 {
		gl.DeleteVertexArrays(1, &fp.vao)
		fp.vao = 0
	}
	if fp.vbo != 0 {
		gl.DeleteBuffers(1, &fp.vbo)
		fp.vbo = 0
	}
	if fp.program != 0 {
		gl.DeleteProgram(fp.program)
		fp.program = 0
	}
}
