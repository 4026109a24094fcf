package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/trailforge/terravista/internal/engine/shader"
	"github.com/trailforge/terravista/internal/engine/terrain"
	"github.com/trailforge/terravista/pkg/math"
)

// terrainPipeline draws the elevation mesh with per-vertex colors and
// a directional light. The same VAO serves the main view and the
// minimap; only the uniforms differ.
type terrainPipeline struct {
	program uint32

	locViewProj int32
	locModel    int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func newTerrainPipeline() (*terrainPipeline, error) {
	program, err := shader.CompileProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &terrainPipeline{
		program:     program,
		locViewProj: shader.GetUniform(program, "uViewProj"),
		locModel:    shader.GetUniform(program, "uModel"),
		locLightDir: shader.GetUniform(program, "uLightDir"),
		locAmbient:  shader.GetUniform(program, "uAmbient"),
		locDiffuse:  shader.GetUniform(program, "uDiffuse"),
	}, nil
}

// UploadMesh sends the terrain mesh to the GPU. Called once after
// scene construction; the mesh is immutable afterwards.
func (r *Renderer) UploadMesh(mesh *terrain.Mesh) {
	tp := r.terrain
	tp.clear()

	gl.GenVertexArrays(1, &tp.vao)
	gl.BindVertexArray(tp.vao)

	gl.GenBuffers(1, &tp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tp.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tp.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tp.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	tp.indexCount = int32(len(mesh.Indices))
}

// DrawTerrain renders the uploaded mesh. The model matrix carries the
// dynamic vertical-exaggeration Z scale.
func (r *Renderer) DrawTerrain(viewProj, model math.Mat4, light Light) {
	tp := r.terrain
	if tp.vao == 0 {
		return
	}

	gl.UseProgram(tp.program)
	gl.UniformMatrix4fv(tp.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(tp.locModel, 1, false, &model[0])
	gl.Uniform3f(tp.locLightDir, light.Dir.X, light.Dir.Y, light.Dir.Z)
	gl.Uniform1f(tp.locAmbient, light.Ambient)
	gl.Uniform1f(tp.locDiffuse, light.Diffuse)

	gl.BindVertexArray(tp.vao)
	gl.DrawElements(gl.TRIANGLES, tp.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (tp *terrainPipeline) clear() {
	if tp.vao != 0 {
		gl.DeleteVertexArrays(1, &tp.vao)
		tp.vao = 0
	}
	if tp.vbo != 0 {
		gl.DeleteBuffers(1, &tp.vbo)
		tp.vbo = 0
	}
	if tp.ebo != 0 {
		gl.DeleteBuffers(1, &tp.ebo)
		tp.ebo = 0
	}
	tp.indexCount = 0
}

func (tp *terrainPipeline) destroy() {
	tp.clear()
	if tp.program != 0 {
		gl.DeleteProgram(tp.program)
		tp.program = 0
	}
}
