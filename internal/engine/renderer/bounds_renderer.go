package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/debug"
	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
	"github.com/Faultbox/quadterrain/internal/engine/shader"
)

const boundsVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const boundsFragmentShader = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// boundsPadding keeps flat leaf boxes from disappearing into the terrain.
const boundsPadding = 0.5

// BoundsRenderer draws leaf bounding boxes as lines.
type BoundsRenderer struct {
	program *shader.Program

	locViewProj int32
	locColor    int32

	vao      uint32
	vbo      uint32
	capacity int
	verts    []float32

	Color [4]float32
}

// NewBoundsRenderer compiles the line program and allocates its buffers.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.Compile(boundsVertexShader, boundsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bounds shader: %w", err)
	}

	br := &BoundsRenderer{
		program:     program,
		locViewProj: program.MustUniform("uViewProj"),
		locColor:    program.MustUniform("uColor"),
		Color:       [4]float32{1.0, 0.85, 0.2, 1.0},
	}

	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)
	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return br, nil
}

// Draw streams the boxes of leaves and draws them with view.
func (br *BoundsRenderer) Draw(view camera.View, leaves []*quadtree.Node) {
	br.verts = debug.LeafWireframes(br.verts[:0], leaves, boundsPadding)
	if len(br.verts) == 0 {
		return
	}

	br.program.Use()
	gl.UniformMatrix4fv(br.locViewProj, 1, false, &view.ViewProj[0])
	gl.Uniform4f(br.locColor, br.Color[0], br.Color[1], br.Color[2], br.Color[3])

	gl.BindVertexArray(br.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	size := len(br.verts) * 4
	if size > br.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&br.verts[0]), gl.DYNAMIC_DRAW)
		br.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&br.verts[0]))
	}

	gl.DrawArrays(gl.LINES, 0, int32(len(br.verts)/3))
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (br *BoundsRenderer) Destroy() {
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	br.program.Delete()
}
