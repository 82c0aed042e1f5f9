package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/quadterrain/internal/engine/camera"
	"github.com/Faultbox/quadterrain/internal/engine/scene"
	"github.com/Faultbox/quadterrain/internal/engine/shader"
	"github.com/Faultbox/quadterrain/internal/engine/terrain"
	"github.com/Faultbox/quadterrain/internal/logger"
)

const terrainVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;
uniform float uTileSize;
uniform float uMaxHeight;

out float vHeight;

void main() {
	vec3 world = vec3(aPosition.x * uTileSize, aPosition.y * uMaxHeight, aPosition.z * uTileSize);
	vHeight = aPosition.y;
	gl_Position = uViewProj * vec4(world, 1.0);
}
`

const terrainFragmentShader = `#version 410 core

in float vHeight;
out vec4 FragColor;

void main() {
	vec3 low = vec3(0.20, 0.35, 0.15);
	vec3 high = vec3(0.85, 0.85, 0.80);
	FragColor = vec4(mix(low, high, vHeight), 1.0);
}
`

var _ scene.Drawer = (*TerrainRenderer)(nil)

// TerrainRenderer draws terrain tiles from a single uploaded Batch.
type TerrainRenderer struct {
	program *shader.Program

	locViewProj  int32
	locTileSize  int32
	locMaxHeight int32

	vao uint32
	vbo uint32
	ebo uint32

	batch  *Batch
	params terrain.Params
	log    *zap.Logger
}

// NewTerrainRenderer compiles the terrain program.
func NewTerrainRenderer(p terrain.Params) (*TerrainRenderer, error) {
	program, err := shader.Compile(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &TerrainRenderer{
		program:      program,
		locViewProj:  program.MustUniform("uViewProj"),
		locTileSize:  program.MustUniform("uTileSize"),
		locMaxHeight: program.MustUniform("uMaxHeight"),
		params:       p,
		log:          logger.Named("terrain-renderer"),
	}, nil
}

// Upload packs tiles into one batch and copies it to the GPU, replacing any
// previous upload.
func (tr *TerrainRenderer) Upload(tiles []*terrain.Tile) error {
	b, err := NewBatch(tiles)
	if err != nil {
		return fmt.Errorf("terrain batch: %w", err)
	}

	tr.clearBuffers()
	tr.batch = b
	if len(b.Vertices) == 0 || len(b.Indices) == 0 {
		return nil
	}

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Vertices)*vertexSize, unsafe.Pointer(&b.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.Indices)*4, unsafe.Pointer(&b.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	tr.log.Info("terrain uploaded",
		zap.Int("tiles", len(b.Ranges)),
		zap.Int("vertices", len(b.Vertices)),
		zap.Int("indices", len(b.Indices)),
	)
	return nil
}

// Begin binds the terrain program and buffers and sets the per-frame
// uniforms. Draw calls must follow on the same goroutine.
func (tr *TerrainRenderer) Begin(view camera.View) {
	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &view.ViewProj[0])
	gl.Uniform1f(tr.locTileSize, tr.params.TileSize)
	gl.Uniform1f(tr.locMaxHeight, tr.params.MaxHeight)
	gl.BindVertexArray(tr.vao)
}

// DrawIndexedTriangleStrip draws one uploaded tile. Tiles that were not part
// of the last upload are skipped.
func (tr *TerrainRenderer) DrawIndexedTriangleStrip(tile *terrain.Tile) {
	if tr.batch == nil || tr.vao == 0 {
		return
	}
	r, ok := tr.batch.Range(tile)
	if !ok {
		return
	}
	gl.DrawElementsWithOffset(gl.TRIANGLE_STRIP, int32(r.Count), gl.UNSIGNED_INT, uintptr(r.FirstIndex*4))
}

// End unbinds the terrain buffers.
func (tr *TerrainRenderer) End() {
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clearBuffers() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.batch = nil
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearBuffers()
	tr.program.Delete()
}
