package renderer2d

import (
	"github.com/hubastard/groveui/engine/core"
)

// Vertex: pos2 + color4 + uv2 => 8 floats
const vStride = 8
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// Renderer2D owns the sprite pipeline and one SpriteBatch per texture.
// Batches are shared by every form drawing with that texture and live until
// Release.
type Renderer2D struct {
	r        core.Renderer
	pipe     core.Pipeline
	white    core.Texture // 1x1 white for untextured quads
	maxQuads int

	batches map[core.Texture]*SpriteBatch
	stats   Statistics
}

// New creates renderer and compiles the shader pipeline. Empty sources select
// the built-in sprite shaders.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	if vertSrc == "" {
		vertSrc = spriteVertexSource
	}
	if fragSrc == "" {
		fragSrc = spriteFragmentSource
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		pipe.Release()
		return nil, err
	}

	return &Renderer2D{
		r:        r,
		pipe:     pipe,
		white:    white,
		maxQuads: maxQuads,
		batches:  make(map[core.Texture]*SpriteBatch),
	}, nil
}

// White is the texture untextured quads are drawn with.
func (rd *Renderer2D) White() core.Texture { return rd.white }

// Batch returns the sprite batch for tex, creating it on first use. A nil
// texture selects White.
func (rd *Renderer2D) Batch(tex core.Texture) (*SpriteBatch, error) {
	if tex == nil {
		tex = rd.white
	}
	if b, ok := rd.batches[tex]; ok {
		return b, nil
	}
	mesh, err := rd.r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, rd.maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, rd.maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	b := newSpriteBatch(rd, tex, mesh)
	rd.batches[tex] = b
	rd.stats.TextureCount = len(rd.batches)
	return b, nil
}

// ReleaseBatch drops the batch for tex, e.g. when the texture is destroyed.
func (rd *Renderer2D) ReleaseBatch(tex core.Texture) {
	if b, ok := rd.batches[tex]; ok {
		b.mesh.Release()
		delete(rd.batches, tex)
		rd.stats.TextureCount = len(rd.batches)
	}
}

// ResetStats starts a new frame of statistics.
func (rd *Renderer2D) ResetStats() {
	rd.stats = Statistics{TextureCount: len(rd.batches)}
}

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// Release frees the pipeline, the white texture and every batch mesh.
func (rd *Renderer2D) Release() {
	for tex, b := range rd.batches {
		b.mesh.Release()
		delete(rd.batches, tex)
	}
	if rd.white != nil {
		rd.white.Release()
		rd.white = nil
	}
	if rd.pipe != nil {
		rd.pipe.Release()
		rd.pipe = nil
	}
}

const spriteVertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
uniform mat4 uVP;
out vec4 vColor;
out vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const spriteFragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = texture(uTex, vUV) * vColor;
}
` + "\x00"
