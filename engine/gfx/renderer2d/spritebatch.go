package renderer2d

import (
	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/logging"
)

// SpriteBatch accumulates quads sharing one texture and submits them as a
// single draw call on Finish.
type SpriteBatch struct {
	rd   *Renderer2D
	tex  core.Texture
	mesh core.Mesh

	verts     []float32
	inds      []uint32
	quadCount int
	vp        [16]float32
	started   bool

	uniforms map[string]any
	samplers map[string]core.Texture
}

func newSpriteBatch(rd *Renderer2D, tex core.Texture, mesh core.Mesh) *SpriteBatch {
	return &SpriteBatch{
		rd:       rd,
		tex:      tex,
		mesh:     mesh,
		verts:    make([]float32, 0, rd.maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, rd.maxQuads*indsPerQuad),
		uniforms: make(map[string]any, 1),
		samplers: make(map[string]core.Texture, 1),
	}
}

func (b *SpriteBatch) Texture() core.Texture { return b.tex }
func (b *SpriteBatch) Started() bool         { return b.started }
func (b *SpriteBatch) QuadCount() int        { return b.quadCount }

// Start opens a session drawing with the view-projection vp. Starting an
// open session only replaces vp.
func (b *SpriteBatch) Start(vp [16]float32) {
	b.vp = vp
	if b.started {
		return
	}
	b.started = true
	b.resetBatch()
}

// Finish closes the session and reports how many draw calls it issued.
func (b *SpriteBatch) Finish() int {
	if !b.started {
		return 0
	}
	n := b.flush()
	b.started = false
	return n
}

// Draw appends the axis-aligned quad with top-left (x, y) and size w,h,
// sampling the UV rect u0,v0 -> u1,v1.
func (b *SpriteBatch) Draw(x, y, w, h float32, u0, v0, u1, v1 float32, color colors.Color) int {
	calls := 0
	if b.quadCount >= b.rd.maxQuads {
		calls = b.flush()
	}
	startVertex := uint32(len(b.verts) / vStride)

	// corners TL, TR, BL, BR
	corners := [4][4]float32{
		{x, y, u0, v0},
		{x + w, y, u1, v0},
		{x, y + h, u0, v1},
		{x + w, y + h, u1, v1},
	}
	for _, p := range corners {
		b.verts = append(b.verts,
			p[0], p[1],
			color[0], color[1], color[2], color[3],
			p[2], p[3],
		)
	}
	b.inds = append(b.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	b.quadCount++
	b.rd.stats.QuadCount++
	return calls
}

// DrawSub draws a quad sampling a sub-texture of the batch texture.
func (b *SpriteBatch) DrawSub(x, y, w, h float32, sub SubTexture2D, color colors.Color) int {
	return b.Draw(x, y, w, h, sub.U0, sub.V0, sub.U1, sub.V1, color)
}

func (b *SpriteBatch) flush() int {
	if b.quadCount == 0 {
		return 0
	}
	if err := b.rd.r.UpdateMesh(b.mesh, b.verts, b.inds); err != nil {
		// Drop the geometry; the next frame resubmits it.
		logging.Warn("renderer2d", "dropping %d quads: update mesh: %v", b.quadCount, err)
		b.resetBatch()
		return 0
	}
	b.uniforms["uVP"] = b.vp
	b.samplers["uTex"] = b.tex

	b.rd.r.Draw(core.DrawCmd{
		Pipe:       b.rd.pipe,
		Mesh:       b.mesh,
		IndexCount: len(b.inds),
		Uniforms:   b.uniforms,
		Samplers:   b.samplers,
	})
	b.rd.stats.DrawCalls++
	b.resetBatch()
	return 1
}

func (b *SpriteBatch) resetBatch() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quadCount = 0
}
