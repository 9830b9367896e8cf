// Package gfxtest provides a headless core.Renderer that records what it is
// asked to do.
package gfxtest

import (
	"errors"

	"github.com/hubastard/groveui/engine/core"
)

// Texture is a fake GPU texture.
type Texture struct {
	Name     string
	W, H     int
	Released bool
}

func (t *Texture) Size() (int, int) { return t.W, t.H }
func (t *Texture) Release()         { t.Released = true }

// FrameBuffer is a fake render target with its own color texture.
type FrameBuffer struct {
	Color    *Texture
	Released bool
}

func (f *FrameBuffer) Size() (int, int)      { return f.Color.W, f.Color.H }
func (f *FrameBuffer) Texture() core.Texture { return f.Color }
func (f *FrameBuffer) Release()              { f.Released = true; f.Color.Released = true }

type mesh struct{ released bool }

func (m *mesh) Release() { m.released = true }

type pipeline struct{}

func (pipeline) Release() {}

// Draw is one recorded draw call.
type Draw struct {
	Texture core.Texture
	Target  core.FrameBuffer // nil for the window
	Indices int
	VP      [16]float32
	Scissor *[4]int // nil when unclipped
}

// Recorder implements core.Renderer without a GPU.
type Recorder struct {
	Draws        []Draw
	FrameBuffers []*FrameBuffer
	Textures     []*Texture

	// FailFrameBuffers makes CreateFrameBuffer return an error.
	FailFrameBuffers bool
	// FailUpdateMesh makes UpdateMesh return an error.
	FailUpdateMesh bool

	bound   core.FrameBuffer
	scissor *[4]int
	width   int
	height  int
}

func New() *Recorder { return &Recorder{width: 800, height: 600} }

func (r *Recorder) Init() error              { return nil }
func (r *Recorder) Resize(w, h int)          { r.width, r.height = w, h }
func (r *Recorder) Clear(_, _, _, _ float32) {}
func (r *Recorder) Shutdown()                {}
func (r *Recorder) GPUVendor() string        { return "gfxtest" }
func (r *Recorder) GPURenderer() string      { return "recorder" }
func (r *Recorder) GPUVersion() string       { return "0" }

func (r *Recorder) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) { return pipeline{}, nil }

func (r *Recorder) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, errors.New("gfxtest: empty texture")
	}
	t := &Texture{W: desc.Width, H: desc.Height}
	r.Textures = append(r.Textures, t)
	return t, nil
}

// NewTexture makes a named texture for tests that need distinct atlases.
func (r *Recorder) NewTexture(name string, w, h int) *Texture {
	t := &Texture{Name: name, W: w, H: h}
	r.Textures = append(r.Textures, t)
	return t
}

func (r *Recorder) CreateMesh(core.MeshDesc) (core.Mesh, error) { return &mesh{}, nil }

func (r *Recorder) UpdateMesh(core.Mesh, []float32, []uint32) error {
	if r.FailUpdateMesh {
		return errors.New("gfxtest: mesh upload refused")
	}
	return nil
}

func (r *Recorder) CreateFrameBuffer(desc core.FrameBufferDesc) (core.FrameBuffer, error) {
	if r.FailFrameBuffers {
		return nil, errors.New("gfxtest: frame buffers disabled")
	}
	fb := &FrameBuffer{Color: &Texture{Name: "framebuffer", W: desc.Width, H: desc.Height}}
	r.FrameBuffers = append(r.FrameBuffers, fb)
	return fb, nil
}

func (r *Recorder) BindFrameBuffer(fb core.FrameBuffer) core.FrameBuffer {
	prev := r.bound
	r.bound = fb
	return prev
}

// Bound is the frame buffer draws currently land in.
func (r *Recorder) Bound() core.FrameBuffer { return r.bound }

func (r *Recorder) SetScissor(rect *[4]int) {
	r.scissor = nil
	if rect != nil {
		c := *rect
		r.scissor = &c
	}
}

// Scissor is the clip rect draws are currently limited to.
func (r *Recorder) Scissor() *[4]int { return r.scissor }

func (r *Recorder) Draw(cmd core.DrawCmd) {
	d := Draw{Texture: cmd.Samplers["uTex"], Target: r.bound, Indices: cmd.IndexCount, Scissor: r.scissor}
	if vp, ok := cmd.Uniforms["uVP"].([16]float32); ok {
		d.VP = vp
	}
	r.Draws = append(r.Draws, d)
}

// Reset forgets recorded draws.
func (r *Recorder) Reset() { r.Draws = r.Draws[:0] }

// DrawsInto returns the draws that landed in target (nil = window).
func (r *Recorder) DrawsInto(target core.FrameBuffer) []Draw {
	var out []Draw
	for _, d := range r.Draws {
		if d.Target == target {
			out = append(out, d)
		}
	}
	return out
}
