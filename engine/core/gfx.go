package core

// Renderer is the GPU abstraction the engine draws through. The GL backend
// lives in gfx/gl; tests use gfx/gfxtest.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, verts []float32, inds []uint32) error
	CreateFrameBuffer(desc FrameBufferDesc) (FrameBuffer, error)
	// BindFrameBuffer redirects drawing into fb and returns the previously
	// bound buffer. nil binds the window's default buffer.
	BindFrameBuffer(fb FrameBuffer) FrameBuffer
	// SetScissor limits drawing to rect, given as x, y, w, h in pixels of
	// the bound target with a top-left origin. nil lifts the limit.
	SetScissor(rect *[4]int)
	Draw(cmd DrawCmd)
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
	Shutdown()
}

// Resources are released explicitly; the GC never frees GPU memory.
type Pipeline interface{ Release() }

type Mesh interface{ Release() }

type Texture interface {
	Size() (w, h int)
	Release()
}

type FrameBuffer interface {
	Size() (w, h int)
	Texture() Texture
	Release()
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte // nil allocates uninitialized storage
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

type FrameBufferDesc struct {
	Width, Height int
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd issues one indexed draw of Mesh with Pipe. IndexCount of 0 draws
// every index uploaded by the last UpdateMesh.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int
	Uniforms   map[string]any
	Samplers   map[string]Texture
}
