package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/groveui/engine/core"
)

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. The
// context must be current on the calling (main) thread.
type RendererGL struct {
	win           core.Window
	width, height int
	bound         *frameBufferGL
	blend         bool
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	r.width, r.height = r.win.FramebufferSize()
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.bound != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		r.bound = nil
	}
}

func (r *RendererGL) Resize(w, h int) {
	r.width, r.height = w, h
	if r.bound == nil {
		gl.Viewport(0, 0, int32(w), int32(h))
	}
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

// --- pipelines ---

type pipelineGL struct {
	program   uint32
	depthTest bool
	blend     bool
	locations map[string]int32
}

func (p *pipelineGL) Release() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

func (p *pipelineGL) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	return &pipelineGL{
		program:   prog,
		depthTest: desc.DepthTest,
		blend:     desc.Blend,
		locations: make(map[string]int32),
	}, nil
}

// --- textures ---

type textureGL struct {
	id   uint32
	w, h int
}

func (t *textureGL) Size() (int, int) { return t.w, t.h }
func (t *textureGL) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func filterOf(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrapOf(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) < desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture pixels: have %d bytes, want %d", len(desc.Pixels), desc.Width*desc.Height*4)
	}
	t := &textureGL{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterOf(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterOf(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapOf(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapOf(desc.WrapV))

	var pix unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pix = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// --- meshes ---

type meshGL struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertCap       int
	indCap        int
}

func (m *meshGL) Release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return nil, fmt.Errorf("mesh: empty vertex or index data")
	}
	m := &meshGL{
		indexCount: int32(len(desc.Indices)),
		vertCap:    len(desc.Vertices),
		indCap:     len(desc.Indices),
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.DYNAMIC_DRAW)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, desc.Layout.Stride, uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (r *RendererGL) UpdateMesh(mesh core.Mesh, verts []float32, inds []uint32) error {
	m, ok := mesh.(*meshGL)
	if !ok {
		return fmt.Errorf("mesh %T not created by the GL backend", mesh)
	}
	if len(verts) > m.vertCap || len(inds) > m.indCap {
		return fmt.Errorf("mesh overflow: %d/%d verts, %d/%d indices", len(verts), m.vertCap, len(inds), m.indCap)
	}
	gl.BindVertexArray(m.vao)
	if len(verts) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	}
	if len(inds) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(inds)*4, gl.Ptr(inds))
	}
	m.indexCount = int32(len(inds))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// --- frame buffers ---

type frameBufferGL struct {
	fbo   uint32
	color *textureGL
}

func (f *frameBufferGL) Size() (int, int)      { return f.color.w, f.color.h }
func (f *frameBufferGL) Texture() core.Texture { return f.color }
func (f *frameBufferGL) Release() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	f.color.Release()
}

func (r *RendererGL) CreateFrameBuffer(desc core.FrameBufferDesc) (core.FrameBuffer, error) {
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: desc.Width, Height: desc.Height,
		Format:    core.TextureRGBA8,
		MinFilter: "linear", MagFilter: "linear",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("frame buffer color: %w", err)
	}
	fb := &frameBufferGL{color: tex.(*textureGL)}
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	r.rebind()
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Release()
		return nil, fmt.Errorf("frame buffer incomplete: 0x%x", status)
	}
	return fb, nil
}

func (r *RendererGL) BindFrameBuffer(fb core.FrameBuffer) core.FrameBuffer {
	var prev core.FrameBuffer
	if r.bound != nil {
		prev = r.bound
	}
	r.bound = nil
	if f, ok := fb.(*frameBufferGL); ok && f != nil {
		r.bound = f
	}
	r.rebind()
	return prev
}

func (r *RendererGL) rebind() {
	if r.bound == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.width), int32(r.height))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.bound.fbo)
	gl.Viewport(0, 0, int32(r.bound.color.w), int32(r.bound.color.h))
}

func (r *RendererGL) SetScissor(rect *[4]int) {
	if rect == nil {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	targetH := r.height
	if r.bound != nil {
		targetH = r.bound.color.h
	}
	w, h := max(rect[2], 0), max(rect[3], 0)
	gl.Enable(gl.SCISSOR_TEST)
	// GL counts rows from the bottom.
	gl.Scissor(int32(rect[0]), int32(targetH-rect[1]-h), int32(w), int32(h))
}

// --- drawing ---

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipelineGL)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*meshGL)
	if !ok {
		return
	}

	if p.blend != r.blend {
		if p.blend {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		} else {
			gl.Disable(gl.BLEND)
		}
		r.blend = p.blend
	}
	if p.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	gl.UseProgram(p.program)
	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		switch val := v.(type) {
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &val[0])
		case [4]float32:
			gl.Uniform4f(loc, val[0], val[1], val[2], val[3])
		case float32:
			gl.Uniform1f(loc, val)
		case int32:
			gl.Uniform1i(loc, val)
		}
	}
	unit := int32(0)
	for name, tex := range cmd.Samplers {
		t, ok := tex.(*textureGL)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.Uniform1i(p.location(name), unit)
		unit++
	}

	count := m.indexCount
	if cmd.IndexCount > 0 {
		count = int32(cmd.IndexCount)
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	if !strings.HasSuffix(vsSrc, "\x00") {
		vsSrc += "\x00"
	}
	if !strings.HasSuffix(fsSrc, "\x00") {
		fsSrc += "\x00"
	}
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
