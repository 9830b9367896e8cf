package ui

import (
	"strings"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/scene"
	"github.com/hubastard/groveui/engine/theme"
)

// Anchor pins a form to an edge or corner of the viewport. AnchorNone keeps
// the form at its own position.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

var anchorNames = map[string]Anchor{
	"":             AnchorNone,
	"none":         AnchorNone,
	"top-left":     AnchorTopLeft,
	"top":          AnchorTop,
	"top-right":    AnchorTopRight,
	"left":         AnchorLeft,
	"center":       AnchorCenter,
	"right":        AnchorRight,
	"bottom-left":  AnchorBottomLeft,
	"bottom":       AnchorBottom,
	"bottom-right": AnchorBottomRight,
}

// ParseAnchor accepts names like "top-left" or "bottom".
func ParseAnchor(s string) (Anchor, bool) {
	a, ok := anchorNames[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")]
	return a, ok
}

// Form is a top-level container drawn either as a screen overlay or,
// once attached to a scene node, into an offscreen buffer composited as a
// quad in the 3D scene.
type Form struct {
	*Container
	sys *System
	id  string

	x, y       float32 // screen position of an overlay form
	anchor     Anchor
	autoWidth  bool
	autoHeight bool

	node       *scene.Node
	fb         core.FrameBuffer
	projection [16]float32
	batches    []*renderer2d.SpriteBatch
	drawer     Drawer
	theme      *theme.Theme

	batched       bool
	consumeEvents bool
	destroyed     bool
}

func (f *Form) ID() string                    { return f.id }
func (f *Form) System() *System               { return f.sys }
func (f *Form) SceneNode() *scene.Node        { return f.node }
func (f *Form) FrameBuffer() core.FrameBuffer { return f.fb }
func (f *Form) Projection() [16]float32       { return f.projection }
func (f *Form) BatchingEnabled() bool         { return f.batched }
func (f *Form) SetBatchingEnabled(on bool)    { f.batched = on }
func (f *Form) ConsumeEvents() bool           { return f.consumeEvents }
func (f *Form) SetConsumeEvents(on bool)      { f.consumeEvents = on }
func (f *Form) Destroyed() bool               { return f.destroyed }
func (f *Form) Anchor() Anchor                { return f.anchor }
func (f *Form) SetAnchor(a Anchor)            { f.anchor = a }
func (f *Form) SetAutoSize(w, h bool)         { f.autoWidth, f.autoHeight = w, h }

// Theme is the form's own theme, or the system theme when it has none.
func (f *Form) Theme() *theme.Theme {
	if f.theme != nil {
		return f.theme
	}
	return f.sys.theme
}

// SetTheme overrides the system theme for this form. The caller keeps
// ownership of t.
func (f *Form) SetTheme(t *theme.Theme) { f.theme = t }

// Position is the overlay form's top-left on screen.
func (f *Form) Position() (float32, float32) { return f.x, f.y }

func (f *Form) SetPosition(x, y float32) {
	f.x, f.y = x, y
	f.anchor = AnchorNone
}

// SetSize fixes the form size in pixels.
func (f *Form) SetSize(w, h float32) {
	f.Container.WidthFixed(w)
	f.Container.HeightFixed(h)
	f.relayout()
}

// SetNode attaches the form to n, or back to the screen when n is nil.
// Attaching takes n away from any form already on it.
func (f *Form) SetNode(n *scene.Node) {
	if f.node == n || f.destroyed {
		return
	}
	if f.node != nil {
		old := f.node
		f.dropNode()
		old.Detach(f)
	}
	if n == nil {
		return
	}
	f.sys.cancelGestureIn(f)
	f.node = n
	n.Attach(f)
	f.updateFrameBuffer()
}

// NodeDetached implements scene.Attachment.
func (f *Form) NodeDetached(n *scene.Node) {
	if f.node == n {
		f.dropNode()
	}
}

func (f *Form) dropNode() {
	f.sys.cancelGestureIn(f)
	f.node = nil
	f.releaseFrameBuffer()
	f.projection = scene.Identity()
}

func (f *Form) releaseFrameBuffer() {
	if f.fb == nil {
		return
	}
	f.sys.r2d.ReleaseBatch(f.fb.Texture())
	f.fb.Release()
	f.fb = nil
}

// updateFrameBuffer keeps the offscreen buffer and projection in step with
// the form size while attached to a node.
func (f *Form) updateFrameBuffer() {
	if f.node == nil {
		return
	}
	w, h := f.base.Size()
	iw, ih := int(w+0.5), int(h+0.5)
	if iw <= 0 || ih <= 0 {
		f.releaseFrameBuffer()
		return
	}
	f.projection = scene.Ortho(0, w, h, 0, -1, 1)
	if f.fb != nil {
		if fw, fh := f.fb.Size(); fw == iw && fh == ih {
			return
		}
		f.releaseFrameBuffer()
	}
	fb, err := f.sys.renderer.CreateFrameBuffer(core.FrameBufferDesc{Width: iw, Height: ih})
	if err != nil {
		logging.Warn("ui", "form %q: offscreen buffer %dx%d: %v", f.id, iw, ih, err)
		return
	}
	f.fb = fb
}

// relayout sizes the form, places its controls and resolves the anchor.
func (f *Form) relayout() {
	b := &f.base
	vw, vh := f.sys.viewport[2], f.sys.viewport[3]
	var cons Constraints
	if f.autoWidth {
		cons.Min[0], cons.Max[0] = vw, vw
	} else if f.node == nil && b.widthMod != SizeModeFixed {
		cons.Max[0] = vw
	}
	if f.autoHeight {
		cons.Min[1], cons.Max[1] = vh, vh
	} else if f.node == nil && b.heightMod != SizeModeFixed {
		cons.Max[1] = vh
	}
	ctx := &LayoutContext{Viewport: f.sys.viewport, Theme: f.Theme()}
	if ctx.Theme != nil {
		ctx.Font = ctx.Theme.Font
	}
	f.Container.Layout(ctx, cons)
	if f.autoWidth {
		b.size[0] = vw
	}
	if f.autoHeight {
		b.size[1] = vh
	}
	f.alignToViewport()
	f.arrange()
	f.updateFrameBuffer()
}

func (f *Form) arrange() {
	f.base.position = [2]float32{}
	arrange(f.Container, 0, 0)
}

func (f *Form) alignToViewport() {
	if f.anchor == AnchorNone || f.node != nil {
		return
	}
	vw, vh := f.sys.viewport[2], f.sys.viewport[3]
	w, h := f.base.Size()
	switch f.anchor {
	case AnchorTopLeft, AnchorLeft, AnchorBottomLeft:
		f.x = 0
	case AnchorTop, AnchorCenter, AnchorBottom:
		f.x = (vw - w) / 2
	default:
		f.x = vw - w
	}
	switch f.anchor {
	case AnchorTopLeft, AnchorTop, AnchorTopRight:
		f.y = 0
	case AnchorLeft, AnchorCenter, AnchorRight:
		f.y = (vh - h) / 2
	default:
		f.y = vh - h
	}
}

// Update lays the form out and updates its enabled, visible controls.
func (f *Form) Update(dt float64) {
	if f.destroyed {
		return
	}
	f.relayout()
	f.Container.Update(dt)
}

// Draw renders the form and returns the number of draw calls it issued.
// Node-attached forms draw into their offscreen buffer and composite it as
// one quad with the system camera.
func (f *Form) Draw() int {
	if f.destroyed || !f.base.Visible() {
		return 0
	}
	defer profiler.Start("ui.Form.Draw")()

	f.batches = f.batches[:0]
	f.drawer.form = f
	f.drawer.r2d = f.sys.r2d
	f.drawer.theme = f.Theme()

	if f.node == nil {
		vp := scene.Mul(f.sys.screen.VP(), scene.Mul(scene.Translate(f.x, f.y, 0), f.projection))
		f.drawer.begin(vp, f.batched, f.x, f.y)
		f.drawer.Control(f.Container)
		return f.drawer.end()
	}

	if f.fb == nil || f.sys.camera == nil {
		return 0
	}
	r := f.sys.renderer
	prev := r.BindFrameBuffer(f.fb)
	r.Clear(0, 0, 0, 0)
	f.drawer.begin(f.projection, f.batched, 0, 0)
	f.drawer.Control(f.Container)
	calls := f.drawer.end()
	r.BindFrameBuffer(prev)

	return calls + f.composite()
}

// composite draws the offscreen buffer as a quad in the node's XY plane,
// form pixel (0,0) at the quad's top-left.
func (f *Form) composite() int {
	w, h := f.base.Size()
	toNode := scene.Mul(scene.Translate(0, h, 0), scene.Scale(1, -1, 1))
	vp := scene.Mul(f.sys.camera.VP(), scene.Mul(f.node.World(), toNode))

	b, err := f.sys.r2d.Batch(f.fb.Texture())
	if err != nil {
		logging.Warn("ui", "form %q: composite batch: %v", f.id, err)
		return 0
	}
	f.startBatch(b, vp)
	b.DrawSub(0, 0, w, h, renderer2d.FlippedV(f.fb.Texture()), colors.White)
	return f.finishBatch(b)
}

func (f *Form) startBatch(b *renderer2d.SpriteBatch, vp [16]float32) {
	b.Start(vp)
	f.batches = append(f.batches, b)
}

func (f *Form) finishBatch(b *renderer2d.SpriteBatch) int {
	return b.Finish()
}

// Batches lists the sprite batch sessions opened by the last Draw, in order.
func (f *Form) Batches() []*renderer2d.SpriteBatch { return f.batches }

// Destroy removes the form from its system, releasing its offscreen buffer
// and any focus or activation its controls held.
func (f *Form) Destroy() {
	if f.destroyed {
		return
	}
	f.SetNode(nil)
	f.sys.removeForm(f)
	adopt(f.Container, nil)
	f.releaseFrameBuffer()
	f.destroyed = true
}
