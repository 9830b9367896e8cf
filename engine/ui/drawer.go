package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/text"
	"github.com/hubastard/groveui/engine/theme"
)

// Drawer is a form's draw pass. Consecutive quads that share a texture are
// coalesced into one sprite batch session; a texture change closes the
// open session, issuing its draw call.
type Drawer struct {
	form    *Form
	r2d     *renderer2d.Renderer2D
	theme   *theme.Theme
	vp      [16]float32
	open    *renderer2d.SpriteBatch
	calls   int
	batched bool

	origin [2]float32   // form pixel (0,0) in target pixels
	clips  [][4]float32 // x0, y0, x1, y1 in form pixels, innermost last
}

func (d *Drawer) begin(vp [16]float32, batched bool, originX, originY float32) {
	d.vp = vp
	d.batched = batched
	d.open = nil
	d.calls = 0
	d.origin = [2]float32{originX, originY}
	d.clips = d.clips[:0]
}

// end closes the open session and returns the pass's draw calls.
func (d *Drawer) end() int {
	d.flush()
	if len(d.clips) > 0 {
		d.clips = d.clips[:0]
		d.applyClip()
	}
	return d.calls
}

// PushClip limits the following draws to x,y,w,h in form pixels,
// intersected with the enclosing clip. Pair every call with PopClip.
func (d *Drawer) PushClip(x, y, w, h float32) {
	r := [4]float32{x, y, x + w, y + h}
	if n := len(d.clips); n > 0 {
		p := d.clips[n-1]
		r = [4]float32{maxf(r[0], p[0]), maxf(r[1], p[1]), minf(r[2], p[2]), minf(r[3], p[3])}
	}
	d.flush()
	d.clips = append(d.clips, r)
	d.applyClip()
}

func (d *Drawer) PopClip() {
	if len(d.clips) == 0 {
		return
	}
	d.flush()
	d.clips = d.clips[:len(d.clips)-1]
	d.applyClip()
}

func (d *Drawer) applyClip() {
	r := d.form.sys.renderer
	if len(d.clips) == 0 {
		r.SetScissor(nil)
		return
	}
	c := d.clips[len(d.clips)-1]
	x0 := int(math.Floor(float64(c[0] + d.origin[0])))
	y0 := int(math.Floor(float64(c[1] + d.origin[1])))
	x1 := int(math.Ceil(float64(c[2] + d.origin[0])))
	y1 := int(math.Ceil(float64(c[3] + d.origin[1])))
	rect := [4]int{x0, y0, max(x1-x0, 0), max(y1-y0, 0)}
	r.SetScissor(&rect)
}

func (d *Drawer) flush() {
	if d.open == nil {
		return
	}
	d.calls += d.form.finishBatch(d.open)
	d.open = nil
}

func (d *Drawer) Theme() *theme.Theme { return d.theme }

func (d *Drawer) Font() *text.Font {
	if d.theme == nil {
		return nil
	}
	return d.theme.Font
}

// Control draws c if it is visible. With batching disabled every control
// is submitted on its own.
func (d *Drawer) Control(c Control) {
	if !c.Node().Visible() {
		return
	}
	if !d.batched {
		d.flush()
	}
	c.Draw(d)
	if !d.batched {
		d.flush()
	}
}

// Skin resolves the skin for b's current state, using the theme style
// named fallback when b has no style of its own.
func (d *Drawer) Skin(b *Base, fallback string) theme.Skin {
	style := b.style
	if style == nil && d.theme != nil {
		style, _ = d.theme.Style(fallback)
	}
	if style == nil {
		return theme.Skin{TextColor: colors.White}
	}
	return style.Skin(b.state.String())
}

// Skinned draws b's background skin over x,y,w,h and returns the skin.
func (d *Drawer) Skinned(b *Base, fallback string, x, y, w, h float32) theme.Skin {
	skin := d.Skin(b, fallback)
	if skin.Color[3] > 0 && w > 0 && h > 0 {
		sub := skin.Region
		if sub.Texture == nil {
			sub = renderer2d.Full(nil)
		}
		d.Quad(x, y, w, h, sub, skin.Color)
	}
	return skin
}

func (d *Drawer) Rect(x, y, w, h float32, color colors.Color) {
	d.Quad(x, y, w, h, renderer2d.Full(nil), color)
}

func (d *Drawer) Text(font *text.Font, x, y float32, s string, color colors.Color) {
	text.Draw(d, font, x, y, s, color)
}

// Quad draws a textured quad in form pixels. A nil sub.Texture draws flat
// color.
func (d *Drawer) Quad(x, y, w, h float32, sub renderer2d.SubTexture2D, color colors.Color) {
	tex := sub.Texture
	if tex == nil {
		tex = d.r2d.White()
	}
	if d.open == nil || d.open.Texture() != tex {
		d.flush()
		b, err := d.r2d.Batch(tex)
		if err != nil {
			logging.Warn("ui", "form %q: no sprite batch: %v", d.form.id, err)
			return
		}
		d.form.startBatch(b, d.vp)
		d.open = b
	}
	d.calls += d.open.DrawSub(x, y, w, h, sub, color)
}
