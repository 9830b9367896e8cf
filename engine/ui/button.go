package ui

import "github.com/hubastard/groveui/engine/core"

// Button is a focusable control with a centered caption. Click listeners
// fire when a press is released inside the button, or on Enter/Space while
// it holds focus.
type Button struct {
	Common[*Button]
	label   *Label
	onClick []func(*Button)
}

func NewButton(caption string) *Button {
	b := &Button{label: NewLabel(caption)}
	b.Common = NewCommon(b)
	b.base.canFocus = true
	b.base.consumesInput = true
	b.base.SetPadding(10, 6, 10, 6)
	b.base.children = []Control{b.label}
	b.label.base.parent = b
	return b
}

func (b *Button) Caption() string     { return b.label.Text() }
func (b *Button) SetCaption(s string) { b.label.SetText(s) }
func (b *Button) Label() *Label       { return b.label }

// OnClick registers fn to run on every click.
func (b *Button) OnClick(fn func(*Button)) *Button {
	b.onClick = append(b.onClick, fn)
	return b
}

// Click runs the click listeners.
func (b *Button) Click() {
	for _, fn := range b.onClick {
		fn(b)
	}
}

func (b *Button) HandleEvent(ev Event) bool {
	switch e := ev.(type) {
	case PointerEvent:
		switch e.Kind {
		case PointerPress, PointerMove, PointerCancel:
			return true
		case PointerRelease:
			if e.Inside {
				b.Click()
			}
			return true
		}
	case KeyEvent:
		if e.Down && !e.Repeat && (e.Key == core.KeyEnter || e.Key == core.KeySpace) {
			b.Click()
			return true
		}
	}
	return false
}

func (b *Button) Layout(ctx *LayoutContext, constraints Constraints) LayoutResult {
	inner := b.base.childConstraints(constraints)
	res := b.label.Layout(ctx, inner)
	w, h := b.base.resolveSize(res.Size[0], res.Size[1], constraints)
	b.base.SetSize(w, h)

	innerW, innerH := b.base.innerSize()
	lw, lh := clamp(res.Size[0], 0, innerW), clamp(res.Size[1], 0, innerH)
	px, py := b.base.innerPosition()
	b.label.base.SetPos(px+(innerW-lw)/2, py+(innerH-lh)/2)
	b.label.base.SetSize(lw, lh)
	return LayoutResult{Size: b.base.size}
}

func (b *Button) Draw(d *Drawer) {
	x, y, w, h := b.base.Bounds()
	skin := d.Skinned(&b.base, "button", x, y, w, h)

	font := b.label.font
	if font == nil {
		font = d.Font()
	}
	if font == nil || b.label.layoutStr == "" {
		return
	}
	lx, ly, _, _ := b.label.base.Bounds()
	d.Text(font, lx, ly, b.label.layoutStr, skin.TextColor)
}
