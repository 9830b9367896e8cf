package ui

import "github.com/hubastard/groveui/engine/theme"

// Control is the capability set every UI element provides. Hit testing,
// routing and drawing only go through this interface.
type Control interface {
	Node() *Base
	Layout(ctx *LayoutContext, constraints Constraints) LayoutResult
	Update(dt float64)
	Draw(d *Drawer)
	HandleEvent(ev Event) bool
}

// Base is the state shared by all controls.
type Base struct {
	sys      *System
	handle   Handle
	form     *Form
	parent   Control
	children []Control

	id            string
	state         State
	disabled      bool
	hidden        bool
	canFocus      bool
	consumesInput bool

	position  [2]float32 // relative to the parent's top-left
	abs       [2]float32 // form-local, resolved after layout
	size      [2]float32
	widthMod  SizeMode
	heightMod SizeMode
	widthVal  float32
	heightVal float32
	padding   [4]float32 // left, top, right, bottom
	style     *theme.Style
}

func (b *Base) ID() string              { return b.id }
func (b *Base) Handle() Handle          { return b.handle }
func (b *Base) Form() *Form             { return b.form }
func (b *Base) Parent() Control         { return b.parent }
func (b *Base) Children() []Control     { return b.children }
func (b *Base) State() State            { return b.state }
func (b *Base) Enabled() bool           { return !b.disabled }
func (b *Base) Visible() bool           { return !b.hidden }
func (b *Base) CanFocus() bool          { return b.canFocus }
func (b *Base) ConsumesInput() bool     { return b.consumesInput }
func (b *Base) Style() *theme.Style     { return b.style }
func (b *Base) SetStyle(s *theme.Style) { b.style = s }
func (b *Base) Pos() (x, y float32)     { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)    { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)     { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32)    { b.size = [2]float32{w, h} }
func (b *Base) Padding() [4]float32     { return b.padding }
func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

// Bounds is the control's rectangle in form-local pixels.
func (b *Base) Bounds() (x, y, w, h float32) {
	return b.abs[0], b.abs[1], b.size[0], b.size[1]
}

// Contains reports whether the form-local point lies inside the bounds.
func (b *Base) Contains(x, y float32) bool {
	return x >= b.abs[0] && x <= b.abs[0]+b.size[0] &&
		y >= b.abs[1] && y <= b.abs[1]+b.size[1]
}

// SetState changes the interaction state. Disabled controls keep their
// state, and Disabled itself is only reachable through SetEnabled.
func (b *Base) SetState(s State) {
	if b.disabled || s == Disabled {
		return
	}
	b.state = s
}

// SetEnabled toggles the control. Disabling releases focus, activation and
// hover held by the control or any of its descendants.
func (b *Base) SetEnabled(enabled bool) {
	if enabled == !b.disabled {
		return
	}
	if enabled {
		b.disabled = false
		b.state = Normal
		return
	}
	b.disabled = true
	b.state = Disabled
	if b.sys != nil {
		b.sys.release(b)
	}
}

// SetVisible shows or hides the control. Hidden controls drop any focus,
// activation or hover they hold.
func (b *Base) SetVisible(visible bool) {
	if visible == !b.hidden {
		return
	}
	b.hidden = !visible
	if b.hidden && b.sys != nil {
		b.sys.release(b)
	}
}

func (b *Base) innerPosition() (float32, float32) {
	return b.padding[0], b.padding[1]
}

func (b *Base) innerSize() (float32, float32) {
	return maxf(0, b.size[0]-b.padding[0]-b.padding[2]),
		maxf(0, b.size[1]-b.padding[1]-b.padding[3])
}

// walk visits b's subtree depth-first, parents before children.
func walk(c Control, fn func(Control)) {
	fn(c)
	for _, k := range c.Node().children {
		walk(k, fn)
	}
}

// ------ Helper ------

// Common carries Base plus the fluent setters shared by every control type.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base                { return &c.base }
func (c *Common[T]) Update(float64)             {}
func (c *Common[T]) HandleEvent(Event) bool     { return false }
func (c *Common[T]) ID(id string) T             { c.base.id = id; return c.owner }
func (c *Common[T]) Position(x, y float32) T    { c.base.SetPos(x, y); return c.owner }
func (c *Common[T]) Styled(s *theme.Style) T    { c.base.style = s; return c.owner }
func (c *Common[T]) Focusable(focusable bool) T { c.base.canFocus = focusable; return c.owner }
func (c *Common[T]) Padding(all float32) T      { return c.Padding4(all, all, all, all) }
func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	return c.Padding4(horizontal, vertical, horizontal, vertical)
}

// Size fixes both axes.
func (c *Common[T]) Size(w, h float32) T {
	c.WidthFixed(w)
	return c.HeightFixed(h)
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}

func (c *Common[T]) WidthFit() T {
	c.base.widthMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) WidthFixed(width float32) T {
	c.base.widthMod = SizeModeFixed
	c.base.widthVal = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T {
	c.base.widthMod = SizeModeExpand
	return c.owner
}

func (c *Common[T]) HeightFit() T {
	c.base.heightMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) HeightFixed(height float32) T {
	c.base.heightMod = SizeModeFixed
	c.base.heightVal = height
	return c.owner
}

func (c *Common[T]) HeightExpand() T {
	c.base.heightMod = SizeModeExpand
	return c.owner
}
