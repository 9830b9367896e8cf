package ui

// Container owns child controls and places them with its layout.
type Container struct {
	Common[*Container]
	layout     LayoutType
	gap        float32
	mainAlign  Align
	crossAlign Align

	scrollY       float32
	contentHeight float32
}

func NewContainer(layout LayoutType) *Container {
	c := &Container{layout: layout, gap: 4}
	c.Common = NewCommon(c)
	return c
}

func (c *Container) LayoutType() LayoutType        { return c.layout }
func (c *Container) Gap(g float32) *Container      { c.gap = g; return c }
func (c *Container) AlignMain(a Align) *Container  { c.mainAlign = a; return c }
func (c *Container) AlignCross(a Align) *Container { c.crossAlign = a; return c }
func (c *Container) ScrollY() float32              { return c.scrollY }

// Children adds kids in order and returns c for chaining.
func (c *Container) Children(kids ...Control) *Container {
	for _, k := range kids {
		c.AddControl(k)
	}
	return c
}

// AddControl appends ctrl, moving it out of any previous container.
func (c *Container) AddControl(ctrl Control) {
	c.InsertControl(len(c.base.children), ctrl)
}

// InsertControl places ctrl at index i among the children.
func (c *Container) InsertControl(i int, ctrl Control) {
	if ctrl == nil || ctrl == Control(c) {
		return
	}
	if prev, ok := ctrl.Node().parent.(*Container); ok && prev != nil {
		prev.RemoveControl(ctrl)
	}
	i = max(0, min(i, len(c.base.children)))
	c.base.children = append(c.base.children, nil)
	copy(c.base.children[i+1:], c.base.children[i:])
	c.base.children[i] = ctrl
	ctrl.Node().parent = c
	adopt(ctrl, c.base.form)
}

// RemoveControl detaches ctrl and releases anything the UI system held on
// it or its descendants. It reports whether ctrl was a child of c.
func (c *Container) RemoveControl(ctrl Control) bool {
	for i, k := range c.base.children {
		if k != ctrl {
			continue
		}
		c.base.children = append(c.base.children[:i], c.base.children[i+1:]...)
		ctrl.Node().parent = nil
		adopt(ctrl, nil)
		return true
	}
	return false
}

// Controls returns the direct children.
func (c *Container) Controls() []Control { return c.base.children }

// ControlByID finds a descendant by ID, depth-first.
func (c *Container) ControlByID(id string) Control {
	var found Control
	for _, k := range c.base.children {
		walk(k, func(ctrl Control) {
			if found == nil && ctrl.Node().id == id {
				found = ctrl
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// adopt moves ctrl's subtree into form f (nil when detached), updating
// registration with the form's system.
func adopt(ctrl Control, f *Form) {
	walk(ctrl, func(k Control) {
		b := k.Node()
		if b.form == f {
			return
		}
		if b.sys != nil {
			b.sys.unregister(k)
		}
		b.form = f
		if f != nil && f.sys != nil {
			f.sys.register(k)
		}
	})
}

func (c *Container) Layout(ctx *LayoutContext, constraints Constraints) LayoutResult {
	switch c.layout {
	case LayoutVertical, LayoutScroll:
		return layoutStack(c, ctx, constraints, true)
	case LayoutHorizontal:
		return layoutStack(c, ctx, constraints, false)
	case LayoutFlow:
		return layoutFlow(c, ctx, constraints)
	default:
		return layoutAbsolute(c, ctx, constraints)
	}
}

func (c *Container) Update(dt float64) {
	for _, k := range c.base.children {
		if b := k.Node(); b.Visible() && b.Enabled() {
			k.Update(dt)
		}
	}
}

func (c *Container) Draw(d *Drawer) {
	b := &c.base
	x, y, w, h := b.Bounds()
	d.Skinned(b, "container", x, y, w, h)
	scroll := c.layout == LayoutScroll
	if scroll {
		d.PushClip(x, y, w, h)
	}
	for _, k := range b.children {
		if scroll && !overlaps(k.Node(), b) {
			continue
		}
		d.Control(k)
	}
	if scroll {
		d.PopClip()
	}
}

// HandleEvent scrolls scroll containers with the wheel.
func (c *Container) HandleEvent(ev Event) bool {
	pe, ok := ev.(PointerEvent)
	if !ok || pe.Kind != PointerWheel || c.layout != LayoutScroll {
		return false
	}
	before := c.scrollY
	c.scrollY -= pe.Wheel * scrollStep
	c.clampScroll()
	if c.scrollY == before {
		return false
	}
	if f := c.base.form; f != nil {
		f.arrange()
	}
	return true
}

const scrollStep = 24

func (c *Container) clampScroll() {
	limit := maxf(0, c.contentHeight-c.base.size[1])
	c.scrollY = clamp(c.scrollY, 0, limit)
}

func overlaps(a, b *Base) bool {
	ax, ay, aw, ah := a.Bounds()
	bx, by, bw, bh := b.Bounds()
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}
