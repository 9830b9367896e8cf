package ui

import (
	"fmt"

	"github.com/hubastard/groveui/engine/assets"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/scene"
	"github.com/hubastard/groveui/engine/theme"
)

// System is the process-wide UI context: the live forms, the control
// arena, and the focus, active and hover slots. Create one at start with
// NewSystem, push it onto the layer stack, and Shutdown at exit.
type System struct {
	renderer core.Renderer
	r2d      *renderer2d.Renderer2D
	cfg      core.Config
	store    *assets.Store

	theme     *theme.Theme
	ownsTheme bool
	themes    map[string]*theme.Theme // loaded by path

	viewport [4]float32
	screen   *scene.OrthoCamera2D
	camera   *scene.Camera3D

	forms    []*Form
	controls map[Handle]Control
	next     Handle

	focus       Handle
	active      Handle
	activeState State // state of the active control when it was pressed
	hover       Handle

	// gesture is set from a press that activated a control until the
	// matching release, even when the control goes away in between.
	gesture bool

	stick map[int]direction // last joystick direction per device
}

func NewSystem(r core.Renderer, cfg core.Config) (*System, error) {
	r2d, err := renderer2d.New(r, "", "", cfg.MaxQuads)
	if err != nil {
		return nil, fmt.Errorf("ui renderer: %w", err)
	}
	th, err := theme.Default(r)
	if err != nil {
		r2d.Release()
		return nil, fmt.Errorf("ui theme: %w", err)
	}
	s := &System{
		renderer:  r,
		r2d:       r2d,
		cfg:       cfg,
		store:     assets.New(cfg.AssetRoot),
		theme:     th,
		ownsTheme: true,
		themes:    make(map[string]*theme.Theme),
		screen:    scene.NewScreenOrtho(cfg.Width, cfg.Height),
		controls:  make(map[Handle]Control),
		stick:     make(map[int]direction),
	}
	s.viewport = [4]float32{0, 0, float32(cfg.Width), float32(cfg.Height)}
	return s, nil
}

func (s *System) Renderer2D() *renderer2d.Renderer2D { return s.r2d }
func (s *System) Theme() *theme.Theme                { return s.theme }
func (s *System) Camera() *scene.Camera3D            { return s.camera }
func (s *System) Viewport() [4]float32               { return s.viewport }

// SetCamera sets the camera node-attached forms are composited and picked
// with.
func (s *System) SetCamera(cam *scene.Camera3D) { s.camera = cam }

// SetAssets replaces the store forms and themes are loaded from.
func (s *System) SetAssets(store *assets.Store) { s.store = store }

// SetTheme replaces the default theme. The caller keeps ownership of t.
func (s *System) SetTheme(t *theme.Theme) {
	if s.ownsTheme {
		s.theme.Release()
	}
	s.theme = t
	s.ownsTheme = false
}

// NewForm creates an empty form and adds it to the live set as the
// top-most form. style may be nil to use the theme's "form" style.
func (s *System) NewForm(id string, style *theme.Style, layout LayoutType) *Form {
	f := &Form{
		Container:  NewContainer(layout),
		sys:        s,
		id:         id,
		projection: scene.Identity(),
		batched:    true,
	}
	if style == nil && s.theme != nil {
		style, _ = s.theme.Style("form")
	}
	f.base.id = id
	f.base.style = style
	f.base.form = f
	s.register(f.Container)
	s.forms = append(s.forms, f)
	logging.Debug("ui", "form %q created", id)
	return f
}

// Form returns the live form with id, or nil.
func (s *System) Form(id string) *Form {
	for _, f := range s.forms {
		if f.id == id {
			return f
		}
	}
	return nil
}

// Forms returns the live forms, bottom-most first.
func (s *System) Forms() []*Form { return s.forms }

// Raise makes f the top-most form of its kind.
func (s *System) Raise(f *Form) {
	for i, g := range s.forms {
		if g == f {
			s.forms = append(s.forms[:i], s.forms[i+1:]...)
			s.forms = append(s.forms, f)
			return
		}
	}
}

func (s *System) removeForm(f *Form) {
	for i, g := range s.forms {
		if g == f {
			s.forms = append(s.forms[:i], s.forms[i+1:]...)
			return
		}
	}
}

// topDown lists forms in hit-test order: overlays before node-attached
// forms, later forms before earlier ones.
func (s *System) topDown() []*Form {
	out := make([]*Form, 0, len(s.forms))
	for i := len(s.forms) - 1; i >= 0; i-- {
		if s.forms[i].node == nil {
			out = append(out, s.forms[i])
		}
	}
	for i := len(s.forms) - 1; i >= 0; i-- {
		if s.forms[i].node != nil {
			out = append(out, s.forms[i])
		}
	}
	return out
}

// Update lays out and updates every visible, enabled form.
func (s *System) Update(dt float64) {
	defer profiler.Start("ui.System.Update")()
	for _, f := range append([]*Form(nil), s.forms...) {
		if f.base.Visible() && f.base.Enabled() {
			f.Update(dt)
		}
	}
}

// Draw draws node-attached forms, then overlays, and returns the total
// number of draw calls.
func (s *System) Draw() int {
	s.r2d.ResetStats()
	calls := 0
	for _, f := range s.forms {
		if f.node != nil && f.base.Enabled() {
			calls += f.Draw()
		}
	}
	for _, f := range s.forms {
		if f.node == nil && f.base.Enabled() {
			calls += f.Draw()
		}
	}
	return calls
}

// Shutdown destroys every form and releases GPU resources. Calling it
// again does nothing.
func (s *System) Shutdown() {
	if s.r2d == nil {
		return
	}
	for len(s.forms) > 0 {
		s.forms[len(s.forms)-1].Destroy()
	}
	for path, t := range s.themes {
		t.Release()
		delete(s.themes, path)
	}
	if s.ownsTheme && s.theme != nil {
		s.theme.Release()
	}
	s.theme = nil
	s.r2d.Release()
	s.r2d = nil
}

// ---- control arena ----

func (s *System) register(c Control) {
	b := c.Node()
	if b.sys == s && b.handle != 0 {
		return
	}
	s.next++
	b.sys = s
	b.handle = s.next
	s.controls[b.handle] = c
}

func (s *System) unregister(c Control) {
	b := c.Node()
	if b.sys != s {
		return
	}
	s.forget(b)
	delete(s.controls, b.handle)
	b.handle = 0
	b.sys = nil
}

// lookup resolves h, or nil when the control is gone.
func (s *System) lookup(h Handle) Control {
	if h == 0 {
		return nil
	}
	return s.controls[h]
}

// forget clears every slot referring to b.
func (s *System) forget(b *Base) {
	h := b.handle
	if h == 0 {
		return
	}
	if s.active == h {
		s.active = 0
		s.activeState = Normal
	}
	if s.focus == h {
		s.focus = 0
	}
	if s.hover == h {
		s.hover = 0
	}
	if b.state != Disabled {
		b.state = Normal
	}
}

// release forgets b and its whole subtree.
func (s *System) release(b *Base) {
	s.forget(b)
	for _, k := range b.children {
		walk(k, func(c Control) { s.forget(c.Node()) })
	}
}

// ---- focus and activation ----

func (s *System) FocusControl() Control  { return s.lookup(s.focus) }
func (s *System) ActiveControl() Control { return s.lookup(s.active) }
func (s *System) HoverControl() Control  { return s.lookup(s.hover) }

// ClearFocus removes focus from the focus control.
func (s *System) ClearFocus() {
	c := s.lookup(s.focus)
	s.focus = 0
	if c != nil && s.active != c.Node().handle {
		c.Node().SetState(Normal)
	}
}

// SetFocusControl gives c focus. It reports false, leaving focus alone,
// when c cannot take focus. A nil c clears focus.
func (s *System) SetFocusControl(c Control) bool {
	if c == nil {
		s.ClearFocus()
		return true
	}
	b := c.Node()
	if b.sys != s || !b.canFocus || !interactive(b) {
		return false
	}
	if s.focus == b.handle {
		return true
	}
	s.ClearFocus()
	s.focus = b.handle
	if s.active != b.handle {
		b.SetState(Focus)
	}
	return true
}

// interactive reports whether b and every ancestor are enabled and visible.
func interactive(b *Base) bool {
	for ; b != nil; b = parentBase(b) {
		if b.disabled || b.hidden {
			return false
		}
	}
	return true
}

func parentBase(b *Base) *Base {
	if b.parent == nil {
		return nil
	}
	return b.parent.Node()
}

// focusNearest focuses target or its nearest focusable ancestor below the
// form, clearing focus when there is none.
func (s *System) focusNearest(target Control) {
	for c := target; c != nil; c = c.Node().parent {
		b := c.Node()
		if b.form != nil && b == &b.form.base {
			break
		}
		if b.canFocus && s.SetFocusControl(c) {
			return
		}
	}
	s.ClearFocus()
}

func (s *System) setActive(c Control) {
	b := c.Node()
	s.activeState = b.state
	s.active = b.handle
	b.SetState(Active)
}

// settle puts c back to Focus or Normal after a gesture ends.
func (s *System) settle(c Control) {
	if s.focus == c.Node().handle {
		c.Node().SetState(Focus)
		return
	}
	c.Node().SetState(Normal)
}

// endGesture clears the active slot and settles c. A mouse release inside
// a control that was hovered when pressed leaves it hovered.
func (s *System) endGesture(c Control, inside, mouse bool) {
	was := s.activeState
	s.active = 0
	s.activeState = Normal
	s.settle(c)
	if inside && mouse && was == Hover && c.Node().state == Normal {
		s.setHover(c)
	}
}

// cancelGesture ends a gesture in progress without a release.
func (s *System) cancelGesture() {
	a := s.lookup(s.active)
	if a == nil {
		return
	}
	s.endGesture(a, false, false)
	a.HandleEvent(PointerEvent{Kind: PointerCancel})
}

// cancelGestureIn cancels the gesture when it belongs to form f.
func (s *System) cancelGestureIn(f *Form) {
	if a := s.lookup(s.active); a != nil && a.Node().form == f {
		s.cancelGesture()
	}
}

// ---- core.Layer ----

func (s *System) OnAttach(e *core.Engine) {
	if e.Window != nil {
		w, h := e.Window.FramebufferSize()
		s.resizeEvent(w, h)
	}
}

func (s *System) OnDetach(e *core.Engine)             { s.Shutdown() }
func (s *System) OnUpdate(e *core.Engine, dt float64) { s.Update(dt) }
func (s *System) OnRender(e *core.Engine, _ float64)  { s.Draw() }

func (s *System) OnEvent(e *core.Engine, ev core.Event) bool {
	return s.HandleEvent(ev)
}
