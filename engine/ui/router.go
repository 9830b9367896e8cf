package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/profiler"
)

// HandleEvent routes a platform event through the live forms and reports
// whether the UI consumed it. Unconsumed events should reach the
// application.
func (s *System) HandleEvent(ev core.Event) bool {
	defer profiler.Start("ui.System.HandleEvent")()
	switch e := ev.(type) {
	case core.EventTouch:
		return s.touchEvent(e.Action, float32(e.X), float32(e.Y), e.Contact)
	case core.EventMouseButton:
		kind := PointerRelease
		if e.Down {
			kind = PointerPress
		}
		return s.mouseEvent(kind, e.Button, float32(e.X), float32(e.Y), 0)
	case core.EventMouseMove:
		return s.mouseEvent(PointerMove, core.MouseLeft, float32(e.X), float32(e.Y), 0)
	case core.EventScroll:
		return s.mouseEvent(PointerWheel, core.MouseLeft, float32(e.X), float32(e.Y), float32(e.Yoff))
	case core.EventKey:
		return s.keyEvent(KeyEvent{Key: e.Key, Down: e.Down, Repeat: e.Repeat, Mods: e.Mods})
	case core.EventChar:
		return s.keyEvent(KeyEvent{Char: e.Char})
	case core.EventGamepad:
		return s.gamepadEvent(e)
	case core.EventResize:
		s.resizeEvent(e.W, e.H)
	}
	return false
}

func (s *System) touchEvent(action core.TouchAction, x, y float32, contact uint) bool {
	// Only the primary contact drives gestures.
	if contact != 0 {
		return false
	}
	switch action {
	case core.TouchPress:
		return s.pointerEvent(PointerPress, x, y, false, 0)
	case core.TouchRelease:
		return s.pointerEvent(PointerRelease, x, y, false, 0)
	default:
		return s.pointerEvent(PointerMove, x, y, false, 0)
	}
}

func (s *System) mouseEvent(kind PointerKind, button core.MouseButton, x, y, wheel float32) bool {
	if button != core.MouseLeft {
		return false
	}
	return s.pointerEvent(kind, x, y, true, wheel)
}

// formAt returns the top-most enabled, visible form under the screen point
// together with the point in its local pixels.
func (s *System) formAt(sx, sy float32) (*Form, float32, float32) {
	for _, f := range s.topDown() {
		if !f.base.Visible() || !f.base.Enabled() {
			continue
		}
		if x, y, hit := s.Project(f, sx, sy); hit {
			return f, x, y
		}
	}
	return nil, 0, 0
}

// findTarget returns the deepest enabled, visible control under x,y. With
// needInput set only controls that consume input qualify.
func findTarget(c Control, x, y float32, needInput bool) Control {
	b := c.Node()
	if b.hidden || b.disabled || !b.Contains(x, y) {
		return nil
	}
	for i := len(b.children) - 1; i >= 0; i-- {
		if t := findTarget(b.children[i], x, y, needInput); t != nil {
			return t
		}
	}
	if !needInput || b.consumesInput {
		return c
	}
	return nil
}

func (s *System) pointerEvent(kind PointerKind, sx, sy float32, mouse bool, wheel float32) bool {
	switch kind {
	case PointerPress:
		s.cancelGesture()
		s.gesture = false
		f, x, y := s.formAt(sx, sy)
		if f == nil {
			s.ClearFocus()
			return false
		}
		target := findTarget(f.Container, x, y, true)
		if target == nil {
			s.ClearFocus()
			return f.consumeEvents
		}
		s.setActive(target)
		s.gesture = true
		s.focusNearest(target)
		target.HandleEvent(PointerEvent{Kind: PointerPress, X: x, Y: y, Inside: true, Mouse: mouse})
		return true

	case PointerMove:
		if a := s.lookup(s.active); a != nil {
			b := a.Node()
			x, y, hit := s.Project(b.form, sx, sy)
			inside := hit && b.Contains(x, y)
			if inside {
				b.SetState(Active)
			} else {
				s.settle(a)
			}
			a.HandleEvent(PointerEvent{Kind: PointerMove, X: x, Y: y, Inside: inside, Mouse: mouse})
			return true
		}
		f, x, y := s.formAt(sx, sy)
		var target Control
		if f != nil {
			target = findTarget(f.Container, x, y, true)
		}
		if mouse {
			s.setHover(target)
		}
		return target != nil || (f != nil && f.consumeEvents)

	case PointerRelease:
		pressed := s.gesture
		s.gesture = false
		a := s.lookup(s.active)
		if a == nil {
			// The pressed control may have been removed, disabled or hidden
			// since; the release still belongs to the UI.
			if pressed {
				return true
			}
			f, _, _ := s.formAt(sx, sy)
			return f != nil && f.consumeEvents
		}
		b := a.Node()
		x, y, hit := s.Project(b.form, sx, sy)
		inside := hit && b.Contains(x, y)
		s.endGesture(a, inside, mouse)
		a.HandleEvent(PointerEvent{Kind: PointerRelease, X: x, Y: y, Inside: inside, Mouse: mouse})
		return true

	case PointerWheel:
		f, x, y := s.formAt(sx, sy)
		if f == nil {
			return false
		}
		ev := PointerEvent{Kind: PointerWheel, X: x, Y: y, Inside: true, Wheel: wheel, Mouse: mouse}
		for c := findTarget(f.Container, x, y, false); c != nil; c = c.Node().parent {
			if c.HandleEvent(ev) {
				return true
			}
		}
		return f.consumeEvents
	}
	return false
}

func (s *System) setHover(c Control) {
	if prev := s.lookup(s.hover); prev != nil && prev != c && prev.Node().state == Hover {
		prev.Node().SetState(Normal)
	}
	s.hover = 0
	if c == nil {
		return
	}
	b := c.Node()
	s.hover = b.handle
	if b.state == Normal {
		b.SetState(Hover)
	}
}

// deliver offers ev to c and then its ancestors up to the form, stopping at
// the first that accepts it.
func deliver(c Control, ev Event) bool {
	for ; c != nil; c = c.Node().parent {
		if c.HandleEvent(ev) {
			return true
		}
	}
	return false
}

func (s *System) keyEvent(ev KeyEvent) bool {
	return deliver(s.lookup(s.focus), ev)
}

type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
	dirLeft
	dirRight
)

func buttonDirection(b core.GamepadButton) direction {
	switch b {
	case core.ButtonUp:
		return dirUp
	case core.ButtonDown:
		return dirDown
	case core.ButtonLeft:
		return dirLeft
	case core.ButtonRight:
		return dirRight
	}
	return dirNone
}

// stickDirection picks the dominant axis of a joystick deflection. Y grows
// downward.
func stickDirection(v [2]float32, deadzone float32) direction {
	ax, ay := abs32(v[0]), abs32(v[1])
	if max(ax, ay) < deadzone || (ax == 0 && ay == 0) {
		return dirNone
	}
	if ax >= ay {
		if v[0] > 0 {
			return dirRight
		}
		return dirLeft
	}
	if v[1] > 0 {
		return dirDown
	}
	return dirUp
}

func (s *System) gamepadEvent(e core.EventGamepad) bool {
	ev := GamepadEvent{Action: e.Action, Device: e.Device, Button: e.Button, Index: e.Index, Value: e.Value}
	switch e.Action {
	case core.GamepadConnected:
		logging.Info("ui", "gamepad %d connected", e.Device)
		return false
	case core.GamepadDisconnected:
		delete(s.stick, e.Device)
		logging.Info("ui", "gamepad %d disconnected", e.Device)
		return false
	case core.GamepadButtonPress, core.GamepadButtonRelease:
		down := e.Action == core.GamepadButtonPress
		if dir := buttonDirection(e.Button); dir != dirNone && down {
			return s.navigate(dir)
		}
		if e.Button == core.ButtonA {
			return s.confirm(down)
		}
	case core.GamepadJoystick:
		if e.Index == 0 {
			dir := stickDirection(e.Value, s.cfg.GamepadDeadzone)
			prev := s.stick[e.Device]
			s.stick[e.Device] = dir
			if dir != dirNone && dir != prev {
				return s.navigate(dir)
			}
		}
	}
	return deliver(s.lookup(s.focus), ev)
}

// confirm presses (down) or releases the focus control like a pointer.
func (s *System) confirm(down bool) bool {
	c := s.lookup(s.focus)
	if c == nil {
		return false
	}
	b := c.Node()
	x, y, w, h := b.Bounds()
	cx, cy := x+w/2, y+h/2
	if down {
		s.cancelGesture()
		s.setActive(c)
		c.HandleEvent(PointerEvent{Kind: PointerPress, X: cx, Y: cy, Inside: true})
		return true
	}
	if s.active != b.handle {
		return false
	}
	s.endGesture(c, true, false)
	c.HandleEvent(PointerEvent{Kind: PointerRelease, X: cx, Y: cy, Inside: true})
	return true
}

// navigate moves focus to the closest focusable control in dir within the
// focus control's form. With nothing focused it focuses the first
// focusable control of the top-most form.
func (s *System) navigate(dir direction) bool {
	cur := s.lookup(s.focus)
	if cur == nil {
		for _, f := range s.topDown() {
			if !f.base.Visible() || !f.base.Enabled() {
				continue
			}
			if c := s.firstFocusable(f); c != nil {
				return s.SetFocusControl(c)
			}
		}
		return false
	}

	cb := cur.Node()
	cx, cy := center(cb)
	var best Control
	bestScore := float32(math.MaxFloat32)
	walk(cb.form.Container, func(c Control) {
		b := c.Node()
		if c == cur || !b.canFocus || b.sys != s || !interactive(b) {
			return
		}
		x, y := center(b)
		dx, dy := x-cx, y-cy
		var along, across float32
		switch dir {
		case dirRight:
			along, across = dx, dy
		case dirLeft:
			along, across = -dx, dy
		case dirDown:
			along, across = dy, dx
		case dirUp:
			along, across = -dy, dx
		}
		if along <= 0 {
			return
		}
		if score := along + 2*abs32(across); score < bestScore {
			best, bestScore = c, score
		}
	})
	if best == nil {
		return false
	}
	if s.active == cb.handle {
		s.cancelGesture()
	}
	return s.SetFocusControl(best)
}

func (s *System) firstFocusable(f *Form) Control {
	var found Control
	walk(f.Container, func(c Control) {
		b := c.Node()
		if found == nil && b.canFocus && b.sys == s && interactive(b) {
			found = c
		}
	})
	return found
}

func (s *System) resizeEvent(w, h int) {
	s.viewport = [4]float32{0, 0, float32(w), float32(h)}
	s.screen.SetScreenPixels(w, h)
	for _, f := range s.forms {
		f.relayout()
	}
}

func center(b *Base) (float32, float32) {
	x, y, w, h := b.Bounds()
	return x + w/2, y + h/2
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
