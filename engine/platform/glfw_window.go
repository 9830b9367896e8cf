package platform

import (
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/logging"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
// Pointer coordinates are reported in framebuffer pixels.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)

	pads [glfw.JoystickLast + 1]padState
}

type padState struct {
	present  bool
	buttons  [glfw.ButtonLast + 1]glfw.Action
	sticks   [2][2]float32
	triggers [2]float32
}

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	logging.Info("platform", "GL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		x, y = gw.toPixels(x, y)
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateMouseButton(b)
		if !ok {
			return
		}
		x, y := gw.toPixels(win.GetCursorPos())
		gw.emit(core.EventMouseButton{Button: btn, Down: action == glfw.Press, X: x, Y: y, Mods: translateMods(mods)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventChar{Char: r})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		x, y := gw.toPixels(win.GetCursorPos())
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff, X: x, Y: y})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// toPixels converts window coordinates to framebuffer pixels.
func (g *GLFWWindow) toPixels(x, y float64) (float64, float64) {
	ww, wh := g.w.GetSize()
	fw, fh := g.w.GetFramebufferSize()
	if ww <= 0 || wh <= 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy closes the window and shuts GLFW down.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// stickEpsilon filters analog noise between polls.
const stickEpsilon = 0.01

var padButtons = []struct {
	glfw glfw.GamepadButton
	core core.GamepadButton
}{
	{glfw.ButtonA, core.ButtonA},
	{glfw.ButtonB, core.ButtonB},
	{glfw.ButtonX, core.ButtonX},
	{glfw.ButtonY, core.ButtonY},
	{glfw.ButtonDpadUp, core.ButtonUp},
	{glfw.ButtonDpadDown, core.ButtonDown},
	{glfw.ButtonDpadLeft, core.ButtonLeft},
	{glfw.ButtonDpadRight, core.ButtonRight},
	{glfw.ButtonStart, core.ButtonMenu},
}

// PollGamepads implements core.GamepadPoller. It reports connection
// changes, button edges and analog changes for every mapped gamepad.
func (g *GLFWWindow) PollGamepads() {
	for id := glfw.Joystick1; id <= glfw.JoystickLast; id++ {
		ps := &g.pads[id]
		dev := int(id)
		present := id.Present() && id.IsGamepad()
		if present != ps.present {
			if present {
				logging.Info("platform", "gamepad %d connected: %s", dev, id.GetGamepadName())
				g.emit(core.EventGamepad{Action: core.GamepadConnected, Device: dev})
			} else {
				logging.Info("platform", "gamepad %d disconnected", dev)
				g.emit(core.EventGamepad{Action: core.GamepadDisconnected, Device: dev})
			}
			*ps = padState{present: present}
		}
		if !present {
			continue
		}
		st := id.GetGamepadState()
		if st == nil {
			continue
		}

		for _, m := range padButtons {
			now := st.Buttons[m.glfw]
			if now == ps.buttons[m.glfw] {
				continue
			}
			ps.buttons[m.glfw] = now
			action := core.GamepadButtonRelease
			if now == glfw.Press {
				action = core.GamepadButtonPress
			}
			g.emit(core.EventGamepad{Action: action, Device: dev, Button: m.core})
		}

		sticks := [2][2]float32{
			{st.Axes[glfw.AxisLeftX], st.Axes[glfw.AxisLeftY]},
			{st.Axes[glfw.AxisRightX], st.Axes[glfw.AxisRightY]},
		}
		for i, v := range sticks {
			if changed(v[0], ps.sticks[i][0]) || changed(v[1], ps.sticks[i][1]) {
				ps.sticks[i] = v
				g.emit(core.EventGamepad{Action: core.GamepadJoystick, Device: dev, Index: i, Value: v})
			}
		}

		// Triggers rest at -1; report them as 0..1.
		triggers := [2]float32{
			(st.Axes[glfw.AxisLeftTrigger] + 1) / 2,
			(st.Axes[glfw.AxisRightTrigger] + 1) / 2,
		}
		for i, v := range triggers {
			if changed(v, ps.triggers[i]) {
				ps.triggers[i] = v
				g.emit(core.EventGamepad{Action: core.GamepadTrigger, Device: dev, Index: i, Value: [2]float32{v, 0}})
			}
		}
	}
}

func changed(a, b float32) bool {
	d := a - b
	return d > stickEpsilon || d < -stickEpsilon
}

func translateMouseButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}

var keyMap = map[glfw.Key]core.Key{
	glfw.KeyEscape:    core.KeyEscape,
	glfw.KeySpace:     core.KeySpace,
	glfw.KeyEnter:     core.KeyEnter,
	glfw.KeyKPEnter:   core.KeyEnter,
	glfw.KeyTab:       core.KeyTab,
	glfw.KeyBackspace: core.KeyBackspace,
	glfw.KeyUp:        core.KeyUp,
	glfw.KeyDown:      core.KeyDown,
	glfw.KeyLeft:      core.KeyLeft,
	glfw.KeyRight:     core.KeyRight,
	glfw.KeyW:         core.KeyW,
	glfw.KeyA:         core.KeyA,
	glfw.KeyS:         core.KeyS,
	glfw.KeyD:         core.KeyD,
	glfw.KeyQ:         core.KeyQ,
	glfw.KeyE:         core.KeyE,
	glfw.KeyP:         core.KeyP,
}

func translateKey(k glfw.Key) core.Key {
	if ck, ok := keyMap[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
