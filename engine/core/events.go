package core

// Event model. Platform backends translate their callbacks into these values
// and hand them to the layer stack, top-most layer first.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

// EventChar carries translated text input.
type EventChar struct{ Char rune }

func (EventChar) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

// EventScroll is a wheel movement at the cursor position X,Y.
type EventScroll struct {
	Xoff, Yoff float64
	X, Y       float64
}

func (EventScroll) isEvent() {}

// EventTouch is a single contact point changing state.
type EventTouch struct {
	Action  TouchAction
	X, Y    float64
	Contact uint
}

func (EventTouch) isEvent() {}

// EventGamepad reports gamepad connection changes, buttons and analog input.
// For joystick and trigger events Index is the analog index and Value holds
// the axis values (triggers only use Value[0]).
type EventGamepad struct {
	Action GamepadAction
	Device int
	Button GamepadButton
	Index  int
	Value  [2]float32
}

func (EventGamepad) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyP
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

type TouchAction int

const (
	TouchPress TouchAction = iota
	TouchRelease
	TouchMove
)

type GamepadAction int

const (
	GamepadConnected GamepadAction = iota
	GamepadDisconnected
	GamepadButtonPress
	GamepadButtonRelease
	GamepadJoystick
	GamepadTrigger
)

type GamepadButton int

const (
	ButtonNone GamepadButton = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonMenu
)
