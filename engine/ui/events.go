package ui

import "github.com/hubastard/groveui/engine/core"

// Event is what controls receive from the router. Pointer coordinates are
// already projected into form-local pixels.
type Event interface{ isUIEvent() }

type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
	// PointerCancel ends a gesture without a release, e.g. when a new press
	// starts before the previous one was released.
	PointerCancel
	PointerWheel
)

type PointerEvent struct {
	Kind PointerKind
	X, Y float32
	// Inside reports whether the point lies within the receiving control.
	Inside bool
	Wheel  float32 // lines, positive scrolls up
	Mouse  bool
}

func (PointerEvent) isUIEvent() {}

// KeyEvent is a key transition or, when Char is set, translated text input.
type KeyEvent struct {
	Key    core.Key
	Down   bool
	Repeat bool
	Mods   core.Mod
	Char   rune
}

func (KeyEvent) isUIEvent() {}

type GamepadEvent struct {
	Action core.GamepadAction
	Device int
	Button core.GamepadButton
	Index  int
	Value  [2]float32
}

func (GamepadEvent) isUIEvent() {}
