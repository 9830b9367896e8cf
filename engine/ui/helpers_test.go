package ui

import (
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/gfxtest"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*System, *gfxtest.Recorder) {
	t.Helper()
	rec := gfxtest.New()
	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height = 800, 600
	s, err := NewSystem(rec, cfg)
	require.NoError(t, err)
	t.Cleanup(s.Shutdown)
	return s, rec
}

// overlay makes an absolute-layout overlay form at x,y with a fixed size.
func overlay(s *System, id string, x, y, w, h float32) *Form {
	f := s.NewForm(id, nil, LayoutAbsolute)
	f.SetPosition(x, y)
	f.SetSize(w, h)
	return f
}

// addButton places a 100x40 button at x,y and counts its clicks.
func addButton(f *Form, id string, x, y float32, clicks *int) *Button {
	b := NewButton("").ID(id).Position(x, y).Size(100, 40)
	if clicks != nil {
		b.OnClick(func(*Button) { *clicks++ })
	}
	f.AddControl(b)
	return b
}

func press(s *System, x, y float64) bool {
	return s.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: x, Y: y})
}

func release(s *System, x, y float64) bool {
	return s.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, X: x, Y: y})
}

func move(s *System, x, y float64) bool {
	return s.HandleEvent(core.EventMouseMove{X: x, Y: y})
}

func pad(s *System, action core.GamepadAction, b core.GamepadButton) bool {
	return s.HandleEvent(core.EventGamepad{Action: action, Button: b})
}

// countStates tallies control states across the whole arena.
func countStates(s *System) map[State]int {
	out := map[State]int{}
	for _, c := range s.controls {
		out[c.Node().State()]++
	}
	return out
}

// swatch is a fixed-size control that draws one quad from tex.
type swatch struct {
	Common[*swatch]
	tex core.Texture
}

func newSwatch(tex core.Texture, w, h float32) *swatch {
	s := &swatch{tex: tex}
	s.Common = NewCommon(s)
	return s.Size(w, h)
}

func (s *swatch) Layout(_ *LayoutContext, c Constraints) LayoutResult {
	w, h := s.base.resolveSize(0, 0, c)
	s.base.SetSize(w, h)
	return LayoutResult{Size: s.base.size}
}

func (s *swatch) Draw(d *Drawer) {
	x, y, w, h := s.base.Bounds()
	d.Quad(x, y, w, h, renderer2d.Full(s.tex), colors.White)
}
