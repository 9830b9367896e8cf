package main

import (
	"fmt"
	"time"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/ui"
)

// LayerStats keeps a corner overlay with frame and batching counters and
// wires the sandbox menu.
type LayerStats struct {
	ui *ui.System

	form    *ui.Form
	frame   *ui.Label
	batches *ui.Label
	focus   *ui.Label
	mode    *ui.Label

	last    time.Time
	frameMs float64
	ticks   int
}

func (l *LayerStats) OnAttach(e *core.Engine) {
	l.frame = ui.NewLabel("")
	l.batches = ui.NewLabel("")
	l.focus = ui.NewLabel("")
	l.mode = ui.NewLabel("")

	l.form = l.ui.NewForm("stats", nil, ui.LayoutVertical)
	l.form.SetAnchor(ui.AnchorTopRight)
	l.form.Gap(2)
	for _, c := range []ui.Control{l.frame, l.batches, l.focus, l.mode} {
		l.form.AddControl(c)
	}

	menu := l.ui.CreateForm("forms/sandbox.yaml#menu")
	if menu == nil {
		return
	}
	if b, ok := menu.ControlByID("batching").(*ui.Button); ok {
		b.OnClick(func(*ui.Button) { l.toggleBatching() })
	}
	if b, ok := menu.ControlByID("quit").(*ui.Button); ok {
		b.OnClick(func(*ui.Button) { e.Window.RequestClose() })
	}
}

func (l *LayerStats) OnDetach(e *core.Engine) {}

// toggleBatching flips batching on every live form.
func (l *LayerStats) toggleBatching() {
	on := !l.form.BatchingEnabled()
	for _, f := range l.ui.Forms() {
		f.SetBatchingEnabled(on)
	}
	logging.Info("sandbox", "batching %t", on)
}

func (l *LayerStats) OnUpdate(e *core.Engine, dt float64) {
	l.ticks++
	// Text changes force a relayout; refresh a few times a second.
	if l.ticks%15 != 0 {
		return
	}
	st := l.ui.Renderer2D().Stats()
	l.frame.SetText(fmt.Sprintf("frame %.2f ms", l.frameMs))
	l.batches.SetText(fmt.Sprintf("draw calls %d  quads %d", st.DrawCalls, st.QuadCount))
	focus := "none"
	if c := l.ui.FocusControl(); c != nil && c.Node().ID() != "" {
		focus = c.Node().ID()
	}
	l.focus.SetText("focus " + focus)
	if l.form.BatchingEnabled() {
		l.mode.SetText("batching on")
	} else {
		l.mode.SetText("batching off")
	}
}

func (l *LayerStats) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !l.last.IsZero() {
		l.frameMs = float64(now.Sub(l.last).Microseconds()) / 1000
	}
	l.last = now
}

func (l *LayerStats) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventKey); ok && v.Down && v.Key == core.KeyP && (v.Mods&core.ModCtrl) != 0 {
		if path, err := profiler.OpenGraph(); err == nil {
			logging.Info("sandbox", "speedscope dump: %s", path)
		} else {
			logging.Error("sandbox", err, "profiler dump")
		}
		return true
	}
	return false
}
