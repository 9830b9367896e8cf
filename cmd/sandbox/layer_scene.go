package main

import (
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/scene"
	"github.com/hubastard/groveui/engine/ui"
)

const floorHalf = 8

// LayerScene owns the 3D camera, a checkered floor and a node carrying an
// in-world form.
type LayerScene struct {
	ui    *ui.System
	cam   *scene.Camera3D
	ctrl  *scene.FlyController3D
	r2d   *renderer2d.Renderer2D
	node  *scene.Node
	panel *ui.Form
	spin  bool
	t     float32
}

func (l *LayerScene) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewPerspective(math.Pi/3, 1, 0.1, 100)
	l.cam.SetViewportPixels(w, h)
	l.cam.Eye = [3]float32{0, 2, 6}
	l.cam.Target = [3]float32{0, 1, 0}
	l.ctrl = scene.NewFlyController3D(l.cam)
	l.ui.SetCamera(l.cam)

	var err error
	l.r2d, err = renderer2d.New(e.Renderer, "", "", e.Config.MaxQuads)
	if err != nil {
		logging.Error("sandbox", err, "floor renderer")
	}

	// One form pixel spans 1/100 world unit.
	l.node = scene.NewNode("panel")
	l.node.SetTranslation(-1.5, 0.5, 0)
	l.node.SetScale(0.01, 0.01, 1)

	l.panel = l.ui.CreateForm("forms/sandbox.yaml#panel")
	if l.panel == nil {
		return
	}
	l.panel.SetNode(l.node)
	if b, ok := l.panel.ControlByID("spin").(*ui.Button); ok {
		b.OnClick(func(*ui.Button) { l.spin = !l.spin })
	}
	if b, ok := l.panel.ControlByID("reset").(*ui.Button); ok {
		b.OnClick(func(*ui.Button) {
			l.t = 0
			l.node.SetRotation(0, 0, 0)
		})
	}
}

func (l *LayerScene) OnDetach(e *core.Engine) {
	if l.r2d != nil {
		l.r2d.Release()
	}
}

func (l *LayerScene) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e.Input, float32(dt))
	if l.spin {
		l.t += float32(dt)
		l.node.SetRotation(0, 0.6*float32(math.Sin(float64(l.t))), 0)
	}
}

func (l *LayerScene) OnRender(e *core.Engine, alpha float64) {
	if l.r2d == nil {
		return
	}
	defer profiler.Start("LayerScene.OnRender")()

	b, err := l.r2d.Batch(l.r2d.White())
	if err != nil {
		return
	}
	// Quads are drawn in the XY plane; lay them onto the ground.
	b.Start(scene.Mul(l.cam.VP(), scene.RotateX(math.Pi/2)))
	for z := -floorHalf; z < floorHalf; z++ {
		for x := -floorHalf; x < floorHalf; x++ {
			c := colors.Gray.Shade(0.5)
			if (x+z)&1 == 0 {
				c = colors.Gray.Shade(0.7)
			}
			b.Draw(float32(x), float32(z), 1, 1, 0, 0, 1, 1, c)
		}
	}
	b.Finish()
}

func (l *LayerScene) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	case core.EventScroll:
		return l.ctrl.HandleEvent(ev)
	}
	return false
}
