package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLayer struct {
	name    string
	consume bool
	seen    *[]string
}

func (l *recordingLayer) OnAttach(*Engine)          {}
func (l *recordingLayer) OnDetach(*Engine)          {}
func (l *recordingLayer) OnUpdate(*Engine, float64) {}
func (l *recordingLayer) OnRender(*Engine, float64) {}
func (l *recordingLayer) OnEvent(_ *Engine, _ Event) bool {
	*l.seen = append(*l.seen, l.name)
	return l.consume
}

func TestDispatchStopsAtConsumingLayer(t *testing.T) {
	var seen []string
	ls := &LayerStack{}
	ls.Push(&recordingLayer{name: "scene", seen: &seen})
	ls.Push(&recordingLayer{name: "ui", consume: true, seen: &seen})

	assert.True(t, ls.Dispatch(nil, EventKey{Key: KeySpace, Down: true}))
	assert.Equal(t, []string{"ui"}, seen)
}

func TestDispatchFallsThrough(t *testing.T) {
	var seen []string
	ls := &LayerStack{}
	ls.Push(&recordingLayer{name: "scene", seen: &seen})
	ls.Push(&recordingLayer{name: "ui", seen: &seen})

	assert.False(t, ls.Dispatch(nil, EventMouseMove{X: 1, Y: 2}))
	assert.Equal(t, []string{"ui", "scene"}, seen)
}

func TestInputTracksKeysAndWheel(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: true})
	in.Handle(EventScroll{Yoff: 2})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true, X: 3, Y: 4})

	assert.True(t, in.IsKeyDown(KeyW))
	assert.True(t, in.IsButtonDown(MouseLeft))
	assert.Equal(t, 2.0, in.Wheel())
	x, y := in.Mouse()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)

	in.EndFrame()
	assert.Zero(t, in.Wheel())
}
