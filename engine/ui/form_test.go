package ui

import (
	"math"
	"testing"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/gfxtest"
	"github.com/hubastard/groveui/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toScreen projects a world point into 800x600 window pixels.
func toScreen(cam *scene.Camera3D, p [3]float32) (float32, float32) {
	ndc := scene.TransformPoint(cam.VP(), p)
	return (ndc[0] + 1) / 2 * 800, (1 - ndc[1]) / 2 * 600
}

// nodeForm attaches a 200x100 form to a node scaled so one form pixel spans
// 0.01 world units, with the quad's bottom-left at the world origin.
func nodeForm(t *testing.T, s *System) (*Form, *scene.Node, *scene.Camera3D) {
	t.Helper()
	cam := scene.NewPerspective(math.Pi/3, 800.0/600.0, 0.1, 100)
	s.SetCamera(cam)
	node := scene.NewNode("panel")
	node.SetScale(0.01, 0.01, 1)
	f := s.NewForm("panel", nil, LayoutAbsolute)
	f.SetSize(200, 100)
	f.SetNode(node)
	return f, node, cam
}

func TestOverlayProjectionIsIdentity(t *testing.T) {
	s, _ := newTestSystem(t)
	f := overlay(s, "hud", 0, 0, 300, 200)

	x, y, hit := s.Project(f, 12, 34)
	assert.True(t, hit)
	assert.Equal(t, float32(12), x)
	assert.Equal(t, float32(34), y)

	_, _, hit = s.Project(f, 400, 10)
	assert.False(t, hit)

	f.SetPosition(100, 50)
	x, y, hit = s.Project(f, 150, 70)
	assert.True(t, hit)
	assert.Equal(t, float32(50), x)
	assert.Equal(t, float32(20), y)
}

func TestNodeFormProjectsThroughCamera(t *testing.T) {
	s, rec := newTestSystem(t)
	f, _, cam := nodeForm(t, s)

	require.NotNil(t, f.FrameBuffer())
	w, h := f.FrameBuffer().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.Len(t, rec.FrameBuffers, 1)
	assert.Equal(t, scene.Ortho(0, 200, 100, 0, -1, 1), f.Projection())

	sx, sy := toScreen(cam, [3]float32{1, 0.5, 0})
	x, y, hit := s.Project(f, sx, sy)
	require.True(t, hit)
	assert.InDelta(t, 100, x, 0.5)
	assert.InDelta(t, 50, y, 0.5)

	// World y grows up the quad, form y grows down it.
	sx, sy = toScreen(cam, [3]float32{0.5, 0.25, 0})
	x, y, hit = s.Project(f, sx, sy)
	require.True(t, hit)
	assert.InDelta(t, 50, x, 0.5)
	assert.InDelta(t, 75, y, 0.5)

	sx, sy = toScreen(cam, [3]float32{3, 0.5, 0})
	_, _, hit = s.Project(f, sx, sy)
	assert.False(t, hit, "beside the quad")
}

func TestNodeFormMissesWithoutCamera(t *testing.T) {
	s, _ := newTestSystem(t)
	f, _, _ := nodeForm(t, s)
	s.SetCamera(nil)
	_, _, hit := s.Project(f, 400, 300)
	assert.False(t, hit)
	assert.Zero(t, s.Draw())
}

func TestNodeFormMissesEdgeOn(t *testing.T) {
	s, _ := newTestSystem(t)
	f, node, _ := nodeForm(t, s)
	node.SetRotation(0, math.Pi/2, 0)
	_, _, hit := s.Project(f, 400, 300)
	assert.False(t, hit)
}

func TestPressOnNodeForm(t *testing.T) {
	s, _ := newTestSystem(t)
	f, _, cam := nodeForm(t, s)
	clicks := 0
	addButton(f, "ok", 50, 25, &clicks)
	s.Update(0)

	sx, sy := toScreen(cam, [3]float32{1, 0.5, 0})
	assert.True(t, press(s, float64(sx), float64(sy)))
	assert.True(t, release(s, float64(sx), float64(sy)))
	assert.Equal(t, 1, clicks)
}

func TestOverlayWinsOverNodeForm(t *testing.T) {
	s, _ := newTestSystem(t)
	var overlayClicks, nodeClicks int
	hud := overlay(s, "hud", 0, 0, 800, 600)
	addButton(hud, "hud", 0, 0, &overlayClicks).Size(800, 600)
	f, _, cam := nodeForm(t, s)
	addButton(f, "ok", 0, 0, &nodeClicks).Size(200, 100)
	s.Update(0)

	sx, sy := toScreen(cam, [3]float32{1, 0.5, 0})
	press(s, float64(sx), float64(sy))
	release(s, float64(sx), float64(sy))
	assert.Equal(t, 1, overlayClicks)
	assert.Zero(t, nodeClicks)

	hud.Node().SetVisible(false)
	press(s, float64(sx), float64(sy))
	release(s, float64(sx), float64(sy))
	assert.Equal(t, 1, nodeClicks)
}

func TestNodeFormDrawsOffscreenThenComposites(t *testing.T) {
	s, rec := newTestSystem(t)
	f, node, cam := nodeForm(t, s)
	atlas := rec.NewTexture("atlas", 16, 16)
	f.AddControl(newSwatch(atlas, 20, 20))
	s.Update(0)
	rec.Reset()

	calls := s.Draw()
	fb := f.FrameBuffer()
	offscreen := rec.DrawsInto(fb)
	require.Len(t, offscreen, 2, "panel, then the swatch")
	assert.Equal(t, s.Renderer2D().White(), offscreen[0].Texture)
	assert.Equal(t, core.Texture(atlas), offscreen[1].Texture)
	assert.Equal(t, f.Projection(), offscreen[1].VP)

	onscreen := rec.DrawsInto(nil)
	require.Len(t, onscreen, 1)
	assert.Equal(t, fb.Texture(), onscreen[0].Texture)
	toNode := scene.Mul(scene.Translate(0, 100, 0), scene.Scale(1, -1, 1))
	assert.Equal(t, scene.Mul(cam.VP(), scene.Mul(node.World(), toNode)), onscreen[0].VP)

	assert.Equal(t, 3, calls)
	assert.Nil(t, rec.Bound(), "window target restored")
}

func TestDetachRestoresOverlayPath(t *testing.T) {
	s, rec := newTestSystem(t)
	f, _, _ := nodeForm(t, s)
	f.SetPosition(0, 0)

	f.SetNode(nil)
	assert.Nil(t, f.SceneNode())
	assert.Nil(t, f.FrameBuffer())
	assert.True(t, rec.FrameBuffers[0].Released)
	assert.Equal(t, scene.Identity(), f.Projection())

	x, y, hit := s.Project(f, 12, 34)
	assert.True(t, hit)
	assert.Equal(t, float32(12), x)
	assert.Equal(t, float32(34), y)
}

func TestNodeHoldsOneForm(t *testing.T) {
	s, rec := newTestSystem(t)
	first, node, _ := nodeForm(t, s)
	second := s.NewForm("other", nil, LayoutAbsolute)
	second.SetSize(50, 50)

	second.SetNode(node)
	assert.Same(t, second, node.Attachment())
	assert.Nil(t, first.SceneNode())
	assert.Nil(t, first.FrameBuffer())
	assert.True(t, rec.FrameBuffers[0].Released)
	require.NotNil(t, second.FrameBuffer())
}

func TestFrameBufferFailureKeepsFormAlive(t *testing.T) {
	s, rec := newTestSystem(t)
	rec.FailFrameBuffers = true
	f, _, _ := nodeForm(t, s)
	assert.Nil(t, f.FrameBuffer())
	assert.Zero(t, s.Draw())
}

func TestBatchingCoalescesTextureRuns(t *testing.T) {
	s, rec := newTestSystem(t)
	a := rec.NewTexture("a", 8, 8)
	b := rec.NewTexture("b", 8, 8)
	f := s.NewForm("strip", nil, LayoutHorizontal)
	for _, tex := range []*gfxtest.Texture{a, a, b, b, a} {
		f.AddControl(newSwatch(tex, 10, 10))
	}
	s.Update(0)

	rec.Reset()
	calls := s.Draw()
	assert.Equal(t, 4, calls, "panel, a a, b b, a")
	require.Len(t, rec.Draws, 4)
	assert.Equal(t, s.Renderer2D().White(), rec.Draws[0].Texture)
	assert.Equal(t, core.Texture(a), rec.Draws[1].Texture)
	assert.Equal(t, core.Texture(b), rec.Draws[2].Texture)
	assert.Equal(t, core.Texture(a), rec.Draws[3].Texture)
	assert.Equal(t, 2*6, rec.Draws[1].Indices, "two quads")
	assert.Equal(t, 2*6, rec.Draws[2].Indices)
	assert.Equal(t, 6, rec.Draws[3].Indices)
	assert.LessOrEqual(t, calls, 6, "never more calls than controls")
	assert.Len(t, f.Batches(), 4)

	f.SetBatchingEnabled(false)
	rec.Reset()
	assert.Equal(t, 6, s.Draw(), "one call per control")
	assert.Len(t, rec.Draws, 6)
}

func TestHiddenAndDisabledFormsAreNotDrawn(t *testing.T) {
	s, rec := newTestSystem(t)
	f := overlay(s, "hud", 0, 0, 100, 100)
	s.Update(0)

	rec.Reset()
	assert.Equal(t, 1, s.Draw())

	f.Node().SetVisible(false)
	assert.Zero(t, s.Draw())
	f.Node().SetVisible(true)
	f.Node().SetEnabled(false)
	assert.Zero(t, s.Draw())
}

func TestOverlayDrawUsesScreenTransform(t *testing.T) {
	s, rec := newTestSystem(t)
	f := overlay(s, "hud", 30, 40, 100, 100)
	s.Update(0)
	rec.Reset()
	s.Draw()

	require.Len(t, rec.Draws, 1)
	screen := scene.NewScreenOrtho(800, 600)
	want := scene.Mul(screen.VP(), scene.Mul(scene.Translate(30, 40, 0), f.Projection()))
	assert.Equal(t, want, rec.Draws[0].VP)
}

func TestScrollContainerClipsChildren(t *testing.T) {
	s, rec := newTestSystem(t)
	a := rec.NewTexture("a", 8, 8)
	f := overlay(s, "list", 30, 40, 200, 100)
	list := NewContainer(LayoutScroll).Gap(0).Size(200, 100)
	for i := 0; i < 5; i++ {
		list.AddControl(newSwatch(a, 200, 50))
	}
	f.AddControl(list)
	s.Update(0)
	require.True(t, s.HandleEvent(core.EventScroll{Yoff: -1, X: 40, Y: 50}))

	rec.Reset()
	assert.Equal(t, 2, s.Draw(), "panel, rows")
	require.Len(t, rec.Draws, 2)
	assert.Nil(t, rec.Draws[0].Scissor, "panel is not clipped")
	assert.Equal(t, core.Texture(a), rec.Draws[1].Texture)
	assert.Equal(t, 3*6, rec.Draws[1].Indices, "rows straddling the edge still draw")
	assert.Equal(t, &[4]int{30, 40, 200, 100}, rec.Draws[1].Scissor, "clipped to the list in screen pixels")
	assert.Nil(t, rec.Scissor(), "clip lifted after the pass")
}

func TestDestroyForm(t *testing.T) {
	s, rec := newTestSystem(t)
	f, node, _ := nodeForm(t, s)
	btn := addButton(f, "ok", 0, 0, nil)
	s.Update(0)
	require.True(t, s.SetFocusControl(btn))

	f.Destroy()
	assert.True(t, f.Destroyed())
	assert.Nil(t, s.FocusControl())
	assert.Nil(t, s.Form("panel"))
	assert.Empty(t, s.Forms())
	assert.Nil(t, node.Attachment())
	assert.True(t, rec.FrameBuffers[0].Released)
	assert.Zero(t, btn.Node().Handle())
	assert.Empty(t, s.controls)
	assert.Zero(t, f.Draw())

	f.Destroy()
}

func TestFormLookup(t *testing.T) {
	s, _ := newTestSystem(t)
	a := s.NewForm("a", nil, LayoutVertical)
	b := s.NewForm("b", nil, LayoutVertical)
	assert.Same(t, a, s.Form("a"))
	assert.Nil(t, s.Form("c"))
	assert.Equal(t, []*Form{a, b}, s.Forms())

	s.Raise(a)
	assert.Equal(t, []*Form{b, a}, s.Forms())
}

func TestShutdownReleasesEverything(t *testing.T) {
	s, rec := newTestSystem(t)
	nodeForm(t, s)
	overlay(s, "hud", 0, 0, 10, 10)

	s.Shutdown()
	assert.Empty(t, s.Forms())
	assert.True(t, rec.FrameBuffers[0].Released)
	for _, tex := range rec.Textures {
		assert.True(t, tex.Released, "texture %q", tex.Name)
	}
	s.Shutdown()
}
