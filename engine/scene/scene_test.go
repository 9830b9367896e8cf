package scene

import (
	"math"
	"testing"

	"github.com/hubastard/groveui/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v", i, got)
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	m := Mul(Translate(10, 0, 0), Scale(2, 2, 2))
	assertVec(t, [3]float32{12, 2, 2}, TransformPoint(m, [3]float32{1, 1, 1}))
}

func TestInvertRoundTrip(t *testing.T) {
	m := Mul(Translate(3, -2, 5), Mul(RotateY(0.7), Scale(2, 3, 4)))
	inv, ok := Invert(m)
	require.True(t, ok)

	p := [3]float32{1, 2, 3}
	assertVec(t, p, TransformPoint(inv, TransformPoint(m, p)))

	_, ok = Invert(Scale(0, 1, 1))
	assert.False(t, ok)
}

func TestScreenOrthoMapsCorners(t *testing.T) {
	cam := NewScreenOrtho(800, 600)
	vp := cam.VP()
	assertVec(t, [3]float32{-1, 1, 0}, TransformPoint(vp, [3]float32{0, 0, 0}))
	assertVec(t, [3]float32{1, -1, 0}, TransformPoint(vp, [3]float32{800, 600, 0}))
	assert.Equal(t, float32(800), cam.Width())
	assert.Equal(t, float32(600), cam.Height())
}

func TestPickRayThroughViewportCenter(t *testing.T) {
	cam := NewPerspective(math.Pi/3, 800.0/600.0, 0.1, 100)
	cam.Eye = [3]float32{1, 2, 10}
	cam.Target = [3]float32{1, 2, 0}

	ray, ok := cam.PickRay([4]float32{0, 0, 800, 600}, 400, 300)
	require.True(t, ok)
	assertVec(t, [3]float32{0, 0, -1}, ray.Dir)

	dist, hit := ray.IntersectPlane(PlaneFromPoint([3]float32{0, 0, 1}, [3]float32{0, 0, 0}))
	require.True(t, hit)
	assertVec(t, [3]float32{1, 2, 0}, ray.At(dist))
}

func TestPickRayHonorsViewportOffset(t *testing.T) {
	cam := NewPerspective(math.Pi/3, 800.0/600.0, 0.1, 100)
	cam.Eye = [3]float32{0, 0, 10}

	ray, ok := cam.PickRay([4]float32{100, 50, 800, 600}, 500, 350)
	require.True(t, ok)
	assertVec(t, [3]float32{0, 0, -1}, ray.Dir)

	// Top edge of the viewport looks up, its left edge looks left.
	ray, ok = cam.PickRay([4]float32{100, 50, 800, 600}, 100, 50)
	require.True(t, ok)
	assert.Less(t, ray.Dir[0], float32(0))
	assert.Greater(t, ray.Dir[1], float32(0))

	_, ok = cam.PickRay([4]float32{0, 0, 0, 600}, 0, 0)
	assert.False(t, ok)
}

func TestIntersectPlaneMisses(t *testing.T) {
	pl := PlaneFromPoint([3]float32{0, 0, 1}, [3]float32{0, 0, 0})

	parallel := Ray{Origin: [3]float32{0, 0, 5}, Dir: [3]float32{1, 0, 0}}
	_, ok := parallel.IntersectPlane(pl)
	assert.False(t, ok)

	away := Ray{Origin: [3]float32{0, 0, 5}, Dir: [3]float32{0, 0, 1}}
	_, ok = away.IntersectPlane(pl)
	assert.False(t, ok)
}

type fakeAttachment struct{ detached []*Node }

func (f *fakeAttachment) NodeDetached(n *Node) { f.detached = append(f.detached, n) }

func TestNodeHoldsOneAttachment(t *testing.T) {
	n := NewNode("panel")
	a, b := &fakeAttachment{}, &fakeAttachment{}

	n.Attach(a)
	n.Attach(b)
	assert.Equal(t, Attachment(b), n.Attachment())
	assert.Equal(t, []*Node{n}, a.detached)
	assert.Empty(t, b.detached)

	n.Detach(a)
	assert.Equal(t, Attachment(b), n.Attachment())
	n.Detach(b)
	assert.Nil(t, n.Attachment())
}

func TestNodeWorldComposesParent(t *testing.T) {
	parent := NewNode("root")
	parent.SetTranslation(0, 5, 0)
	child := NewNode("child")
	child.SetParent(parent)
	child.SetTranslation(1, 0, 0)
	child.SetScale(2, 2, 2)

	assertVec(t, [3]float32{3, 7, 0}, TransformPoint(child.World(), [3]float32{1, 1, 0}))
}

func TestFlyControllerScrollDolly(t *testing.T) {
	cam := NewPerspective(1, 1, 0.1, 100)
	cam.Eye = [3]float32{0, 0, 10}
	ctrl := NewFlyController3D(cam)

	assert.True(t, ctrl.HandleEvent(core.EventScroll{Yoff: 2}))
	assertVec(t, [3]float32{0, 0, 8}, cam.Eye)
	assert.False(t, ctrl.HandleEvent(core.EventKey{Key: core.KeyW}))

	in := core.NewInput()
	in.Handle(core.EventKey{Key: core.KeyD, Down: true})
	ctrl.Update(in, 1)
	assertVec(t, [3]float32{5, 0, 8}, cam.Eye)
}
