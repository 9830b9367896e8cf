package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera3D is a perspective look-at camera.
type Camera3D struct {
	Eye, Target, Up [3]float32
	FovY            float32 // radians
	Aspect          float32
	Near, Far       float32
}

func NewPerspective(fovY, aspect, near, far float32) *Camera3D {
	return &Camera3D{
		Eye:    [3]float32{0, 0, 10},
		Up:     [3]float32{0, 1, 0},
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

func (c *Camera3D) View() [16]float32       { return LookAt(c.Eye, c.Target, c.Up) }
func (c *Camera3D) Projection() [16]float32 { return Perspective(c.FovY, c.Aspect, c.Near, c.Far) }
func (c *Camera3D) VP() [16]float32         { return Mul(c.Projection(), c.View()) }

// SetViewportPixels keeps the aspect ratio in sync with the window.
func (c *Camera3D) SetViewportPixels(w, h int) {
	if w > 0 && h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
}

// Move translates eye and target together.
func (c *Camera3D) Move(d [3]float32) {
	c.Eye = Add(c.Eye, d)
	c.Target = Add(c.Target, d)
}

// Forward is the unit view direction.
func (c *Camera3D) Forward() [3]float32 { return Normalize(Sub(c.Target, c.Eye)) }

// PickRay builds the world-space ray through the window point (x, y).
// viewport is {x, y, width, height} in pixels with a top-left origin.
func (c *Camera3D) PickRay(viewport [4]float32, x, y float32) (Ray, bool) {
	w, h := int(viewport[2]), int(viewport[3])
	if w <= 0 || h <= 0 {
		return Ray{}, false
	}
	// UnProject expects a bottom-left window origin.
	wx, wy := x-viewport[0], viewport[3]-(y-viewport[1])
	view, proj := mgl32.Mat4(c.View()), mgl32.Mat4(c.Projection())
	near, err := mgl32.UnProject(mgl32.Vec3{wx, wy, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{wx, wy, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Dot(dir) == 0 || math.IsNaN(float64(dir[0])) {
		return Ray{}, false
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, true
}
