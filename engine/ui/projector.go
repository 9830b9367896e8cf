package ui

import "github.com/hubastard/groveui/engine/scene"

// Project maps a screen point into f's form-local pixels. hit is false when
// the point misses the form: outside an overlay's rectangle, or, for a
// node-attached form, a pick ray that is parallel to, behind, or off the
// form's quad.
func (s *System) Project(f *Form, screenX, screenY float32) (x, y float32, hit bool) {
	w, h := f.base.Size()
	if f.node == nil {
		x, y = screenX-f.x, screenY-f.y
		return x, y, x >= 0 && x <= w && y >= 0 && y <= h
	}
	if s.camera == nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}

	ray, ok := s.camera.PickRay(s.viewport, screenX, screenY)
	if !ok {
		return 0, 0, false
	}
	world := f.node.World()
	normal := scene.Normalize(scene.TransformDir(world, [3]float32{0, 0, 1}))
	origin := scene.TransformPoint(world, [3]float32{0, 0, 0})
	t, ok := ray.IntersectPlane(scene.PlaneFromPoint(normal, origin))
	if !ok {
		return 0, 0, false
	}
	inv, ok := scene.Invert(world)
	if !ok {
		return 0, 0, false
	}
	local := scene.TransformPoint(inv, ray.At(t))
	lx, ly := local[0], local[1]
	if lx < 0 || lx > w || ly < 0 || ly > h {
		return 0, 0, false
	}

	// The quad is y-up in node space; go through the form's projection to
	// land in y-down form pixels.
	invProj, ok := scene.Invert(f.projection)
	if !ok {
		return 0, 0, false
	}
	p := scene.TransformPoint(invProj, [3]float32{2*lx/w - 1, 2*ly/h - 1, 0})
	return p[0], p[1], true
}
