package scene

// OrthoCamera2D provides an orthographic camera with position, rotation, zoom.
// The screen variant puts the origin at the top-left with Y pointing down,
// matching window pixel coordinates.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	X, Y                     float32
	RotationRad              float32
	Zoom                     float32 // 1 = no zoom
	vp                       [16]float32
	dirty                    bool
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	halfW := float32(width) * 0.5
	halfH := float32(height) * 0.5
	c := &OrthoCamera2D{
		Left: -halfW, Right: halfW,
		Bottom: -halfH, Top: halfH,
		Near: -1, Far: 1,
		Zoom: 1,
	}
	c.Recalculate()
	return c
}

// NewScreenOrtho returns a camera mapping window pixels (0,0 top-left) to
// clip space.
func NewScreenOrtho(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1, Zoom: 1}
	c.SetScreenPixels(width, height)
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	halfW := float32(w) * 0.5
	halfH := float32(h) * 0.5
	c.Left, c.Right = -halfW, halfW
	c.Bottom, c.Top = -halfH, halfH
	c.dirty = true
}

// SetScreenPixels resizes a screen camera created with NewScreenOrtho.
func (c *OrthoCamera2D) SetScreenPixels(w, h int) {
	c.Left, c.Right = 0, float32(w)
	c.Bottom, c.Top = float32(h), 0
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return abs32(c.Right - c.Left) }
func (c *OrthoCamera2D) Height() float32 { return abs32(c.Top - c.Bottom) }

func (c *OrthoCamera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }
func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	z := c.Zoom
	proj := Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)

	// view = R(-rot) · T(-pos)
	view := Mul(RotateZ(-c.RotationRad), Translate(-c.X, -c.Y, 0))

	c.vp = Mul(proj, view)
	c.dirty = false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
