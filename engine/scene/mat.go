package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrices are column-major [16]float32, the layout of mgl32.Mat4 and of
// the renderer's view-projection uniforms.

func Identity() [16]float32                 { return mgl32.Ident4() }
func Translate(x, y, z float32) [16]float32 { return mgl32.Translate3D(x, y, z) }
func Scale(x, y, z float32) [16]float32     { return mgl32.Scale3D(x, y, z) }
func RotateX(a float32) [16]float32         { return mgl32.HomogRotate3DX(a) }
func RotateY(a float32) [16]float32         { return mgl32.HomogRotate3DY(a) }
func RotateZ(a float32) [16]float32         { return mgl32.HomogRotate3DZ(a) }

// Ortho maps the box [l,r]x[b,t]x[n,f] to clip space. Passing b > t gives a
// Y-down pixel space.
func Ortho(l, r, b, t, n, f float32) [16]float32 { return mgl32.Ortho(l, r, b, t, n, f) }

// Perspective builds a right-handed projection; fovY in radians.
func Perspective(fovY, aspect, near, far float32) [16]float32 {
	return mgl32.Perspective(fovY, aspect, near, far)
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, target, up [3]float32) [16]float32 {
	return mgl32.LookAtV(eye, target, up)
}

// Mul returns a*b; applied to a point, b transforms first.
func Mul(a, b [16]float32) [16]float32 { return mgl32.Mat4(a).Mul4(b) }

// Invert returns the inverse of m and false when m is singular.
func Invert(m [16]float32) ([16]float32, bool) {
	mm := mgl32.Mat4(m)
	if math.Abs(float64(mm.Det())) < 1e-12 {
		return Identity(), false
	}
	return mm.Inv(), true
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func TransformPoint(m [16]float32, p [3]float32) [3]float32 {
	v := mgl32.Mat4(m).Mul4x1(mgl32.Vec3(p).Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		v = v.Mul(1 / v[3])
	}
	return v.Vec3()
}

// TransformDir applies the upper 3x3 of m to d.
func TransformDir(m [16]float32, d [3]float32) [3]float32 {
	return mgl32.TransformNormal(d, m)
}

// ---- vec3 ----

func Add(a, b [3]float32) [3]float32          { return mgl32.Vec3(a).Add(b) }
func Sub(a, b [3]float32) [3]float32          { return mgl32.Vec3(a).Sub(b) }
func MulS(a [3]float32, s float32) [3]float32 { return mgl32.Vec3(a).Mul(s) }
func Dot(a, b [3]float32) float32             { return mgl32.Vec3(a).Dot(b) }
func Cross(a, b [3]float32) [3]float32        { return mgl32.Vec3(a).Cross(b) }
func Normalize(a [3]float32) [3]float32 {
	if Dot(a, a) == 0 {
		return a
	}
	return mgl32.Vec3(a).Normalize()
}
