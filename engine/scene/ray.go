package scene

const planeEpsilon = 1e-6

type Ray struct {
	Origin [3]float32
	Dir    [3]float32 // unit length
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) [3]float32 { return Add(r.Origin, MulS(r.Dir, t)) }

// Plane is the set of points p with Dot(Normal, p) + D == 0.
type Plane struct {
	Normal [3]float32
	D      float32
}

// PlaneFromPoint builds the plane through p with the given normal.
func PlaneFromPoint(normal, p [3]float32) Plane {
	n := Normalize(normal)
	return Plane{Normal: n, D: -Dot(n, p)}
}

// IntersectPlane returns the distance along r to pl. It reports false when
// the ray is parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlane(pl Plane) (float32, bool) {
	denom := Dot(pl.Normal, r.Dir)
	if denom > -planeEpsilon && denom < planeEpsilon {
		return 0, false
	}
	t := -(Dot(pl.Normal, r.Origin) + pl.D) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}
