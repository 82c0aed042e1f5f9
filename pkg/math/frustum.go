package math

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Normalize scales the plane so Normal has unit length.
func (p Plane) Normalize() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Mul(1 / l), D: p.D / l}
}

// Distance returns the signed distance from the plane to pt.
// Positive values are on the inside.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum is a convex volume bounded by six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the view frustum from a view-projection matrix
// (Gribb/Hartmann). Uses OpenGL clip space, where -w <= x,y,z <= w.
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	planeFrom := func(v mgl32.Vec4) Plane {
		return Plane{Normal: mgl32.Vec3{v[0], v[1], v[2]}, D: v[3]}.Normalize()
	}

	var f Frustum
	f.Planes[PlaneLeft] = planeFrom(r3.Add(r0))
	f.Planes[PlaneRight] = planeFrom(r3.Sub(r0))
	f.Planes[PlaneBottom] = planeFrom(r3.Add(r1))
	f.Planes[PlaneTop] = planeFrom(r3.Sub(r1))
	f.Planes[PlaneNear] = planeFrom(r3.Add(r2))
	f.Planes[PlaneFar] = planeFrom(r3.Sub(r2))
	return f
}

// FrustumFromAABB returns a box-shaped volume whose planes are the faces of b.
func FrustumFromAABB(b AABB) Frustum {
	var f Frustum
	f.Planes[PlaneLeft] = Plane{Normal: mgl32.Vec3{1, 0, 0}, D: -b.Min[0]}
	f.Planes[PlaneRight] = Plane{Normal: mgl32.Vec3{-1, 0, 0}, D: b.Max[0]}
	f.Planes[PlaneBottom] = Plane{Normal: mgl32.Vec3{0, 1, 0}, D: -b.Min[1]}
	f.Planes[PlaneTop] = Plane{Normal: mgl32.Vec3{0, -1, 0}, D: b.Max[1]}
	f.Planes[PlaneNear] = Plane{Normal: mgl32.Vec3{0, 0, 1}, D: -b.Min[2]}
	f.Planes[PlaneFar] = Plane{Normal: mgl32.Vec3{0, 0, -1}, D: b.Max[2]}
	return f
}

// IntersectsAABB reports whether the box is at least partially inside the
// frustum. For each plane it tests the box corner furthest along the plane
// normal; if that corner is outside, the whole box is. The test is
// conservative: boxes near frustum edges may be reported as intersecting.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, p := range f.Planes {
		v := b.Min
		if p.Normal[0] >= 0 {
			v[0] = b.Max[0]
		}
		if p.Normal[1] >= 0 {
			v[1] = b.Max[1]
		}
		if p.Normal[2] >= 0 {
			v[2] = b.Max[2]
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether the box lies entirely inside the frustum.
func (f Frustum) ContainsAABB(b AABB) bool {
	for _, p := range f.Planes {
		v := b.Max
		if p.Normal[0] >= 0 {
			v[0] = b.Min[0]
		}
		if p.Normal[1] >= 0 {
			v[1] = b.Min[1]
		}
		if p.Normal[2] >= 0 {
			v[2] = b.Min[2]
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside all six planes.
func (f Frustum) ContainsPoint(pt mgl32.Vec3) bool {
	for _, p := range f.Planes {
		if p.Distance(pt) < 0 {
			return false
		}
	}
	return true
}

// Everything is a volume that intersects every box.
type Everything struct{}

// IntersectsAABB always returns true.
func (Everything) IntersectsAABB(AABB) bool { return true }
