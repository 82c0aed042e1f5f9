package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/quadterrain/pkg/math"
)

// Projection describes a perspective projection.
type Projection struct {
	FovY   float32 // Vertical field of view in degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

// DefaultProjection returns the reference projection: 60 degree vertical
// field of view on a 1980x1080 viewport, clip planes at 2 and 8000.
func DefaultProjection() Projection {
	return Projection{
		FovY:   60,
		Aspect: 1980.0 / 1080.0,
		Near:   2,
		Far:    8000,
	}
}

// Matrix returns the OpenGL projection matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
}

// View is an immutable snapshot of a camera for one frame. Traversal and
// drawing read only the snapshot, so the camera can keep moving while a
// frame is in flight.
type View struct {
	Position   mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewProj   mgl32.Mat4
	Frustum    math.Frustum
}

// Snapshot captures cam under proj.
func Snapshot(cam Camera, proj Projection) View {
	v := View{
		Position:   cam.Position(),
		View:       cam.ViewMatrix(),
		Projection: proj.Matrix(),
	}
	v.ViewProj = v.Projection.Mul4(v.View)
	v.Frustum = math.FrustumFromMatrix(v.ViewProj)
	return v
}

// IntersectsAABB tests b against the view frustum.
func (v View) IntersectsAABB(b math.AABB) bool {
	return v.Frustum.IntersectsAABB(b)
}
