// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/quadterrain/pkg/math"
)

// Camera is anything that can produce a view transform.
type Camera interface {
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
}

var worldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a free-flying camera oriented by yaw and pitch.
type FlyCamera struct {
	Pos mgl32.Vec3

	// Orientation (radians). Yaw 0 looks down +Z, yaw pi/2 down +X.
	Yaw   float32
	Pitch float32

	// Movement per step, normal and boosted
	Speed      float32
	BoostSpeed float32

	MaxPitch float32
}

// NewFlyCamera creates a fly camera with default settings: placed above the
// terrain's negative corner and looking diagonally across it.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Pos:        mgl32.Vec3{-500, 500, -500},
		Speed:      5,
		BoostSpeed: 25,
		MaxPitch:   mgl32.DegToRad(89),
	}
	c.LookAt(c.Pos.Add(mgl32.Vec3{1, 0, 1}))
	return c
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() mgl32.Vec3 {
	return c.Pos
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		cp * math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		cp * math32.Cos(c.Yaw),
	}
}

// Right returns the unit direction to the camera's right on the XZ plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{-math32.Cos(c.Yaw), 0, math32.Sin(c.Yaw)}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Forward()), worldUp)
}

// Move translates the camera along its forward and right axes and the world
// up axis. Each argument is a step count, typically -1, 0 or 1.
func (c *FlyCamera) Move(forward, right, up float32, boost bool) {
	speed := c.Speed
	if boost {
		speed = c.BoostSpeed
	}

	delta := c.Forward().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(worldUp.Mul(up))
	c.Pos = c.Pos.Add(delta.Mul(speed))
}

// Rotate turns the camera. Pitch is clamped to MaxPitch in both directions.
func (c *FlyCamera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -c.MaxPitch, c.MaxPitch)
}

// LookAt orients the camera toward target. The position is unchanged.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Pos)
	l := d.Len()
	if l == 0 {
		return
	}
	c.Yaw = math32.Atan2(d[0], d[2])
	c.Pitch = mgl32.Clamp(math32.Asin(d[1]/l), -c.MaxPitch, c.MaxPitch)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     50.0,
		MaxDistance:     20000.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cx := math32.Cos(c.RotationX)
	return c.Center.Add(mgl32.Vec3{
		c.Distance * cx * math32.Sin(c.RotationY),
		c.Distance * math32.Sin(c.RotationX),
		c.Distance * cx * math32.Cos(c.RotationY),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, worldUp)
}

// Rotate changes yaw and pitch around the center. Pitch is clamped.
func (c *OrbitCamera) Rotate(dYaw, dPitch float32) {
	c.RotationY += dYaw
	c.RotationX = mgl32.Clamp(c.RotationX+dPitch, c.MinPitch, c.MaxPitch)
}

// Zoom scales the distance by delta*ZoomSensitivity; positive moves closer.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to see its
// whole X/Z footprint.
func (c *OrbitCamera) FitToBounds(b math.AABB) {
	c.Center = b.Center()

	size := b.Size()
	maxSize := math32.Max(size[0], size[2])

	c.Distance = mgl32.Clamp(maxSize*0.9, c.MinDistance, c.MaxDistance)
	c.RotationX = mgl32.Clamp(0.6, c.MinPitch, c.MaxPitch) // Look down at ~35 degrees
	c.RotationY = 0.0
}
