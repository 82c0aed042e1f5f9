package camera

import "fmt"

// Path moves a camera one frame at a time without user input.
type Path interface {
	Step()
	Camera() Camera
}

// FlyPath flies a FlyCamera straight ahead at constant heading.
type FlyPath struct {
	Cam   *FlyCamera
	Boost bool
}

// Step advances the camera one movement step.
func (p *FlyPath) Step() { p.Cam.Move(1, 0, 0, p.Boost) }

// Camera returns the moving camera.
func (p *FlyPath) Camera() Camera { return p.Cam }

// OrbitPath circles an OrbitCamera around its center.
type OrbitPath struct {
	Cam     *OrbitCamera
	YawRate float32 // Radians per step
}

// Step advances the camera one step around the orbit.
func (p *OrbitPath) Step() { p.Cam.Rotate(p.YawRate, 0) }

// Camera returns the moving camera.
func (p *OrbitPath) Camera() Camera { return p.Cam }

// StaticPath never moves.
type StaticPath struct {
	Cam Camera
}

// Step does nothing.
func (p *StaticPath) Step() {}

// Camera returns the camera.
func (p *StaticPath) Camera() Camera { return p.Cam }

// Path modes accepted by NewPath.
const (
	PathFly    = "fly"
	PathOrbit  = "orbit"
	PathStatic = "static"
)

// NewPath returns the path for mode. Fly and static paths use fly; orbit
// uses orbit.
func NewPath(mode string, fly *FlyCamera, orbit *OrbitCamera) (Path, error) {
	switch mode {
	case PathFly:
		return &FlyPath{Cam: fly}, nil
	case PathOrbit:
		return &OrbitPath{Cam: orbit, YawRate: 0.01}, nil
	case PathStatic:
		return &StaticPath{Cam: fly}, nil
	default:
		return nil, fmt.Errorf("unknown camera path %q", mode)
	}
}
