package freecam

import (
	"gldemos/internal/camera"
	"gldemos/internal/config"
	"gldemos/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls is the input state a Pilot reads each frame.
type Controls interface {
	IsActive(a input.Action) bool
	CursorDelta() (float64, float64)
}

// Pilot turns held keys and filtered mouse motion into free camera movement.
// While a movement key is held the camera moves at constant speed; once all are
// released the remaining motion is damped until it falls below epsilon.
type Pilot struct {
	cam    *camera.Free
	filter *camera.MouseFilter
	cfg    config.FreeCamCfg
}

func NewPilot(cam *camera.Free, cfg config.FreeCamCfg) *Pilot {
	return &Pilot{
		cam:    cam,
		filter: camera.NewMouseFilter(cfg.FilterWeight),
		cfg:    cfg,
	}
}

// Camera returns the steered camera.
func (p *Pilot) Camera() *camera.Free {
	return p.cam
}

// Steer advances the camera by dt seconds.
func (p *Pilot) Steer(c Controls, dt float32) {
	speed := p.cfg.Speed
	if c.IsActive(input.ActionFast) {
		speed *= p.cfg.FastFactor
	}
	p.cam.Speed = speed

	walk := axis(c, input.ActionMoveForward, input.ActionMoveBackward)
	strafe := axis(c, input.ActionStrafeRight, input.ActionStrafeLeft)
	lift := axis(c, input.ActionLiftUp, input.ActionLiftDown)

	if walk != 0 || strafe != 0 || lift != 0 {
		p.cam.SetTranslation(mgl32.Vec3{})
		p.cam.Walk(walk * dt)
		p.cam.Strafe(strafe * dt)
		p.cam.Lift(lift * dt)
	} else {
		p.cam.Damp(p.cfg.Damping, p.cfg.Epsilon)
	}

	dx, dy := c.CursorDelta()
	fx, fy := p.filter.Filter(float32(dx), float32(dy))
	yaw, pitch, roll := p.cam.Angles()
	p.cam.Rotate(yaw-fx*p.cfg.Sensitivity, pitch+fy*p.cfg.Sensitivity, roll)

	p.cam.Update()
}

func axis(c Controls, pos, neg input.Action) float32 {
	var v float32
	if c.IsActive(pos) {
		v++
	}
	if c.IsActive(neg) {
		v--
	}
	return v
}
