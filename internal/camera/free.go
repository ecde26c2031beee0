package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89.0

// Free is a fly-through camera. Movement calls accumulate a translation that is
// applied on the next Update, so callers can damp it between frames.
type Free struct {
	Position mgl32.Vec3
	Look     mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3

	// Speed is in world units per second.
	Speed float32

	FOV    float32 // degrees
	Aspect float32
	Near   float32
	Far    float32

	yaw, pitch, roll float32 // degrees
	translation      mgl32.Vec3
	view             mgl32.Mat4
}

// NewFree returns a camera at the origin looking down +Z.
func NewFree(fov, aspect, near, far float32) *Free {
	c := &Free{
		Speed:  2,
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.Update()
	return c
}

// SetupProjection replaces all projection parameters at once.
func (c *Free) SetupProjection(fov, aspect, near, far float32) {
	c.FOV = fov
	c.Aspect = aspect
	c.Near = near
	c.Far = far
}

// SetAspect updates the aspect ratio from a framebuffer size.
func (c *Free) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Rotate sets the absolute orientation in degrees. Pitch is clamped so the view
// never flips over the poles.
func (c *Free) Rotate(yaw, pitch, roll float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
	c.roll = roll
}

// Angles returns yaw, pitch and roll in degrees.
func (c *Free) Angles() (float32, float32, float32) {
	return c.yaw, c.pitch, c.roll
}

// Face orients the camera towards target from its current position.
func (c *Free) Face(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	// Look is R*(0,0,1) with R = Ry(yaw)*Rx(pitch): x = sin(yaw)cos(pitch),
	// y = -sin(pitch), z = cos(yaw)cos(pitch).
	yaw := float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
	pitch := float32(math.Asin(float64(-dir.Y())))
	c.Rotate(mgl32.RadToDeg(yaw), mgl32.RadToDeg(pitch), c.roll)
	c.Update()
}

// Walk moves along the look vector.
func (c *Free) Walk(dt float32) {
	c.translation = c.translation.Add(c.Look.Mul(c.Speed * dt))
}

// Strafe moves along the right vector.
func (c *Free) Strafe(dt float32) {
	c.translation = c.translation.Add(c.Right.Mul(c.Speed * dt))
}

// Lift moves along the up vector.
func (c *Free) Lift(dt float32) {
	c.translation = c.translation.Add(c.Up.Mul(c.Speed * dt))
}

// Translation returns the pending per-frame translation.
func (c *Free) Translation() mgl32.Vec3 {
	return c.translation
}

// SetTranslation replaces the pending translation.
func (c *Free) SetTranslation(t mgl32.Vec3) {
	c.translation = t
}

// Damp shrinks the pending translation by factor while it is longer than epsilon,
// and zeroes it once it falls below.
func (c *Free) Damp(factor, epsilon float32) {
	if !(factor >= 0 && factor <= 1) {
		factor = 1
	}
	if c.translation.Dot(c.translation) > epsilon*epsilon {
		c.translation = c.translation.Mul(factor)
		return
	}
	c.translation = mgl32.Vec3{}
}

// Update applies the pending translation and rebuilds the basis and view matrix.
func (c *Free) Update() {
	r := c.rotation()
	c.Position = c.Position.Add(c.translation)

	c.Look = r.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3().Normalize()
	c.Up = r.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	c.Right = c.Look.Cross(c.Up)

	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.Look), c.Up)
}

// View returns the view matrix computed by the last Update.
func (c *Free) View() mgl32.Mat4 {
	return c.view
}

// Projection returns the perspective matrix.
func (c *Free) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Free) rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(c.yaw)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.pitch))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.roll)))
}
