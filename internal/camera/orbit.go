package camera

import "github.com/go-gl/mathgl/mgl32"

// Orbit rotates the scene in front of a fixed eye, driven by cursor movement.
// RX and RY are degrees around the X and Y axes, Dist the eye offset along Z.
type Orbit struct {
	RX, RY float32
	Dist   float32

	// Sensitivity divides raw cursor pixels into degrees.
	Sensitivity float32

	oldX, oldY float64
	tracking   bool
}

// NewOrbit returns an orbit camera with the given starting pose.
func NewOrbit(rx, ry, dist float32) *Orbit {
	return &Orbit{RX: rx, RY: ry, Dist: dist, Sensitivity: 5}
}

// Anchor sets the reference cursor position without rotating.
func (o *Orbit) Anchor(x, y float64) {
	o.oldX, o.oldY = x, y
	o.tracking = true
}

// Release stops tracking until the next Anchor or Track.
func (o *Orbit) Release() {
	o.tracking = false
}

// Track rotates by the cursor movement since the previous call. The first call
// after a Release only anchors.
func (o *Orbit) Track(x, y float64) {
	if !o.tracking {
		o.Anchor(x, y)
		return
	}
	s := o.Sensitivity
	if s == 0 {
		s = 1
	}
	o.RY += float32(x-o.oldX) / s
	o.RX += float32(y-o.oldY) / s
	o.oldX, o.oldY = x, y
}

// Rotation returns Rx*Ry without the eye offset, as used for skyboxes.
func (o *Orbit) Rotation() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(o.RX))
	return rx.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.RY)))
}

// View returns T(0,0,Dist)*Rx*Ry.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, o.Dist).Mul4(o.Rotation())
}

// EyePosition recovers the world-space eye from a rigid modelview matrix.
func EyePosition(mv mgl32.Mat4) mgl32.Vec3 {
	t := mv.Col(3).Vec3()
	return mgl32.Vec3{
		-mv.Col(0).Vec3().Dot(t),
		-mv.Col(1).Vec3().Dot(t),
		-mv.Col(2).Vec3().Dot(t),
	}
}
