package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestMouseFilterConvergesToConstant(t *testing.T) {
	f := NewMouseFilter(DefaultMouseFilterWeight)
	var x, y float32
	for i := 0; i < MouseHistorySize; i++ {
		x, y = f.Filter(3, -1.5)
	}
	if !approx(x, 3, 1e-5) || !approx(y, -1.5, 1e-5) {
		t.Fatalf("after a full history: got (%g, %g), want (3, -1.5)", x, y)
	}
	x, y = f.Filter(3, -1.5)
	if !approx(x, 3, 1e-5) || !approx(y, -1.5, 1e-5) {
		t.Fatalf("steady state: got (%g, %g), want (3, -1.5)", x, y)
	}
}

func TestMouseFilterApproachesMonotonically(t *testing.T) {
	f := NewMouseFilter(0.75)
	prev := float32(0)
	for i := 0; i < MouseHistorySize; i++ {
		x, _ := f.Filter(10, 0)
		if x < prev {
			t.Fatalf("sample %d: filtered value dropped from %g to %g", i, prev, x)
		}
		if x > 10+1e-4 {
			t.Fatalf("sample %d: filtered value %g overshoots", i, x)
		}
		prev = x
	}
}

func TestMouseFilterWeightsRecentSamples(t *testing.T) {
	f := NewMouseFilter(0.75)
	x, _ := f.Filter(8, 0)
	// Only the newest sample is non-zero: 8 / sum(0.75^k, k=0..9).
	var total float64
	for k := 0; k < MouseHistorySize; k++ {
		total += math.Pow(0.75, float64(k))
	}
	if want := float32(8 / total); !approx(x, want, 1e-5) {
		t.Fatalf("got %g, want %g", x, want)
	}
}

func TestMouseFilterReset(t *testing.T) {
	f := NewMouseFilter(0.75)
	f.Filter(100, 100)
	f.Reset()
	x, y := f.Filter(0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("after reset: got (%g, %g), want zeros", x, y)
	}
}

func TestMouseFilterInvalidWeight(t *testing.T) {
	if f := NewMouseFilter(0); f.weight != DefaultMouseFilterWeight {
		t.Fatalf("weight 0: got %g", f.weight)
	}
	if f := NewMouseFilter(2); f.weight != DefaultMouseFilterWeight {
		t.Fatalf("weight 2: got %g", f.weight)
	}
}

func TestFreeDefaultBasis(t *testing.T) {
	c := NewFree(45, 4.0/3.0, 0.1, 1000)
	if !c.Look.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("look: got %v", c.Look)
	}
	if !c.Up.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("up: got %v", c.Up)
	}
	if !c.Right.ApproxEqual(mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("right: got %v", c.Right)
	}
}

func TestFreeWalkMovesAlongLook(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	c.Speed = 4
	c.Walk(0.5)
	c.Update()
	if !c.Position.ApproxEqual(mgl32.Vec3{0, 0, 2}) {
		t.Fatalf("position after walk: got %v", c.Position)
	}
	c.SetTranslation(mgl32.Vec3{})
	c.Strafe(0.25)
	c.Lift(0.25)
	c.Update()
	if !c.Position.ApproxEqualThreshold(mgl32.Vec3{-1, 1, 2}, 1e-5) {
		t.Fatalf("position after strafe+lift: got %v", c.Position)
	}
}

func TestFreePitchClamped(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	c.Rotate(0, 120, 0)
	if _, pitch, _ := c.Angles(); pitch != maxPitch {
		t.Fatalf("pitch: got %g, want %g", pitch, maxPitch)
	}
	c.Rotate(0, -400, 0)
	if _, pitch, _ := c.Angles(); pitch != -maxPitch {
		t.Fatalf("pitch: got %g, want %g", pitch, -maxPitch)
	}
}

func TestFreeFaceLooksAtTarget(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{5, 5, 5}
	c.Face(mgl32.Vec3{})
	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	if !c.Look.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("look: got %v, want %v", c.Look, want)
	}
	// The origin must land in the centre of the screen.
	clip := c.Projection().Mul4(c.View()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(clip.X()/clip.W(), 0, 1e-4) || !approx(clip.Y()/clip.W(), 0, 1e-4) {
		t.Fatalf("origin projects to (%g, %g)", clip.X()/clip.W(), clip.Y()/clip.W())
	}
}

func TestFreeDampNeverIncreases(t *testing.T) {
	const eps = 0.001
	c := NewFree(45, 1, 0.1, 1000)
	c.SetTranslation(mgl32.Vec3{0.3, -0.2, 0.1})
	prev := c.Translation().Len()
	for i := 0; i < 500; i++ {
		c.Damp(0.95, eps)
		cur := c.Translation().Len()
		if cur > prev {
			t.Fatalf("step %d: translation grew from %g to %g", i, prev, cur)
		}
		prev = cur
	}
	if prev != 0 {
		t.Fatalf("translation did not settle, still %g", prev)
	}
}

func TestFreeDampBelowEpsilon(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	small := mgl32.Vec3{0.0001, 0, 0}
	c.SetTranslation(small)
	c.Damp(0.95, 0.001)
	if got := c.Translation().Len(); got > small.Len() {
		t.Fatalf("translation grew below epsilon: %g", got)
	}
	// A bad factor must not amplify the translation either.
	c.SetTranslation(mgl32.Vec3{1, 0, 0})
	c.Damp(1.5, 0.001)
	if got := c.Translation().Len(); got > 1 {
		t.Fatalf("factor above one amplified translation to %g", got)
	}
}

func TestFreeDampRejectsNaNFactor(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	c.SetTranslation(mgl32.Vec3{1, 0, 0})
	c.Damp(float32(math.NaN()), 0.001)
	tr := c.Translation()
	if tr.Len() != tr.Len() || tr.Len() > 1 {
		t.Fatalf("NaN factor gave translation %v", tr)
	}
	c.Update()
	for i, v := range c.Position {
		if v != v {
			t.Fatalf("position[%d] is NaN after damping with NaN", i)
		}
	}
}

func TestMouseFilterNaNWeightFallsBack(t *testing.T) {
	f := NewMouseFilter(float32(math.NaN()))
	var x float32
	for i := 0; i < MouseHistorySize; i++ {
		x, _ = f.Filter(2, 0)
	}
	if !approx(x, 2, 1e-5) {
		t.Fatalf("NaN weight: got %g, want 2", x)
	}
}

func TestFreeSetAspect(t *testing.T) {
	c := NewFree(45, 1, 0.1, 1000)
	c.SetAspect(1600, 900)
	if !approx(c.Aspect, 16.0/9.0, 1e-6) {
		t.Fatalf("aspect: got %g", c.Aspect)
	}
	c.SetAspect(100, 0)
	if !approx(c.Aspect, 16.0/9.0, 1e-6) {
		t.Fatalf("zero height changed aspect to %g", c.Aspect)
	}
}

func TestOrbitTrack(t *testing.T) {
	o := NewOrbit(25, -40, -7)
	o.Track(100, 100)
	if o.RX != 25 || o.RY != -40 {
		t.Fatalf("first track must only anchor, got rx=%g ry=%g", o.RX, o.RY)
	}
	o.Track(110, 95)
	if !approx(o.RY, -38, 1e-6) || !approx(o.RX, 24, 1e-6) {
		t.Fatalf("after move: got rx=%g ry=%g", o.RX, o.RY)
	}
	o.Release()
	o.Track(500, 500)
	if !approx(o.RY, -38, 1e-6) || !approx(o.RX, 24, 1e-6) {
		t.Fatalf("track after release must re-anchor, got rx=%g ry=%g", o.RX, o.RY)
	}
}

func TestEyePositionFromOrbitView(t *testing.T) {
	o := NewOrbit(20, 64, -7)
	eye := EyePosition(o.View())
	if !approx(eye.Len(), 7, 1e-4) {
		t.Fatalf("eye distance: got %g, want 7", eye.Len())
	}
	// Mapping the eye back through the view must give the origin.
	back := o.View().Mul4x1(eye.Vec4(1)).Vec3()
	if !approx(back[0], 0, 1e-4) || !approx(back[1], 0, 1e-4) || !approx(back[2], 0, 1e-4) {
		t.Fatalf("eye maps to %v, want origin", back)
	}
}

func TestEyePositionIdentity(t *testing.T) {
	eye := EyePosition(mgl32.Translate3D(1, 2, 3))
	if !eye.ApproxEqual(mgl32.Vec3{-1, -2, -3}) {
		t.Fatalf("got %v", eye)
	}
}
