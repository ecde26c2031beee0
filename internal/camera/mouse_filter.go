package camera

import "github.com/go-gl/mathgl/mgl32"

const (
	// MouseHistorySize is the number of samples averaged by a MouseFilter.
	MouseHistorySize = 10
	// DefaultMouseFilterWeight is the geometric falloff applied to older samples.
	DefaultMouseFilterWeight = 0.75
)

// MouseFilter smooths raw mouse deltas with a weighted moving average over the
// last MouseHistorySize samples. Newer samples weigh more.
type MouseFilter struct {
	history [MouseHistorySize]mgl32.Vec2
	weight  float32
}

// NewMouseFilter returns a filter using the given falloff weight. Weights outside
// (0,1] fall back to DefaultMouseFilterWeight.
func NewMouseFilter(weight float32) *MouseFilter {
	if !(weight > 0 && weight <= 1) {
		weight = DefaultMouseFilterWeight
	}
	return &MouseFilter{weight: weight}
}

// Filter records a new delta and returns the smoothed delta.
func (f *MouseFilter) Filter(dx, dy float32) (float32, float32) {
	copy(f.history[1:], f.history[:MouseHistorySize-1])
	f.history[0] = mgl32.Vec2{dx, dy}

	var sumX, sumY, total float32
	w := float32(1)
	for _, s := range f.history {
		sumX += s[0] * w
		sumY += s[1] * w
		total += w
		w *= f.weight
	}
	return sumX / total, sumY / total
}

// Reset clears the history, e.g. after the cursor was warped.
func (f *MouseFilter) Reset() {
	f.history = [MouseHistorySize]mgl32.Vec2{}
}
