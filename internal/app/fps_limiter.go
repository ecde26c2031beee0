package app

import "time"

// spinWindow is how long before the deadline the limiter stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// FPSLimiter caps the loop rate on top of whatever the buffer swap does.
type FPSLimiter struct {
	limit int
	next  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter returns a limiter for limit frames per second. Zero or less disables it.
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit, now: time.Now, sleep: time.Sleep}
}

// Limit returns the configured cap.
func (f *FPSLimiter) Limit() int {
	return f.limit
}

// Wait blocks until the next frame is due. Uses a hybrid sleep/spin wait since
// time.Sleep alone overshoots at high caps.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			f.sleep(remaining - spinWindow)
		}
	}

	// After a hitch, resync instead of racing to catch up.
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
