package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Collectors groups the frame metrics of one registry.
type Collectors struct {
	FramesRendered *prometheus.CounterVec
	SlowFrames     *prometheus.CounterVec
	FrameSeconds   *prometheus.HistogramVec
}

// NewCollectors creates and registers the frame collectors on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gldemos_frames_rendered_total",
			Help: "Total number of frames presented",
		}, []string{"demo"}),
		SlowFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gldemos_slow_frames_total",
			Help: "Total number of frames whose processing exceeded the slow-frame budget",
		}, []string{"demo"}),
		FrameSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gldemos_frame_duration_seconds",
			Help:    "Time spent on one frame before any frame cap wait",
			Buckets: []float64{0.001, 0.002, 0.004, 0.008, 0.0167, 0.033, 0.066, 0.1, 0.25},
		}, []string{"demo"}),
	}
	reg.MustRegister(c.FramesRendered, c.SlowFrames, c.FrameSeconds)
	return c
}

// FrameMetrics are the collectors of a single demo.
type FrameMetrics struct {
	Frames       prometheus.Counter
	Slow         prometheus.Counter
	FrameSeconds prometheus.Observer

	histogram prometheus.Histogram
}

// ForDemo binds the collectors to a demo name.
func (c *Collectors) ForDemo(name string) *FrameMetrics {
	h := c.FrameSeconds.WithLabelValues(name).(prometheus.Histogram)
	m := &FrameMetrics{
		Frames:       c.FramesRendered.WithLabelValues(name),
		Slow:         c.SlowFrames.WithLabelValues(name),
		FrameSeconds: h,
		histogram:    h,
	}
	m.Frames.Add(0)
	m.Slow.Add(0)
	return m
}

// ObserveFrame records one presented frame.
func (m *FrameMetrics) ObserveFrame(d time.Duration, slow bool) {
	m.Frames.Inc()
	m.FrameSeconds.Observe(d.Seconds())
	if slow {
		m.Slow.Inc()
	}
}

// Summary reads back the totals for the shutdown log.
type Summary struct {
	Frames    uint64
	Slow      uint64
	MeanFrame time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames, %d slow, mean frame %v", s.Frames, s.Slow, s.MeanFrame)
}

// Summary snapshots the demo's collectors.
func (m *FrameMetrics) Summary() (Summary, error) {
	var s Summary

	var hm dto.Metric
	if err := m.histogram.Write(&hm); err != nil {
		return s, fmt.Errorf("could not read frame histogram: %w", err)
	}
	h := hm.GetHistogram()
	s.Frames = h.GetSampleCount()
	if s.Frames > 0 {
		s.MeanFrame = time.Duration(h.GetSampleSum() / float64(s.Frames) * float64(time.Second))
	}

	var sm dto.Metric
	if err := m.Slow.Write(&sm); err != nil {
		return s, fmt.Errorf("could not read slow frame counter: %w", err)
	}
	s.Slow = uint64(sm.GetCounter().GetValue())
	return s, nil
}
