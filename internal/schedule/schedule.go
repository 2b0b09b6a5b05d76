// Package schedule maps frame indices onto the ping-pong scroll progress.
package schedule

import "math"

// DefaultFrameRate is the frame rate of rendered animations, in frames per second.
const DefaultFrameRate = 30

// Timing derives frame counts and GIF delays from a fixed frame rate.
type Timing struct {
	FrameRate int
}

func Default() Timing { return Timing{FrameRate: DefaultFrameRate} }

func (t Timing) TotalFrames(durationSeconds int) int {
	if durationSeconds <= 0 || t.FrameRate <= 0 {
		return 0
	}
	return durationSeconds * t.FrameRate
}

// Delay is the per-frame display time in hundredths of a second. 100/30 is not
// integral, so 30fps animations play slightly slow (3cs per frame).
func (t Timing) Delay() int {
	if t.FrameRate <= 0 {
		return 0
	}
	return int(math.Round(100 / float64(t.FrameRate)))
}

// Progress rises linearly from 0 to 1 over the first half of the frames and
// falls back towards 0 over the second half.
func Progress(frame, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(frame) / float64(total) * 2
	if p > 1 {
		p = 2 - p
	}
	return math.Max(0, math.Min(1, p))
}

// Series returns Progress for every frame in [0, total).
func Series(total int) []float64 {
	if total <= 0 {
		return nil
	}
	out := make([]float64, total)
	for i := range out {
		out[i] = Progress(i, total)
	}
	return out
}
