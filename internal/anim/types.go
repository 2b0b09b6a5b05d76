package anim

import (
	"image"

	"github.com/san-kum/gradloop/internal/rgb"
	"github.com/san-kum/gradloop/internal/schedule"
)

// Params is a validated animation request with parsed colours.
type Params struct {
	Start    rgb.Color
	End      rgb.Color
	Width    int
	Height   int
	Duration int
	Timing   schedule.Timing
}

func (p Params) TotalFrames() int { return p.Timing.TotalFrames(p.Duration) }

// FrameWriter receives frames in display order.
type FrameWriter interface {
	WriteFrame(img image.Image, delay int) error
}

type Observer interface {
	OnFrame(index, total int, progress float64)
}

type Result struct {
	Frames int
	Delay  int
	Peak   float64
}
