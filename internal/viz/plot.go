package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gradloop/internal/schedule"
)

// PlotSchedule charts the progress of every frame of a duration-second loop.
func PlotSchedule(t schedule.Timing, duration, width int) string {
	total := t.TotalFrames(duration)
	series := schedule.Series(total)
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("progress over %d frames at %dfps (%dcs per frame)", total, t.FrameRate, t.Delay())),
	)
}
