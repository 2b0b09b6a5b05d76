package anim

import "github.com/rs/zerolog"

// LogObserver logs each frame at debug level.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) OnFrame(index, total int, progress float64) {
	o.Logger.Debug().
		Int("frame", index).
		Int("total", total).
		Float64("progress", progress).
		Msg("frame rendered")
}
