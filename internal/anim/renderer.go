// Package anim drives the frame schedule, rasteriser and encoder for one
// animation.
package anim

import (
	"context"
	"fmt"

	"github.com/san-kum/gradloop/internal/config"
	"github.com/san-kum/gradloop/internal/gradient"
	"github.com/san-kum/gradloop/internal/rgb"
	"github.com/san-kum/gradloop/internal/schedule"
)

// NewParams validates cfg and parses both colours. Nothing is rendered or
// written here, so bad input fails before any output exists.
func NewParams(cfg *config.Config) (Params, error) {
	if err := cfg.Validate(); err != nil {
		return Params{}, err
	}
	start, err := rgb.Parse(cfg.Start)
	if err != nil {
		return Params{}, fmt.Errorf("start color: %w", err)
	}
	end, err := rgb.Parse(cfg.End)
	if err != nil {
		return Params{}, fmt.Errorf("end color: %w", err)
	}
	return Params{
		Start:    start,
		End:      end,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Duration: cfg.Duration,
		Timing:   cfg.Timing(),
	}, nil
}

type Renderer struct {
	observers []Observer
}

func New() *Renderer {
	return &Renderer{observers: make([]Observer, 0)}
}

func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run renders every frame and hands it to w in index order. It stops at the
// first write error; frames already written are left with w.
func (r *Renderer) Run(ctx context.Context, p Params, w FrameWriter) (*Result, error) {
	total := p.TotalFrames()
	if total <= 0 {
		return nil, fmt.Errorf("no frames to render for %ds at %dfps", p.Duration, p.Timing.FrameRate)
	}
	result := &Result{Delay: p.Timing.Delay()}

	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		progress := schedule.Progress(i, total)
		frame := gradient.Render(p.Start, p.End, p.Width, p.Height, progress)
		if err := w.WriteFrame(frame, result.Delay); err != nil {
			return result, err
		}

		result.Frames++
		if progress > result.Peak {
			result.Peak = progress
		}
		for _, obs := range r.observers {
			obs.OnFrame(i, total, progress)
		}
	}

	return result, nil
}
