// Package encoder streams rendered frames into a looping animated GIF.
package encoder

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"io"
	"os"

	gif "github.com/NathanBaulch/gifx"
	"golang.org/x/image/draw"
)

const maxPaletteSize = 256

var (
	ErrOutputCreate      = errors.New("unable to create output")
	ErrFrameWrite        = errors.New("unable to write frames")
	ErrFrameSizeMismatch = errors.New("frame size does not match canvas")
	ErrClosed            = errors.New("sink is closed")
)

// FrameError reports a frame the sink refused.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

type Option func(*Sink)

// WithFallbackPalette sets the global colour table, which is also used for
// frames with more than 256 distinct colours.
func WithFallbackPalette(p color.Palette) Option {
	return func(s *Sink) {
		if len(p) > 0 && len(p) <= maxPaletteSize {
			s.fallback = p
		}
	}
}

// Sink writes each frame as soon as it is received. The canvas size and
// infinite looping are written in the header when the sink is opened.
type Sink struct {
	bw       *bufio.Writer
	enc      *gif.Encoder
	closer   io.Closer
	width    int
	height   int
	fallback color.Palette
	frames   int
	err      error
	closed   bool
}

// Create opens path for writing, truncating any existing file, and writes the
// GIF header.
func Create(path string, width, height int, opts ...Option) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOutputCreate, path, err)
	}
	s := New(f, width, height, opts...)
	s.closer = f
	if s.err != nil {
		f.Close()
		return nil, s.err
	}
	return s, nil
}

// New writes the GIF header to w and returns a sink for its frames. If w is an
// io.Closer it is not closed. A header failure is reported by the first
// WriteFrame or Close.
func New(w io.Writer, width, height int, opts ...Option) *Sink {
	s := &Sink{
		bw:       bufio.NewWriter(w),
		width:    width,
		height:   height,
		fallback: palette.Plan9,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.enc = gif.NewEncoder(s.bw)
	cfg := image.Config{Width: width, Height: height, ColorModel: s.fallback}
	if err := s.enc.WriteHeader(cfg, 0); err != nil {
		s.err = fmt.Errorf("%w: header: %v", ErrFrameWrite, err)
	}
	return s
}

func (s *Sink) Frames() int { return s.frames }

// WriteFrame quantises img and writes it to the output before returning.
// After a write failure every further call fails.
func (s *Sink) WriteFrame(img image.Image, delay int) error {
	idx := s.frames
	if s.closed {
		return &FrameError{Index: idx, Err: ErrClosed}
	}
	if s.err != nil {
		return &FrameError{Index: idx, Err: s.err}
	}
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return &FrameError{
			Index: idx,
			Err:   fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSizeMismatch, b.Dx(), b.Dy(), s.width, s.height),
		}
	}

	if err := s.enc.WriteFrame(&gif.Frame{Image: s.quantize(img), Delay: delay}); err != nil {
		s.err = fmt.Errorf("%w: %v", ErrFrameWrite, err)
		return &FrameError{Index: idx, Err: s.err}
	}
	if err := s.flush(); err != nil {
		s.err = err
		return &FrameError{Index: idx, Err: err}
	}
	s.frames++
	return nil
}

// Close writes the trailer and releases the output. The output is closed even
// when an earlier write failed.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.err
	if err == nil && s.frames == 0 {
		err = fmt.Errorf("%w: no frames", ErrFrameWrite)
	}
	if err == nil {
		if werr := s.enc.WriteTrailer(); werr != nil {
			err = fmt.Errorf("%w: trailer: %v", ErrFrameWrite, werr)
		} else {
			err = s.flush()
		}
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrFrameWrite, cerr)
		}
	}
	return err
}

func (s *Sink) flush() error {
	if err := s.enc.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrFrameWrite, err)
	}
	if err := s.bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrFrameWrite, err)
	}
	return nil
}

func (s *Sink) quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := exactPalette(img)
	if pal == nil {
		pal = s.fallback
	}
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// exactPalette returns the distinct colours of img, or nil if there are too
// many to fit a GIF palette.
func exactPalette(img image.Image) color.Palette {
	b := img.Bounds()
	seen := make(map[color.RGBA]struct{})
	var pal color.Palette
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == maxPaletteSize {
				return nil
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	return pal
}
