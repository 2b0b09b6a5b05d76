// Package gradient rasterises scrolling horizontal two-colour gradients.
package gradient

import (
	"image"
	"math"

	"github.com/san-kum/gradloop/internal/rgb"
	"golang.org/x/image/draw"
)

// Extended renders the gradient across a canvas twice the output width. Every
// row is identical.
func Extended(start, end rgb.Color, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	w := 2 * width
	img := image.NewRGBA(image.Rect(0, 0, w, height))

	row := img.Pix[:w*4]
	for x := 0; x < w; x++ {
		c := rgb.Interpolate(start, end, float64(x)/float64(w))
		row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, 0xff
	}
	for y := 1; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], row)
	}
	return img
}

// Offset is the left edge of the visible window on the extended canvas. It is
// always within [0, width].
func Offset(progress float64, width int) int {
	if width <= 0 {
		return 0
	}
	progress = math.Max(0, math.Min(1, progress))
	return int(math.Floor(progress * float64(width)))
}

// Render returns a width x height frame showing the extended gradient shifted
// left by progress*width pixels.
func Render(start, end rgb.Color, width, height int, progress float64) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	canvas := Extended(start, end, width, height)
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(frame, frame.Bounds(), canvas, image.Pt(Offset(progress, width), 0), draw.Src)
	return frame
}
