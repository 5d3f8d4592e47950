// Package annotate renders a selection verdict onto the inspected product
// image for reports and review.
package annotate

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

// Options configures how the selected region is rendered.
type Options struct {
	OutlineWidth int        // Outline width in pixels
	OutlineColor color.RGBA // Box color
	DrawCenter   bool       // Whether to mark the region center
	CenterSize   int        // Half-length of the center cross arms
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		OutlineWidth: 2,
		OutlineColor: color.RGBA{R: 255, A: 255},
		DrawCenter:   true,
		CenterSize:   4,
	}
}

// Overlay draws the verdict's region onto a copy of the photo. The canvas is
// mask-resolution: photos with other dimensions are resampled first so
// region coordinates apply directly. A nil photo yields a black canvas.
// Verdicts without a region return the canvas untouched.
func Overlay(photo image.Image, res *defect.SelectionResult, opts Options) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, res.ImageWidth, res.ImageHeight))

	if photo != nil {
		if photo.Bounds().Dx() == res.ImageWidth && photo.Bounds().Dy() == res.ImageHeight {
			draw.Draw(canvas, canvas.Bounds(), photo, photo.Bounds().Min, draw.Src)
		} else {
			xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), photo, photo.Bounds(), xdraw.Src, nil)
		}
	}

	if res.Region == nil {
		return canvas
	}

	r := res.Region
	drawRectOutline(canvas, r.X, r.Y, r.Width, r.Height, opts.OutlineWidth, opts.OutlineColor)
	if opts.DrawCenter {
		drawCross(canvas, int(r.CenterX), int(r.CenterY), opts.CenterSize, opts.OutlineColor)
	}
	return canvas
}

// drawRectOutline draws a rectangle outline of the given width, clipped to
// the canvas.
func drawRectOutline(img *image.RGBA, x, y, w, h, lineWidth int, c color.RGBA) {
	for i := 0; i < lineWidth; i++ {
		drawHLine(img, x-i, x+w-1+i, y-i, c)
		drawHLine(img, x-i, x+w-1+i, y+h-1+i, c)
		drawVLine(img, x-i, y-i, y+h-1+i, c)
		drawVLine(img, x+w-1+i, y-i, y+h-1+i, c)
	}
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	bounds := img.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for x := max(x0, bounds.Min.X); x <= min(x1, bounds.Max.X-1); x++ {
		img.SetRGBA(x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X {
		return
	}
	for y := max(y0, bounds.Min.Y); y <= min(y1, bounds.Max.Y-1); y++ {
		img.SetRGBA(x, y, c)
	}
}

// drawCross marks a point with a small cross.
func drawCross(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	drawHLine(img, cx-size, cx+size, cy, c)
	drawVLine(img, cx, cy-size, cy+size, c)
}
