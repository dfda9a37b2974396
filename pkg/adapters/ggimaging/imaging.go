// Package ggimaging provides the atlas raster operations using the gg library.
package ggimaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/gifatlas/pkg/ports"
)

// Imaging implements ports.Imaging using gg and x/image/draw.
type Imaging struct{}

// New creates a new Imaging.
func New() *Imaging {
	return &Imaging{}
}

// NewCanvas creates a fully transparent canvas.
func (r *Imaging) NewCanvas(width, height int) ports.Canvas {
	dc := gg.NewContext(width, height)
	return &Canvas{dc: dc, im: dc.Image().(*image.RGBA)}
}

// Resize scales an image with bilinear filtering.
// The destination is overwritten, so transparent source pixels stay transparent.
func (r *Imaging) Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// EncodePNG encodes an image as PNG.
func (r *Imaging) EncodePNG(img image.Image) ([]byte, error) {
	var dc *gg.Context
	if rgba, ok := img.(*image.RGBA); ok {
		dc = gg.NewContextForRGBA(rgba)
	} else {
		dc = gg.NewContextForImage(img)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// OutlineBands draws a one pixel outline around every band of a copy of img.
func (r *Imaging) OutlineBands(img image.Image, bandHeight int, c color.Color) image.Image {
	dc := gg.NewContextForImage(img)
	if bandHeight <= 0 {
		return dc.Image()
	}

	w := float64(dc.Width())
	dc.SetColor(c)
	dc.SetLineWidth(1)
	for y := 0; y < dc.Height(); y += bandHeight {
		dc.DrawRectangle(0.5, float64(y)+0.5, w-1, float64(bandHeight)-1)
		dc.Stroke()
	}
	return dc.Image()
}

// Ensure Imaging implements ports.Imaging
var _ ports.Imaging = (*Imaging)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
	im *image.RGBA
}

// Paste copies img onto the canvas at (x, y), replacing the pixels beneath it.
// Unlike gg.Context.DrawImage no blending takes place.
func (c *Canvas) Paste(img image.Image, x, y int) {
	b := img.Bounds()
	draw.Draw(c.im, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.im.Bounds()
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.im
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
