package mocks

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/user/gifatlas/pkg/ports"
)

// Imaging is a mock implementation of ports.Imaging.
// Without overrides it allocates plain RGBA buffers and records calls.
type Imaging struct {
	mu sync.Mutex

	NewCanvasFunc    func(width, height int) ports.Canvas
	ResizeFunc       func(img image.Image, width, height int) *image.RGBA
	EncodePNGFunc    func(img image.Image) ([]byte, error)
	OutlineBandsFunc func(img image.Image, bandHeight int, c color.Color) image.Image

	ResizeCalls []image.Rectangle // Source bounds of every Resize call
}

func (m *Imaging) NewCanvas(width, height int) ports.Canvas {
	if m.NewCanvasFunc != nil {
		return m.NewCanvasFunc(width, height)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (m *Imaging) Resize(img image.Image, width, height int) *image.RGBA {
	m.mu.Lock()
	m.ResizeCalls = append(m.ResizeCalls, img.Bounds())
	m.mu.Unlock()
	if m.ResizeFunc != nil {
		return m.ResizeFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Imaging) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte("\x89PNG"), nil
}

func (m *Imaging) OutlineBands(img image.Image, bandHeight int, c color.Color) image.Image {
	if m.OutlineBandsFunc != nil {
		return m.OutlineBandsFunc(img, bandHeight, c)
	}
	return img
}

var _ ports.Imaging = (*Imaging)(nil)

// Canvas is a mock implementation of ports.Canvas backed by an RGBA buffer.
type Canvas struct {
	img    *image.RGBA
	Pastes []image.Point
}

func (m *Canvas) Paste(img image.Image, x, y int) {
	m.Pastes = append(m.Pastes, image.Pt(x, y))
	b := img.Bounds()
	draw.Draw(m.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
}

func (m *Canvas) Bounds() image.Rectangle {
	return m.img.Bounds()
}

func (m *Canvas) Image() *image.RGBA {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
