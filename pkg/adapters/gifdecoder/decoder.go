// Package gifdecoder decodes animated GIF files into RGBA frames.
package gifdecoder

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"

	"golang.org/x/image/draw"

	"github.com/user/gifatlas/pkg/ports"
)

// Decoder implements ports.FrameDecoder for GIF files.
type Decoder struct {
	fs       ports.FileSystem
	coalesce bool
}

// New creates a new Decoder.
// When coalesce is true every frame is the full logical screen as it is
// displayed, with earlier frames and disposal methods applied. Otherwise
// frames are the raw sub-images at their own size.
func New(fs ports.FileSystem, coalesce bool) *Decoder {
	return &Decoder{
		fs:       fs,
		coalesce: coalesce,
	}
}

// DecodeFrames reads and decodes all frames of the GIF at path.
func (d *Decoder) DecodeFrames(path string) ([]ports.AnimationFrame, error) {
	// ReadFile closes the handle before decoding starts.
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}

// Decode decodes all frames of an in-memory GIF.
func (d *Decoder) Decode(data []byte) ([]ports.AnimationFrame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		// image/gif rejects a stream without image blocks; a valid header
		// followed directly by the trailer is an empty animation instead.
		if empty, scanErr := hasNoFrames(data); scanErr == nil && empty {
			return []ports.AnimationFrame{}, nil
		}
		return nil, err
	}
	if len(g.Image) == 0 {
		return []ports.AnimationFrame{}, nil
	}

	if d.coalesce {
		return coalesceFrames(g), nil
	}
	return rawFrames(g), nil
}

// coalesceFrames renders each frame onto the logical screen.
func coalesceFrames(g *gif.GIF) []ports.AnimationFrame {
	canvas := image.NewRGBA(screenBounds(g))
	frames := make([]ports.AnimationFrame, 0, len(g.Image))

	for i, src := range g.Image {
		disposal := disposalAt(g, i)

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, ports.AnimationFrame{
			Image:      cloneRGBA(canvas),
			DurationMs: delayMs(g, i),
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return frames
}

// rawFrames converts each sub-image to RGBA at its own size.
func rawFrames(g *gif.GIF) []ports.AnimationFrame {
	frames := make([]ports.AnimationFrame, len(g.Image))
	for i, src := range g.Image {
		b := src.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		frames[i] = ports.AnimationFrame{Image: dst, DurationMs: delayMs(g, i)}
	}
	return frames
}

// screenBounds returns the logical screen, falling back to the union of
// frame bounds when the descriptor declares 0x0.
func screenBounds(g *gif.GIF) image.Rectangle {
	rect := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if rect.Empty() {
		var max image.Point
		for _, frame := range g.Image {
			m := frame.Bounds().Max
			if max.X < m.X {
				max.X = m.X
			}
			if max.Y < m.Y {
				max.Y = m.Y
			}
		}
		rect.Max = max
	}
	return rect
}

// delayMs converts the GIF delay (hundredths of a second) to milliseconds.
func delayMs(g *gif.GIF, i int) int {
	if i < len(g.Delay) {
		return g.Delay[i] * 10
	}
	return 0
}

func disposalAt(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return 0
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]byte, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}

// GIF block markers.
const (
	blockExtension       = 0x21
	blockImageDescriptor = 0x2C
	blockTrailer         = 0x3B
)

// hasNoFrames reports whether data is a well-formed GIF whose block stream
// reaches the trailer without any image descriptor.
func hasNoFrames(data []byte) (bool, error) {
	if _, err := gif.DecodeConfig(bytes.NewReader(data)); err != nil {
		return false, err
	}

	// Header (6) + logical screen descriptor (7), then the optional global color table.
	pos := 13
	if packed := data[10]; packed&0x80 != 0 {
		pos += 3 * (1 << ((packed & 0x07) + 1))
	}

	for pos < len(data) {
		switch data[pos] {
		case blockTrailer:
			return true, nil
		case blockImageDescriptor:
			return false, nil
		case blockExtension:
			pos += 2
			for {
				if pos >= len(data) {
					return false, fmt.Errorf("gifdecoder: truncated extension block")
				}
				n := int(data[pos])
				pos++
				if n == 0 {
					break
				}
				pos += n
			}
		default:
			return false, fmt.Errorf("gifdecoder: unknown block 0x%02x", data[pos])
		}
	}
	return false, fmt.Errorf("gifdecoder: missing trailer")
}

// Ensure Decoder implements ports.FrameDecoder
var _ ports.FrameDecoder = (*Decoder)(nil)
