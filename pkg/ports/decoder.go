package ports

import (
	"image"
)

// AnimationFrame is a single decoded frame of an animated image.
type AnimationFrame struct {
	Image      *image.RGBA
	DurationMs int // Display duration in milliseconds (0 = unspecified)
}

// FrameDecoder abstracts animated image decoding.
type FrameDecoder interface {
	// DecodeFrames reads and decodes all frames of the file at path, in display order.
	// A container that parses but holds no frames yields an empty slice and a nil error.
	// The file handle is released before DecodeFrames returns.
	DecodeFrames(path string) ([]AnimationFrame, error)
}
