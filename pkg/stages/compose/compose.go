// Package compose implements the atlas composition stage.
package compose

import (
	"context"
	"fmt"

	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// Stage packs a frame sequence into a vertical atlas.
type Stage struct {
	imaging ports.Imaging
	sink    ports.DebugSink
	logger  ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(imaging ports.Imaging, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		imaging: imaging,
		sink:    sink,
		logger:  logger.WithComponent("compose"),
	}
}

// Execute composes the frames into an atlas.
//
// The first frame's size is the canonical frame size W x H. The atlas is
// W x (H * len(frames)), transparent where no frame pixel lands, and frame i
// is pasted over band i. Frames of a different size are resized to W x H
// with bilinear filtering.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.Atlas, error) {
	if len(input.Frames) == 0 {
		return pipeline.Atlas{}, fmt.Errorf("no frames to compose")
	}

	size := input.Frames[0].Size()
	if size.Width <= 0 || size.Height <= 0 {
		return pipeline.Atlas{}, fmt.Errorf("invalid frame size %dx%d", size.Width, size.Height)
	}
	count := len(input.Frames)

	s.logger.Debug("Composing %d frames of %dx%d into %dx%d atlas",
		count, size.Width, size.Height, size.Width, size.Height*count)

	canvas := s.imaging.NewCanvas(size.Width, size.Height*count)
	resized := 0

	for i, frame := range input.Frames {
		img := frame.Image
		if got := frame.Size(); got != size {
			s.logger.Debug("Resizing frame %d from %dx%d to %dx%d",
				i, got.Width, got.Height, size.Width, size.Height)
			img = s.imaging.Resize(img, size.Width, size.Height)
			resized++
		}

		canvas.Paste(img, 0, i*size.Height)

		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(input.Name, i, img); err != nil {
				s.logger.Warn("Failed to save debug output: %s", err)
			}
		}
	}

	atlas := pipeline.Atlas{
		Image:      canvas.Image(),
		Frame:      size,
		FrameCount: count,
		Resized:    resized,
	}

	if s.sink.Enabled() {
		if err := s.sink.SaveAtlasOverlay(input.Name, atlas.Image, size.Height); err != nil {
			s.logger.Warn("Failed to save debug output: %s", err)
		}
	}

	return atlas, nil
}
