// Package extract implements the frame extraction stage.
package extract

import (
	"context"

	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// Stage decodes an animated image into its ordered frame sequence.
type Stage struct {
	decoder ports.FrameDecoder
	logger  ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(decoder ports.FrameDecoder, logger ports.Logger) *Stage {
	return &Stage{
		decoder: decoder,
		logger:  logger.WithComponent("extract"),
	}
}

// Execute decodes the input file.
// Decoder failures are returned as *pipeline.DecodeError. A file that
// decodes to zero frames yields an empty SourceAnimation and no error.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.SourceAnimation, error) {
	result := pipeline.SourceAnimation{Path: input.Path}

	s.logger.Debug("Decoding %s", input.Path)

	decoded, err := s.decoder.DecodeFrames(input.Path)
	if err != nil {
		return result, &pipeline.DecodeError{Path: input.Path, Err: err}
	}

	result.Frames = make([]pipeline.Frame, len(decoded))
	for i, f := range decoded {
		result.Frames[i] = pipeline.Frame{
			Image:      f.Image,
			DurationMs: f.DurationMs,
		}
	}

	s.logger.Debug("Decoded %d frames", len(result.Frames))
	return result, nil
}
