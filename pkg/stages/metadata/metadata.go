// Package metadata implements the atlas metadata stage.
package metadata

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// Stage derives the metadata record written next to an atlas.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new metadata stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("metadata"),
	}
}

// Execute builds the metadata record.
func (s *Stage) Execute(ctx context.Context, input pipeline.MetadataInput) (pipeline.AtlasMetadata, error) {
	if input.FrameCount <= 0 {
		return pipeline.AtlasMetadata{}, fmt.Errorf("frame count must be positive, got %d", input.FrameCount)
	}

	meta := Build(input)
	s.logger.Debug("Average frame duration %.2f ms, %.3f fps", MeanDurationMs(input.DurationsMs), meta.FPS)
	return meta, nil
}

// Build derives an AtlasMetadata record. Paths are reduced to file names.
func Build(input pipeline.MetadataInput) pipeline.AtlasMetadata {
	return pipeline.AtlasMetadata{
		Source:      filepath.Base(input.SourcePath),
		Atlas:       filepath.Base(input.AtlasPath),
		FrameCount:  input.FrameCount,
		FrameWidth:  input.Frame.Width,
		FrameHeight: input.Frame.Height,
		FPS:         AverageFPS(input.DurationsMs),
	}
}

// MeanDurationMs returns the arithmetic mean of the durations, or 0 for none.
func MeanDurationMs(durationsMs []int) float64 {
	if len(durationsMs) == 0 {
		return 0
	}
	var sum int64
	for _, d := range durationsMs {
		sum += int64(d)
	}
	return float64(sum) / float64(len(durationsMs))
}

// AverageFPS returns 1000 / mean(durations), or 0 when the mean is not
// positive. 0 means the playback rate is unknown.
func AverageFPS(durationsMs []int) float64 {
	mean := MeanDurationMs(durationsMs)
	if mean <= 0 {
		return 0
	}
	return 1000.0 / mean
}
