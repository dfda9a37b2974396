// Package write implements the output writing stage.
package write

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// Stage persists an atlas image and its metadata document.
type Stage struct {
	fs      ports.FileSystem
	imaging ports.Imaging
	logger  ports.Logger
}

// NewStage creates a new write stage.
func NewStage(fs ports.FileSystem, imaging ports.Imaging, logger ports.Logger) *Stage {
	return &Stage{
		fs:      fs,
		imaging: imaging,
		logger:  logger.WithComponent("write"),
	}
}

// Execute writes the atlas as PNG and the metadata as indented JSON.
// Existing files are overwritten. If the metadata cannot be written the
// atlas written for the same input is removed again.
func (s *Stage) Execute(ctx context.Context, input pipeline.WriteInput) (pipeline.WriteResult, error) {
	result := pipeline.WriteResult{Paths: input.Paths}

	png, err := s.imaging.EncodePNG(input.Atlas.Image)
	if err != nil {
		return result, &pipeline.WriteError{Path: input.Paths.Atlas, Err: err}
	}

	doc, err := json.MarshalIndent(input.Metadata, "", "  ")
	if err != nil {
		return result, &pipeline.WriteError{Path: input.Paths.Metadata, Err: fmt.Errorf("marshal metadata: %w", err)}
	}

	if err := s.fs.WriteFile(input.Paths.Atlas, png); err != nil {
		return result, &pipeline.WriteError{Path: input.Paths.Atlas, Err: err}
	}
	s.logger.Debug("Wrote %s (%d bytes)", input.Paths.Atlas, len(png))

	if err := s.fs.WriteFile(input.Paths.Metadata, doc); err != nil {
		if rmErr := s.fs.Remove(input.Paths.Atlas); rmErr == nil {
			s.logger.Debug("Removed %s after failed metadata write", input.Paths.Atlas)
		}
		return result, &pipeline.WriteError{Path: input.Paths.Metadata, Err: err}
	}
	s.logger.Debug("Wrote %s (%d bytes)", input.Paths.Metadata, len(doc))

	result.AtlasBytes = len(png)
	result.MetadataBytes = len(doc)
	return result, nil
}
