// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/gifatlas/pkg/ports"
)

// DefaultGuideColor outlines atlas bands in debug overlays.
var DefaultGuideColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Sink saves debug output to files.
// Every animation gets its own directory below baseDir, named after the
// animation (which may contain path separators).
type Sink struct {
	baseDir    string
	fs         ports.FileSystem
	imaging    ports.Imaging
	guideColor color.Color
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, imaging ports.Imaging, guideColor color.Color) *Sink {
	if guideColor == nil {
		guideColor = DefaultGuideColor
	}
	return &Sink{
		baseDir:    baseDir,
		fs:         fs,
		imaging:    imaging,
		guideColor: guideColor,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame saves a normalized frame as PNG.
func (s *Sink) SaveFrame(name string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.imaging.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveAtlasOverlay saves the atlas with band boundaries outlined.
func (s *Sink) SaveAtlasOverlay(name string, atlas image.Image, bandHeight int) error {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	overlay := s.imaging.OutlineBands(atlas, bandHeight, s.guideColor)
	data, err := s.imaging.EncodePNG(overlay)
	if err != nil {
		return fmt.Errorf("encode atlas overlay: %w", err)
	}
	path := filepath.Join(dir, "atlas-bands.png")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
