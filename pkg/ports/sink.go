package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrame saves a normalized frame of the named animation.
	SaveFrame(name string, index int, img image.Image) error

	// SaveAtlasOverlay saves the atlas of the named animation with band boundaries outlined.
	SaveAtlasOverlay(name string, atlas image.Image, bandHeight int) error
}
