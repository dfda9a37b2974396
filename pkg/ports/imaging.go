package ports

import (
	"image"
	"image/color"
)

// Imaging abstracts the raster operations needed to build an atlas.
type Imaging interface {
	// NewCanvas creates a fully transparent canvas with the specified dimensions.
	NewCanvas(width, height int) Canvas

	// Resize scales an image to the specified dimensions with bilinear filtering.
	Resize(img image.Image, width, height int) *image.RGBA

	// EncodePNG encodes an image losslessly as PNG.
	EncodePNG(img image.Image) ([]byte, error)

	// OutlineBands returns a copy of img with every horizontal band of
	// bandHeight pixels outlined in c. Used for debug output only.
	OutlineBands(img image.Image, bandHeight int, c color.Color) image.Image
}

// Canvas is a mutable RGBA surface that images are pasted onto.
type Canvas interface {
	// Paste copies img onto the canvas with its top-left corner at (x, y).
	// Pixels are overwritten, not blended.
	Paste(img image.Image, x, y int)

	// Bounds returns the canvas rectangle.
	Bounds() image.Rectangle

	// Image returns the canvas pixels.
	Image() *image.RGBA
}
