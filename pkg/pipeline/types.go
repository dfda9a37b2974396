package pipeline

import (
	"image"
	"path/filepath"
	"strings"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// Frame is one decoded frame: an RGBA pixel buffer and its display duration.
// Frames of one animation are not required to share dimensions.
type Frame struct {
	Image      *image.RGBA
	DurationMs int // 0 means unspecified
}

// Size returns the frame dimensions.
func (f Frame) Size() Dimension {
	b := f.Image.Bounds()
	return Dimension{Width: b.Dx(), Height: b.Dy()}
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput names the animated image to decode.
type ExtractInput struct {
	Path string
}

// SourceAnimation is the ordered frame sequence decoded from one input file.
type SourceAnimation struct {
	Path   string
	Frames []Frame
}

// Empty reports whether the animation decoded to zero frames.
func (a SourceAnimation) Empty() bool {
	return len(a.Frames) == 0
}

// Durations returns the per-frame durations in milliseconds.
func (a SourceAnimation) Durations() []int {
	d := make([]int, len(a.Frames))
	for i, f := range a.Frames {
		d[i] = f.DurationMs
	}
	return d
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains the frames to pack into an atlas.
// Frames must not be empty.
type ComposeInput struct {
	Name   string // Used for debug output only
	Frames []Frame
}

// Atlas is a vertical strip of equally sized bands, one per frame.
// Band i spans rows [i*Frame.Height, (i+1)*Frame.Height).
type Atlas struct {
	Image      *image.RGBA
	Frame      Dimension // Canonical frame size (size of the first frame)
	FrameCount int
	Resized    int // Number of frames that were resized to the canonical size
}

// =============================================================================
// Metadata Stage Types
// =============================================================================

// MetadataInput contains what the metadata builder derives its record from.
type MetadataInput struct {
	SourcePath  string
	AtlasPath   string
	Frame       Dimension
	FrameCount  int
	DurationsMs []int
}

// AtlasMetadata is the JSON sidecar written next to the atlas image.
type AtlasMetadata struct {
	Source      string  `json:"source"`
	Atlas       string  `json:"atlas"`
	FrameCount  int     `json:"frameCount"`
	FrameWidth  int     `json:"frameWidth"`
	FrameHeight int     `json:"frameHeight"`
	FPS         float64 `json:"fps"`
}

// =============================================================================
// Write Stage Types
// =============================================================================

// Default suffixes appended to the input stem.
const (
	DefaultAtlasSuffix    = ".atlas.png"
	DefaultMetadataSuffix = ".atlas.json"
)

// OutputPaths are the two sibling files produced for one input.
type OutputPaths struct {
	Atlas    string
	Metadata string
}

// Suffixes are appended to the input stem to name the outputs.
type Suffixes struct {
	Atlas    string
	Metadata string
}

// DefaultSuffixes returns the ".atlas.png" / ".atlas.json" pair.
func DefaultSuffixes() Suffixes {
	return Suffixes{
		Atlas:    DefaultAtlasSuffix,
		Metadata: DefaultMetadataSuffix,
	}
}

// OutputPathsFor derives the sibling output paths for an input by stripping
// its extension and appending the suffixes: "dir/walk.gif" becomes
// "dir/walk.atlas.png" and "dir/walk.atlas.json".
func OutputPathsFor(inputPath string, suffixes Suffixes) OutputPaths {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return OutputPaths{
		Atlas:    stem + suffixes.Atlas,
		Metadata: stem + suffixes.Metadata,
	}
}

// WriteInput contains everything the writer persists for one input.
type WriteInput struct {
	Paths    OutputPaths
	Atlas    Atlas
	Metadata AtlasMetadata
}

// WriteResult reports what was written.
type WriteResult struct {
	Paths         OutputPaths
	AtlasBytes    int
	MetadataBytes int
}

// =============================================================================
// Batch Types
// =============================================================================

// FileStatus is the outcome of processing one input.
type FileStatus int

const (
	StatusSucceeded FileStatus = iota
	StatusSkipped
	StatusFailed
)

// String returns the status label used in reports.
func (s FileStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "ok"
	case StatusSkipped:
		return "skip"
	case StatusFailed:
		return "fail"
	default:
		return "unknown"
	}
}

// FileResult is the outcome of one input: Skipped, Succeeded, or Failed with a reason.
type FileResult struct {
	Path     string
	Status   FileStatus
	Err      error          // Set when Status is StatusFailed
	Metadata *AtlasMetadata // Set when Status is StatusSucceeded
	Outputs  OutputPaths    // Set when Status is StatusSucceeded
}
