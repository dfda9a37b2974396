// Package summarizer provides summary generation for batch runs.
package summarizer

import (
	"path/filepath"
	"time"

	"github.com/user/gifatlas/pkg/pipeline"
)

// Summary contains all data collected during one batch run.
type Summary struct {
	// Metadata
	RunID       string
	GeneratedAt time.Time

	// Run settings
	Root   string
	Policy string

	// Outcome
	Totals Totals
	Files  []FileEntry
}

// Totals counts the per-file outcomes.
type Totals struct {
	Files     int
	Succeeded int
	Skipped   int
	Failed    int
}

// FileEntry is one row of the report.
type FileEntry struct {
	Path   string // Relative to Root when possible
	Status pipeline.FileStatus

	// Set for succeeded files
	Atlas       string
	FrameCount  int
	FrameWidth  int
	FrameHeight int
	FPS         float64

	// Set for failed files
	Reason string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary(runID string) *Summary {
	return &Summary{
		RunID:       runID,
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder(runID string) *Builder {
	return &Builder{
		summary: NewSummary(runID),
	}
}

// WithRoot sets the scanned directory. Call it before adding files so
// their paths are reported relative to it.
func (b *Builder) WithRoot(root string) *Builder {
	b.summary.Root = root
	return b
}

// WithPolicy sets the error policy name.
func (b *Builder) WithPolicy(policy string) *Builder {
	b.summary.Policy = policy
	return b
}

// WithGeneratedAt overrides the timestamp.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	b.summary.GeneratedAt = t
	return b
}

// AddFile records the outcome of one input.
func (b *Builder) AddFile(fr pipeline.FileResult) *Builder {
	entry := FileEntry{
		Path:   b.relative(fr.Path),
		Status: fr.Status,
	}

	switch fr.Status {
	case pipeline.StatusSucceeded:
		b.summary.Totals.Succeeded++
		if fr.Metadata != nil {
			entry.Atlas = fr.Metadata.Atlas
			entry.FrameCount = fr.Metadata.FrameCount
			entry.FrameWidth = fr.Metadata.FrameWidth
			entry.FrameHeight = fr.Metadata.FrameHeight
			entry.FPS = fr.Metadata.FPS
		}
	case pipeline.StatusSkipped:
		b.summary.Totals.Skipped++
	case pipeline.StatusFailed:
		b.summary.Totals.Failed++
		if fr.Err != nil {
			entry.Reason = fr.Err.Error()
		}
	}

	b.summary.Totals.Files++
	b.summary.Files = append(b.summary.Files, entry)
	return b
}

// AddFiles records the outcomes of several inputs in order.
func (b *Builder) AddFiles(results []pipeline.FileResult) *Builder {
	for _, fr := range results {
		b.AddFile(fr)
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

func (b *Builder) relative(path string) string {
	if b.summary.Root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(b.summary.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
