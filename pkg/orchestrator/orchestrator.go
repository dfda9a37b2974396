// Package orchestrator coordinates all pipeline stages over a batch of inputs.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/user/gifatlas/pkg/discovery"
	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// ErrorPolicy decides what a per-file failure does to the rest of the batch.
type ErrorPolicy string

const (
	// PolicyContinue records the failure and moves on to the next file.
	PolicyContinue ErrorPolicy = "continue"
	// PolicyAbort stops the batch at the first failure.
	PolicyAbort ErrorPolicy = "abort"
)

// ErrorPolicyNames lists the accepted policy names.
var ErrorPolicyNames = []string{string(PolicyContinue), string(PolicyAbort)}

// ParseErrorPolicy parses a policy name.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(s) {
	case PolicyContinue, PolicyAbort:
		return ErrorPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown error policy %q (expected continue or abort)", s)
	}
}

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	Dir     string // Root directory scanned recursively
	Pattern string // Base name pattern of inputs

	// Output
	Suffixes pipeline.Suffixes

	// Failure handling
	Policy ErrorPolicy
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Dir:      "../assets/textures/gif",
		Pattern:  discovery.DefaultPattern,
		Suffixes: pipeline.DefaultSuffixes(),
		Policy:   PolicyContinue,
	}
}

// Orchestrator runs extract, compose, metadata and write for every input,
// one file at a time.
type Orchestrator struct {
	extractStage  pipeline.Stage[pipeline.ExtractInput, pipeline.SourceAnimation]
	composeStage  pipeline.Stage[pipeline.ComposeInput, pipeline.Atlas]
	metadataStage pipeline.Stage[pipeline.MetadataInput, pipeline.AtlasMetadata]
	writeStage    pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult]
	fs            ports.FileSystem
	logger        ports.Logger
	status        io.Writer
}

// New creates a new Orchestrator.
// Per-file status lines ("[ok] ...", "[skip] ...", "[fail] ...") are
// written to status untranslated.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.SourceAnimation],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.Atlas],
	metadataStage pipeline.Stage[pipeline.MetadataInput, pipeline.AtlasMetadata],
	writeStage pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult],
	fs ports.FileSystem,
	logger ports.Logger,
	status io.Writer,
) *Orchestrator {
	return &Orchestrator{
		extractStage:  extractStage,
		composeStage:  composeStage,
		metadataStage: metadataStage,
		writeStage:    writeStage,
		fs:            fs,
		logger:        logger,
		status:        status,
	}
}

// RunResult contains the per-file outcomes of a batch run.
type RunResult struct {
	Files     []pipeline.FileResult
	Succeeded int
	Skipped   int
	Failed    int
}

// Total returns the number of files processed.
func (r RunResult) Total() int {
	return len(r.Files)
}

func (r *RunResult) add(fr pipeline.FileResult) {
	r.Files = append(r.Files, fr)
	switch fr.Status {
	case pipeline.StatusSucceeded:
		r.Succeeded++
	case pipeline.StatusSkipped:
		r.Skipped++
	case pipeline.StatusFailed:
		r.Failed++
	}
}

// Run discovers inputs under config.Dir and processes them in sorted order.
//
// A missing root, or one that is not a directory, returns an error wrapping
// pipeline.ErrConfig before any file is touched. With PolicyAbort the first failed file ends
// the run and its error is returned; with PolicyContinue failures are only
// recorded in the result. Cancelling ctx stops the run before the next file.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	var result RunResult

	exists, err := o.fs.Exists(config.Dir)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", pipeline.ErrConfig, config.Dir, err)
	}
	if !exists {
		return result, fmt.Errorf("%w: directory not found: %s", pipeline.ErrConfig, config.Dir)
	}
	isDir, err := o.fs.IsDir(config.Dir)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", pipeline.ErrConfig, config.Dir, err)
	}
	if !isDir {
		return result, fmt.Errorf("%w: not a directory: %s", pipeline.ErrConfig, config.Dir)
	}

	files, err := discovery.Discover(o.fs, config.Dir, config.Pattern)
	if err != nil {
		return result, fmt.Errorf("discover inputs: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(o.status, "No GIF files found in: %s\n", config.Dir)
		return result, nil
	}

	o.logger.Info(l10n.F("Processing %d files in %s", len(files), config.Dir))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			o.logger.Warn(l10n.F("Interrupted, stopping before %s", path))
			return result, err
		}

		fr := o.processFile(ctx, config, path)
		result.add(fr)
		o.report(fr)

		if fr.Status == pipeline.StatusFailed {
			if config.Policy == PolicyAbort {
				o.logger.Error(l10n.F("Aborting batch after failure: %s", fr.Err))
				return result, fr.Err
			}
			o.logger.Warn(l10n.F("Failed to process %s: %s", path, fr.Err))
		}
	}

	o.logger.Info(l10n.F("Batch completed: %d succeeded, %d skipped, %d failed",
		result.Succeeded, result.Skipped, result.Failed))
	return result, nil
}

// processFile runs the stages for one input: extract, compose, metadata, write.
func (o *Orchestrator) processFile(ctx context.Context, config Config, path string) pipeline.FileResult {
	fr := pipeline.FileResult{Path: path}
	fail := func(err error) pipeline.FileResult {
		fr.Status = pipeline.StatusFailed
		fr.Err = err
		return fr
	}

	o.logger.Debug("Processing %s", path)

	anim, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{Path: path})
	if err != nil {
		return fail(err)
	}
	if anim.Empty() {
		fr.Status = pipeline.StatusSkipped
		return fr
	}

	atlas, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Name:   discovery.Name(config.Dir, path),
		Frames: anim.Frames,
	})
	if err != nil {
		return fail(fmt.Errorf("compose %s: %w", path, err))
	}

	paths := pipeline.OutputPathsFor(path, config.Suffixes)

	meta, err := o.metadataStage.Execute(ctx, pipeline.MetadataInput{
		SourcePath:  path,
		AtlasPath:   paths.Atlas,
		Frame:       atlas.Frame,
		FrameCount:  atlas.FrameCount,
		DurationsMs: anim.Durations(),
	})
	if err != nil {
		return fail(fmt.Errorf("build metadata for %s: %w", path, err))
	}

	if _, err := o.writeStage.Execute(ctx, pipeline.WriteInput{
		Paths:    paths,
		Atlas:    atlas,
		Metadata: meta,
	}); err != nil {
		return fail(err)
	}

	fr.Status = pipeline.StatusSucceeded
	fr.Metadata = &meta
	fr.Outputs = paths
	return fr
}

// report prints the status line for one file.
func (o *Orchestrator) report(fr pipeline.FileResult) {
	switch fr.Status {
	case pipeline.StatusSkipped:
		fmt.Fprintf(o.status, "[skip] No frames: %s\n", fr.Path)
	case pipeline.StatusSucceeded:
		fmt.Fprintf(o.status, "[ok] %s -> %s (%d frames)\n",
			filepath.Base(fr.Path), filepath.Base(fr.Outputs.Atlas), fr.Metadata.FrameCount)
	case pipeline.StatusFailed:
		fmt.Fprintf(o.status, "[fail] %s: %s\n", fr.Path, describe(fr.Err))
	}
}

// describe returns the innermost cause for decode and write failures, whose
// messages already carry the path.
func describe(err error) string {
	var de *pipeline.DecodeError
	if errors.As(err, &de) {
		return de.Err.Error()
	}
	var we *pipeline.WriteError
	if errors.As(err, &we) {
		return fmt.Sprintf("write %s: %v", filepath.Base(we.Path), we.Err)
	}
	return err.Error()
}
