// Package main provides the CLI entry point for gifatlas.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gifatlas/pkg/adapters/filesink"
	"github.com/user/gifatlas/pkg/adapters/ggimaging"
	"github.com/user/gifatlas/pkg/adapters/gifdecoder"
	"github.com/user/gifatlas/pkg/adapters/logger"
	"github.com/user/gifatlas/pkg/adapters/nullsink"
	"github.com/user/gifatlas/pkg/adapters/osfilesystem"
	"github.com/user/gifatlas/pkg/config"
	"github.com/user/gifatlas/pkg/orchestrator"
	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
	"github.com/user/gifatlas/pkg/stages/compose"
	"github.com/user/gifatlas/pkg/stages/extract"
	"github.com/user/gifatlas/pkg/stages/metadata"
	"github.com/user/gifatlas/pkg/stages/write"
	"github.com/user/gifatlas/pkg/summarizer"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command line application. Status lines and info logs go
// to stdout, warnings and errors to stderr.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "gifatlas",
		Usage:     l10n.T("Convert animated GIFs into vertical sprite-sheet atlases"),
		UsageText: "gifatlas [options]",
		Description: l10n.T("gifatlas scans a directory for GIF files and writes, next to each one, " +
			"a PNG atlas with all frames stacked vertically and a JSON file describing it."),
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     flags(),
		Action: func(c *cli.Context) error {
			return run(c, stdout, stderr)
		},
		// Errors are returned from Run and printed by main.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func flags() []cli.Flag {
	input := l10n.T("Input")
	output := l10n.T("Output")
	decoding := l10n.T("Decoding")
	failures := l10n.T("Error Handling")
	debug := l10n.T("Debug")
	logging := l10n.T("Logging")
	defaults := config.Defaults()

	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file (flags take precedence)"),
			Category: input,
		},
		&cli.StringFlag{
			Name:     "dir",
			Aliases:  []string{"d"},
			Value:    defaults.Dir,
			Usage:    l10n.T("Root directory scanned recursively for GIF files"),
			Category: input,
		},
		&cli.StringFlag{
			Name:     "pattern",
			Value:    defaults.Pattern,
			Usage:    l10n.T("File name pattern of inputs (case-sensitive)"),
			Category: input,
		},
		&cli.BoolFlag{
			Name:     "no-coalesce",
			Usage:    l10n.T("Use raw GIF sub-frames instead of fully rendered frames"),
			Category: decoding,
		},
		&cli.StringFlag{
			Name:     "atlas-suffix",
			Value:    defaults.AtlasSuffix,
			Usage:    l10n.T("Suffix replacing the input extension for the atlas image"),
			Category: output,
		},
		&cli.StringFlag{
			Name:     "metadata-suffix",
			Value:    defaults.MetadataSuffix,
			Usage:    l10n.T("Suffix replacing the input extension for the metadata file"),
			Category: output,
		},
		&cli.StringFlag{
			Name:     "summary",
			Aliases:  []string{"s"},
			Usage:    l10n.T("Output execution summary to file (Markdown format)"),
			Category: output,
		},
		&cli.StringFlag{
			Name:     "on-error",
			Value:    defaults.OnError,
			Usage:    l10n.T("What a failed file does to the batch (continue, abort)"),
			Category: failures,
		},
		&cli.BoolFlag{
			Name:     "debug",
			Usage:    l10n.T("Enable debug output"),
			Category: debug,
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Value:    defaults.DebugDir,
			Usage:    l10n.T("Directory for debug output"),
			Category: debug,
		},
		&cli.StringFlag{
			Name:     "debug-guide-color",
			Value:    defaults.DebugGuideColor,
			Usage:    l10n.T("Color outlining atlas bands in debug output (hex)"),
			Category: debug,
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    defaults.LogLevel,
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: logging,
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: logging,
		},
	}
}

// loadConfig merges built-in defaults, the optional YAML file and the flags
// that were set explicitly, in that order of increasing precedence.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("dir") {
		cfg.Dir = c.String("dir")
	}
	if c.IsSet("pattern") {
		cfg.Pattern = c.String("pattern")
	}
	if c.IsSet("no-coalesce") {
		cfg.Coalesce = !c.Bool("no-coalesce")
	}
	if c.IsSet("atlas-suffix") {
		cfg.AtlasSuffix = c.String("atlas-suffix")
	}
	if c.IsSet("metadata-suffix") {
		cfg.MetadataSuffix = c.String("metadata-suffix")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("on-error") {
		cfg.OnError = c.String("on-error")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("debug-guide-color") {
		cfg.DebugGuideColor = c.String("debug-guide-color")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}

	return cfg, cfg.Validate()
}

// run executes one batch.
func run(c *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Create logger
	var log ports.Logger
	if cfg.Quiet {
		log = logger.Discard
	} else {
		log = logger.NewConsoleWriters(ports.ParseLogLevel(cfg.LogLevel), stdout, stderr)
	}
	if path := c.String("config"); path != "" {
		log.Debug(l10n.F("Loaded configuration from %s", path))
	}

	runID := uuid.NewString()

	// Create adapters
	fs := osfilesystem.New()
	imaging := ggimaging.New()
	decoder := gifdecoder.New(fs, cfg.Coalesce)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		dir := filepath.Join(cfg.DebugDir, runID)
		if err := fs.MkdirAll(dir); err != nil {
			return cli.Exit(fmt.Sprintf("create debug directory: %v", err), 1)
		}
		guide, _ := config.ParseColor(cfg.DebugGuideColor)
		sink = filesink.New(dir, fs, imaging, guide)
	} else {
		sink = nullsink.New()
	}

	// Create orchestrator
	orch := orchestrator.New(
		extract.NewStage(decoder, log),
		compose.NewStage(imaging, sink, log),
		metadata.NewStage(log),
		write.NewStage(fs, imaging, log),
		fs,
		log,
		stdout,
	)

	orchConfig := cfg.ToOrchestratorConfig()
	result, runErr := orch.Run(c.Context, orchConfig)

	if cfg.Summary != "" && !errors.Is(runErr, pipeline.ErrConfig) {
		summary := summarizer.NewBuilder(runID).
			WithRoot(orchConfig.Dir).
			WithPolicy(string(orchConfig.Policy)).
			AddFiles(result.Files).
			Build()
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := writer.Write(cfg.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.Summary))
		}
	}

	if runErr != nil {
		return cli.Exit(runErr.Error(), 1)
	}
	return nil
}
