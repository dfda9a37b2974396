package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/gifatlas/pkg/adapters/ggimaging"
	"github.com/user/gifatlas/pkg/adapters/gifdecoder"
	"github.com/user/gifatlas/pkg/adapters/logger"
	"github.com/user/gifatlas/pkg/adapters/nullsink"
	"github.com/user/gifatlas/pkg/adapters/osfilesystem"
	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/stages/compose"
	"github.com/user/gifatlas/pkg/stages/extract"
	"github.com/user/gifatlas/pkg/stages/metadata"
	"github.com/user/gifatlas/pkg/stages/write"
)

var testPalette = color.Palette{
	color.RGBA{0, 0, 0, 0},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 0, 255, 255},
}

// gifFrame describes one frame of a generated fixture.
type gifFrame struct {
	size  int // square frame
	delay int // centiseconds
	index uint8
}

// writeGIF encodes frames into path. The logical screen is as large as the
// largest frame.
func writeGIF(t *testing.T, path string, frames ...gifFrame) {
	t.Helper()
	g := &gif.GIF{}
	screen := 0
	for _, f := range frames {
		img := image.NewPaletted(image.Rect(0, 0, f.size, f.size), testPalette)
		for i := range img.Pix {
			img.Pix[i] = f.index
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, f.delay)
		if f.size > screen {
			screen = f.size
		}
	}
	g.Config = image.Config{ColorModel: testPalette, Width: screen, Height: screen}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

// writeFramelessGIF writes a header, logical screen descriptor and trailer.
func writeFramelessGIF(t *testing.T, path string) {
	t.Helper()
	data := []byte("GIF89a")
	data = append(data, 1, 0, 1, 0, 0x00, 0, 0, 0x3B)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func newRealOrchestrator(coalesce bool, status *bytes.Buffer) *Orchestrator {
	fs := osfilesystem.New()
	imaging := ggimaging.New()
	log := logger.Discard
	return New(
		extract.NewStage(gifdecoder.New(fs, coalesce), log),
		compose.NewStage(imaging, nullsink.New(), log),
		metadata.NewStage(log),
		write.NewStage(fs, imaging, log),
		fs,
		log,
		status,
	)
}

func readAtlas(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("atlas not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("atlas is not a PNG: %v", err)
	}
	return img
}

func readMetadata(t *testing.T, path string) pipeline.AtlasMetadata {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metadata not written: %v", err)
	}
	var meta pipeline.AtlasMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	return meta
}

func assertNoOutputs(t *testing.T, input string) {
	t.Helper()
	paths := pipeline.OutputPathsFor(input, pipeline.DefaultSuffixes())
	for _, p := range []string{paths.Atlas, paths.Metadata} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s not to exist", p)
		}
	}
}

func TestIntegration_ThreeEqualFrames(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "walk.gif")
	writeGIF(t, input,
		gifFrame{size: 10, delay: 10, index: 1},
		gifFrame{size: 10, delay: 10, index: 2},
		gifFrame{size: 10, delay: 10, index: 1},
	)

	var status bytes.Buffer
	result, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected 1 success, got %+v", result)
	}

	atlas := readAtlas(t, filepath.Join(dir, "walk.atlas.png"))
	if b := atlas.Bounds(); b.Dx() != 10 || b.Dy() != 30 {
		t.Errorf("expected 10x30 atlas, got %dx%d", b.Dx(), b.Dy())
	}
	// Band 1 holds the blue frame.
	if r, g, b, a := atlas.At(5, 15).RGBA(); r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("expected blue in band 1, got %v %v %v %v", r, g, b, a)
	}

	meta := readMetadata(t, filepath.Join(dir, "walk.atlas.json"))
	want := pipeline.AtlasMetadata{
		Source: "walk.gif", Atlas: "walk.atlas.png",
		FrameCount: 3, FrameWidth: 10, FrameHeight: 10, FPS: 10.0,
	}
	if meta != want {
		t.Errorf("expected %+v, got %+v", want, meta)
	}

	if got := status.String(); got != "[ok] walk.gif -> walk.atlas.png (3 frames)\n" {
		t.Errorf("unexpected status %q", got)
	}
}

func TestIntegration_SingleFrameNoDelay(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, filepath.Join(dir, "still.gif"), gifFrame{size: 8, delay: 0, index: 1})

	var status bytes.Buffer
	if _, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(dir)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	atlas := readAtlas(t, filepath.Join(dir, "still.atlas.png"))
	if b := atlas.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("expected 8x8 atlas, got %dx%d", b.Dx(), b.Dy())
	}
	meta := readMetadata(t, filepath.Join(dir, "still.atlas.json"))
	if meta.FPS != 0 || meta.FrameCount != 1 {
		t.Errorf("expected fps 0 and 1 frame, got %+v", meta)
	}
}

func TestIntegration_MismatchedFramesResized(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, filepath.Join(dir, "grow.gif"),
		gifFrame{size: 10, delay: 5, index: 1},
		gifFrame{size: 12, delay: 15, index: 2},
	)

	var status bytes.Buffer
	// Raw sub-frames keep their own size so the second frame is 12x12.
	if _, err := newRealOrchestrator(false, &status).Run(context.Background(), configFor(dir)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	atlas := readAtlas(t, filepath.Join(dir, "grow.atlas.png"))
	if b := atlas.Bounds(); b.Dx() != 10 || b.Dy() != 20 {
		t.Fatalf("expected 10x20 atlas, got %dx%d", b.Dx(), b.Dy())
	}
	// The resized frame fills its whole band, including the last row.
	for _, p := range []image.Point{{0, 10}, {9, 19}, {5, 15}} {
		if _, _, b, a := atlas.At(p.X, p.Y).RGBA(); b != 0xffff || a != 0xffff {
			t.Errorf("expected opaque blue at %v, got b=%v a=%v", p, b, a)
		}
	}

	meta := readMetadata(t, filepath.Join(dir, "grow.atlas.json"))
	if math.Abs(meta.FPS-10.0) > 1e-9 {
		t.Errorf("expected fps 10, got %v", meta.FPS)
	}
	if meta.FrameWidth != 10 || meta.FrameHeight != 10 {
		t.Errorf("expected 10x10 frames, got %dx%d", meta.FrameWidth, meta.FrameHeight)
	}
}

func TestIntegration_FramelessInputSkipped(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "a-empty.gif")
	writeFramelessGIF(t, empty)
	writeGIF(t, filepath.Join(dir, "b-walk.gif"), gifFrame{size: 4, delay: 10, index: 1})

	var status bytes.Buffer
	result, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Skipped != 1 || result.Succeeded != 1 {
		t.Fatalf("expected 1 skipped and 1 succeeded, got %+v", result)
	}

	assertNoOutputs(t, empty)
	readAtlas(t, filepath.Join(dir, "b-walk.atlas.png"))

	lines := strings.Split(strings.TrimSpace(status.String()), "\n")
	if len(lines) != 2 || lines[0] != "[skip] No frames: "+empty {
		t.Errorf("unexpected status %q", status.String())
	}
}

func TestIntegration_MissingRoot(t *testing.T) {
	var status bytes.Buffer
	_, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(filepath.Join(t.TempDir(), "nope")))
	if !errors.Is(err, pipeline.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if status.Len() != 0 {
		t.Errorf("expected no status output, got %q", status.String())
	}
}

func TestIntegration_RootIsFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "x.gif")
	writeGIF(t, input, gifFrame{size: 4, delay: 10, index: 1})

	var status bytes.Buffer
	_, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(input))
	if !errors.Is(err, pipeline.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if status.Len() != 0 {
		t.Errorf("expected no status output, got %q", status.String())
	}
	assertNoOutputs(t, input)
}

func TestIntegration_UppercaseExtensionIgnored(t *testing.T) {
	dir := t.TempDir()
	upper := filepath.Join(dir, "UP.GIF")
	writeGIF(t, upper, gifFrame{size: 4, delay: 10, index: 1})
	writeGIF(t, filepath.Join(dir, "down.gif"), gifFrame{size: 4, delay: 10, index: 2})

	var status bytes.Buffer
	result, err := newRealOrchestrator(true, &status).Run(context.Background(), configFor(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total() != 1 {
		t.Errorf("expected 1 input, got %d", result.Total())
	}
	if got := status.String(); got != "[ok] down.gif -> down.atlas.png (1 frames)\n" {
		t.Errorf("unexpected status %q", got)
	}
	assertNoOutputs(t, upper)
}

func TestIntegration_CorruptInput(t *testing.T) {
	tests := []struct {
		policy    ErrorPolicy
		wantErr   bool
		wantAfter bool // whether the file after the corrupt one gets an atlas
	}{
		{PolicyContinue, false, true},
		{PolicyAbort, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			dir := t.TempDir()
			corrupt := filepath.Join(dir, "a.gif")
			if err := os.WriteFile(corrupt, []byte("not a gif"), 0644); err != nil {
				t.Fatal(err)
			}
			writeGIF(t, filepath.Join(dir, "b.gif"), gifFrame{size: 4, delay: 10, index: 1})

			cfg := configFor(dir)
			cfg.Policy = tt.policy
			var status bytes.Buffer
			_, err := newRealOrchestrator(true, &status).Run(context.Background(), cfg)

			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, pipeline.ErrDecode) {
				t.Errorf("expected ErrDecode, got %v", err)
			}
			assertNoOutputs(t, corrupt)

			_, statErr := os.Stat(filepath.Join(dir, "b.atlas.png"))
			if got := statErr == nil; got != tt.wantAfter {
				t.Errorf("expected b.atlas.png written=%v, got %v", tt.wantAfter, got)
			}
			if !strings.HasPrefix(status.String(), "[fail] "+corrupt+": ") {
				t.Errorf("unexpected status %q", status.String())
			}
		})
	}
}

func TestIntegration_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, filepath.Join(dir, "grow.gif"),
		gifFrame{size: 6, delay: 10, index: 1},
		gifFrame{size: 9, delay: 10, index: 2},
	)

	run := func() []byte {
		var status bytes.Buffer
		if _, err := newRealOrchestrator(false, &status).Run(context.Background(), configFor(dir)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "grow.atlas.png"))
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first := run()
	second := run()
	if !bytes.Equal(first, second) {
		t.Error("atlas bytes differ between runs")
	}
}
