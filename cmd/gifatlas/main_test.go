package main

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testPalette = color.Palette{
	color.RGBA{0, 0, 0, 0},
	color.RGBA{255, 0, 0, 255},
}

func writeTestGIF(t *testing.T, path string, frames int) {
	t.Helper()
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		img := image.NewPaletted(image.Rect(0, 0, 6, 4), testPalette)
		for j := range img.Pix {
			img.Pix[j] = 1
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, 5)
	}

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

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"gifatlas"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestRun_ConvertsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestGIF(t, filepath.Join(dir, "walk.gif"), 4)
	writeTestGIF(t, filepath.Join(dir, "nested", "idle.gif"), 2)

	stdout, _, err := runApp(t, "--dir", dir, "--quiet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[ok] idle.gif -> idle.atlas.png (2 frames)\n[ok] walk.gif -> walk.atlas.png (4 frames)\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "walk.atlas.json"))
	if err != nil {
		t.Fatalf("metadata not written: %v", err)
	}
	wantJSON := `{
  "source": "walk.gif",
  "atlas": "walk.atlas.png",
  "frameCount": 4,
  "frameWidth": 6,
  "frameHeight": 4,
  "fps": 20
}`
	if string(data) != wantJSON {
		t.Errorf("unexpected metadata:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "idle.atlas.png")); err != nil {
		t.Errorf("nested atlas not written: %v", err)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	stdout, _, err := runApp(t, "--dir", missing, "--quiet")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "directory not found") {
		t.Errorf("unexpected error %q", err)
	}
	if stdout != "" {
		t.Errorf("expected no status output, got %q", stdout)
	}
}

func TestRun_DirIsFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "x.gif")
	writeTestGIF(t, input, 1)

	stdout, _, err := runApp(t, "--dir", input, "--quiet")
	if err == nil {
		t.Fatal("expected error when --dir names a file")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("unexpected error %q", err)
	}
	if stdout != "" {
		t.Errorf("expected no status output, got %q", stdout)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runApp(t, "--dir", dir, "--quiet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "No GIF files found in: "+dir+"\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRun_ErrorPolicy(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.gif"), []byte("not a gif"), 0644); err != nil {
		t.Fatal(err)
	}
	writeTestGIF(t, filepath.Join(dir, "b.gif"), 1)

	if _, _, err := runApp(t, "--dir", dir, "--quiet"); err != nil {
		t.Errorf("continue policy should exit cleanly, got %v", err)
	}

	os.Remove(filepath.Join(dir, "b.atlas.png"))
	if _, _, err := runApp(t, "--dir", dir, "--quiet", "--on-error", "abort"); err == nil {
		t.Error("abort policy should fail the run")
	}
	if _, err := os.Stat(filepath.Join(dir, "b.atlas.png")); !os.IsNotExist(err) {
		t.Error("abort policy should stop before b.gif")
	}
}

func TestRun_InvalidFlag(t *testing.T) {
	if _, _, err := runApp(t, "--dir", t.TempDir(), "--on-error", "retry"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeTestGIF(t, filepath.Join(dir, "walk.gif"), 2)

	cfgPath := filepath.Join(t.TempDir(), "gifatlas.yaml")
	yaml := "dir: " + filepath.Join(dir, "does-not-exist") + "\natlas_suffix: _sheet.png\nquiet: true\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	// The YAML dir is overridden by the flag; the suffix comes from the file.
	stdout, _, err := runApp(t, "--config", cfgPath, "--dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "[ok] walk.gif -> walk_sheet.png (2 frames)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRun_Summary(t *testing.T) {
	dir := t.TempDir()
	writeTestGIF(t, filepath.Join(dir, "walk.gif"), 2)
	summary := filepath.Join(t.TempDir(), "reports", "summary.md")

	if _, _, err := runApp(t, "--dir", dir, "--quiet", "--summary", summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(data), "`walk.gif`") {
		t.Errorf("summary does not list walk.gif:\n%s", data)
	}
}

func TestRun_Debug(t *testing.T) {
	dir := t.TempDir()
	writeTestGIF(t, filepath.Join(dir, "walk.gif"), 2)
	debugDir := t.TempDir()

	if _, _, err := runApp(t, "--dir", dir, "--quiet", "--debug", "--debug-dir", debugDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runs, err := os.ReadDir(debugDir)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one run directory, got %v (%v)", runs, err)
	}
	base := filepath.Join(debugDir, runs[0].Name(), "walk")
	for _, name := range []string{"frame-0000.png", "frame-0001.png", "atlas-bands.png"} {
		if _, err := os.Stat(filepath.Join(base, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}
