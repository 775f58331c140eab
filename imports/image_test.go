package imports

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"edjecc/edje"
)

func writeFixturePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func writeFixtureJPEG(t *testing.T, dir, name string, img image.Image, quality int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestResolveImageLosslessPNG(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, dir, "red.png", solidRGBA(4, 4, color.RGBA{R: 255, A: 255}))

	im := New([]string{dir}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "red.png", Source: edje.ImageInlineLossless}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	if resolved.Width != 4 || resolved.Height != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", resolved.Width, resolved.Height)
	}
	if _, err := png.Decode(bytes.NewReader(resolved.Data)); err != nil {
		t.Fatalf("re-encoded data isn't a valid PNG: %v", err)
	}
}

func TestResolveImageRemoveAlphaOnRGB(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 10, B: 10, A: 128})
	writeFixturePNG(t, dir, "translucent.png", src)

	im := New([]string{dir}, nil, 90, true, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "translucent.png", Source: edje.ImageInlineLossless}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	out, err := png.Decode(bytes.NewReader(resolved.Data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	_, _, _, a := out.At(0, 0).RGBA()
	if a != 0xffff {
		t.Fatalf("alpha = %#x, want fully opaque after stripping", a)
	}
}

func TestResolveImageRemoveAlphaOnRGBSkipsGrayscale(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 50, G: 50, B: 50, A: 77})
	writeFixturePNG(t, dir, "gray.png", src)

	im := New([]string{dir}, nil, 90, true, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "gray.png", Source: edje.ImageInlineLossless}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	out, err := png.Decode(bytes.NewReader(resolved.Data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	_, _, _, a := out.At(0, 0).RGBA()
	if a == 0xffff {
		t.Fatalf("grayscale source had its alpha stripped")
	}
}

func TestResolveImageLossyEncodesJFIFAPP0(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, dir, "photo.png", solidRGBA(8, 8, color.RGBA{G: 255, A: 255}))

	im := New([]string{dir}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "photo.png", Source: edje.ImageInlineLossy, Quality: 80}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	if len(resolved.Data) < 4 || resolved.Data[2] != 0xff || resolved.Data[3] != 0xe0 {
		t.Fatalf("re-encoded jpeg is missing a leading APP0 segment")
	}
}

func TestResolveImageLossySkipsReencodeWhenAlreadyLowQuality(t *testing.T) {
	dir := t.TempDir()
	src := solidRGBA(16, 16, color.RGBA{B: 255, A: 255})
	path := writeFixtureJPEG(t, dir, "low.jpg", src, 40)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	im := New([]string{dir}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "low.jpg", Source: edje.ImageInlineLossy, Quality: 90}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	if !bytes.Equal(resolved.Data, raw) {
		t.Fatalf("expected source bytes to pass through verbatim when already below target quality")
	}
	if resolved.Width != 16 || resolved.Height != 16 {
		t.Fatalf("dimensions = %dx%d, want 16x16", resolved.Width, resolved.Height)
	}
}

func TestResolveImageExternalReferencePassesThroughRaw(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, dir, "ref.png", solidRGBA(3, 3, color.RGBA{A: 255}))
	raw, err := os.ReadFile(filepath.Join(dir, "ref.png"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	im := New([]string{dir}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "ref.png", Source: edje.ImageExternalReference}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	if !bytes.Equal(resolved.Data, raw) {
		t.Fatalf("external reference should pass through verbatim")
	}
}

func TestResolveImageSVGRasterizes(t *testing.T) {
	dir := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`
	path := filepath.Join(dir, "icon.svg")
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	im := New([]string{dir}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "icon.svg", Source: edje.ImageInlineLossless}

	resolved, err := im.ResolveImage(entry)
	if err != nil {
		t.Fatalf("ResolveImage: %v", err)
	}
	if resolved.Width != 10 || resolved.Height != 10 {
		t.Fatalf("dimensions = %dx%d, want 10x10", resolved.Width, resolved.Height)
	}
	if _, err := png.Decode(bytes.NewReader(resolved.Data)); err != nil {
		t.Fatalf("rasterized svg result isn't a valid PNG: %v", err)
	}
}

func TestResolveImageNotFound(t *testing.T) {
	im := New([]string{t.TempDir()}, nil, 90, false, zaptest.NewLogger(t))
	entry := &edje.ImageEntry{Path: "missing.png", Source: edje.ImageInlineLossless}

	if _, err := im.ResolveImage(entry); err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}
