// Package imports resolves the on-disk resources an Edje source file only
// names: inline image sources, font files, and data.file: text payloads.
// Each loader opens from a configured search path, decodes/validates, and
// returns the bytes to be written into the container, following
// fb2/images.go's decode-then-classify-then-store pipeline shape.
package imports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"edjecc/edje"
	"edjecc/jpegquality"
	"edjecc/utils/images"
)

// ResolvedImage is a decoded/re-encoded image ready to be written into the
// container under images/<id>.
type ResolvedImage struct {
	Data          []byte
	Width, Height int
}

// Importer locates and loads resources named by an Edje source file.
type Importer struct {
	ImageSearchPath []string
	FontSearchPath  []string
	// DefaultJPEGQuality is used for a LOSSY image whose source left
	// entry.Quality unset (spec.md §4.5's only other fallback is the
	// hardcoded 90 below).
	DefaultJPEGQuality int
	// RemoveAlphaOnRGB drops the alpha channel from a lossless re-encode
	// of a non-grayscale source, trading transparency for a smaller PNG;
	// a grayscale source is left untouched since it's never what this
	// policy targets.
	RemoveAlphaOnRGB bool
	Log              *zap.Logger
}

// New creates an Importer with the given search paths and image policy.
func New(imageSearchPath, fontSearchPath []string, defaultJPEGQuality int, removeAlphaOnRGB bool, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		ImageSearchPath:    imageSearchPath,
		FontSearchPath:     fontSearchPath,
		DefaultJPEGQuality: defaultJPEGQuality,
		RemoveAlphaOnRGB:   removeAlphaOnRGB,
		Log:                log,
	}
}

// findOnPath locates name on one of paths, returning the first entry under
// which it exists. An absolute name is only checked as is. A relative name
// is joined onto each search path entry with filepath.Join; ".." elements
// are not rejected, so such a name can resolve outside the entry.
func findOnPath(paths []string, name string) (string, bool) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
		return "", false
	}
	for _, dir := range paths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// ResolveImage loads, decodes, and (per entry.Source/Quality) re-encodes
// the inline image named by entry.Path (spec.md §4.5). A RAW/COMP source
// is re-encoded losslessly to PNG; a LOSSY source is re-encoded to JPEG at
// the declared quality; USER (external reference) is read back verbatim
// with no decode, matching the original's "externally managed" semantics.
func (im *Importer) ResolveImage(entry *edje.ImageEntry) (*ResolvedImage, error) {
	path, ok := findOnPath(im.ImageSearchPath, entry.Path)
	if !ok {
		return nil, fmt.Errorf("image %q: not found on search path", entry.Path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image %q: read: %w", entry.Path, err)
	}

	isSVG := strings.EqualFold(filepath.Ext(entry.Path), ".svg")
	if !isSVG {
		if kind, err := filetype.Match(raw); err != nil || kind == filetype.Unknown || !filetype.IsImage(raw) {
			return nil, fmt.Errorf("image %q: does not look like an image file", entry.Path)
		}
	}

	if entry.Source == edje.ImageExternalReference {
		return &ResolvedImage{Data: raw}, nil
	}

	if isSVG {
		// Vector sources have no native container format in the artifact;
		// bake them to a raster image at import time, at their intrinsic
		// viewBox size, then fall through to the normal re-encode policy.
		img, err := images.RasterizeSVGToImage(raw, 0, 0, 1.0)
		if err != nil {
			return nil, fmt.Errorf("image %q: rasterize svg: %w", entry.Path, err)
		}
		return im.encode(entry, img)
	}

	if entry.Source == edje.ImageInlineLossy {
		if qr, err := jpegquality.NewWithBytes(raw); err == nil {
			target := entry.Quality
			if target <= 0 {
				target = im.DefaultJPEGQuality
			}
			if target <= 0 {
				target = 90
			}
			if qr.Quality() <= target {
				im.Log.Debug("source already at or below target jpeg quality, skipping re-encode",
					zap.String("path", entry.Path), zap.Int("source_quality", qr.Quality()), zap.Int("target_quality", target))
				cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
				if err != nil {
					return nil, fmt.Errorf("image %q: decode config: %w", entry.Path, err)
				}
				return &ResolvedImage{Data: raw, Width: cfg.Width, Height: cfg.Height}, nil
			}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("image %q: decode: %w", entry.Path, err)
	}

	return im.encode(entry, img)
}

// encode re-encodes img per entry.Source/Quality: LOSSY goes to JPEG (quality
// falling back through entry.Quality, im.DefaultJPEGQuality, then 90, and
// tagged with a JFIF APP0 segment for readers that require one), anything
// else goes to PNG (with RemoveAlphaOnRGB stripping transparency from a
// non-grayscale source first).
func (im *Importer) encode(entry *edje.ImageEntry, img image.Image) (*ResolvedImage, error) {
	var data []byte

	switch entry.Source {
	case edje.ImageInlineLossy:
		quality := entry.Quality
		if quality <= 0 {
			quality = im.DefaultJPEGQuality
		}
		if quality <= 0 {
			quality = 90
		}
		encoded, err := images.EncodeJPEGWithDPI(img, quality, images.DpiNoUnits, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("image %q: encode jpeg: %w", entry.Path, err)
		}
		data = encoded
	default: // ImageInlineLossless
		if im.RemoveAlphaOnRGB && !images.IsGrayscale(img) {
			img = stripAlpha(img)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, fmt.Errorf("image %q: encode png: %w", entry.Path, err)
		}
		data = buf.Bytes()
	}

	im.Log.Debug("resolved image",
		zap.String("path", entry.Path), zap.Int("bytes", len(data)),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))

	return &ResolvedImage{Data: data, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
}

// stripAlpha discards img's alpha channel, leaving any previously
// transparent pixels black (their premultiplied RGB value).
func stripAlpha(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := dst.RGBAAt(x, y)
			c.A = 0xff
			dst.SetRGBA(x, y, c)
		}
	}
	return dst
}

// ResizeForWindow scales img to fit within an image set entry's declared
// [min,max] window, used when a size-adaptive set needs a pre-scaled
// variant rather than the runtime scaling the full-size original.
func ResizeForWindow(data []byte, maxW, maxH int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("resize: decode: %w", err)
	}
	resized := imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("resize: encode: %w", err)
	}
	return buf.Bytes(), nil
}
