// Package serializer writes a compiled File to its on-disk container
// artifact: the file header, every collection's entity graph, every
// resolved image/font/script blob, and a regenerated canonical source
// listing, in the fixed order spec.md §4.6 names.
//
// The overwrite-check / temp-file-in-workdir / write-sections-in-order /
// close-then-rename shape is grounded on convert/epub/epub.go's
// Generate(): check ctx, stat the destination, create a sibling temp
// file, write every section with its own wrapped error, close, then
// promote the temp file over the real destination only once every
// section has succeeded (so a failed run never leaves a half-written
// artifact in the destination's place, per spec.md §4.6's
// "do not partially replace an existing artifact").
package serializer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"edjecc/container"
	"edjecc/edje"
	"edjecc/imports"
	"edjecc/source"
)

// FileHeader is the subset of *edje.File written under container.KeyFileHeader:
// every file-global table except the collections themselves, which are
// written one-per-entry under collections/<id> instead.
type FileHeader struct {
	CompilerTag   string
	Version       int
	AppendFontset string

	Images       []*edje.ImageEntry
	Sets         []*edje.ImageSet
	Fonts        []*edje.FontEntry
	Styles       []*edje.Style
	ColorClasses []*edje.ColorClass
	Externals    []*edje.External
	Spectra      []*edje.Spectrum
	DataItems    []*edje.DataItem

	CollectionCount int
	Aliases         map[string]int
}

// Options controls how Serialize locates resources and where it stages
// its temporary output.
type Options struct {
	// WorkDir is the directory the temporary file is created in before
	// being promoted to OutputPath; empty means the output file's own
	// directory.
	WorkDir   string
	Overwrite bool
	Importer  *imports.Importer
	Log       *zap.Logger
}

// Serialize compiles f into a container artifact at outputPath, following
// the five steps of spec.md §4.6: tag the header, write the header blob,
// write each collection, emit the regenerated-source blob, close.
func Serialize(ctx context.Context, f *edje.File, outputPath string, opt Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(outputPath); err == nil {
		if !opt.Overwrite {
			return fmt.Errorf("serializer: output file already exists: %s", outputPath)
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("serializer: create output directory: %w", err)
	}

	workDir := opt.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(outputPath)
	}
	_, base := filepath.Split(outputPath)
	tmpName := filepath.Join(workDir, base+".tmp")

	out, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("serializer: create temp file: %w", err)
	}
	defer os.Remove(tmpName)

	cw := container.NewWriter(out, log)

	if f.CompilerTag == "" {
		f.CompilerTag = "edjecc"
	}

	if err := writeHeader(cw, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := writeCollections(cw, f); err != nil {
		_ = out.Close()
		return err
	}
	if opt.Importer != nil {
		if err := writeImages(cw, f, opt.Importer); err != nil {
			_ = out.Close()
			return err
		}
		if err := writeFonts(cw, f, opt.Importer); err != nil {
			_ = out.Close()
			return err
		}
	}
	if err := writeScripts(cw, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := writeSources(cw, f); err != nil {
		_ = out.Close()
		return err
	}

	if err := cw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("serializer: close container: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("serializer: finalize temp file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("serializer: promote temp file: %w", err)
	}
	log.Info("serialized artifact", zap.String("output", outputPath), zap.Int("collections", len(f.Collections)))
	return nil
}

func writeHeader(cw *container.Writer, f *edje.File) error {
	h := FileHeader{
		CompilerTag:     f.CompilerTag,
		Version:         f.Version,
		AppendFontset:   f.AppendFontset,
		Images:          f.Images,
		Sets:            f.Sets,
		Fonts:           f.Fonts,
		Styles:          f.Styles,
		ColorClasses:    f.ColorClasses,
		Externals:       f.Externals,
		Spectra:         f.Spectra,
		DataItems:       f.DataItems,
		CollectionCount: len(f.Collections),
		Aliases:         f.Aliases,
	}
	if err := cw.PutValue(container.KeyFileHeader, h); err != nil {
		return fmt.Errorf("serializer: write header: %w", err)
	}
	return nil
}

func writeCollections(cw *container.Writer, f *edje.File) error {
	for _, c := range f.Collections {
		key := fmt.Sprintf("collections/%d", c.ID)
		if err := cw.PutValue(key, c); err != nil {
			return fmt.Errorf("serializer: write collection %q: %w", c.Name, err)
		}
	}
	return nil
}

// imageWindow is one image-set entry's declared [min,max] size window,
// indexed by the plain image it wraps so writeImages can emit a pre-scaled
// variant alongside the base entry.
type imageWindow struct {
	setID, entryIndex int
	setName           string
	maxW, maxH        int
}

// collectImageSetWindows indexes every set entry's window by the plain
// image id it points at, so writeImages can tell which base entries need a
// pre-scaled variant without walking f.Sets once per image.
func collectImageSetWindows(f *edje.File) map[edje.ImageID][]imageWindow {
	windows := make(map[edje.ImageID][]imageWindow)
	for _, set := range f.Sets {
		for i, e := range set.Entries {
			if e.MaxW <= 0 || e.MaxH <= 0 {
				continue
			}
			windows[e.EntryID] = append(windows[e.EntryID], imageWindow{
				setID: set.ID, entryIndex: i, setName: set.Name, maxW: e.MaxW, maxH: e.MaxH,
			})
		}
	}
	return windows
}

func writeImages(cw *container.Writer, f *edje.File, im *imports.Importer) error {
	windows := collectImageSetWindows(f)
	for _, entry := range f.Images {
		resolved, err := im.ResolveImage(entry)
		if err != nil {
			return fmt.Errorf("serializer: resolve image %q: %w", entry.Path, err)
		}
		key := fmt.Sprintf("images/%d", entry.ID)
		if err := cw.Put(key, resolved.Data); err != nil {
			return fmt.Errorf("serializer: write image %q: %w", entry.Path, err)
		}
		// A size-adaptive set entry whose window is smaller than the base
		// entry's resolved dimensions gets its own pre-scaled variant, so a
		// runtime picking this window does not scale the full-size original
		// itself (spec.md §3 "Image set").
		for _, w := range windows[edje.ImageID(entry.ID)] {
			if entry.Source == edje.ImageExternalReference {
				continue // externally managed bytes are never decoded, so never resized
			}
			if w.maxW >= resolved.Width && w.maxH >= resolved.Height {
				continue
			}
			scaled, err := imports.ResizeForWindow(resolved.Data, w.maxW, w.maxH)
			if err != nil {
				return fmt.Errorf("serializer: resize image %q for set %q: %w", entry.Path, w.setName, err)
			}
			variantKey := fmt.Sprintf("images/%d/sets/%d/%d", entry.ID, w.setID, w.entryIndex)
			if err := cw.Put(variantKey, scaled); err != nil {
				return fmt.Errorf("serializer: write image variant %q: %w", variantKey, err)
			}
		}
	}
	return nil
}

func writeFonts(cw *container.Writer, f *edje.File, im *imports.Importer) error {
	for _, entry := range f.Fonts {
		data, err := im.ResolveFont(entry)
		if err != nil {
			return fmt.Errorf("serializer: resolve font %q: %w", entry.Path, err)
		}
		// entry.Alias is whatever the author wrote in `font:`; it's free text
		// and may contain spaces or slashes, neither of which belongs in a
		// zip entry name, so the stored key is a slug rather than the alias
		// itself. Nothing else recomputes this key: edjedecomp's extract
		// walks fonts/ by prefix rather than re-deriving a single name.
		key := fmt.Sprintf("fonts/%s", slug.Make(entry.Alias))
		if err := cw.Put(key, data); err != nil {
			return fmt.Errorf("serializer: write font %q: %w", entry.Alias, err)
		}
	}
	return nil
}

func writeScripts(cw *container.Writer, f *edje.File) error {
	for _, c := range f.Collections {
		if c.Script != nil {
			key := fmt.Sprintf("scripts/%d", c.ID)
			if err := cw.Put(key, []byte(c.Script.Text)); err != nil {
				return fmt.Errorf("serializer: write script for %q: %w", c.Name, err)
			}
		}
		if c.LuaScript != nil {
			key := fmt.Sprintf("lua_scripts/%d", c.ID)
			if err := cw.Put(key, []byte(c.LuaScript.Text)); err != nil {
				return fmt.Errorf("serializer: write lua script for %q: %w", c.Name, err)
			}
		}
	}
	return nil
}

func writeSources(cw *container.Writer, f *edje.File) error {
	if err := cw.PutValue(container.KeySources, source.Regenerate(f)); err != nil {
		return fmt.Errorf("serializer: write sources blob: %w", err)
	}
	return nil
}

// EncodeSources Ion-encodes the regenerated canonical source the same way
// writeSources does, for a caller (editapi) that repacks a single blob
// into an existing artifact rather than writing a whole new one.
func EncodeSources(f *edje.File) ([]byte, error) {
	return container.MarshalValue(source.Regenerate(f))
}
