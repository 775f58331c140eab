// Package editapi implements in-place mutation of a compiled artifact:
// opening a container, mutating its in-memory File through the edje
// package's own add/remove/rename operations (which already run the
// fixup pass described in edje/fixup.go), and persisting only the
// touched collections back into the artifact.
//
// The open/mutate/return-updated-state shape is grounded on
// fb2/normalize.go's Normalize* methods, which mutate a *FictionBook in
// place and return the indexes a caller needs to keep working with it;
// here that returned state is simply the *edje.File itself; a Session
// wraps it and tracks which collections' ids have gone stale.
package editapi

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"edjecc/container"
	"edjecc/edje"
	"edjecc/serializer"
)

// Session is a single mutator's exclusive handle on one artifact, per
// spec.md §5's "one mutator at a time" contract: a Session is not safe
// for concurrent use from more than one goroutine.
type Session struct {
	path  string
	File  *edje.File
	dirty map[int]bool
	log   *zap.Logger
}

// Open reads the artifact at path into memory: the file header and every
// collection, reconstructed into a fresh *edje.File.
func Open(path string, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("editapi: open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("editapi: stat %q: %w", path, err)
	}

	cr, err := container.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("editapi: open container %q: %w", path, err)
	}

	var header serializer.FileHeader
	if err := cr.GetValue(container.KeyFileHeader, &header); err != nil {
		return nil, fmt.Errorf("editapi: read header: %w", err)
	}

	file := edje.NewFile()
	file.CompilerTag = header.CompilerTag
	file.Version = header.Version
	file.AppendFontset = header.AppendFontset
	file.Images = header.Images
	file.Sets = header.Sets
	file.Fonts = header.Fonts
	file.Styles = header.Styles
	file.ColorClasses = header.ColorClasses
	file.Externals = header.Externals
	file.Spectra = header.Spectra
	file.DataItems = header.DataItems
	file.Aliases = header.Aliases

	file.Collections = make([]*edje.Collection, header.CollectionCount)
	for id := 0; id < header.CollectionCount; id++ {
		key := fmt.Sprintf("collections/%d", id)
		c := &edje.Collection{}
		if err := cr.GetValue(key, c); err != nil {
			return nil, fmt.Errorf("editapi: read collection %d: %w", id, err)
		}
		file.Collections[id] = c
	}

	return &Session{path: path, File: file, dirty: make(map[int]bool), log: log}, nil
}

// Collection resolves name to its in-memory collection, marking id dirty
// on the caller's behalf since any further call obtained through this
// accessor is assumed to mutate it (spec.md §4.7: "every mutation ...
// the serializer is re-run on demand").
func (s *Session) Collection(name string) (*edje.Collection, error) {
	id, ok := s.File.CollectionByName(name)
	if !ok {
		return nil, fmt.Errorf("editapi: unknown collection %q", name)
	}
	s.dirty[id] = true
	return s.File.Collections[id], nil
}

// RemovePart deletes a part from the named collection and marks the
// collection dirty; the id-compaction and reference fixup happen inside
// edje.Collection.RemovePart.
func (s *Session) RemovePart(collection string, id edje.PartID) error {
	c, err := s.Collection(collection)
	if err != nil {
		return err
	}
	if err := c.RemovePart(id); err != nil {
		return fmt.Errorf("editapi: remove part: %w", err)
	}
	return nil
}

// RemoveProgram deletes a program from the named collection and marks the
// collection dirty.
func (s *Session) RemoveProgram(collection string, id edje.ProgramID) error {
	c, err := s.Collection(collection)
	if err != nil {
		return err
	}
	if err := c.RemoveProgram(id); err != nil {
		return fmt.Errorf("editapi: remove program: %w", err)
	}
	return nil
}

// RenamePart renames a part within the named collection.
func (s *Session) RenamePart(collection string, id edje.PartID, newName string) error {
	c, err := s.Collection(collection)
	if err != nil {
		return err
	}
	if int(id) < 0 || int(id) >= len(c.Parts) {
		return fmt.Errorf("editapi: part id %d out of range", id)
	}
	if err := c.SetPartName(c.Parts[id], newName); err != nil {
		return fmt.Errorf("editapi: rename part: %w", err)
	}
	return nil
}

// Save re-serializes only the collections touched since Open (or since
// the last Save), patching them into the artifact in place with
// container.RepackWithReplacements rather than rewriting the whole file.
func (s *Session) Save() error {
	if len(s.dirty) == 0 {
		return nil
	}

	replacements := make(map[string][]byte, len(s.dirty)+1)
	for id := range s.dirty {
		c := s.File.Collections[id]
		key := fmt.Sprintf("collections/%d", c.ID)
		data, err := container.MarshalValue(c)
		if err != nil {
			return fmt.Errorf("editapi: encode collection %q: %w", c.Name, err)
		}
		replacements[key] = data
	}

	srcData, err := serializer.EncodeSources(s.File)
	if err != nil {
		return fmt.Errorf("editapi: regenerate sources blob: %w", err)
	}
	replacements[container.KeySources] = srcData

	tmp := s.path + ".tmp"
	if err := container.RepackWithReplacements(s.path, tmp, replacements, s.log); err != nil {
		return fmt.Errorf("editapi: repack: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("editapi: promote repacked artifact: %w", err)
	}

	s.dirty = make(map[int]bool)
	return nil
}
