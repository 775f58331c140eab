// Package container implements the on-disk artifact a compiled theme is
// packaged into: a key-addressed blob store where every entry (the file
// header, each collection's entity graph, every image, font, and script)
// is looked up by a path-like string key, not a numeric (type, id) pair.
//
// The container is a standard zip archive (archive/zip to build one from
// scratch, github.com/hidez8891/zip to rewrite one entry in place without
// touching the rest — see editor.go) rather than a bespoke fixed-header
// framing: Edje's container has no fixed external numeric-symbol contract
// to match (unlike KFX's CONT/ENTY, which must match a specific reader),
// and a zip directory already gives dense key lookup and cheap partial
// rewrite for free.
package container

import (
	"archive/zip"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Reserved top-level keys written by serializer.Serialize.
const (
	KeyFileHeader = "edje_file"
	KeySources    = "edje_sources"
)

// Writer builds a fresh container from scratch. Entries must be written in
// final form; a from-scratch build never needs to revisit an entry once
// written (unlike editapi's incremental updates, which go through
// RepackWithReplacements).
type Writer struct {
	log *zap.Logger
	zw  *zip.Writer
	put map[string]bool
}

// NewWriter wraps w in a zip writer that logs each entry it stages.
func NewWriter(w io.Writer, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{log: log, zw: zip.NewWriter(w), put: make(map[string]bool)}
}

// Put stages data under key, stored (not deflated): every blob we write
// is already either compact Ion binary or a pre-recompressed image, so
// spending CPU deflating it again buys little.
func (w *Writer) Put(key string, data []byte) error {
	if w.put[key] {
		return fmt.Errorf("container: duplicate key %q", key)
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{Name: key, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("container: create entry %q: %w", key, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("container: write entry %q: %w", key, err)
	}
	w.put[key] = true
	w.log.Debug("wrote container entry", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Close finalizes the archive's central directory.
func (w *Writer) Close() error {
	return w.zw.Close()
}
