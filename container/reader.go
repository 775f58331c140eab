package container

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
)

// Reader opens an existing container for random-access lookup by key.
type Reader struct {
	zr     *zip.Reader
	byName map[string]*zip.File
}

// NewReader indexes every entry in r by name.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("container: open: %w", err)
	}
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
	}
	return &Reader{zr: zr, byName: byName}, nil
}

// Get returns the raw bytes stored under key.
func (r *Reader) Get(key string) ([]byte, error) {
	f, ok := r.byName[key]
	if !ok {
		return nil, fmt.Errorf("container: key %q not found", key)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("container: open entry %q: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("container: read entry %q: %w", key, err)
	}
	return data, nil
}

// Has reports whether key exists.
func (r *Reader) Has(key string) bool {
	_, ok := r.byName[key]
	return ok
}

// Keys returns every entry key, sorted.
func (r *Reader) Keys() []string {
	keys := make([]string, 0, len(r.byName))
	for k := range r.byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
