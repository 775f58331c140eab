package imports

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"edjecc/edje"
)

// ResolveDataFiles slurps every file-level data item that named a source
// file (data.file:) into its Value, validating UTF-8 and rejecting any
// embedded NUL byte as a hard error (spec.md §4.5).
func (im *Importer) ResolveDataFiles(f *edje.File) error {
	for _, item := range f.DataItems {
		if item.SourceFile == "" {
			continue
		}
		data, err := os.ReadFile(item.SourceFile)
		if err != nil {
			return fmt.Errorf("data item %q: read %q: %w", item.Key, item.SourceFile, err)
		}
		if bytes.IndexByte(data, 0) >= 0 {
			return fmt.Errorf("data item %q: file %q contains a NUL byte", item.Key, item.SourceFile)
		}
		if !utf8.Valid(data) {
			return fmt.Errorf("data item %q: file %q is not valid UTF-8", item.Key, item.SourceFile)
		}
		item.Value = string(data)
	}
	return nil
}
