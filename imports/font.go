package imports

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"edjecc/edje"
)

// ResolveFont loads the font file named by entry.Path verbatim: fonts are
// opaque binary blobs to this compiler, copied byte-for-byte into
// fonts/<alias>, following fb2/images.go's "no image-processing library
// applies to opaque bytes" binary-slurp style.
func (im *Importer) ResolveFont(entry *edje.FontEntry) ([]byte, error) {
	path, ok := findOnPath(im.FontSearchPath, entry.Path)
	if !ok {
		return nil, fmt.Errorf("font %q: not found on search path", entry.Path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font %q: read: %w", entry.Path, err)
	}
	if kind, err := filetype.Match(data); err != nil || kind == filetype.Unknown || !isFontKind(kind.Extension) {
		im.Log.Warn("font file has unrecognized signature, loading anyway",
			zap.String("path", entry.Path), zap.String("alias", entry.Alias))
	}
	return data, nil
}

func isFontKind(ext string) bool {
	switch ext {
	case "ttf", "otf", "woff", "woff2":
		return true
	}
	return false
}
