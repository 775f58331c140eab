package container

import (
	"fmt"
	"os"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
)

// RepackWithReplacements rewrites the container at src into dst, copying
// every entry byte-for-byte except the keys present in replacements, which
// are written fresh from the given bytes (a key with no prior entry is
// simply appended). This is editapi's path for an in-place edit: only the
// touched collections/images pay an encode cost, everything else is a raw
// copy, following convert/epub/generate.go's copyZipWithoutDataDescriptors
// shape (open with hidez8891/zip, CopyFile unchanged entries, write changed
// ones fresh).
func RepackWithReplacements(src, dst string, replacements map[string][]byte, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	r, err := fixzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("container: open %q for repack: %w", src, err)
	}
	defer r.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("container: create %q: %w", dst, err)
	}
	defer out.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	written := make(map[string]bool, len(replacements))
	for _, file := range r.File {
		if data, ok := replacements[file.Name]; ok {
			if err := writeReplacement(w, file.Name, data); err != nil {
				return err
			}
			written[file.Name] = true
			log.Debug("repacked replaced entry", zap.String("key", file.Name), zap.Int("bytes", len(data)))
			continue
		}
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("container: copy entry %q: %w", file.Name, err)
		}
	}

	for key, data := range replacements {
		if written[key] {
			continue
		}
		if err := writeReplacement(w, key, data); err != nil {
			return err
		}
		log.Debug("repacked new entry", zap.String("key", key), zap.Int("bytes", len(data)))
	}

	return nil
}

func writeReplacement(w *fixzip.Writer, name string, data []byte) error {
	fw, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("container: create replacement entry %q: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("container: write replacement entry %q: %w", name, err)
	}
	return nil
}
