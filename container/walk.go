package container

import (
	"archive/zip"

	"edjecc/archive"
)

// WalkPrefix visits every entry under prefix in the container at path
// (images/, fonts/, scripts/, lua_scripts/) without indexing the whole
// archive first, for a decompiler subcommand that only wants to extract
// one resource kind.
func WalkPrefix(path, prefix string, fn func(key string, file *zip.File) error) error {
	return archive.Walk(path, prefix, func(_ string, file *zip.File) error {
		return fn(file.Name, file)
	})
}
