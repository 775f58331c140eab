package edje

import "fmt"

// AddImage interns an image by path, returning the existing entry's id if
// the path was already registered (spec.md §3 Image table: "de-duplicated
// by path"), or appending a new dense-id entry otherwise.
func (f *File) AddImage(path string, source ImageSourceKind, quality int) *ImageEntry {
	if e, ok := f.imagesByPath[path]; ok {
		return e
	}
	e := &ImageEntry{Path: path, ID: len(f.Images), Source: source, Quality: quality}
	f.Images = append(f.Images, e)
	f.imagesByPath[path] = e
	return e
}

// ImageByPath looks up a previously interned image by its source path.
func (f *File) ImageByPath(path string) (*ImageEntry, bool) {
	e, ok := f.imagesByPath[path]
	return e, ok
}

// AddImageSet interns an image set by name; a second declaration with the
// same name replaces the first (collection-style replace semantics do not
// apply here, sets are file-global and simply overwritten). ID is dense and
// stable across a redeclaration, so a reference queued against the first
// declaration still resolves correctly if a later one replaces it.
func (f *File) AddImageSet(name string) *ImageSet {
	if existing, exists := f.setsByName[name]; exists {
		s := &ImageSet{Name: name, ID: existing.ID}
		for i, e := range f.Sets {
			if e.Name == name {
				f.Sets[i] = s
				break
			}
		}
		f.setsByName[name] = s
		return s
	}
	s := &ImageSet{Name: name, ID: len(f.Sets)}
	f.Sets = append(f.Sets, s)
	f.setsByName[name] = s
	return s
}

// ImageSetByName looks up a previously interned image set by name. Image
// references resolve against this table when ImageByPath misses (see
// resolve.go's scopeImage case).
func (f *File) ImageSetByName(name string) (*ImageSet, bool) {
	s, ok := f.setsByName[name]
	return s, ok
}

// AddFont interns a font by alias, returning an error if the alias is
// already registered to a different path (spec.md §3 Font table:
// "de-duplicated by alias").
func (f *File) AddFont(path, alias string) (*FontEntry, error) {
	if existing, ok := f.fontsByAlias[alias]; ok {
		if existing.Path != path {
			return nil, fmt.Errorf("font alias %q already bound to %q", alias, existing.Path)
		}
		return existing, nil
	}
	e := &FontEntry{Path: path, Alias: alias}
	f.Fonts = append(f.Fonts, e)
	f.fontsByAlias[alias] = e
	return e, nil
}

// AddStyle interns a named text style. A duplicate name is rejected.
func (f *File) AddStyle(name string) (*Style, error) {
	if _, exists := f.stylesByName[name]; exists {
		return nil, fmt.Errorf("duplicate style name %q", name)
	}
	s := &Style{Name: name}
	f.Styles = append(f.Styles, s)
	f.stylesByName[name] = s
	return s, nil
}

// AddColorClass interns a named color class. A duplicate name is rejected.
func (f *File) AddColorClass(name string) (*ColorClass, error) {
	if _, exists := f.colorClassByName[name]; exists {
		return nil, fmt.Errorf("duplicate color class name %q", name)
	}
	c := &ColorClass{Name: name, Main: defaultColor, Outline: defaultOutlineColor, Shadow: defaultShadowColor}
	f.ColorClasses = append(f.ColorClasses, c)
	f.colorClassByName[name] = c
	return c, nil
}

// ColorClassByName resolves a color class name to its entry.
func (f *File) ColorClassByName(name string) (*ColorClass, bool) {
	c, ok := f.colorClassByName[name]
	return c, ok
}

// AddExternal registers an external part type name, idempotently: a
// repeated registration of an already-known name is a no-op rather than an
// error, following the original source's registry order-preservation
// behavior (see SPEC_FULL.md §12).
func (f *File) AddExternal(name string) *External {
	if e, ok := f.externalsByName[name]; ok {
		return e
	}
	e := &External{Name: name}
	f.Externals = append(f.Externals, e)
	f.externalsByName[name] = e
	return e
}

// ExternalByName looks up a previously registered external type name.
func (f *File) ExternalByName(name string) (*External, bool) {
	e, ok := f.externalsByName[name]
	return e, ok
}

// AddSpectrum interns a named gradient spectrum. A duplicate name is
// rejected.
func (f *File) AddSpectrum(name string) (*Spectrum, error) {
	if _, exists := f.spectraByName[name]; exists {
		return nil, fmt.Errorf("duplicate spectrum name %q", name)
	}
	s := &Spectrum{Name: name}
	f.Spectra = append(f.Spectra, s)
	f.spectraByName[name] = s
	return s, nil
}

// AddDataItem appends a file-level key/value pair. Duplicate keys are
// permitted; the last one wins at lookup time via DataItemByKey.
func (f *File) AddDataItem(key, value string) {
	f.DataItems = append(f.DataItems, &DataItem{Key: key, Value: value})
}

// AddDataItemFile appends a file-level key whose value is loaded from path
// by the resource importer rather than given inline (spec.md §4.5
// "data.file:").
func (f *File) AddDataItemFile(key, path string) {
	f.DataItems = append(f.DataItems, &DataItem{Key: key, SourceFile: path})
}

// DataItemByKey returns the most recently added value for key.
func (f *File) DataItemByKey(key string) (string, bool) {
	for i := len(f.DataItems) - 1; i >= 0; i-- {
		if f.DataItems[i].Key == key {
			return f.DataItems[i].Value, true
		}
	}
	return "", false
}
