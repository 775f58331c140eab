// Package edje implements the intermediate object model for a compiled
// theme: the File and everything it owns (images, fonts, styles, color
// classes, externals, spectra, data items, and the tree of collections,
// parts, state descriptions, and programs), together with the invariants,
// ownership rules, deferred reference resolution, and id-fixup passes
// described for the Edje theme compiler.
//
// Every cross-entity reference is either a stable integer id (once
// resolved) or an interned name (before resolution); see resolve.go.
package edje

import "fmt"

// Unset is the sentinel value for an id-bearing field that has not been
// resolved, or was explicitly left unset. Distinct typed handles are used
// instead of a bare int so the type system catches accidental swaps
// between part/program/image ids (see DESIGN NOTES in spec.md §9).
const Unset = -1

// PartID references a Part within the Collection that owns it.
type PartID int32

// IsSet reports whether the id has been resolved to a real part.
func (p PartID) IsSet() bool { return p != Unset }

// ProgramID references a Program within the Collection that owns it.
type ProgramID int32

func (p ProgramID) IsSet() bool { return p != Unset }

// ImageID references an ImageEntry in the file-global image table.
type ImageID int32

func (i ImageID) IsSet() bool { return i != Unset }

// UnsetPart, UnsetProgram, UnsetImage are the canonical unset handles.
const (
	UnsetPart    PartID    = Unset
	UnsetProgram ProgramID = Unset
	UnsetImage   ImageID   = Unset
)

// ImageSourceKind classifies how an ImageEntry's bytes reached the file.
type ImageSourceKind uint8

const (
	ImageInlineLossless ImageSourceKind = iota
	ImageInlineLossy
	ImageExternalReference
)

// RGBA is a non-premultiplied 8-bit-per-channel color, as used for part
// colors and color classes.
type RGBA struct {
	R, G, B, A uint8
}

// File is the top-level artifact container: it exclusively owns every
// table and every collection (spec.md §3 Ownership summary).
type File struct {
	CompilerTag      string
	Version          int
	AppendFontset    string
	Images           []*ImageEntry
	imagesByPath     map[string]*ImageEntry
	Sets             []*ImageSet
	setsByName       map[string]*ImageSet
	Fonts            []*FontEntry
	fontsByAlias     map[string]*FontEntry
	Styles           []*Style
	stylesByName     map[string]*Style
	ColorClasses     []*ColorClass
	colorClassByName map[string]*ColorClass
	Externals        []*External
	externalsByName  map[string]*External
	Spectra          []*Spectrum
	spectraByName    map[string]*Spectrum
	DataItems        []*DataItem

	// Collections is dense over [0, len(Collections)); index == id.
	Collections []*Collection
	// collectionsByName maps a group's current name to its id.
	collectionsByName map[string]int
	// Aliases maps alternate collection names to an existing id
	// (many collection names -> one id).
	Aliases map[string]int
}

// NewFile creates an empty File ready to receive parsed entities.
func NewFile() *File {
	return &File{
		imagesByPath:      make(map[string]*ImageEntry),
		setsByName:        make(map[string]*ImageSet),
		fontsByAlias:      make(map[string]*FontEntry),
		stylesByName:      make(map[string]*Style),
		colorClassByName:  make(map[string]*ColorClass),
		externalsByName:   make(map[string]*External),
		spectraByName:     make(map[string]*Spectrum),
		collectionsByName: make(map[string]int),
		Aliases:           make(map[string]int),
	}
}

// ImageEntry is a referenced bitmap. Entries are de-duplicated by path and
// ids are dense, starting at 0, stable for the lifetime of the model
// unless an explicit renumbering pass runs.
type ImageEntry struct {
	Path    string
	ID      int
	Source  ImageSourceKind
	Quality int
}

// ImageSet is a size-adaptive image: an ordered list of (entry, window)
// pairs, where for every entry min <= max componentwise.
type ImageSet struct {
	Name    string
	ID      int
	Entries []ImageSetEntry
}

type ImageSetEntry struct {
	EntryID          ImageID
	MinW, MinH       int
	MaxW, MaxH       int
}

// FontEntry is a file path plus an interned alias, de-duplicated by alias.
type FontEntry struct {
	Path  string
	Alias string
}

// reservedBaseTag is the name of a style's mandatory "base" tag; the base
// tag's value is kept in Style.Base, not in Style.Tags.
const reservedBaseTag = "base"

// Style is a named text style with a mandatory base tag and zero or more
// named tags. At most one base tag may be set per style.
type Style struct {
	Name    string
	Base    string
	haveBase bool
	Tags    map[string]string
}

// SetBase assigns the mandatory base tag. Returns an error (Uniqueness)
// if a base has already been set for this style.
func (s *Style) SetBase(value string) error {
	if s.haveBase {
		return fmt.Errorf("style %q: duplicate base tag", s.Name)
	}
	s.Base = value
	s.haveBase = true
	return nil
}

// AddTag adds a named, non-base tag.
func (s *Style) AddTag(name, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[name] = value
}

// ColorClass maps a name to three independently-validated RGBA triples.
type ColorClass struct {
	Name    string
	Main    RGBA
	Outline RGBA
	Shadow  RGBA
}

// External is an interned registration of an external part type name.
type External struct {
	Name string
}

// SpectrumStop is one color/distance pair in a gradient spectrum.
type SpectrumStop struct {
	Color    RGBA
	Distance float64
}

// Spectrum is a named list of color stops used by gradient-type parts.
type Spectrum struct {
	Name  string
	Stops []SpectrumStop
}

// DataItem is a key/value pair attached to the File or to a Collection.
// File-level items may additionally be loaded from a UTF-8 text file: when
// SourceFile is non-empty, Value is unresolved until the importer slurps
// the referenced file's contents into it (see imports.Importer.ResolveDataFiles).
type DataItem struct {
	Key        string
	Value      string
	SourceFile string
}

// ScriptKind discriminates the two mutually exclusive embedded-script
// languages a Collection may carry.
type ScriptKind uint8

const (
	ScriptNone ScriptKind = iota
	ScriptEmbryo
	ScriptLua
)

// Script is a verbatim text block tied to a Collection or to an
// individual program's SCRIPT/LUA_SCRIPT action.
type Script struct {
	Kind ScriptKind
	Text string
	Line int
}
