package edje

import (
	"fmt"

	"edjecc/common"
)

// lookupScope discriminates what table a queued symbolic reference resolves
// against (spec.md §4.3).
type lookupScope uint8

const (
	scopePart lookupScope = iota
	scopePartSlave
	scopeProgram
	scopeImage
)

// lookupRecord is one deferred reference: a symbolic name plus the setter
// that commits the resolved id into the model once found. This mirrors the
// (path, setter) indirection fb2/index.go uses to point an index entry back
// at the exact struct field a later pass must mutate, except here the
// setter closes over the field directly instead of walking a Path slice.
type lookupRecord struct {
	scope lookupScope
	name  string
	line  int
	set   func(id int32)
	// setImage is used instead of set for scopeImage records, since an
	// image reference resolves to a (id, isSet) pair rather than a bare id.
	setImage func(id int32, isSet bool)
}

// externalCheck is a deferred validation that an EXTERNAL part's source
// names a registered external type. It can't run inline when `source:` is
// read, since `type:` and `source:` may appear in either order within the
// same part block; by the time the collection closes, both are settled.
type externalCheck struct {
	part *Part
	name string
	line int
}

// Resolver accumulates lookup records raised while parsing a single
// collection and replays them once the collection closes (spec.md §4.3).
// A fresh Resolver is created per collection; nothing here is shared
// across collections or across files.
type Resolver struct {
	collection     *Collection
	file           *File
	pending        []lookupRecord
	externalChecks []externalCheck
}

// NewResolver creates a resolver bound to one collection's part/program
// namespaces, plus the file's image and external tables.
func NewResolver(c *Collection, f *File) *Resolver {
	return &Resolver{collection: c, file: f}
}

// QueuePart enqueues a by-name part reference. set receives the resolved
// PartID (as int32) or UnsetPart's underlying value if name is empty.
func (r *Resolver) QueuePart(name string, line int, set func(id PartID)) {
	if name == "" {
		set(UnsetPart)
		return
	}
	r.pending = append(r.pending, lookupRecord{
		scope: scopePart,
		name:  name,
		line:  line,
		set:   func(id int32) { set(PartID(id)) },
	})
}

// QueuePartSlave enqueues a reference that must resolve to whatever a
// sibling QueuePart call (matching the same name) eventually resolves to.
// This is how `inherit` re-queues the parent's unresolved references for
// the child independently (spec.md §9 "`inherit` semantics").
func (r *Resolver) QueuePartSlave(name string, line int, set func(id PartID)) {
	r.QueuePart(name, line, set)
}

// QueueProgram enqueues a by-name program reference.
func (r *Resolver) QueueProgram(name string, line int, set func(id ProgramID)) {
	if name == "" {
		set(UnsetProgram)
		return
	}
	r.pending = append(r.pending, lookupRecord{
		scope: scopeProgram,
		name:  name,
		line:  line,
		set:   func(id int32) { set(ProgramID(id)) },
	})
}

// QueueImage enqueues a by-name reference against the file-global image
// table, which holds both plain entries and image sets (spec.md §4.3
// "Image lookup (file-global): resolves to (image_id, is_set_flag)"). Which
// of the two a name resolves to is not known until Resolve runs, so isSet is
// decided there rather than baked in at queue time.
func (r *Resolver) QueueImage(name string, line int, set func(id ImageID, isSet bool)) {
	if name == "" {
		set(UnsetImage, false)
		return
	}
	r.pending = append(r.pending, lookupRecord{
		scope:    scopeImage,
		name:     name,
		line:     line,
		setImage: func(id int32, isSet bool) { set(ImageID(id), isSet) },
	})
}

// QueueExternalSource registers a deferred check, settled alongside every
// other lookup when the collection closes, that an EXTERNAL part's source
// names a type registered through `externals.external` (spec.md §6 /
// SPEC_FULL.md §12 "externals registry"). Non-EXTERNAL parts are exempt:
// `source`/`source2..6` mean different things for other part types and are
// never checked against this table.
func (r *Resolver) QueueExternalSource(part *Part, name string, line int) {
	if name == "" {
		return
	}
	r.externalChecks = append(r.externalChecks, externalCheck{part: part, name: name, line: line})
}

// Resolve replays every queued lookup against the collection's current
// part/program tables and the file's image table. The first unresolved
// name is returned as a Reference error (spec.md §7).
func (r *Resolver) Resolve() error {
	for _, rec := range r.pending {
		switch rec.scope {
		case scopePart, scopePartSlave:
			id, ok := r.collection.PartByName(rec.name)
			if !ok {
				return errUnresolvedReference("part", rec.name, rec.line)
			}
			rec.set(int32(id))
		case scopeProgram:
			id, ok := r.collection.ProgramByName(rec.name)
			if !ok {
				return errUnresolvedReference("program", rec.name, rec.line)
			}
			rec.set(int32(id))
		case scopeImage:
			// Plain entries are tried before sets: a name declared with a
			// bare `image:` statement is the common case, and nothing in
			// the grammar lets one name both a plain image and a set, so
			// this order only matters as a tie-break that never fires in
			// practice.
			if entry, ok := r.file.ImageByPath(rec.name); ok {
				rec.setImage(int32(entry.ID), false)
				break
			}
			if set, ok := r.file.ImageSetByName(rec.name); ok {
				rec.setImage(int32(set.ID), true)
				break
			}
			return errUnresolvedReference("image", rec.name, rec.line)
		}
	}
	r.pending = nil

	for _, chk := range r.externalChecks {
		if chk.part.Type != common.PartExternal {
			continue
		}
		if _, ok := r.file.ExternalByName(chk.name); !ok {
			return errUnresolvedReference("external type", chk.name, chk.line)
		}
	}
	r.externalChecks = nil
	return nil
}

func errUnresolvedReference(kind, name string, line int) error {
	return fmt.Errorf("line %d: unresolved %s reference %q", line, kind, name)
}
