package edje

import (
	"fmt"

	"edjecc/common"
)

// Collection (Group) is the unit of compilation output: a self-contained
// themed-object definition. It exclusively owns its parts and programs.
type Collection struct {
	Name          string
	ID            int
	MinW, MinH    int
	MaxW, MaxH    int
	Script        *Script // Embryo
	LuaScript     *Script
	Parts         []*Part
	partsByName   map[string]int
	Programs      []*Program
	programsByName map[string]int
	DataItems     []*DataItem
	// PartAliases maps an alternate part name to an existing part id.
	PartAliases map[string]int
}

func newCollection(name string, id int) *Collection {
	return &Collection{
		Name:           name,
		ID:             id,
		partsByName:    make(map[string]int),
		programsByName: make(map[string]int),
		PartAliases:    make(map[string]int),
	}
}

// AddCollection either creates a new group or, if a group with this name
// already exists, replaces it: the previous group's parts, programs, and
// script are removed, its id is freed, remaining ids are compacted so the
// directory stays dense, and any alias that pointed at the displaced id is
// rewritten to the surviving id (spec.md §3 Collection Lifecycle).
func (f *File) AddCollection(name string) *Collection {
	var displaced []string
	if oldID, exists := f.collectionsByName[name]; exists {
		for alias, target := range f.Aliases {
			if target == oldID {
				displaced = append(displaced, alias)
			}
		}
		f.removeCollectionByID(oldID)
	}
	id := len(f.Collections)
	c := newCollection(name, id)
	f.Collections = append(f.Collections, c)
	f.collectionsByName[name] = id
	for _, alias := range displaced {
		f.Aliases[alias] = id
	}
	return c
}

// removeCollectionByID deletes the collection at id and compacts every
// subsequent collection's id downward by one, fixing up collectionsByName
// and Aliases to match.
func (f *File) removeCollectionByID(id int) {
	removedName := f.Collections[id].Name
	f.Collections = append(f.Collections[:id], f.Collections[id+1:]...)
	delete(f.collectionsByName, removedName)

	for i := id; i < len(f.Collections); i++ {
		f.Collections[i].ID = i
		f.collectionsByName[f.Collections[i].Name] = i
	}
	for alias, target := range f.Aliases {
		switch {
		case target == id:
			// The alias pointed at the displaced collection - drop it
			// here; AddCollection re-points it at the replacement group.
			delete(f.Aliases, alias)
		case target > id:
			f.Aliases[alias] = target - 1
		}
	}
}

// CollectionByName resolves a name or alias to its id.
func (f *File) CollectionByName(name string) (int, bool) {
	if id, ok := f.collectionsByName[name]; ok {
		return id, true
	}
	if id, ok := f.Aliases[name]; ok {
		return id, true
	}
	return 0, false
}

// AddAlias registers alias as another name for the collection id.
func (f *File) AddAlias(alias string, id int) error {
	if id < 0 || id >= len(f.Collections) {
		return fmt.Errorf("alias %q: collection id %d out of range", alias, id)
	}
	f.Aliases[alias] = id
	return nil
}

// AddPart appends a new part, owned by this collection, with a dense id.
// Returns a Uniqueness error if the name collides with an existing part.
func (c *Collection) AddPart(name string, typ common.PartType) (*Part, error) {
	if _, exists := c.partsByName[name]; exists {
		return nil, fmt.Errorf("duplicate part name %q in group %q", name, c.Name)
	}
	p := &Part{
		Name: name,
		ID:   len(c.Parts),
		Type: typ,
		ClipToID: UnsetPart,
	}
	c.Parts = append(c.Parts, p)
	c.partsByName[name] = p.ID
	return p, nil
}

// SetPartName assigns or changes a part's name after it has already been
// added with a placeholder name (the grammar opens a `part { ... }` block
// before the `name:` property inside it is read). Returns a Uniqueness
// error if another part already holds name.
func (c *Collection) SetPartName(p *Part, name string) error {
	if _, exists := c.partsByName[name]; exists {
		return fmt.Errorf("duplicate part name %q in group %q", name, c.Name)
	}
	delete(c.partsByName, p.Name)
	p.Name = name
	c.partsByName[name] = p.ID
	return nil
}

// PartByName resolves a part name or alias within the collection to its id.
func (c *Collection) PartByName(name string) (PartID, bool) {
	if id, ok := c.partsByName[name]; ok {
		return PartID(id), true
	}
	if id, ok := c.PartAliases[name]; ok {
		return PartID(id), true
	}
	return UnsetPart, false
}

// AddProgram appends a new program, owned by this collection, with a
// dense id. Returns a Uniqueness error on a duplicate name.
func (c *Collection) AddProgram(name string) (*Program, error) {
	if _, exists := c.programsByName[name]; exists {
		return nil, fmt.Errorf("duplicate program name %q in group %q", name, c.Name)
	}
	p := &Program{
		Name:     name,
		ID:       len(c.Programs),
		FilterPartID: UnsetPart,
	}
	c.Programs = append(c.Programs, p)
	c.programsByName[name] = p.ID
	return p, nil
}

// SetProgramName assigns or changes a program's name, mirroring
// SetPartName's placeholder-rename pattern.
func (c *Collection) SetProgramName(prog *Program, name string) error {
	if _, exists := c.programsByName[name]; exists {
		return fmt.Errorf("duplicate program name %q in group %q", name, c.Name)
	}
	delete(c.programsByName, prog.Name)
	prog.Name = name
	c.programsByName[name] = prog.ID
	return nil
}

// ProgramByName resolves a program name within the collection to its id.
func (c *Collection) ProgramByName(name string) (ProgramID, bool) {
	id, ok := c.programsByName[name]
	return ProgramID(id), ok
}

// RemovePart deletes the part at id, compacts ids, and rewrites every
// dependent reference elsewhere in the collection through Fixup (see
// fixup.go). Returns an error if id is out of range.
func (c *Collection) RemovePart(id PartID) error {
	if int(id) < 0 || int(id) >= len(c.Parts) {
		return fmt.Errorf("part id %d out of range", id)
	}
	removedName := c.Parts[id].Name
	c.Parts = append(c.Parts[:id], c.Parts[id+1:]...)
	delete(c.partsByName, removedName)

	mapping := make(map[PartID]PartID, len(c.Parts)+1)
	mapping[id] = UnsetPart
	for i := int(id); i < len(c.Parts); i++ {
		old := PartID(i + 1)
		c.Parts[i].ID = i
		c.partsByName[c.Parts[i].Name] = i
		mapping[old] = PartID(i)
	}
	for alias, target := range c.PartAliases {
		if PartID(target) == id {
			delete(c.PartAliases, alias)
		} else if PartID(target) > id {
			c.PartAliases[alias] = target - 1
		}
	}
	FixupPartReferences(c, mapping)
	return nil
}

// RemoveProgram deletes the program at id, compacts ids, and rewrites
// every program target/after list that referenced a moved or deleted
// program id.
func (c *Collection) RemoveProgram(id ProgramID) error {
	if int(id) < 0 || int(id) >= len(c.Programs) {
		return fmt.Errorf("program id %d out of range", id)
	}
	removedName := c.Programs[id].Name
	c.Programs = append(c.Programs[:id], c.Programs[id+1:]...)
	delete(c.programsByName, removedName)

	mapping := make(map[ProgramID]ProgramID, len(c.Programs)+1)
	mapping[id] = UnsetProgram
	for i := int(id); i < len(c.Programs); i++ {
		old := ProgramID(i + 1)
		c.Programs[i].ID = i
		c.programsByName[c.Programs[i].Name] = i
		mapping[old] = ProgramID(i)
	}
	FixupProgramReferences(c, mapping)
	return nil
}
