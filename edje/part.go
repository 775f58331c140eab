package edje

import "edjecc/common"

// DragAxis is one axis of a part's dragable configuration. Enable follows
// the original source's three-valued convention: -1/0/1 (direction
// disabled/either/one-way). Count is undocumented upstream and round-
// tripped unchanged (spec.md §9).
type DragAxis struct {
	Enable int
	Step   int
	Count  int
}

// Dragable is a part's draggable-region configuration.
type Dragable struct {
	Confine      string
	ConfineID    PartID
	EventsFrom   string
	EventsFromID PartID
	X, Y         DragAxis
}

// Part is a layout element inside a Collection. It exclusively owns its
// state descriptions and items.
type Part struct {
	Name string
	ID   int
	Type common.PartType

	EventFlags uint32

	MouseEvents, RepeatEvents       bool
	Scale, PreciseIsInside          bool
	AlternateFontMetrics, Multiline bool

	Pointer common.PointerMode
	Entry   common.EntryMode
	Select  common.SelectMode
	Effect  common.TextEffect

	// Source..Source6: semantics depend on Type (e.g. cursor/selection
	// styling for TEXTBLOCK parts); symbolic until a resolver pass
	// decides whether a given slot names a part or something else.
	Source                                   string
	Source2, Source3, Source4, Source5, Source6 string

	ClipTo   string
	ClipToID PartID

	Dragable Dragable

	// Default is the first state added; it becomes immutable once a
	// second state exists except through explicit field mutation.
	Default *StateDescription
	States  []*StateDescription

	// Items holds BOX/TABLE child item declarations; valid only when
	// Type is PartBox or PartTable (spec.md §3 PartItem invariant).
	Items []*PartItem
}

// AddState appends a new named/valued state description. The first state
// ever added becomes Default. Returns a Uniqueness error if (name, value)
// already exists on this part, or a Semantic error for the reserved
// "custom 0.00" spelling.
func (p *Part) AddState(name string, value float64) (*StateDescription, error) {
	if name == "custom" && value == 0.0 {
		return nil, errReservedCustomState
	}
	for _, s := range p.States {
		if s.Name == name && s.Value == value {
			return nil, errDuplicateState(p.Name, name, value)
		}
	}
	s := newStateDescription(name, value)
	p.States = append(p.States, s)
	if p.Default == nil {
		p.Default = s
	}
	return s, nil
}

// AddItem appends a BOX/TABLE child item. Returns a Context error if the
// part's type is neither BOX nor TABLE.
func (p *Part) AddItem(name string) (*PartItem, error) {
	if !p.Type.IsContainer() {
		return nil, errContextNotBoxOrTable(p.Name)
	}
	item := &PartItem{Name: name, Type: common.PartGroup, AspectMode: common.AspectModeNone, ColSpan: 1, RowSpan: 1}
	p.Items = append(p.Items, item)
	return item, nil
}

// PartItem is one BOX/TABLE child (spec.md §3 Part item). Type is always
// GROUP for now (the only item kind the grammar allows).
type PartItem struct {
	Name     string
	Source   string
	Type     common.PartType

	MinW, MinH         int
	PreferW, PreferH   int
	MaxW, MaxH         int // negative means unbounded
	PadL, PadR         int
	PadT, PadB         int
	AlignX, AlignY     float64 // [-1, 1]
	WeightX, WeightY   float64 // [0, 1e5]
	AspectW, AspectH   int
	AspectMode         common.AspectMode

	// TABLE-only grid placement.
	Col, Row       int
	ColSpan, RowSpan int
}
