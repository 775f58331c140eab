package edje

import "edjecc/common"

// RelSpec is one endpoint (rel1 or rel2) of a state's relative geometry.
type RelSpec struct {
	RelX, RelY float64
	OffX, OffY int
	ToX, ToY   string // symbolic by-name references; "" means unset
	ToXID      PartID
	ToYID      PartID
}

// ImageTween is one member of a state's ordered tween-image list.
type ImageTween struct {
	Name string
	ID   ImageID
	Set  bool // true if Name resolved to an ImageSet rather than a plain entry
}

// ImageFields holds the IMAGE-part-specific fields of a state description.
type ImageFields struct {
	Normal      string
	NormalID    ImageID
	NormalIsSet bool
	Tweens      []ImageTween
	BorderL, BorderR, BorderT, BorderB int
	BorderScale bool
	Middle      common.MiddlePolicy
	ScaleHint   common.ImageScaleHint
}

// Fill holds a state's fill-rendering configuration.
type Fill struct {
	Smooth                         bool
	OriginRelX, OriginRelY         float64
	OriginAbsX, OriginAbsY         int
	SizeRelX, SizeRelY             float64
	SizeAbsX, SizeAbsY             int
	Spread                         int
	Type                           common.FillType
	Angle                          float64
}

// TextFields holds the TEXT/TEXTBLOCK-specific fields of a state.
type TextFields struct {
	Text             string
	TextClass        string
	Font             string
	Style            string
	ReplacementChar  string
	Size             int
	FitX, FitY       bool
	MinX, MinY       bool
	MaxX, MaxY       bool
	AlignX, AlignY   float64
	Source           string // first by-name text-source ref
	SourceID         PartID
	Source2          string // second by-name text-source ref
	Source2ID        PartID
	ElipsisBalance   float64
}

// MapFields holds a state's perspective/map transform block.
type MapFields struct {
	PerspectivePart   string
	PerspectivePartID PartID
	LightPart         string
	LightPartID       PartID
	RotationCenter    string
	RotationCenterID  PartID
	RotX, RotY, RotZ  float64 // degrees
	On, Smooth, Alpha bool
	BackfaceCull      bool
	PerspectiveOn     bool
	ZPlane            int
	Focal             int
}

// BoxLayout holds the BOX/TABLE layout hints carried by a state
// description for the part's own container behavior (distinct from the
// per-item geometry in PartItem).
type BoxLayout struct {
	Layout            string
	AlignX, AlignY    float64
	PaddingH, PaddingV int
	Homogeneous       common.TableHomogeneity
}

// ExternalParam is one typed parameter of an EXTERNAL part's state.
type ExternalParam struct {
	Name   string
	Type   common.ExternalParamType
	Int    int
	Bool   bool
	Double float64
	String string
	Choice string
}

// StateDescription is one named layout configuration of a part, selected
// at runtime by programs. The first state added to a part becomes its
// default.
type StateDescription struct {
	Name  string
	Value float64

	Visible bool
	AlignX, AlignY float64
	MinW, MinH     int
	MaxW, MaxH     int
	FixedW, FixedH bool
	StepX, StepY   int

	AspectMin, AspectMax float64
	AspectPref           common.AspectPreference

	Rel1, Rel2 RelSpec

	Image ImageFields
	Fill  Fill

	ColorClass string
	Color        RGBA
	OutlineColor RGBA
	ShadowColor  RGBA

	Text TextFields
	Box  BoxLayout
	Map  MapFields

	ExternalParams []ExternalParam
}

// Default state colors (spec.md §3 State description).
var (
	defaultColor        = RGBA{255, 255, 255, 255}
	defaultOutlineColor = RGBA{0, 0, 0, 255}
	defaultShadowColor  = RGBA{0, 0, 0, 128}
)

func newStateDescription(name string, value float64) *StateDescription {
	return &StateDescription{
		Name:  name,
		Value: value,
		Color:        defaultColor,
		OutlineColor: defaultOutlineColor,
		ShadowColor:  defaultShadowColor,
		Rel1:  RelSpec{ToXID: UnsetPart, ToYID: UnsetPart},
		Rel2:  RelSpec{ToXID: UnsetPart, ToYID: UnsetPart},
		Image: ImageFields{NormalID: UnsetImage},
		Text:  TextFields{SourceID: UnsetPart, Source2ID: UnsetPart},
		Map: MapFields{
			PerspectivePartID: UnsetPart,
			LightPartID:       UnsetPart,
			RotationCenterID:  UnsetPart,
		},
	}
}

// Inherit performs the deep semantic copy described by spec.md §3/§9: it
// overwrites child in place with a clone of every owned field of parent,
// keeping child's own name/value. The clone carries the parent's reference
// ids as they stand; the caller re-queues every by-name reference of child
// with the resolver independently of whatever the parent already queued
// (a later declaration of the referenced name must retarget both parent
// and child separately).
//
// inherit is only valid on a non-default state, and only after `state`
// has already assigned the target's own name/value.
func (p *Part) Inherit(child *StateDescription, parentName string, parentValue float64) error {
	if child == p.Default {
		return ErrInheritOnDefault
	}
	if child.Name == "" {
		return ErrInheritBeforeState
	}
	var parent *StateDescription
	for _, s := range p.States {
		if s.Name == parentName && s.Value == parentValue {
			parent = s
			break
		}
	}
	if parent == nil {
		return errUnresolvedInheritParent(p.Name, parentName, parentValue)
	}
	name, value := child.Name, child.Value
	*child = cloneStateDescription(parent)
	child.Name, child.Value = name, value
	return nil
}
