// Package common holds small enumerations shared across the compiler,
// the object model, and the editing API. Kept separate from edje so that
// package does not have to import compiler-only concerns and vice versa.
package common

import "fmt"

// PartType is the variant type of a Part.
type PartType uint8

const (
	PartNone PartType = iota
	PartRect
	PartText
	PartImage
	PartSwallow
	PartTextblock
	PartGradient
	PartGroup
	PartBox
	PartTable
	PartExternal
)

// partTypeNames covers every variant named in the data model (including
// GRADIENT, carried for fill.spread's non-gradient Context check) even
// though the external-interface enumeration only calls out the ones the
// grammar accepts at top level.
var partTypeNames = map[string]PartType{
	"NONE": PartNone, "RECT": PartRect, "TEXT": PartText, "IMAGE": PartImage,
	"SWALLOW": PartSwallow, "TEXTBLOCK": PartTextblock, "GRADIENT": PartGradient,
	"GROUP": PartGroup, "BOX": PartBox, "TABLE": PartTable, "EXTERNAL": PartExternal,
}

func (p PartType) String() string {
	for name, v := range partTypeNames {
		if v == p {
			return name
		}
	}
	return "NONE"
}

// ParsePartType resolves a part type spelling, returning ok=false for an
// unknown enumerant.
func ParsePartType(s string) (PartType, bool) {
	v, ok := partTypeNames[s]
	return v, ok
}

// IsContainer reports whether the part type carries child items (box/table).
func (p PartType) IsContainer() bool {
	return p == PartBox || p == PartTable
}

// TextEffect is the rendered text effect of a TEXT/TEXTBLOCK state.
type TextEffect uint8

const (
	EffectNone TextEffect = iota
	EffectPlain
	EffectOutline
	EffectSoftOutline
	EffectShadow
	EffectSoftShadow
	EffectOutlineShadow
	EffectOutlineSoftShadow
	EffectFarShadow
	EffectFarSoftShadow
	EffectGlow
)

var textEffectNames = map[string]TextEffect{
	"NONE": EffectNone, "PLAIN": EffectPlain, "OUTLINE": EffectOutline,
	"SOFT_OUTLINE": EffectSoftOutline, "SHADOW": EffectShadow,
	"SOFT_SHADOW": EffectSoftShadow, "OUTLINE_SHADOW": EffectOutlineShadow,
	"OUTLINE_SOFT_SHADOW": EffectOutlineSoftShadow, "FAR_SHADOW": EffectFarShadow,
	"FAR_SOFT_SHADOW": EffectFarSoftShadow, "GLOW": EffectGlow,
}

func ParseTextEffect(s string) (TextEffect, bool) { v, ok := textEffectNames[s]; return v, ok }

func (e TextEffect) String() string {
	for name, v := range textEffectNames {
		if v == e {
			return name
		}
	}
	return "NONE"
}

// PointerMode controls mouse-grab behavior for a part.
type PointerMode uint8

const (
	PointerAutograb PointerMode = iota
	PointerNograb
)

func ParsePointerMode(s string) (PointerMode, bool) {
	switch s {
	case "AUTOGRAB":
		return PointerAutograb, true
	case "NOGRAB":
		return PointerNograb, true
	}
	return 0, false
}

func (m PointerMode) String() string {
	if m == PointerNograb {
		return "NOGRAB"
	}
	return "AUTOGRAB"
}

// EntryMode is the editable-text mode of a TEXTBLOCK part.
type EntryMode uint8

const (
	EntryNone EntryMode = iota
	EntryPlain
	EntryEditable
	EntryPassword
)

func ParseEntryMode(s string) (EntryMode, bool) {
	switch s {
	case "NONE":
		return EntryNone, true
	case "PLAIN":
		return EntryPlain, true
	case "EDITABLE":
		return EntryEditable, true
	case "PASSWORD":
		return EntryPassword, true
	}
	return 0, false
}

func (m EntryMode) String() string {
	switch m {
	case EntryPlain:
		return "PLAIN"
	case EntryEditable:
		return "EDITABLE"
	case EntryPassword:
		return "PASSWORD"
	default:
		return "NONE"
	}
}

// SelectMode controls selection behavior of an entry.
type SelectMode uint8

const (
	SelectDefault SelectMode = iota
	SelectExplicit
)

func ParseSelectMode(s string) (SelectMode, bool) {
	switch s {
	case "DEFAULT":
		return SelectDefault, true
	case "EXPLICIT":
		return SelectExplicit, true
	}
	return 0, false
}

func (m SelectMode) String() string {
	if m == SelectExplicit {
		return "EXPLICIT"
	}
	return "DEFAULT"
}

// AspectPreference is the axis preference for aspect-ratio clamping.
type AspectPreference uint8

const (
	AspectPrefNone AspectPreference = iota
	AspectPrefVertical
	AspectPrefHorizontal
	AspectPrefBoth
)

func ParseAspectPreference(s string) (AspectPreference, bool) {
	switch s {
	case "NONE":
		return AspectPrefNone, true
	case "VERTICAL":
		return AspectPrefVertical, true
	case "HORIZONTAL":
		return AspectPrefHorizontal, true
	case "BOTH":
		return AspectPrefBoth, true
	}
	return 0, false
}

func (a AspectPreference) String() string {
	switch a {
	case AspectPrefVertical:
		return "VERTICAL"
	case AspectPrefHorizontal:
		return "HORIZONTAL"
	case AspectPrefBoth:
		return "BOTH"
	default:
		return "NONE"
	}
}

// AspectMode is the box/table item aspect mode (a distinct enum from
// AspectPreference: it adds NEITHER and has no state-level meaning).
type AspectMode uint8

const (
	AspectModeNone AspectMode = iota
	AspectModeNeither
	AspectModeHorizontal
	AspectModeVertical
	AspectModeBoth
)

func ParseAspectMode(s string) (AspectMode, bool) {
	switch s {
	case "NONE":
		return AspectModeNone, true
	case "NEITHER":
		return AspectModeNeither, true
	case "HORIZONTAL":
		return AspectModeHorizontal, true
	case "VERTICAL":
		return AspectModeVertical, true
	case "BOTH":
		return AspectModeBoth, true
	}
	return 0, false
}

func (a AspectMode) String() string {
	switch a {
	case AspectModeNeither:
		return "NEITHER"
	case AspectModeHorizontal:
		return "HORIZONTAL"
	case AspectModeVertical:
		return "VERTICAL"
	case AspectModeBoth:
		return "BOTH"
	default:
		return "NONE"
	}
}

// TableHomogeneity controls how a TABLE part distributes excess space.
type TableHomogeneity uint8

const (
	TableHomogeneityNone TableHomogeneity = iota
	TableHomogeneityTable
	TableHomogeneityItem
)

func ParseTableHomogeneity(s string) (TableHomogeneity, bool) {
	switch s {
	case "NONE":
		return TableHomogeneityNone, true
	case "TABLE":
		return TableHomogeneityTable, true
	case "ITEM":
		return TableHomogeneityItem, true
	}
	return 0, false
}

func (h TableHomogeneity) String() string {
	switch h {
	case TableHomogeneityTable:
		return "TABLE"
	case TableHomogeneityItem:
		return "ITEM"
	default:
		return "NONE"
	}
}

// FillType is an image's fill rendering mode.
type FillType uint8

const (
	FillScale FillType = iota
	FillTile
)

func ParseFillType(s string) (FillType, bool) {
	switch s {
	case "SCALE":
		return FillScale, true
	case "TILE":
		return FillTile, true
	}
	return 0, false
}

func (t FillType) String() string {
	if t == FillTile {
		return "TILE"
	}
	return "SCALE"
}

// ImageScaleHint hints the runtime about scaled-image caching.
type ImageScaleHint uint8

const (
	ScaleHintNone ImageScaleHint = iota
	ScaleHintDynamic
	ScaleHintStatic
)

func ParseImageScaleHint(s string) (ImageScaleHint, bool) {
	switch s {
	case "NONE", "0":
		return ScaleHintNone, true
	case "DYNAMIC":
		return ScaleHintDynamic, true
	case "STATIC":
		return ScaleHintStatic, true
	}
	return 0, false
}

func (h ImageScaleHint) String() string {
	switch h {
	case ScaleHintDynamic:
		return "DYNAMIC"
	case ScaleHintStatic:
		return "STATIC"
	default:
		return "NONE"
	}
}

// MiddlePolicy is the tri-valued border-middle rendering policy. 0 and
// "NONE" are synonyms, 1 and "DEFAULT" are synonyms, per the original
// source's numeral/label dual acceptance (see SPEC_FULL.md §12).
type MiddlePolicy uint8

const (
	MiddleNone MiddlePolicy = iota
	MiddleDefault
	MiddleSolid
)

func ParseMiddlePolicy(s string) (MiddlePolicy, bool) {
	switch s {
	case "0", "NONE":
		return MiddleNone, true
	case "1", "DEFAULT":
		return MiddleDefault, true
	case "SOLID":
		return MiddleSolid, true
	}
	return 0, false
}

func (m MiddlePolicy) String() string {
	switch m {
	case MiddleDefault:
		return "DEFAULT"
	case MiddleSolid:
		return "SOLID"
	default:
		return "NONE"
	}
}

// ImageCompression is the declared import/recompression policy for an
// inline image source.
type ImageCompression uint8

const (
	CompressionRaw ImageCompression = iota
	CompressionComp
	CompressionLossy
	CompressionUser
)

func (c ImageCompression) String() string {
	switch c {
	case CompressionRaw:
		return "RAW"
	case CompressionComp:
		return "COMP"
	case CompressionLossy:
		return "LOSSY"
	case CompressionUser:
		return "USER"
	default:
		return "RAW"
	}
}

// Transition is the interpolation curve used by a program's state change.
type Transition uint8

const (
	TransitionLinear Transition = iota
	TransitionSinusoidal
	TransitionAccelerate
	TransitionDecelerate
)

func ParseTransition(s string) (Transition, bool) {
	switch s {
	case "LINEAR":
		return TransitionLinear, true
	case "SINUSOIDAL":
		return TransitionSinusoidal, true
	case "ACCELERATE":
		return TransitionAccelerate, true
	case "DECELERATE":
		return TransitionDecelerate, true
	}
	return 0, false
}

func (t Transition) String() string {
	switch t {
	case TransitionSinusoidal:
		return "SINUSOIDAL"
	case TransitionAccelerate:
		return "ACCELERATE"
	case TransitionDecelerate:
		return "DECELERATE"
	default:
		return "LINEAR"
	}
}

// ProgramActionKind discriminates the variant program action.
type ProgramActionKind uint8

const (
	ActionStateSet ProgramActionKind = iota
	ActionStop
	ActionSignalEmit
	ActionDragValSet
	ActionDragValStep
	ActionDragValPage
	ActionScript
	ActionLuaScript
	ActionFocusSet
	ActionFocusObject
	ActionParamCopy
	ActionParamSet
)

var programActionNames = map[string]ProgramActionKind{
	"STATE_SET": ActionStateSet, "ACTION_STOP": ActionStop,
	"SIGNAL_EMIT": ActionSignalEmit, "DRAG_VAL_SET": ActionDragValSet,
	"DRAG_VAL_STEP": ActionDragValStep, "DRAG_VAL_PAGE": ActionDragValPage,
	"SCRIPT": ActionScript, "LUA_SCRIPT": ActionLuaScript,
	"FOCUS_SET": ActionFocusSet, "FOCUS_OBJECT": ActionFocusObject,
	"PARAM_COPY": ActionParamCopy, "PARAM_SET": ActionParamSet,
}

func ParseProgramAction(s string) (ProgramActionKind, bool) {
	v, ok := programActionNames[s]
	return v, ok
}

func (k ProgramActionKind) String() string {
	for name, v := range programActionNames {
		if v == k {
			return name
		}
	}
	return fmt.Sprintf("ACTION(%d)", uint8(k))
}

// TargetKind classifies what a Program's by-name target references
// resolve to, which depends on the action kind (spec.md §3 Program).
type TargetKind uint8

const (
	TargetPart TargetKind = iota
	TargetProgram
)

// ExternalParamType is the type of one EXTERNAL part parameter.
type ExternalParamType uint8

const (
	ParamInt ExternalParamType = iota
	ParamBool
	ParamDouble
	ParamString
	ParamChoice
)

func ParseExternalParamType(s string) (ExternalParamType, bool) {
	switch s {
	case "INT":
		return ParamInt, true
	case "BOOL":
		return ParamBool, true
	case "DOUBLE":
		return ParamDouble, true
	case "STRING":
		return ParamString, true
	case "CHOICE":
		return ParamChoice, true
	}
	return 0, false
}

func (t ExternalParamType) String() string {
	switch t {
	case ParamBool:
		return "BOOL"
	case ParamDouble:
		return "DOUBLE"
	case ParamString:
		return "STRING"
	case ParamChoice:
		return "CHOICE"
	default:
		return "INT"
	}
}
