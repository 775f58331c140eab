package compiler

import (
	"edjecc/common"
	"edjecc/edje"
)

var partTypeTable = map[string]common.PartType{
	"NONE": common.PartNone, "RECT": common.PartRect, "TEXT": common.PartText,
	"IMAGE": common.PartImage, "SWALLOW": common.PartSwallow, "TEXTBLOCK": common.PartTextblock,
	"GRADIENT": common.PartGradient, "GROUP": common.PartGroup, "BOX": common.PartBox,
	"TABLE": common.PartTable, "EXTERNAL": common.PartExternal,
}

var pointerModeTable = map[string]common.PointerMode{"AUTOGRAB": common.PointerAutograb, "NOGRAB": common.PointerNograb}
var entryModeTable = map[string]common.EntryMode{
	"NONE": common.EntryNone, "PLAIN": common.EntryPlain, "EDITABLE": common.EntryEditable, "PASSWORD": common.EntryPassword,
}
var selectModeTable = map[string]common.SelectMode{"DEFAULT": common.SelectDefault, "EXPLICIT": common.SelectExplicit}
var effectTable = map[string]common.TextEffect{
	"NONE": common.EffectNone, "PLAIN": common.EffectPlain, "OUTLINE": common.EffectOutline,
	"SOFT_OUTLINE": common.EffectSoftOutline, "SHADOW": common.EffectShadow, "SOFT_SHADOW": common.EffectSoftShadow,
	"OUTLINE_SHADOW": common.EffectOutlineShadow, "OUTLINE_SOFT_SHADOW": common.EffectOutlineSoftShadow,
	"FAR_SHADOW": common.EffectFarShadow, "FAR_SOFT_SHADOW": common.EffectFarSoftShadow, "GLOW": common.EffectGlow,
}
var aspectPrefTable = map[string]common.AspectPreference{
	"NONE": common.AspectPrefNone, "VERTICAL": common.AspectPrefVertical,
	"HORIZONTAL": common.AspectPrefHorizontal, "BOTH": common.AspectPrefBoth,
}
var aspectModeTable = map[string]common.AspectMode{
	"NONE": common.AspectModeNone, "NEITHER": common.AspectModeNeither,
	"HORIZONTAL": common.AspectModeHorizontal, "VERTICAL": common.AspectModeVertical, "BOTH": common.AspectModeBoth,
}
var tableHomogeneityTable = map[string]common.TableHomogeneity{
	"NONE": common.TableHomogeneityNone, "TABLE": common.TableHomogeneityTable, "ITEM": common.TableHomogeneityItem,
}
var fillTypeTable = map[string]common.FillType{"SCALE": common.FillScale, "TILE": common.FillTile}
var scaleHintTable = map[string]common.ImageScaleHint{
	"NONE": common.ScaleHintNone, "0": common.ScaleHintNone, "DYNAMIC": common.ScaleHintDynamic, "STATIC": common.ScaleHintStatic,
}
var middlePolicyTable = map[string]common.MiddlePolicy{
	"0": common.MiddleNone, "NONE": common.MiddleNone, "1": common.MiddleDefault,
	"DEFAULT": common.MiddleDefault, "SOLID": common.MiddleSolid,
}
var transitionTable = map[string]common.Transition{
	"LINEAR": common.TransitionLinear, "SINUSOIDAL": common.TransitionSinusoidal,
	"ACCELERATE": common.TransitionAccelerate, "DECELERATE": common.TransitionDecelerate,
}
var actionTable = map[string]common.ProgramActionKind{
	"STATE_SET": common.ActionStateSet, "ACTION_STOP": common.ActionStop, "SIGNAL_EMIT": common.ActionSignalEmit,
	"DRAG_VAL_SET": common.ActionDragValSet, "DRAG_VAL_STEP": common.ActionDragValStep, "DRAG_VAL_PAGE": common.ActionDragValPage,
	"SCRIPT": common.ActionScript, "LUA_SCRIPT": common.ActionLuaScript, "FOCUS_SET": common.ActionFocusSet,
	"FOCUS_OBJECT": common.ActionFocusObject, "PARAM_COPY": common.ActionParamCopy, "PARAM_SET": common.ActionParamSet,
}
var externalParamTypeTable = map[string]common.ExternalParamType{
	"INT": common.ParamInt, "BOOL": common.ParamBool, "DOUBLE": common.ParamDouble,
	"STRING": common.ParamString, "CHOICE": common.ParamChoice,
}

func requirePart(p *Parser, line int) *edje.Part {
	if p.ip.part == nil {
		p.fail(KindContext, line, "property used outside a part")
	}
	return p.ip.part
}

func requireState(p *Parser, line int) *edje.StateDescription {
	if p.ip.state == nil {
		p.fail(KindContext, line, "description property used before 'state:'")
	}
	return p.ip.state
}

func requireProgram(p *Parser, line int) *edje.Program {
	if p.ip.program == nil {
		p.fail(KindContext, line, "property used outside a program")
	}
	return p.ip.program
}

func requireItem(p *Parser, line int) *edje.PartItem {
	if p.ip.item == nil {
		p.fail(KindContext, line, "property used outside a box/table item")
	}
	return p.ip.item
}

func init() {
	reg := func(path string, h statementHandler) { statementHandlers[path] = h }

	// ---- collections.group ----
	reg("collections.group.name", func(p *Parser, a *Args) {
		name := a.Str(0)
		c := p.f.AddCollection(name)
		p.ip.collection = c
		p.ip.resolver = edje.NewResolver(c, p.f)
	})
	reg("collections.group.min", func(p *Parser, a *Args) {
		g := requireGroup(p, a)
		g.MinW = a.Int(0)
		if a.len() > 1 {
			g.MinH = a.Int(1)
		}
	})
	reg("collections.group.max", func(p *Parser, a *Args) {
		g := requireGroup(p, a)
		g.MaxW = a.Int(0)
		if a.len() > 1 {
			g.MaxH = a.Int(1)
		}
	})
	reg("collections.group.data.item", func(p *Parser, a *Args) {
		requireGroup(p, a).DataItems = append(requireGroup(p, a).DataItems, &edje.DataItem{Key: a.Str(0), Value: a.Str(1)})
	})
	reg("collections.group.alias", func(p *Parser, a *Args) {
		id, _ := p.f.CollectionByName(requireGroup(p, a).Name)
		if err := p.f.AddAlias(a.Str(0), id); err != nil {
			p.fail(KindReference, 0, "%s", err)
		}
	})

	// ---- collections.group.parts.part ----
	reg("collections.group.parts.part.name", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		if err := p.ip.collection.SetPartName(part, a.Str(0)); err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
	})
	reg("collections.group.parts.part.type", func(p *Parser, a *Args) {
		requirePart(p, 0).Type = Enum(a, 0, partTypeTable)
	})
	reg("collections.group.parts.part.mouse_events", func(p *Parser, a *Args) { requirePart(p, 0).MouseEvents = a.Bool(0) })
	reg("collections.group.parts.part.repeat_events", func(p *Parser, a *Args) { requirePart(p, 0).RepeatEvents = a.Bool(0) })
	reg("collections.group.parts.part.scale", func(p *Parser, a *Args) { requirePart(p, 0).Scale = a.Bool(0) })
	reg("collections.group.parts.part.precise_is_inside", func(p *Parser, a *Args) { requirePart(p, 0).PreciseIsInside = a.Bool(0) })
	reg("collections.group.parts.part.multiline", func(p *Parser, a *Args) { requirePart(p, 0).Multiline = a.Bool(0) })
	reg("collections.group.parts.part.pointer_mode", func(p *Parser, a *Args) { requirePart(p, 0).Pointer = Enum(a, 0, pointerModeTable) })
	reg("collections.group.parts.part.entry_mode", func(p *Parser, a *Args) { requirePart(p, 0).Entry = Enum(a, 0, entryModeTable) })
	reg("collections.group.parts.part.select_mode", func(p *Parser, a *Args) { requirePart(p, 0).Select = Enum(a, 0, selectModeTable) })
	reg("collections.group.parts.part.effect", func(p *Parser, a *Args) { requirePart(p, 0).Effect = Enum(a, 0, effectTable) })
	reg("collections.group.parts.part.source", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		name := a.Str(0)
		part.Source = name
		p.ip.resolver.QueueExternalSource(part, name, 0)
	})
	reg("collections.group.parts.part.source2", func(p *Parser, a *Args) { requirePart(p, 0).Source2 = a.Str(0) })
	reg("collections.group.parts.part.source3", func(p *Parser, a *Args) { requirePart(p, 0).Source3 = a.Str(0) })
	reg("collections.group.parts.part.source4", func(p *Parser, a *Args) { requirePart(p, 0).Source4 = a.Str(0) })
	reg("collections.group.parts.part.source5", func(p *Parser, a *Args) { requirePart(p, 0).Source5 = a.Str(0) })
	reg("collections.group.parts.part.source6", func(p *Parser, a *Args) { requirePart(p, 0).Source6 = a.Str(0) })
	reg("collections.group.parts.part.clip_to", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		name := a.Str(0)
		part.ClipTo = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { part.ClipToID = id })
	})

	// ---- dragable ----
	reg("collections.group.parts.part.dragable.confine", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		name := a.Str(0)
		part.Dragable.Confine = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { part.Dragable.ConfineID = id })
	})
	reg("collections.group.parts.part.dragable.events", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		name := a.Str(0)
		part.Dragable.EventsFrom = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { part.Dragable.EventsFromID = id })
	})
	reg("collections.group.parts.part.dragable.x", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		part.Dragable.X = edje.DragAxis{Enable: a.IntRange(0, -1, 1), Step: a.Int(1), Count: a.Int(2)}
	})
	reg("collections.group.parts.part.dragable.y", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		part.Dragable.Y = edje.DragAxis{Enable: a.IntRange(0, -1, 1), Step: a.Int(1), Count: a.Int(2)}
	})

	registerDescriptionHandlers(reg)
	registerItemHandlers(reg)
	registerProgramHandlers(reg)
}

func requireGroup(p *Parser, a *Args) *edje.Collection {
	if p.ip.collection == nil {
		p.fail(KindContext, 0, "group property used before a group exists")
	}
	return p.ip.collection
}
