package compiler

import (
	"edjecc/common"
	"edjecc/edje"
)

func registerProgramHandlers(reg func(string, statementHandler)) {
	const pr = "collections.group.programs.program"

	reg(pr+".name", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		if err := p.ip.collection.SetProgramName(prog, a.Str(0)); err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
	})
	reg(pr+".signal", func(p *Parser, a *Args) { requireProgram(p, 0).Signal = a.Str(0) })
	reg(pr+".source", func(p *Parser, a *Args) { requireProgram(p, 0).Source = a.Str(0) })
	reg(pr+".filter", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		prog.FilterPart, prog.FilterState = a.Str(0), a.Str(1)
		p.ip.resolver.QueuePart(prog.FilterPart, 0, func(id edje.PartID) { prog.FilterPartID = id })
	})
	reg(pr+".in", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		prog.DelayFrom, prog.DelayRange = a.Float(0), a.Float(1)
		if prog.DelayRange < 0 {
			p.fail(KindRange, 0, "program 'in' range must be >= 0")
		}
	})
	reg(pr+".transition", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		prog.Transition = Enum(a, 0, transitionTable)
		prog.TransitionDuration = a.Float(1)
	})
	reg(pr+".api", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		api := &edje.ProgramAPI{Name: a.Str(0)}
		if a.len() > 1 {
			api.Description = a.Str(1)
		}
		prog.API = api
	})
	reg(pr+".action", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		kind := Enum(a, 0, actionTable)
		action := edje.ProgramAction{Kind: kind}
		switch kind {
		case common.ActionStateSet:
			action.StateName, action.StateValue = a.Str(1), a.FloatRange(2, 0, 1)
		case common.ActionSignalEmit:
			action.SignalName, action.SignalSource = a.Str(1), a.Str(2)
		case common.ActionDragValSet, common.ActionDragValStep:
			action.DragX, action.DragY = a.Float(1), a.Float(2)
		case common.ActionDragValPage:
			action.DragPage1, action.DragPage2 = a.Float(1), a.Float(2)
		case common.ActionParamCopy:
			action.ParamCopySrcPart, action.ParamCopySrcParam = a.Str(1), a.Str(2)
			action.ParamCopyDstPart, action.ParamCopyDstParam = a.Str(3), a.Str(4)
			p.ip.resolver.QueuePart(action.ParamCopySrcPart, 0, func(id edje.PartID) { prog.Action.ParamCopySrcPartID = id })
			p.ip.resolver.QueuePart(action.ParamCopyDstPart, 0, func(id edje.PartID) { prog.Action.ParamCopyDstPartID = id })
		case common.ActionParamSet:
			action.ParamSetPart, action.ParamSetParam, action.ParamSetValue = a.Str(1), a.Str(2), a.Str(3)
			p.ip.resolver.QueuePart(action.ParamSetPart, 0, func(id edje.PartID) { prog.Action.ParamSetPartID = id })
		}
		prog.SetAction(action)
	})
	reg(pr+".target", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		name := a.Str(0)
		if err := prog.AddTarget(name); err != nil {
			p.fail(KindSemantic, 0, "%s", err)
		}
		idx := len(prog.TargetIDs) - 1
		switch prog.TargetKind() {
		case common.TargetPart:
			p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { prog.TargetIDs[idx] = int(id) })
		case common.TargetProgram:
			p.ip.resolver.QueueProgram(name, 0, func(id edje.ProgramID) { prog.TargetIDs[idx] = int(id) })
		}
	})
	reg(pr+".after", func(p *Parser, a *Args) {
		prog := requireProgram(p, 0)
		name := a.Str(0)
		prog.AddAfter(name)
		idx := len(prog.AfterIDs) - 1
		p.ip.resolver.QueueProgram(name, 0, func(id edje.ProgramID) { prog.AfterIDs[idx] = id })
	})
}
