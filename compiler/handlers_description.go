package compiler

import (
	"edjecc/common"
	"edjecc/edje"
)

func relHandlers(reg func(string, statementHandler), prefix string, get func(*edje.StateDescription) *edje.RelSpec) {
	reg(prefix+".relative", func(p *Parser, a *Args) {
		r := get(requireState(p, 0))
		r.RelX, r.RelY = a.Float(0), a.Float(1)
	})
	reg(prefix+".offset", func(p *Parser, a *Args) {
		r := get(requireState(p, 0))
		r.OffX, r.OffY = a.Int(0), a.Int(1)
	})
	reg(prefix+".to", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		r := get(s)
		name := a.Str(0)
		r.ToX, r.ToY = name, name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { r.ToXID = id })
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { r.ToYID = id })
	})
	reg(prefix+".to_x", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		r := get(s)
		name := a.Str(0)
		r.ToX = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { r.ToXID = id })
	})
	reg(prefix+".to_y", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		r := get(s)
		name := a.Str(0)
		r.ToY = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { r.ToYID = id })
	})
}

func registerDescriptionHandlers(reg func(string, statementHandler)) {
	const d = "collections.group.parts.part.description"

	reg(d+".state", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		name, value := a.Str(0), a.FloatRange(1, 0, 1)
		s, err := part.AddState(name, value)
		if err != nil {
			kind := KindUniqueness
			if name == "custom" && value == 0 {
				kind = KindSemantic
			}
			p.fail(kind, 0, "%s", err)
		}
		p.ip.state = s
	})
	reg(d+".inherit", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		s := requireState(p, 0)
		if err := part.Inherit(s, a.Str(0), a.FloatRange(1, 0, 1)); err != nil {
			p.fail(KindSemantic, 0, "%s", err)
		}
		slave := func(name string, id *edje.PartID) { p.ip.resolver.QueuePartSlave(name, 0, func(v edje.PartID) { *id = v }) }
		slave(s.Rel1.ToX, &s.Rel1.ToXID)
		slave(s.Rel1.ToY, &s.Rel1.ToYID)
		slave(s.Rel2.ToX, &s.Rel2.ToXID)
		slave(s.Rel2.ToY, &s.Rel2.ToYID)
		slave(s.Text.Source, &s.Text.SourceID)
		slave(s.Text.Source2, &s.Text.Source2ID)
		slave(s.Map.PerspectivePart, &s.Map.PerspectivePartID)
		slave(s.Map.LightPart, &s.Map.LightPartID)
		slave(s.Map.RotationCenter, &s.Map.RotationCenterID)
		p.ip.resolver.QueueImage(s.Image.Normal, 0, func(id edje.ImageID, isSet bool) { s.Image.NormalID, s.Image.NormalIsSet = id, isSet })
		for i := range s.Image.Tweens {
			tw := &s.Image.Tweens[i]
			p.ip.resolver.QueueImage(tw.Name, 0, func(id edje.ImageID, isSet bool) { tw.ID, tw.Set = id, isSet })
		}
	})
	reg(d+".visible", func(p *Parser, a *Args) { requireState(p, 0).Visible = a.Bool(0) })
	reg(d+".align", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.AlignX, s.AlignY = a.FloatRange(0, -1, 1), a.FloatRange(1, -1, 1)
	})
	reg(d+".min", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.MinW, s.MinH = a.Int(0), a.Int(1)
	})
	reg(d+".max", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.MaxW, s.MaxH = a.Int(0), a.Int(1)
	})
	reg(d+".fixed", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.FixedW, s.FixedH = a.Bool(0), a.Bool(1)
	})
	reg(d+".step", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.StepX, s.StepY = a.Int(0), a.Int(1)
	})
	reg(d+".aspect", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.AspectMin, s.AspectMax = a.Float(0), a.Float(1)
	})
	reg(d+".aspect_preference", func(p *Parser, a *Args) { requireState(p, 0).AspectPref = Enum(a, 0, aspectPrefTable) })

	reg(d+".color_class", func(p *Parser, a *Args) { requireState(p, 0).ColorClass = a.Str(0) })
	reg(d+".color", func(p *Parser, a *Args) { requireState(p, 0).Color = readRGBA(a) })
	reg(d+".outline_color", func(p *Parser, a *Args) { requireState(p, 0).OutlineColor = readRGBA(a) })
	reg(d+".shadow_color", func(p *Parser, a *Args) { requireState(p, 0).ShadowColor = readRGBA(a) })

	relHandlers(reg, d+".rel1", func(s *edje.StateDescription) *edje.RelSpec { return &s.Rel1 })
	relHandlers(reg, d+".rel2", func(s *edje.StateDescription) *edje.RelSpec { return &s.Rel2 })

	reg(d+".image.normal", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Image.Normal = name
		p.ip.resolver.QueueImage(name, 0, func(id edje.ImageID, isSet bool) {
			s.Image.NormalID, s.Image.NormalIsSet = id, isSet
		})
	})
	reg(d+".image.tween", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		tween := edje.ImageTween{Name: name}
		idx := len(s.Image.Tweens)
		s.Image.Tweens = append(s.Image.Tweens, tween)
		p.ip.resolver.QueueImage(name, 0, func(id edje.ImageID, isSet bool) {
			s.Image.Tweens[idx].ID = id
			s.Image.Tweens[idx].Set = isSet
		})
	})
	reg(d+".image.border", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		s.Image.BorderL, s.Image.BorderR, s.Image.BorderT, s.Image.BorderB = a.Int(0), a.Int(1), a.Int(2), a.Int(3)
	})
	reg(d+".image.border_scale", func(p *Parser, a *Args) { requireState(p, 0).Image.BorderScale = a.Bool(0) })
	reg(d+".image.middle", func(p *Parser, a *Args) { requireState(p, 0).Image.Middle = Enum(a, 0, middlePolicyTable) })
	reg(d+".image.scale_hint", func(p *Parser, a *Args) { requireState(p, 0).Image.ScaleHint = Enum(a, 0, scaleHintTable) })

	reg(d+".fill.smooth", func(p *Parser, a *Args) { requireState(p, 0).Fill.Smooth = a.Bool(0) })
	reg(d+".fill.origin.relative", func(p *Parser, a *Args) {
		f := &requireState(p, 0).Fill
		f.OriginRelX, f.OriginRelY = a.Float(0), a.Float(1)
	})
	reg(d+".fill.origin.offset", func(p *Parser, a *Args) {
		f := &requireState(p, 0).Fill
		f.OriginAbsX, f.OriginAbsY = a.Int(0), a.Int(1)
	})
	reg(d+".fill.size.relative", func(p *Parser, a *Args) {
		f := &requireState(p, 0).Fill
		f.SizeRelX, f.SizeRelY = a.Float(0), a.Float(1)
	})
	reg(d+".fill.size.offset", func(p *Parser, a *Args) {
		f := &requireState(p, 0).Fill
		f.SizeAbsX, f.SizeAbsY = a.Int(0), a.Int(1)
	})
	reg(d+".fill.type", func(p *Parser, a *Args) { requireState(p, 0).Fill.Type = Enum(a, 0, fillTypeTable) })
	reg(d+".fill.angle", func(p *Parser, a *Args) { requireState(p, 0).Fill.Angle = a.Float(0) })
	reg(d+".fill.spread", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		if part.Type != common.PartGradient {
			p.fail(KindContext, 0, "fill.spread used on a non-gradient part")
		}
		requireState(p, 0).Fill.Spread = a.IntRange(0, 0, 1)
	})

	reg(d+".text.text", func(p *Parser, a *Args) { requireState(p, 0).Text.Text = a.Str(0) })
	reg(d+".text.text_class", func(p *Parser, a *Args) { requireState(p, 0).Text.TextClass = a.Str(0) })
	reg(d+".text.font", func(p *Parser, a *Args) { requireState(p, 0).Text.Font = a.Str(0) })
	reg(d+".text.style", func(p *Parser, a *Args) { requireState(p, 0).Text.Style = a.Str(0) })
	reg(d+".text.repch", func(p *Parser, a *Args) { requireState(p, 0).Text.ReplacementChar = a.Str(0) })
	reg(d+".text.size", func(p *Parser, a *Args) { requireState(p, 0).Text.Size = a.Int(0) })
	reg(d+".text.fit", func(p *Parser, a *Args) {
		t := &requireState(p, 0).Text
		t.FitX, t.FitY = a.Bool(0), a.Bool(1)
	})
	reg(d+".text.min", func(p *Parser, a *Args) {
		t := &requireState(p, 0).Text
		t.MinX, t.MinY = a.Bool(0), a.Bool(1)
	})
	reg(d+".text.max", func(p *Parser, a *Args) {
		t := &requireState(p, 0).Text
		t.MaxX, t.MaxY = a.Bool(0), a.Bool(1)
	})
	reg(d+".text.align", func(p *Parser, a *Args) {
		t := &requireState(p, 0).Text
		t.AlignX, t.AlignY = a.FloatRange(0, 0, 1), a.FloatRange(1, 0, 1)
	})
	reg(d+".text.source", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Text.Source = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { s.Text.SourceID = id })
	})
	reg(d+".text.source2", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Text.Source2 = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { s.Text.Source2ID = id })
	})
	reg(d+".text.ellipsis", func(p *Parser, a *Args) { requireState(p, 0).Text.ElipsisBalance = a.FloatRange(0, 0, 1) })

	reg(d+".box.layout", func(p *Parser, a *Args) { requireState(p, 0).Box.Layout = a.Str(0) })
	reg(d+".box.align", func(p *Parser, a *Args) {
		b := &requireState(p, 0).Box
		b.AlignX, b.AlignY = a.FloatRange(0, -1, 1), a.FloatRange(1, -1, 1)
	})
	reg(d+".box.padding", func(p *Parser, a *Args) {
		b := &requireState(p, 0).Box
		b.PaddingH, b.PaddingV = a.Int(0), a.Int(1)
	})
	reg(d+".table.homogeneous", func(p *Parser, a *Args) {
		requireState(p, 0).Box.Homogeneous = Enum(a, 0, tableHomogeneityTable)
	})

	reg(d+".map.perspective", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Map.PerspectivePart = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { s.Map.PerspectivePartID = id })
	})
	reg(d+".map.light", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Map.LightPart = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { s.Map.LightPartID = id })
	})
	reg(d+".map.rotation.center", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		name := a.Str(0)
		s.Map.RotationCenter = name
		p.ip.resolver.QueuePart(name, 0, func(id edje.PartID) { s.Map.RotationCenterID = id })
	})
	reg(d+".map.rotation", func(p *Parser, a *Args) {
		m := &requireState(p, 0).Map
		m.RotX, m.RotY, m.RotZ = a.Float(0), a.Float(1), a.Float(2)
	})
	reg(d+".map.on", func(p *Parser, a *Args) { requireState(p, 0).Map.On = a.Bool(0) })
	reg(d+".map.smooth", func(p *Parser, a *Args) { requireState(p, 0).Map.Smooth = a.Bool(0) })
	reg(d+".map.alpha", func(p *Parser, a *Args) { requireState(p, 0).Map.Alpha = a.Bool(0) })
	reg(d+".map.backface_cull", func(p *Parser, a *Args) { requireState(p, 0).Map.BackfaceCull = a.Bool(0) })
	reg(d+".map.perspective_on", func(p *Parser, a *Args) { requireState(p, 0).Map.PerspectiveOn = a.Bool(0) })
	reg(d+".map.zplane", func(p *Parser, a *Args) { requireState(p, 0).Map.ZPlane = a.Int(0) })
	reg(d+".map.focal", func(p *Parser, a *Args) { requireState(p, 0).Map.Focal = a.Int(0) })

	reg(d+".param", func(p *Parser, a *Args) {
		s := requireState(p, 0)
		param := edje.ExternalParam{Name: a.Str(0), Type: Enum(a, 1, externalParamTypeTable)}
		switch param.Type {
		case common.ParamInt:
			param.Int = a.Int(2)
		case common.ParamBool:
			param.Bool = a.Bool(2)
		case common.ParamDouble:
			param.Double = a.Float(2)
		case common.ParamString:
			param.String = a.Str(2)
		case common.ParamChoice:
			param.Choice = a.Str(2)
		}
		s.ExternalParams = append(s.ExternalParams, param)
	})
}
