package compiler

import "edjecc/common"

func registerItemHandlers(reg func(string, statementHandler)) {
	for _, prefix := range []string{
		"collections.group.parts.part.box.items.item",
		"collections.group.parts.part.table.items.item",
	} {
		reg(prefix+".name", func(p *Parser, a *Args) { requireItem(p, 0).Name = a.Str(0) })
		reg(prefix+".source", func(p *Parser, a *Args) { requireItem(p, 0).Source = a.Str(0) })
		reg(prefix+".min", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.MinW, it.MinH = a.Int(0), a.Int(1)
		})
		reg(prefix+".prefer", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.PreferW, it.PreferH = a.Int(0), a.Int(1)
		})
		reg(prefix+".max", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.MaxW, it.MaxH = a.Int(0), a.Int(1)
		})
		reg(prefix+".padding", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.PadL, it.PadR, it.PadT, it.PadB = a.Int(0), a.Int(1), a.Int(2), a.Int(3)
		})
		reg(prefix+".align", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.AlignX, it.AlignY = a.FloatRange(0, -1, 1), a.FloatRange(1, -1, 1)
		})
		reg(prefix+".weight", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.WeightX, it.WeightY = a.FloatRange(0, 0, 1e5), a.FloatRange(1, 0, 1e5)
		})
		reg(prefix+".aspect", func(p *Parser, a *Args) {
			it := requireItem(p, 0)
			it.AspectW, it.AspectH = a.Int(0), a.Int(1)
		})
		reg(prefix+".aspect_mode", func(p *Parser, a *Args) { requireItem(p, 0).AspectMode = Enum(a, 0, aspectModeTable) })
	}

	const tableItem = "collections.group.parts.part.table.items.item"
	reg(tableItem+".position", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		if part.Type != common.PartTable {
			p.fail(KindContext, 0, "position is valid only on TABLE items")
		}
		it := requireItem(p, 0)
		it.Col, it.Row = a.Int(0), a.Int(1)
	})
	reg(tableItem+".span", func(p *Parser, a *Args) {
		part := requirePart(p, 0)
		if part.Type != common.PartTable {
			p.fail(KindContext, 0, "span is valid only on TABLE items")
		}
		it := requireItem(p, 0)
		it.ColSpan, it.RowSpan = a.IntRange(0, 1, 1<<30), a.IntRange(1, 1, 1<<30)
	})

	const boxItem = "collections.group.parts.part.box.items.item"
	reg(boxItem+".position", func(p *Parser, a *Args) {
		p.fail(KindContext, 0, "position used on a BOX item; only TABLE items accept position")
	})
	reg(boxItem+".span", func(p *Parser, a *Args) {
		p.fail(KindContext, 0, "span used on a BOX item; only TABLE items accept span")
	})
}
