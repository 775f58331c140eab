package compiler

import "edjecc/common"

// objectHandler runs when a block at `path` opens. It may create a new
// entity at the insertion point and leave it there for nested handlers;
// it does not itself recurse into the block body (the driver does that).
type objectHandler func(p *Parser, line int)

// closeHandler runs when a block at `path` closes, before the path
// segment is popped. Used to flush per-scope state (the resolver at the
// end of a group, for instance).
type closeHandler func(p *Parser)

// statementHandler runs a fully-qualified property statement against the
// current insertion point.
type statementHandler func(p *Parser, args *Args)

// objectHandlers is keyed by the dotted path built from the grammar's
// nested block names (spec.md §4.1's "fully-qualified dotted path").
// Synonymous paths may point at the same function to accept syntactic
// sugar, mirroring the original source's alias sets.
var objectHandlers = map[string]objectHandler{
	"images.set": func(p *Parser, line int) {
		p.ip.imageSet = nil // the set itself is created by its "name:" statement
	},
	"styles.style": func(p *Parser, line int) {
		p.ip.style = nil
	},
	"color_classes.color_class": func(p *Parser, line int) {
		p.ip.colorClass = nil
	},
	"spectra.spectrum": func(p *Parser, line int) {
		p.ip.spectrum = nil
	},
	"collections.group": func(p *Parser, line int) {
		p.ip.collection = nil
		p.ip.resolver = nil
	},
	"collections.group.parts.part": openPart,
	"collections.group.parts.part.dragable": func(p *Parser, line int) {
		// no entity to create; properties mutate p.ip.part.Dragable directly
	},
	"collections.group.parts.part.description": func(p *Parser, line int) {
		p.ip.state = nil
	},
	"collections.group.parts.part.box.items.item":   openPartItem,
	"collections.group.parts.part.table.items.item":  openPartItem,
	"collections.group.programs.program": openProgram,
}

func openPart(p *Parser, line int) {
	if p.ip.collection == nil {
		p.fail(KindContext, line, "part declared outside a group")
	}
	part, err := p.ip.collection.AddPart("", common.PartNone)
	if err != nil {
		p.fail(KindUniqueness, line, "%s", err)
	}
	p.ip.part = part
	p.ip.state = nil
	p.ip.item = nil
}

func openPartItem(p *Parser, line int) {
	if p.ip.part == nil {
		p.fail(KindContext, line, "item declared outside a part")
	}
	item, err := p.ip.part.AddItem("")
	if err != nil {
		p.fail(KindContext, line, "%s", err)
	}
	p.ip.item = item
}

func openProgram(p *Parser, line int) {
	if p.ip.collection == nil {
		p.fail(KindContext, line, "program declared outside a group")
	}
	prog, err := p.ip.collection.AddProgram("")
	if err != nil {
		p.fail(KindUniqueness, line, "%s", err)
	}
	p.ip.program = prog
}

// statementHandlers is keyed the same way as objectHandlers, but for
// property statements (`path.property`), populated by the init() functions
// in handlers_group.go and handlers_toplevel.go.
var statementHandlers = map[string]statementHandler{}

// closeHandlers flushes scoped state when its owning block closes.
var closeHandlers = map[string]closeHandler{
	"collections.group": func(p *Parser) {
		if p.ip.resolver != nil {
			if err := p.ip.resolver.Resolve(); err != nil {
				panic(newDiag(KindReference, p.file, 0, "%s", err))
			}
		}
		p.ip.collection = nil
		p.ip.resolver = nil
	},
	"collections.group.parts.part": func(p *Parser) {
		p.ip.part = nil
		p.ip.state = nil
		p.ip.item = nil
	},
	"collections.group.programs.program": func(p *Parser) {
		p.ip.program = nil
	},
}
