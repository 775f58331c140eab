package compiler

import (
	"edjecc/common"
	"edjecc/edje"
	"edjecc/lexer"
)

// insertionPoint holds the "current entity" at every nesting level the
// grammar can be inside, following spec.md §4.2's discipline: instead of a
// context object threaded through every handler, a Parser-owned struct
// holds the tail of every list a handler might target. Handlers read
// whichever field their path implies is live; nothing here is global.
type insertionPoint struct {
	collection *edje.Collection
	resolver   *edje.Resolver

	part     *edje.Part
	state    *edje.StateDescription
	item     *edje.PartItem
	program  *edje.Program

	imageSet   *edje.ImageSet
	style      *edje.Style
	colorClass *edje.ColorClass
	spectrum   *edje.Spectrum

	inScript bool // never set: script{}/lua_script{} bodies are captured verbatim when their block opens
}

// Parser drives the lexer, the path-stack dispatcher, and the handler
// tables against a single edje.File.
type Parser struct {
	file    string
	scanner *lexer.Scanner
	f       *edje.File
	path    []string
	ip      insertionPoint
}

// New creates a Parser that will populate f from source named by file
// (used only for diagnostics).
func New(file, source string, f *edje.File) *Parser {
	return &Parser{file: file, scanner: lexer.New(source), f: f}
}

// Parse runs the parser to completion, returning the first Diagnostic
// encountered (spec.md §7: "every error is fatal to the compilation").
func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if d, ok := r.(*Diagnostic); ok {
				err = d
				return
			}
			panic(r)
		}
	}()
	return p.parseBlockBody()
}

func (p *Parser) currentPath() string {
	joined := ""
	for i, seg := range p.path {
		if i > 0 {
			joined += "."
		}
		joined += seg
	}
	return joined
}

func (p *Parser) fail(kind Kind, line int, format string, args ...any) {
	panic(newDiag(kind, p.file, line, format, args...))
}

func (p *Parser) nextToken() lexer.Token {
	t, err := p.scanner.NextToken()
	if err != nil {
		p.fail(KindSyntax, p.scanner.Line(), "%s", err)
	}
	return t
}

// parseBlockBody consumes statements and nested blocks until it sees a
// '}' (or EOF at the top level), dispatching each through the handler
// tables keyed by the current dotted path.
func (p *Parser) parseBlockBody() error {
	for {
		tok := p.nextToken()
		switch tok.Kind {
		case lexer.EOF:
			if len(p.path) != 0 {
				p.fail(KindSyntax, tok.Line, "unexpected end of file inside %q", p.currentPath())
			}
			return p.finish()
		case lexer.RBrace:
			if len(p.path) == 0 {
				p.fail(KindSyntax, tok.Line, "unmatched '}'")
			}
			p.closeBlock()
			return nil
		case lexer.Ident:
			p.dispatch(tok)
		default:
			p.fail(KindSyntax, tok.Line, "unexpected token %s", tok)
		}
	}
}

// dispatch handles one `name { ... }` block open or `name: args;`
// property statement, following the ident just read.
func (p *Parser) dispatch(nameTok lexer.Token) {
	next := p.nextToken()
	switch next.Kind {
	case lexer.LBrace:
		p.openBlock(nameTok.Literal, nameTok.Line)
	case lexer.Colon:
		args := p.readArgList(nameTok.Line)
		p.runStatement(nameTok.Literal, nameTok.Line, args)
	default:
		p.fail(KindSyntax, next.Line, "expected '{' or ':' after %q, got %s", nameTok.Literal, next)
	}
}

func (p *Parser) readArgList(line int) *Args {
	var toks []lexer.Token
	for {
		t := p.nextToken()
		if t.Kind == lexer.Semicolon {
			break
		}
		if t.Kind == lexer.Comma {
			continue
		}
		toks = append(toks, t)
	}
	return &Args{file: p.file, line: line, toks: toks}
}

func (p *Parser) openBlock(name string, line int) {
	p.path = append(p.path, name)
	path := p.currentPath()

	if h, ok := objectHandlers[path]; ok {
		h(p, line)
	}
	// Unregistered paths are accepted as pure structural scoping
	// (spec.md §4.1: "If the path is registered without a handler [or
	// not registered at all, for a pure grouping block], the block is
	// accepted as pure structural scoping.").

	if name == "script" || name == "lua_script" {
		p.captureScript(name, line)
		return
	}

	if err := p.parseBlockBody(); err != nil {
		panic(err)
	}
}

func (p *Parser) captureScript(name string, line int) {
	text, err := p.scanner.CaptureVerbatim()
	if err != nil {
		p.fail(KindSyntax, line, "%s", err)
	}
	kind := edje.ScriptEmbryo
	if name == "lua_script" {
		kind = edje.ScriptLua
	}
	script := &edje.Script{Kind: kind, Text: text, Line: line}

	switch {
	case p.ip.program != nil:
		// A script{}/lua_script{} block nested inside a program belongs to
		// that program's own action, not the group's shared script (spec.md
		// §3 "Embedded script ... tied either to a collection or to an
		// individual program").
		wantKind := common.ActionScript
		if kind == edje.ScriptLua {
			wantKind = common.ActionLuaScript
		}
		if p.ip.program.Action.Kind != wantKind {
			p.fail(KindSemantic, line, "%s block does not match program's action kind", name)
		}
		p.ip.program.Action.ScriptRef = script
	case p.ip.collection != nil:
		if p.ip.collection.Script != nil || p.ip.collection.LuaScript != nil {
			existingKind := edje.ScriptEmbryo
			if p.ip.collection.LuaScript != nil {
				existingKind = edje.ScriptLua
			}
			if existingKind != kind {
				p.fail(KindSemantic, line, "%s", edje.ErrMixedScripts)
			}
		}
		if kind == edje.ScriptEmbryo {
			p.ip.collection.Script = script
		} else {
			p.ip.collection.LuaScript = script
		}
	}
	p.path = p.path[:len(p.path)-1]
}

func (p *Parser) closeBlock() {
	path := p.currentPath()
	if h, ok := closeHandlers[path]; ok {
		h(p)
	}
	p.path = p.path[:len(p.path)-1]
}

func (p *Parser) runStatement(name string, line int, args *Args) {
	p.path = append(p.path, name)
	path := p.currentPath()
	p.path = p.path[:len(p.path)-1]

	h, ok := statementHandlers[path]
	if !ok {
		// Unknown properties are ignored for forward/backward grammar
		// compatibility rather than rejected, matching the handler
		// table's "registered without a handler" leniency at the
		// property level too.
		return
	}
	h(p, args)
}

// finish runs once all top-level parsing is done. It has nothing left to
// replay: every collection gets its own resolver, flushed when its group
// block closes (see closeHandlers["collections.group"]).
func (p *Parser) finish() error {
	return nil
}

