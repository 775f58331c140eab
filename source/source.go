// Package source regenerates a canonical textual representation of a
// compiled File: the same grammar the compiler parses, rewritten in a
// fixed table/collection/part/state/program order with stable three-space
// indentation, so a compiled artifact can be decompiled back to a source
// file that recompiles to the same model (spec.md §4.6/§4.7 round trip).
//
// There is no templating library in the retrieval pack that fits
// tree-to-source-text pretty printing (text/template covers field
// expansion inside an already-fixed document, not statement-by-statement
// grammar emission), so this writer builds output with a plain
// strings.Builder, the same way fb2/templates.go's ExpandTemplate*
// helpers build into a bytes.Buffer before returning a string. Map
// iteration order (style tags) is made stable with github.com/maruel/natural, matching convert/content_debug.go's
// sort.Sort(natural.StringSlice(keys)) pattern.
package source

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"edjecc/common"
	"edjecc/edje"
)

// File is one named entry of the regenerated source blob (spec.md §4.6
// step 4: "list of (name, bytes) pairs").
type File struct {
	Name string
	Data []byte
}

// writer accumulates canonical text at increasing indent depth.
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) line(format string, args ...any) {
	w.b.WriteString(strings.Repeat("   ", w.depth))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) open(name string) {
	w.line("%s {", name)
	w.depth++
}

func (w *writer) close() {
	w.depth--
	w.line("}")
}

func q(s string) string { return strconv.Quote(s) }

// Regenerate produces the canonical source for f as a single named file.
// The name is fixed ("generated.edc") because the compiled model does not
// retain which of possibly several original source files each entity came
// from.
func Regenerate(f *edje.File) []File {
	w := &writer{}
	writeFile(w, f)
	return []File{{Name: "generated.edc", Data: []byte(w.b.String())}}
}

func writeFile(w *writer, f *edje.File) {
	writeExternals(w, f)
	writeImages(w, f)
	writeFonts(w, f)
	writeData(w, f.DataItems)
	writeStyles(w, f)
	writeColorClasses(w, f)
	writeSpectra(w, f)
	writeCollections(w, f)
}

func writeExternals(w *writer, f *edje.File) {
	if len(f.Externals) == 0 {
		return
	}
	w.open("externals")
	for _, e := range f.Externals {
		w.line("external: %s;", q(e.Name))
	}
	w.close()
}

func writeImages(w *writer, f *edje.File) {
	if len(f.Images) == 0 && len(f.Sets) == 0 {
		return
	}
	w.open("images")
	for _, img := range f.Images {
		switch img.Source {
		case edje.ImageExternalReference:
			w.line("image: %s USER;", q(img.Path))
		case edje.ImageInlineLossy:
			w.line("image: %s LOSSY %d;", q(img.Path), img.Quality)
		default:
			w.line("image: %s COMP;", q(img.Path))
		}
	}
	for _, s := range f.Sets {
		w.open("set")
		w.line("name: %s;", q(s.Name))
		for _, e := range s.Entries {
			w.open("image")
			w.line("image: %d 0;", int(e.EntryID))
			w.line("size: %d %d %d %d;", e.MinW, e.MinH, e.MaxW, e.MaxH)
			w.close()
		}
		w.close()
	}
	w.close()
}

func writeFonts(w *writer, f *edje.File) {
	if len(f.Fonts) == 0 {
		return
	}
	w.open("fonts")
	for _, font := range f.Fonts {
		w.line("font: %s %s;", q(font.Path), q(font.Alias))
	}
	w.close()
}

func writeData(w *writer, items []*edje.DataItem) {
	if len(items) == 0 {
		return
	}
	w.open("data")
	for _, item := range items {
		if item.SourceFile != "" {
			w.line("file: %s %s;", q(item.Key), q(item.SourceFile))
			continue
		}
		w.line("item: %s %s;", q(item.Key), q(item.Value))
	}
	w.close()
}

func writeStyles(w *writer, f *edje.File) {
	if len(f.Styles) == 0 {
		return
	}
	w.open("styles")
	for _, s := range f.Styles {
		w.open("style")
		w.line("name: %s;", q(s.Name))
		if s.Base != "" {
			w.line(`base: "%s";`, s.Base)
		}
		tags := make([]string, 0, len(s.Tags))
		for name := range s.Tags {
			tags = append(tags, name)
		}
		sort.Sort(natural.StringSlice(tags))
		for _, name := range tags {
			w.line(`tag: %s "%s";`, q(name), s.Tags[name])
		}
		w.close()
	}
	w.close()
}

func rgba(c edje.RGBA) string { return fmt.Sprintf("%d %d %d %d", c.R, c.G, c.B, c.A) }

func writeColorClasses(w *writer, f *edje.File) {
	if len(f.ColorClasses) == 0 {
		return
	}
	w.open("color_classes")
	for _, c := range f.ColorClasses {
		w.open("color_class")
		w.line("name: %s;", q(c.Name))
		w.line("color: %s;", rgba(c.Main))
		w.line("color2: %s;", rgba(c.Outline))
		w.line("color3: %s;", rgba(c.Shadow))
		w.close()
	}
	w.close()
}

func writeSpectra(w *writer, f *edje.File) {
	if len(f.Spectra) == 0 {
		return
	}
	w.open("spectra")
	for _, s := range f.Spectra {
		w.open("spectrum")
		w.line("name: %s;", q(s.Name))
		for _, stop := range s.Stops {
			w.line("color: %s %g;", rgba(stop.Color), stop.Distance)
		}
		w.close()
	}
	w.close()
}

func writeCollections(w *writer, f *edje.File) {
	if len(f.Collections) == 0 {
		return
	}
	w.open("collections")
	for _, c := range f.Collections {
		w.open("group")
		w.line("name: %s;", q(c.Name))
		if c.MinW != 0 || c.MinH != 0 {
			w.line("min: %d %d;", c.MinW, c.MinH)
		}
		if c.MaxW != 0 || c.MaxH != 0 {
			w.line("max: %d %d;", c.MaxW, c.MaxH)
		}
		writeData(w, c.DataItems)
		if c.Script != nil {
			w.line("script {")
			w.b.WriteString(c.Script.Text)
			w.line("}")
		}
		if c.LuaScript != nil {
			w.line("lua_script {")
			w.b.WriteString(c.LuaScript.Text)
			w.line("}")
		}
		writeParts(w, c)
		writePrograms(w, c)
		w.close()
	}
	w.close()
}

func writeParts(w *writer, c *edje.Collection) {
	if len(c.Parts) == 0 {
		return
	}
	w.open("parts")
	for _, p := range c.Parts {
		w.open("part")
		w.line("name: %s;", q(p.Name))
		w.line("type: %s;", p.Type.String())
		if p.MouseEvents {
			w.line("mouse_events: 1;")
		}
		if p.RepeatEvents {
			w.line("repeat_events: 1;")
		}
		if p.Scale {
			w.line("scale: 1;")
		}
		if p.Pointer != common.PointerAutograb {
			w.line("pointer_mode: %s;", p.Pointer.String())
		}
		if p.ClipTo != "" {
			w.line("clip_to: %s;", q(p.ClipTo))
		}
		writeDragable(w, p)
		for _, item := range p.Items {
			writeItem(w, item, p.Type)
		}
		if p.Default != nil {
			writeState(w, p.Default)
		}
		for _, s := range p.States {
			if s == p.Default {
				continue
			}
			writeState(w, s)
		}
		w.close()
	}
	w.close()
}

func writeDragable(w *writer, p *edje.Part) {
	if p.Dragable == (edje.Dragable{}) {
		return
	}
	w.open("dragable")
	w.line("x: %d %d %d;", p.Dragable.X.Enable, p.Dragable.X.Step, p.Dragable.X.Count)
	w.line("y: %d %d %d;", p.Dragable.Y.Enable, p.Dragable.Y.Step, p.Dragable.Y.Count)
	if p.Dragable.Confine != "" {
		w.line("confine: %s;", q(p.Dragable.Confine))
	}
	if p.Dragable.EventsFrom != "" {
		w.line("events: %s;", q(p.Dragable.EventsFrom))
	}
	w.close()
}

func itemPrefix(t common.PartType) string {
	if t == common.PartTable {
		return "table"
	}
	return "box"
}

func writeItem(w *writer, item *edje.PartItem, containerType common.PartType) {
	w.open(itemPrefix(containerType) + ".items.item")
	w.line("name: %s;", q(item.Name))
	if item.Source != "" {
		w.line("source: %s;", q(item.Source))
	}
	w.line("min: %d %d;", item.MinW, item.MinH)
	w.line("max: %d %d;", item.MaxW, item.MaxH)
	w.line("align: %g %g;", item.AlignX, item.AlignY)
	w.line("weight: %g %g;", item.WeightX, item.WeightY)
	if containerType == common.PartTable {
		w.line("position: %d %d;", item.Col, item.Row)
		w.line("span: %d %d;", item.ColSpan, item.RowSpan)
	}
	w.close()
}

func writeState(w *writer, s *edje.StateDescription) {
	w.open("description")
	w.line(`state: "%s" %g;`, s.Name, s.Value)
	w.line("visible: %d;", boolToInt(s.Visible))
	w.line("align: %g %g;", s.AlignX, s.AlignY)
	w.line("min: %d %d;", s.MinW, s.MinH)
	w.line("max: %d %d;", s.MaxW, s.MaxH)
	if s.ColorClass != "" {
		w.line("color_class: %s;", q(s.ColorClass))
	} else {
		w.line("color: %s;", rgba(s.Color))
	}
	writeRel(w, "rel1", s.Rel1)
	writeRel(w, "rel2", s.Rel2)
	writeImageFields(w, s.Image)
	writeTextFields(w, s.Text)
	for _, param := range s.ExternalParams {
		writeExternalParam(w, param)
	}
	w.close()
}

func writeRel(w *writer, name string, r edje.RelSpec) {
	w.open(name)
	w.line("relative: %g %g;", r.RelX, r.RelY)
	w.line("offset: %d %d;", r.OffX, r.OffY)
	if r.ToX != "" {
		w.line("to_x: %s;", q(r.ToX))
	}
	if r.ToY != "" {
		w.line("to_y: %s;", q(r.ToY))
	}
	w.close()
}

func writeImageFields(w *writer, img edje.ImageFields) {
	if img.Normal == "" && len(img.Tweens) == 0 {
		return
	}
	w.open("image")
	if img.Normal != "" {
		w.line("normal: %s;", q(img.Normal))
	}
	for _, t := range img.Tweens {
		w.line("tween: %s;", q(t.Name))
	}
	if img.BorderL != 0 || img.BorderR != 0 || img.BorderT != 0 || img.BorderB != 0 {
		w.line("border: %d %d %d %d;", img.BorderL, img.BorderR, img.BorderT, img.BorderB)
	}
	w.close()
}

func writeTextFields(w *writer, t edje.TextFields) {
	if t.Text == "" && t.Font == "" {
		return
	}
	w.open("text")
	if t.Text != "" {
		w.line("text: %s;", q(t.Text))
	}
	if t.Font != "" {
		w.line("font: %s;", q(t.Font))
	}
	if t.Size != 0 {
		w.line("size: %d;", t.Size)
	}
	w.line("align: %g %g;", t.AlignX, t.AlignY)
	w.close()
}

func writeExternalParam(w *writer, p edje.ExternalParam) {
	switch p.Type {
	case common.ParamInt:
		w.line("params.int: %s %d;", q(p.Name), p.Int)
	case common.ParamBool:
		w.line("params.bool: %s %d;", q(p.Name), boolToInt(p.Bool))
	case common.ParamDouble:
		w.line("params.double: %s %g;", q(p.Name), p.Double)
	case common.ParamString:
		w.line("params.string: %s %s;", q(p.Name), q(p.String))
	case common.ParamChoice:
		w.line("params.choice: %s %s;", q(p.Name), q(p.Choice))
	}
}

func writePrograms(w *writer, c *edje.Collection) {
	if len(c.Programs) == 0 {
		return
	}
	w.open("programs")
	for _, p := range c.Programs {
		w.open("program")
		w.line("name: %s;", q(p.Name))
		if p.Signal != "" {
			w.line("signal: %s;", q(p.Signal))
		}
		if p.Source != "" {
			w.line("source: %s;", q(p.Source))
		}
		if p.FilterPart != "" {
			w.line("filter: %s %s;", q(p.FilterPart), q(p.FilterState))
		}
		if p.DelayFrom != 0 || p.DelayRange != 0 {
			w.line("in: %g %g;", p.DelayFrom, p.DelayRange)
		}
		writeAction(w, p)
		for _, t := range p.Targets {
			w.line("target: %s;", q(t))
		}
		for _, a := range p.After {
			w.line("after: %s;", q(a))
		}
		w.close()
	}
	w.close()
}

func writeAction(w *writer, p *edje.Program) {
	kind := p.Action.Kind.String()
	switch p.Action.Kind {
	case common.ActionStateSet:
		w.line("action: %s %s %g;", kind, q(p.Action.StateName), p.Action.StateValue)
	case common.ActionSignalEmit:
		w.line("action: %s %s %s;", kind, q(p.Action.SignalName), q(p.Action.SignalSource))
	case common.ActionDragValSet, common.ActionDragValStep:
		w.line("action: %s %g %g;", kind, p.Action.DragX, p.Action.DragY)
	case common.ActionDragValPage:
		w.line("action: %s %g %g;", kind, p.Action.DragPage1, p.Action.DragPage2)
	case common.ActionParamCopy:
		w.line("action: %s %s %s %s %s;", kind,
			q(p.Action.ParamCopySrcPart), q(p.Action.ParamCopySrcParam),
			q(p.Action.ParamCopyDstPart), q(p.Action.ParamCopyDstParam))
	case common.ActionParamSet:
		w.line("action: %s %s %s %s;", kind,
			q(p.Action.ParamSetPart), q(p.Action.ParamSetParam), q(p.Action.ParamSetValue))
	default:
		w.line("action: %s;", kind)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
